package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskAnalysis_FullReply(t *testing.T) {
	raw := `{
		"overall_risk_level": "HIGH",
		"risks": [
			{
				"clause": "Article 3.3 - Liquidated Damages",
				"severity": 5,
				"contract_language": "$2,500.00 per calendar day",
				"explanation": "Daily damages with no cap."
			},
			{
				"clause": "Article 7 - Retainage",
				"severity": 3,
				"contract_language": "ten percent (10%) retainage",
				"explanation": "Retainage above the 5% industry norm."
			}
		],
		"summary": "Two notable risks."
	}`

	got := RiskAnalysis(raw)
	require.True(t, got.Success)
	assert.Equal(t, "HIGH", got.OverallRiskLevel)
	require.Len(t, got.Risks, 2)
	assert.Equal(t, 5, got.Risks[0].Severity)
	assert.Equal(t, "Two notable risks.", got.Summary)
}

func TestRiskAnalysis_SeverityClampedAndDefaulted(t *testing.T) {
	raw := `{"risks": [
		{"clause": "A", "severity": 9, "explanation": "too high"},
		{"clause": "B", "severity": 0, "explanation": "too low"},
		{"clause": "C", "explanation": "missing"}
	], "summary": "s"}`

	got := RiskAnalysis(raw)
	require.True(t, got.Success)
	require.Len(t, got.Risks, 3)
	assert.Equal(t, 5, got.Risks[0].Severity)
	assert.Equal(t, 1, got.Risks[1].Severity)
	assert.Equal(t, 3, got.Risks[2].Severity)
}

func TestRiskAnalysis_DropsIncompleteItems(t *testing.T) {
	raw := `{"risks": [
		{"clause": "", "severity": 4, "explanation": "no clause"},
		{"clause": "D", "severity": 4, "explanation": ""},
		{"clause": "E", "severity": 4, "explanation": "kept"}
	], "summary": "s"}`

	got := RiskAnalysis(raw)
	require.Len(t, got.Risks, 1)
	assert.Equal(t, "E", got.Risks[0].Clause)
}

func TestRiskAnalysis_DefaultSummary(t *testing.T) {
	got := RiskAnalysis(`{"risks": []}`)
	require.True(t, got.Success)
	assert.Equal(t, "Risk analysis completed.", got.Summary)
}

func TestRiskAnalysis_UnparseableReply(t *testing.T) {
	raw := "The contract looks risky but I cannot structure my answer."

	got := RiskAnalysis(raw)
	assert.False(t, got.Success)
	assert.Empty(t, got.Risks)
	assert.True(t, strings.HasPrefix(got.Summary, "Unable to parse structured response. Raw analysis: "))
	assert.Contains(t, got.Summary, "looks risky")
	assert.Equal(t, raw, got.Raw)
}

func TestRiskAnalysis_PreviewIsBounded(t *testing.T) {
	raw := strings.Repeat("x", 2000)
	got := RiskAnalysis(raw)
	assert.False(t, got.Success)
	assert.LessOrEqual(t, len(got.Summary), len("Unable to parse structured response. Raw analysis: ")+rawPreviewLen)
}
