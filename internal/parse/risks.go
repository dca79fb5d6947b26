package parse

import (
	"github.com/hardhat-ai/hardhat/internal/domain"
)

type rawRisk struct {
	Clause           string   `json:"clause"`
	Severity         *float64 `json:"severity"`
	ContractLanguage string   `json:"contract_language"`
	Explanation      string   `json:"explanation"`
}

type rawRiskAnalysis struct {
	OverallRiskLevel string    `json:"overall_risk_level"`
	Risks            []rawRisk `json:"risks"`
	Summary          string    `json:"summary"`
}

// RiskAnalysis recovers the contract risk result from a model reply.
// Items missing a clause or explanation are dropped; severities are clamped
// into [1,5] and default to 3 when absent.
func RiskAnalysis(raw string) domain.RiskAnalysis {
	var parsed rawRiskAnalysis
	if !Recover(raw, `"risks"`, &parsed) {
		return domain.RiskAnalysis{
			Risks:   []domain.RiskItem{},
			Summary: "Unable to parse structured response. Raw analysis: " + preview(raw),
			Success: false,
			Raw:     raw,
		}
	}

	risks := make([]domain.RiskItem, 0, len(parsed.Risks))
	for _, r := range parsed.Risks {
		if r.Clause == "" || r.Explanation == "" {
			continue
		}
		severity := 3
		if r.Severity != nil {
			severity = clampSeverity(int(*r.Severity))
		}
		risks = append(risks, domain.RiskItem{
			Clause:           r.Clause,
			Severity:         severity,
			ContractLanguage: r.ContractLanguage,
			Explanation:      r.Explanation,
		})
	}

	summary := parsed.Summary
	if summary == "" {
		summary = "Risk analysis completed."
	}
	return domain.RiskAnalysis{
		OverallRiskLevel: parsed.OverallRiskLevel,
		Risks:            risks,
		Summary:          summary,
		Success:          true,
		Raw:              raw,
	}
}

func clampSeverity(s int) int {
	if s < 1 {
		return 1
	}
	if s > 5 {
		return 5
	}
	return s
}
