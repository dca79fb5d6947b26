package parse

import (
	"strings"

	"github.com/hardhat-ai/hardhat/internal/domain"
)

type rawComplianceItem struct {
	Requirement string  `json:"requirement"`
	SpecText    string  `json:"spec_text"`
	ProductText string  `json:"product_text"`
	Status      *string `json:"status"`
	Notes       string  `json:"notes"`
}

type rawComplianceReport struct {
	Items   []rawComplianceItem `json:"compliance_items"`
	Summary string              `json:"summary"`
}

// Compliance recovers the submittal comparison result from a model reply.
// Items missing a requirement or status are dropped; statuses are mapped
// onto the closed {pass, warn, fail} set.
func Compliance(raw string) domain.ComplianceReport {
	var parsed rawComplianceReport
	if !Recover(raw, `"compliance_items"`, &parsed) {
		return domain.ComplianceReport{
			Items:   []domain.ComplianceItem{},
			Summary: "Unable to parse structured response. Raw analysis: " + preview(raw),
			Success: false,
			Raw:     raw,
		}
	}

	items := make([]domain.ComplianceItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		if it.Requirement == "" || it.Status == nil {
			continue
		}
		items = append(items, domain.ComplianceItem{
			Requirement: it.Requirement,
			SpecText:    it.SpecText,
			ProductText: it.ProductText,
			Status:      NormalizeStatus(*it.Status),
			Notes:       it.Notes,
		})
	}

	summary := parsed.Summary
	if summary == "" {
		summary = "Compliance analysis completed."
	}
	return domain.ComplianceReport{
		Items:   items,
		Summary: summary,
		Success: true,
		Raw:     raw,
	}
}

// NormalizeStatus maps a free-form status string onto {pass, warn, fail},
// defaulting to warn when ambiguous.
func NormalizeStatus(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	switch s {
	case domain.StatusPass, domain.StatusWarn, domain.StatusFail:
		return s
	}
	switch {
	case strings.Contains(s, "pass"), strings.Contains(s, "meet"):
		return domain.StatusPass
	case strings.Contains(s, "warn"), strings.Contains(s, "partial"), strings.Contains(s, "unclear"):
		return domain.StatusWarn
	case strings.Contains(s, "fail"), strings.Contains(s, "not"):
		return domain.StatusFail
	default:
		return domain.StatusWarn
	}
}
