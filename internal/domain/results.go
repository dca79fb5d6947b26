package domain

// Citation points at a page (and optionally a section heading) of the
// uploaded document that supports part of the answer.
type Citation struct {
	Page    int    `json:"page"`
	Section string `json:"section,omitempty"`
	Text    string `json:"text"`
}

// RiskItem is one flagged contract clause. Severity is always within [1,5].
type RiskItem struct {
	Clause           string `json:"clause"`
	Severity         int    `json:"severity"`
	ContractLanguage string `json:"contract_language,omitempty"`
	Explanation      string `json:"explanation"`
}

// RiskAnalysis is the structured result of a contract risk run. Success is
// false when the model reply could not be parsed; Summary then carries a
// best-effort preview and Raw the full reply for diagnostics.
type RiskAnalysis struct {
	OverallRiskLevel string     `json:"overall_risk_level,omitempty"`
	Risks            []RiskItem `json:"risks"`
	Summary          string     `json:"summary"`
	Success          bool       `json:"success"`
	Raw              string     `json:"-"`
}

// ComplianceItem is one spec requirement checked against the product data.
// Status is always one of pass, warn, fail.
type ComplianceItem struct {
	Requirement string `json:"requirement"`
	SpecText    string `json:"spec_text"`
	ProductText string `json:"product_text"`
	Status      string `json:"status"`
	Notes       string `json:"notes,omitempty"`
}

// Compliance statuses.
const (
	StatusPass = "pass"
	StatusWarn = "warn"
	StatusFail = "fail"
)

// ComplianceReport is the structured result of a submittal comparison.
type ComplianceReport struct {
	Items   []ComplianceItem `json:"compliance_items"`
	Summary string           `json:"summary"`
	Success bool             `json:"success"`
	Raw     string           `json:"-"`
}

// ScheduleResult carries the free-form schedule object produced by the
// vision model, or the parse failure details.
type ScheduleResult struct {
	Data    map[string]any
	Success bool
	Err     string
	Raw     string
}

// TransformRequest is the site-scribe request body.
type TransformRequest struct {
	Text      string `json:"text" binding:"required"`
	Tone      string `json:"tone"`
	ToEmail   string `json:"to_email"`
	ToName    string `json:"to_name"`
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name"`
	Subject   string `json:"subject"`
	CC        string `json:"cc"`
	BCC       string `json:"bcc"`
}
