package domain

// Stream event types sent over SSE. Every request ends with exactly one
// terminal event: EventComplete or EventError.
const (
	EventText     = "text"
	EventProgress = "progress"
	EventComplete = "complete"
	EventError    = "error"
)

// Confidence levels derived from the final reply text.
const (
	ConfidenceHigh = "High"
	ConfidenceMed  = "Med"
	ConfidenceLow  = "Low"
)

// StreamEvent is one SSE frame. Fields are populated depending on Type and
// task; the JSON shape matches what the web client consumes.
type StreamEvent struct {
	Type string `json:"type"`

	// text events
	Chunk string `json:"chunk,omitempty"`

	// progress events (contract risk only)
	Stage   int    `json:"stage,omitempty"`
	Message string `json:"message,omitempty"`

	// error events may carry the head of an unparseable model reply
	RawPreview string `json:"raw_preview,omitempty"`

	// terminal complete events
	Confidence       string           `json:"confidence,omitempty"`
	Citations        []Citation       `json:"citations,omitempty"`
	FoundInDocument  *bool            `json:"found_in_document,omitempty"`
	Risks            []RiskItem       `json:"risks,omitempty"`
	OverallRiskLevel string           `json:"overall_risk_level,omitempty"`
	ComplianceItems  []ComplianceItem `json:"compliance_items,omitempty"`
	ScheduleData     map[string]any   `json:"schedule_data,omitempty"`
	Summary          string           `json:"summary,omitempty"`
	Success          *bool            `json:"success,omitempty"`
}

// TextEvent wraps one model fragment.
func TextEvent(chunk string) StreamEvent {
	return StreamEvent{Type: EventText, Chunk: chunk}
}

// ProgressEvent wraps a synthetic progress notification.
func ProgressEvent(stage int, message string) StreamEvent {
	return StreamEvent{Type: EventProgress, Stage: stage, Message: message}
}

// ErrorEvent is the terminal event for a failed stream.
func ErrorEvent(message string) StreamEvent {
	return StreamEvent{Type: EventError, Message: message}
}

// Bool returns a pointer for optional boolean event fields.
func Bool(v bool) *bool { return &v }
