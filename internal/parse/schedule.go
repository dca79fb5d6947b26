package parse

import (
	"github.com/hardhat-ai/hardhat/internal/domain"
)

// Schedule recovers the lookahead schedule object from a model reply. The
// shape is model-defined, so the payload stays a free-form map.
func Schedule(raw string) domain.ScheduleResult {
	var data map[string]any
	if !Recover(raw, `"schedule"`, &data) {
		return domain.ScheduleResult{
			Success: false,
			Err:     "Unable to parse schedule response",
			Raw:     raw,
		}
	}
	return domain.ScheduleResult{
		Data:    data,
		Success: true,
		Raw:     raw,
	}
}
