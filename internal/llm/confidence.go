package llm

import (
	"strings"

	"github.com/hardhat-ai/hardhat/internal/domain"
)

// Lexical hedge markers. Each list entry counts once if present anywhere in
// the reply, case-insensitive.
var (
	hedgeWords = []string{
		"might", "maybe", "perhaps", "possibly", "uncertain",
		"unclear", "not sure", "could be", "seems", "appears",
	}
	hedgePhrases = []string{
		"i think", "i believe", "in my opinion", "it seems",
		"it appears", "probably", "likely",
	}
)

// Confidence scores a completed reply High/Med/Low. This is a lexical
// heuristic, not a calibrated measure: it only reacts to hedging language
// and reply length.
func Confidence(text string) string {
	if len(strings.TrimSpace(text)) < 10 {
		return domain.ConfidenceLow
	}

	lower := strings.ToLower(text)
	score := 0
	for _, w := range hedgeWords {
		if strings.Contains(lower, w) {
			score++
		}
	}
	for _, p := range hedgePhrases {
		if strings.Contains(lower, p) {
			score++
		}
	}

	switch {
	case score == 0 && len(text) > 100:
		return domain.ConfidenceHigh
	case score <= 2:
		return domain.ConfidenceMed
	default:
		return domain.ConfidenceLow
	}
}
