package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hardhat-ai/hardhat/internal/domain"
	"github.com/hardhat-ai/hardhat/internal/llm"
	"github.com/hardhat-ai/hardhat/internal/parse"
	"github.com/hardhat-ai/hardhat/internal/prompt"
)

const submittalMaxTokens = 4096

// SubmittalService compares a specification section against product data.
type SubmittalService struct {
	llm    Streamer
	logger *zap.Logger
}

// NewSubmittalService creates a new submittal service.
func NewSubmittalService(llm Streamer, logger *zap.Logger) *SubmittalService {
	return &SubmittalService{llm: llm, logger: logger}
}

// CompareStream streams the compliance comparison of the two documents. The
// terminal complete event carries the parsed compliance report.
func (s *SubmittalService) CompareStream(ctx context.Context, specText, productText string, specPages, productPages int, modelNumber string) <-chan domain.StreamEvent {
	ch := make(chan domain.StreamEvent, eventBuffer)

	go func() {
		defer close(ch)

		userPrompt := prompt.Compliance(specText, productText, specPages, productPages, modelNumber)

		var full strings.Builder
		err := s.llm.StreamCompletion(ctx, userPrompt, prompt.ComplianceSystem, submittalMaxTokens, func(chunk string) {
			full.WriteString(chunk)
			send(ctx, ch, domain.TextEvent(chunk))
		})
		if err != nil {
			s.logger.Error("submittal compare stream failed", zap.Error(err))
			send(ctx, ch, domain.ErrorEvent(err.Error()))
			return
		}

		report := parse.Compliance(full.String())
		if !report.Success {
			s.logger.Warn("compliance reply was not structured JSON",
				zap.Int("reply_len", full.Len()))
		}

		send(ctx, ch, domain.StreamEvent{
			Type:            domain.EventComplete,
			Confidence:      llm.Confidence(full.String()),
			ComplianceItems: report.Items,
			Summary:         report.Summary,
			Success:         domain.Bool(report.Success),
		})
	}()

	return ch
}
