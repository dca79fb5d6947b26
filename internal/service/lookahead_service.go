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

const lookaheadMaxTokens = 4096

// LookaheadService builds 2-week schedules from jobsite photos.
type LookaheadService struct {
	llm    Streamer
	logger *zap.Logger
}

// NewLookaheadService creates a new lookahead service.
func NewLookaheadService(llm Streamer, logger *zap.Logger) *LookaheadService {
	return &LookaheadService{llm: llm, logger: logger}
}

// GenerateStream streams a schedule generated from the jobsite photos. The
// terminal complete event carries the parsed schedule object; a reply that
// cannot be parsed ends the stream with an error event instead.
func (s *LookaheadService) GenerateStream(ctx context.Context, imagePaths []string, userGoal, tradeScope, constraints string) <-chan domain.StreamEvent {
	ch := make(chan domain.StreamEvent, eventBuffer)

	go func() {
		defer close(ch)

		send(ctx, ch, domain.TextEvent("Analyzing images..."))

		userPrompt := prompt.Lookahead(userGoal, len(imagePaths), tradeScope, constraints)

		var full strings.Builder
		err := s.llm.StreamImageAnalysis(ctx, imagePaths, userPrompt, prompt.LookaheadSystem, lookaheadMaxTokens, func(chunk string) {
			full.WriteString(chunk)
			send(ctx, ch, domain.TextEvent(chunk))
		})
		if err != nil {
			s.logger.Error("lookahead stream failed", zap.Error(err))
			send(ctx, ch, domain.ErrorEvent(err.Error()))
			return
		}

		if full.Len() == 0 {
			send(ctx, ch, domain.ErrorEvent("No response from vision API"))
			return
		}

		result := parse.Schedule(full.String())
		if !result.Success {
			s.logger.Warn("schedule reply was not structured JSON",
				zap.Int("reply_len", full.Len()))
			send(ctx, ch, domain.StreamEvent{
				Type:       domain.EventError,
				Message:    result.Err,
				RawPreview: rawPreview(result.Raw, 500),
			})
			return
		}

		send(ctx, ch, domain.StreamEvent{
			Type:         domain.EventComplete,
			Confidence:   llm.Confidence(full.String()),
			ScheduleData: result.Data,
		})
	}()

	return ch
}
