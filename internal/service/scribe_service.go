package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hardhat-ai/hardhat/internal/domain"
	"github.com/hardhat-ai/hardhat/internal/llm"
	"github.com/hardhat-ai/hardhat/internal/prompt"
)

const scribeMaxTokens = 2048

// ScribeService turns rough field notes into professional emails.
type ScribeService struct {
	llm    Streamer
	logger *zap.Logger
}

// NewScribeService creates a new scribe service.
func NewScribeService(llm Streamer, logger *zap.Logger) *ScribeService {
	return &ScribeService{llm: llm, logger: logger}
}

// TransformStream streams the rewritten email. The terminal complete event
// carries a confidence rating for the full reply.
func (s *ScribeService) TransformStream(ctx context.Context, req domain.TransformRequest) <-chan domain.StreamEvent {
	ch := make(chan domain.StreamEvent, eventBuffer)

	go func() {
		defer close(ch)

		var full strings.Builder
		err := s.llm.StreamCompletion(ctx, prompt.Scribe(req), prompt.ScribeSystem(req.Tone), scribeMaxTokens, func(chunk string) {
			full.WriteString(chunk)
			send(ctx, ch, domain.TextEvent(chunk))
		})
		if err != nil {
			s.logger.Error("site scribe stream failed", zap.Error(err))
			send(ctx, ch, domain.ErrorEvent(err.Error()))
			return
		}

		send(ctx, ch, domain.StreamEvent{
			Type:       domain.EventComplete,
			Confidence: llm.Confidence(full.String()),
		})
	}()

	return ch
}
