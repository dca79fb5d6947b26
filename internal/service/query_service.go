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

const queryMaxTokens = 2048

// QueryService answers questions about an uploaded document with page
// citations.
type QueryService struct {
	llm    Streamer
	logger *zap.Logger
}

// NewQueryService creates a new query service.
func NewQueryService(llm Streamer, logger *zap.Logger) *QueryService {
	return &QueryService{llm: llm, logger: logger}
}

// QueryStream streams the answer to a question about documentText. The
// terminal complete event carries citations extracted from the answer and
// whether the answer was found in the document at all.
func (s *QueryService) QueryStream(ctx context.Context, question, documentText string, pageTexts map[int]string, totalPages int, previousQuestion, previousAnswer string) <-chan domain.StreamEvent {
	ch := make(chan domain.StreamEvent, eventBuffer)

	go func() {
		defer close(ch)

		userPrompt := prompt.Query(question, documentText, totalPages, previousQuestion, previousAnswer)

		var full strings.Builder
		err := s.llm.StreamCompletion(ctx, userPrompt, prompt.QuerySystem, queryMaxTokens, func(chunk string) {
			full.WriteString(chunk)
			send(ctx, ch, domain.TextEvent(chunk))
		})
		if err != nil {
			s.logger.Error("document query stream failed", zap.Error(err))
			send(ctx, ch, domain.ErrorEvent(err.Error()))
			return
		}

		answer := full.String()
		found := !strings.Contains(strings.ToLower(answer), "not found in document")

		send(ctx, ch, domain.StreamEvent{
			Type:            domain.EventComplete,
			Confidence:      llm.Confidence(answer),
			Citations:       parse.Citations(answer, pageTexts, question),
			FoundInDocument: domain.Bool(found),
		})
	}()

	return ch
}
