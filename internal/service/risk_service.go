package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hardhat-ai/hardhat/internal/domain"
	"github.com/hardhat-ai/hardhat/internal/llm"
	"github.com/hardhat-ai/hardhat/internal/parse"
	"github.com/hardhat-ai/hardhat/internal/prompt"
)

const riskMaxTokens = 3072

// riskProgressUpdates fire at absolute offsets from the start of the model
// call. Analysis usually outlasts the last one; stage 6 is always sent after
// streaming finishes.
var riskProgressUpdates = []struct {
	at      time.Duration
	stage   int
	message string
}{
	{1500 * time.Millisecond, 2, "Checking high-risk clauses (Severity 4)..."},
	{3 * time.Second, 3, "Scanning for medium-risk items (Severity 3)..."},
	{5 * time.Second, 4, "Reviewing standard clauses (Severity 1-2)..."},
	{7 * time.Second, 5, "Compiling risk analysis..."},
}

// RiskService scans contracts for dangerous clauses.
type RiskService struct {
	llm    Streamer
	logger *zap.Logger
}

// NewRiskService creates a new risk service.
func NewRiskService(llm Streamer, logger *zap.Logger) *RiskService {
	return &RiskService{llm: llm, logger: logger}
}

// AnalyzeStream streams the risk analysis of a contract, interleaving timed
// progress events with model fragments. The terminal complete event carries
// the parsed risk report.
func (s *RiskService) AnalyzeStream(ctx context.Context, documentText string, totalPages int) <-chan domain.StreamEvent {
	ch := make(chan domain.StreamEvent, eventBuffer)

	go func() {
		defer close(ch)

		send(ctx, ch, domain.ProgressEvent(1, "Extracting text from PDF..."))
		send(ctx, ch, domain.ProgressEvent(2, "Analyzing critical clauses (Severity 5)..."))

		userPrompt := prompt.Risk(documentText, totalPages)

		// Timed updates go through an intermediate channel and are drained
		// ahead of each fragment, so frame order on the wire is stable.
		progress := make(chan domain.StreamEvent, len(riskProgressUpdates))
		stop := make(chan struct{})
		go func() {
			start := time.Now()
			for _, u := range riskProgressUpdates {
				select {
				case <-time.After(time.Until(start.Add(u.at))):
				case <-stop:
					return
				}
				select {
				case progress <- domain.ProgressEvent(u.stage, u.message):
				case <-stop:
					return
				}
			}
		}()

		var full strings.Builder
		err := s.llm.StreamCompletion(ctx, userPrompt, prompt.RiskSystem, riskMaxTokens, func(chunk string) {
			drainProgress(ctx, ch, progress)
			full.WriteString(chunk)
			send(ctx, ch, domain.TextEvent(chunk))
		})
		close(stop)
		drainProgress(ctx, ch, progress)

		if err != nil {
			s.logger.Error("contract risk stream failed", zap.Error(err))
			send(ctx, ch, domain.ErrorEvent(err.Error()))
			return
		}

		send(ctx, ch, domain.ProgressEvent(6, "Compiling risk analysis..."))

		analysis := parse.RiskAnalysis(full.String())
		if !analysis.Success {
			s.logger.Warn("risk analysis reply was not structured JSON",
				zap.Int("reply_len", full.Len()))
		}

		send(ctx, ch, domain.StreamEvent{
			Type:             domain.EventComplete,
			Confidence:       llm.Confidence(full.String()),
			Risks:            analysis.Risks,
			OverallRiskLevel: analysis.OverallRiskLevel,
			Summary:          analysis.Summary,
			Success:          domain.Bool(analysis.Success),
		})
	}()

	return ch
}

// drainProgress forwards every queued progress event without blocking.
func drainProgress(ctx context.Context, ch chan<- domain.StreamEvent, progress <-chan domain.StreamEvent) {
	for {
		select {
		case ev := <-progress:
			send(ctx, ch, ev)
		default:
			return
		}
	}
}
