// Package service implements the five assistant tasks on top of the model
// gateway. Every task returns a channel of domain.StreamEvent values; the
// channel carries zero or more text/progress events followed by exactly one
// terminal event (complete or error), then closes.
package service

import (
	"context"

	"github.com/hardhat-ai/hardhat/internal/domain"
)

// Streamer is the model gateway surface the services need. Satisfied by
// *llm.Client.
type Streamer interface {
	StreamCompletion(ctx context.Context, prompt, systemPrompt string, maxTokens int64, emit func(string)) error
	StreamImageAnalysis(ctx context.Context, imagePaths []string, prompt, systemPrompt string, maxTokens int64, emit func(string)) error
}

// eventBuffer keeps producers from blocking on slow SSE writers.
const eventBuffer = 100

// send delivers ev unless the request context is already gone.
func send(ctx context.Context, ch chan<- domain.StreamEvent, ev domain.StreamEvent) bool {
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// rawPreview returns at most n bytes of a model reply for error frames,
// backing up to a rune boundary.
func rawPreview(raw string, n int) string {
	if len(raw) <= n {
		return raw
	}
	for n > 0 && raw[n]&0xC0 == 0x80 {
		n--
	}
	return raw[:n]
}
