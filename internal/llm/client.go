// Package llm wraps the Anthropic Messages API behind a streaming gateway
// with its own retry policy. One Client is built at process start and shared
// by every request handler.
package llm

import (
	"context"
	"errors"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/hardhat-ai/hardhat/internal/config"
)

const (
	maxAttempts = 3
	baseDelay   = 1 * time.Second
	maxDelay    = 60 * time.Second
)

// Client is the process-wide model gateway.
type Client struct {
	api    anthropic.Client
	model  anthropic.Model
	vision anthropic.Model
	logger *zap.Logger
}

// NewClient builds the gateway from configuration. SDK-level retries are
// disabled; the backoff policy lives in this package.
func NewClient(cfg config.AnthropicConfig, logger *zap.Logger) *Client {
	api := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	)
	return &Client{
		api:    api,
		model:  anthropic.Model(cfg.Model),
		vision: anthropic.Model(cfg.VisionModel),
		logger: logger,
	}
}

// StreamCompletion streams a text completion, invoking emit for every text
// fragment as it arrives. Fragments from a failed attempt may already have
// been emitted; the error reported is always the final attempt's.
func (c *Client) StreamCompletion(ctx context.Context, prompt, systemPrompt string, maxTokens int64, emit func(string)) error {
	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}
	return c.withRetry(ctx, func() error {
		return c.streamOnce(ctx, params, emit)
	})
}

// StreamImageAnalysis streams a vision completion over one or more images.
// Each image is normalized and base64-encoded before upload; an image that
// cannot be brought under the encoded-size ceiling fails the call without
// contacting the API.
func (c *Client) StreamImageAnalysis(ctx context.Context, imagePaths []string, prompt, systemPrompt string, maxTokens int64, emit func(string)) error {
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(imagePaths)+1)
	for _, path := range imagePaths {
		data, mediaType, err := EncodeImage(path)
		if err != nil {
			return err
		}
		blocks = append(blocks, anthropic.NewImageBlockBase64(mediaType, data))
	}
	blocks = append(blocks, anthropic.NewTextBlock(prompt))

	params := anthropic.MessageNewParams{
		Model:     c.vision,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
		},
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}
	return c.withRetry(ctx, func() error {
		return c.streamOnce(ctx, params, emit)
	})
}

func (c *Client) streamOnce(ctx context.Context, params anthropic.MessageNewParams, emit func(string)) error {
	stream := c.api.Messages.NewStreaming(ctx, params)
	for stream.Next() {
		event := stream.Current()
		switch ev := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch delta := ev.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				if delta.Text != "" {
					emit(delta.Text)
				}
			}
		}
	}
	return stream.Err()
}

// withRetry runs an attempt up to maxAttempts times. Waits follow
// delay * 2^attempt; a 429 additionally grows the carried delay (capped at
// maxDelay) so successive rate limits back off harder. Client errors and
// context cancellation abort immediately.
func (c *Client) withRetry(ctx context.Context, run func() error) error {
	delay := baseDelay
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := run()
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		lastErr = err

		kind := Classify(err)
		if kind == KindClient || attempt == maxAttempts-1 {
			break
		}

		wait := backoff(delay, attempt)
		if kind == KindRateLimited {
			delay = nextDelay(wait)
		}
		c.logger.Warn("model API call failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return &UpstreamError{Kind: Classify(lastErr), Err: lastErr}
}

// backoff is the wait before retrying attempt (0-indexed).
func backoff(delay time.Duration, attempt int) time.Duration {
	return delay * time.Duration(1<<attempt)
}

// nextDelay grows the carried delay after a rate limit.
func nextDelay(wait time.Duration) time.Duration {
	d := wait * 2
	if d > maxDelay {
		d = maxDelay
	}
	return d
}
