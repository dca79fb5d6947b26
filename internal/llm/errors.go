package llm

import (
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

// ErrorKind classifies an upstream failure for retry decisions.
type ErrorKind int

const (
	// KindTransport covers network failures and anything else non-HTTP.
	KindTransport ErrorKind = iota
	// KindRateLimited is an upstream 429.
	KindRateLimited
	// KindServer is an upstream 5xx.
	KindServer
	// KindClient is any other upstream 4xx; never retried.
	KindClient
)

// UpstreamError is the terminal error surfaced after retries are exhausted
// (or immediately, for client errors).
type UpstreamError struct {
	Kind ErrorKind
	Err  error
}

func (e *UpstreamError) Error() string {
	switch e.Kind {
	case KindRateLimited:
		return "rate limit exceeded, please try again later"
	case KindServer:
		return "model API server error, please try again later"
	case KindClient:
		return fmt.Sprintf("model API error: %v", e.Err)
	default:
		return fmt.Sprintf("error communicating with model API: %v", e.Err)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Classify maps an error from the Anthropic SDK onto an ErrorKind.
func Classify(err error) ErrorKind {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		switch {
		case apierr.StatusCode == 429:
			return KindRateLimited
		case apierr.StatusCode >= 500:
			return KindServer
		default:
			return KindClient
		}
	}
	return KindTransport
}
