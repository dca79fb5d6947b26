// Package tools exposes the five assistant endpoints. Each endpoint
// validates its upload synchronously, then streams domain.StreamEvent
// frames to the client as data-only SSE.
package tools

import (
	"encoding/json"
	"io"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hardhat-ai/hardhat/internal/domain"
	"github.com/hardhat-ai/hardhat/internal/service"
)

// Handler handles tool API requests.
type Handler struct {
	scribe    *service.ScribeService
	query     *service.QueryService
	risk      *service.RiskService
	submittal *service.SubmittalService
	lookahead *service.LookaheadService
	logger    *zap.Logger
}

// NewHandler creates a new tools handler.
func NewHandler(
	scribe *service.ScribeService,
	query *service.QueryService,
	risk *service.RiskService,
	submittal *service.SubmittalService,
	lookahead *service.LookaheadService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		scribe:    scribe,
		query:     query,
		risk:      risk,
		submittal: submittal,
		lookahead: lookahead,
		logger:    logger,
	}
}

// RegisterRoutes registers tool routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/site-scribe/transform", h.TransformNotes)
	r.POST("/code-commander/query", h.QueryDocument)
	r.POST("/contract-hawk/analyze", h.AnalyzeContract)
	r.POST("/submittal-scrubber/compare", h.CompareSubmittals)
	r.POST("/lookahead-builder/generate", h.GenerateSchedule)
}

// streamEvents drains the event channel onto the wire as data-only SSE
// frames. Blocks until the channel closes or the client goes away.
func (h *Handler) streamEvents(c *gin.Context, events <-chan domain.StreamEvent) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		ev, ok := <-events
		if !ok {
			return false
		}
		data, err := json.Marshal(ev)
		if err != nil {
			h.logger.Error("failed to marshal stream event", zap.Error(err))
			return false
		}
		sse.Encode(w, sse.Event{Data: string(data)})
		return true
	})
}
