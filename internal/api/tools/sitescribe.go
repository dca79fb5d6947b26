package tools

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hardhat-ai/hardhat/internal/domain"
)

// TransformNotes streams a professional email rewritten from raw field
// notes.
func (h *Handler) TransformNotes(c *gin.Context) {
	var req domain.TransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(strings.TrimSpace(req.Text)) < 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text input is required and must be at least 5 characters"})
		return
	}

	h.streamEvents(c, h.scribe.TransformStream(c.Request.Context(), req))
}
