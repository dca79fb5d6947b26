package tools

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hardhat-ai/hardhat/internal/pdf"
	"github.com/hardhat-ai/hardhat/internal/tempfile"
)

// AnalyzeContract streams a risk analysis of an uploaded contract PDF.
func (h *Handler) AnalyzeContract(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if err := validatePDFUpload(fh); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	path, err := tempfile.SaveUpload(fh, "contract_hawk_", ".pdf")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer tempfile.Remove(path, h.logger)

	if v := pdf.Validate(path); !v.Valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": v.Err})
		return
	}

	extraction, err := pdf.Extract(path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to extract text from PDF"})
		return
	}
	if len(strings.TrimSpace(extraction.Text)) < 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PDF appears to be empty or contains no extractable text"})
		return
	}

	h.logger.Info("contract analysis",
		zap.Int("pages", extraction.TotalPages),
		zap.Int("chars", len(extraction.Text)),
	)

	h.streamEvents(c, h.risk.AnalyzeStream(c.Request.Context(), extraction.Text, extraction.TotalPages))
}
