package tools

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hardhat-ai/hardhat/internal/pdf"
	"github.com/hardhat-ai/hardhat/internal/tempfile"
)

// QueryDocument answers a question about an uploaded PDF, streaming the
// answer with page citations.
func (h *Handler) QueryDocument(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	question := strings.TrimSpace(c.PostForm("question"))
	if len(question) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question is required and must be at least 3 characters"})
		return
	}
	previousQuestion := c.PostForm("previous_question")
	previousAnswer := c.PostForm("previous_answer")

	if err := validatePDFUpload(fh); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	path, err := tempfile.SaveUpload(fh, "code_commander_", ".pdf")
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

	h.logger.Info("document query",
		zap.Int("pages", extraction.TotalPages),
		zap.Int("chars", len(extraction.Text)),
	)

	h.streamEvents(c, h.query.QueryStream(
		c.Request.Context(),
		question,
		extraction.Text,
		extraction.PageTexts,
		extraction.TotalPages,
		previousQuestion,
		previousAnswer,
	))
}
