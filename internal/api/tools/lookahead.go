package tools

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hardhat-ai/hardhat/internal/tempfile"
)

// GenerateSchedule streams a 2-week lookahead schedule built from uploaded
// jobsite photos. Photos stay on disk until the vision call finishes.
func (h *Handler) GenerateSchedule(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userGoal := strings.TrimSpace(c.PostForm("user_goal"))
	if userGoal == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_goal is required - describe what you're trying to accomplish"})
		return
	}

	files := form.File["image_files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one photo must be provided"})
		return
	}

	tradeScope := c.PostForm("trade_scope")
	constraints := c.PostForm("constraints")

	for _, fh := range files {
		if err := validateImageUpload(fh); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var imagePaths []string
	defer func() { tempfile.RemoveAll(imagePaths, h.logger) }()

	for idx, fh := range files {
		path, err := tempfile.SaveUpload(fh, fmt.Sprintf("lookahead_image_%d_", idx), ".jpg")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Error saving image %d: %v", idx, err)})
			return
		}
		imagePaths = append(imagePaths, path)
	}

	h.logger.Info("lookahead generation",
		zap.Int("images", len(imagePaths)),
		zap.String("goal", userGoal),
	)

	h.streamEvents(c, h.lookahead.GenerateStream(
		c.Request.Context(),
		imagePaths,
		userGoal,
		tradeScope,
		constraints,
	))
}
