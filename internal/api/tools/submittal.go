package tools

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hardhat-ai/hardhat/internal/pdf"
	"github.com/hardhat-ai/hardhat/internal/tempfile"
)

// CompareSubmittals streams a compliance comparison between a specification
// PDF and a product data PDF.
func (h *Handler) CompareSubmittals(c *gin.Context) {
	specFH, err := c.FormFile("spec_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "spec_file is required"})
		return
	}
	productFH, err := c.FormFile("product_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_file is required"})
		return
	}
	modelNumber := c.PostForm("model_number")

	if err := validatePDFUpload(specFH); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validatePDFUpload(productFH); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	specPath, err := tempfile.SaveUpload(specFH, "submittal_spec_", ".pdf")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer tempfile.Remove(specPath, h.logger)

	productPath, err := tempfile.SaveUpload(productFH, "submittal_product_", ".pdf")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer tempfile.Remove(productPath, h.logger)

	if v := pdf.Validate(specPath); !v.Valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid specification PDF: " + v.Err})
		return
	}
	if v := pdf.Validate(productPath); !v.Valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product data PDF: " + v.Err})
		return
	}

	specExtraction, err := pdf.Extract(specPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to extract text from specification PDF"})
		return
	}
	productExtraction, err := pdf.Extract(productPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to extract text from product data PDF"})
		return
	}

	if len(strings.TrimSpace(specExtraction.Text)) < 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Specification PDF appears to be empty or contains no extractable text"})
		return
	}
	if len(strings.TrimSpace(productExtraction.Text)) < 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product data PDF appears to be empty or contains no extractable text"})
		return
	}

	h.logger.Info("submittal comparison",
		zap.Int("spec_pages", specExtraction.TotalPages),
		zap.Int("product_pages", productExtraction.TotalPages),
	)

	h.streamEvents(c, h.submittal.CompareStream(
		c.Request.Context(),
		specExtraction.Text,
		productExtraction.Text,
		specExtraction.TotalPages,
		productExtraction.TotalPages,
		modelNumber,
	))
}
