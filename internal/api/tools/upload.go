package tools

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/hardhat-ai/hardhat/internal/pdf"
)

// maxImageSize is the upload ceiling for jobsite photos. Oversized images
// are rejected here, before anything touches disk; recompression to fit the
// model API happens later and is not the client's concern.
const maxImageSize = 10 * 1024 * 1024

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// validatePDFUpload checks size, extension and filename of an uploaded PDF
// before it is written anywhere.
func validatePDFUpload(fh *multipart.FileHeader) error {
	if fh.Size > pdf.MaxSize {
		return fmt.Errorf("File size (%.2f MB) exceeds maximum (%.0f MB)",
			float64(fh.Size)/(1024*1024), float64(pdf.MaxSize)/(1024*1024))
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		return fmt.Errorf("File must be a PDF")
	}
	return checkFilename(fh.Filename)
}

// validateImageUpload checks size, extension and filename of an uploaded
// photo.
func validateImageUpload(fh *multipart.FileHeader) error {
	if fh.Size > maxImageSize {
		return fmt.Errorf("Image size (%.2f MB) exceeds maximum (%.0f MB)",
			float64(fh.Size)/(1024*1024), float64(maxImageSize)/(1024*1024))
	}
	name := strings.ToLower(fh.Filename)
	ok := false
	for _, ext := range imageExtensions {
		if strings.HasSuffix(name, ext) {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("Image must be one of: %s", strings.Join(imageExtensions, ", "))
	}
	return checkFilename(fh.Filename)
}

// checkFilename rejects path traversal attempts. Uploads are stored under
// generated names, but a hostile filename is still grounds for refusal.
func checkFilename(name string) error {
	if name == "" || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("Invalid file name")
	}
	return nil
}
