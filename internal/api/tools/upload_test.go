package tools

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePDFUpload(t *testing.T) {
	ok := &multipart.FileHeader{Filename: "contract.pdf", Size: 1024}
	assert.NoError(t, validatePDFUpload(ok))

	upper := &multipart.FileHeader{Filename: "CONTRACT.PDF", Size: 1024}
	assert.NoError(t, validatePDFUpload(upper))

	wrongExt := &multipart.FileHeader{Filename: "contract.docx", Size: 1024}
	err := validatePDFUpload(wrongExt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a PDF")

	tooBig := &multipart.FileHeader{Filename: "contract.pdf", Size: 26 * 1024 * 1024}
	err = validatePDFUpload(tooBig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum (25 MB)")
}

func TestValidatePDFUpload_PathTraversal(t *testing.T) {
	for _, name := range []string{
		"../../etc/passwd.pdf",
		"..\\secret.pdf",
		"dir/doc.pdf",
		"",
	} {
		fh := &multipart.FileHeader{Filename: name, Size: 10}
		assert.Error(t, validatePDFUpload(fh), "filename %q", name)
	}
}

func TestValidateImageUpload(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.gif", "e.webp"} {
		fh := &multipart.FileHeader{Filename: name, Size: 1024}
		assert.NoError(t, validateImageUpload(fh), "filename %q", name)
	}

	wrongExt := &multipart.FileHeader{Filename: "scan.tiff", Size: 1024}
	err := validateImageUpload(wrongExt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Image must be one of")

	tooBig := &multipart.FileHeader{Filename: "site.jpg", Size: 11 * 1024 * 1024}
	err = validateImageUpload(tooBig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum (10 MB)")

	traversal := &multipart.FileHeader{Filename: "../site.jpg", Size: 1024}
	assert.Error(t, validateImageUpload(traversal))
}
