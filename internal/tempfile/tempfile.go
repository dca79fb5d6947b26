// Package tempfile manages request-scoped files in the system temp
// directory. Nothing uploaded to this service survives the request that
// carried it; every path handed out here is removed before the handler
// returns.
package tempfile

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create returns a new empty file in the temp directory. The name embeds a
// per-request UUID so concurrent requests never touch each other's files.
func Create(prefix, suffix string) (string, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("%s%s%s", prefix, uuid.New().String(), suffix))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// SaveUpload copies an uploaded file into a fresh temp file and returns its
// path. The caller owns the path and must Remove it.
func SaveUpload(fh *multipart.FileHeader, prefix, suffix string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	path, err := Create(prefix, suffix)
	if err != nil {
		return "", err
	}

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		Remove(path, nil)
		return "", fmt.Errorf("failed to open temp file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		Remove(path, nil)
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	return path, nil
}

// Remove deletes a temp file, logging (not failing) on error. Safe to call
// on already-removed paths, so it can sit in a defer on every branch.
func Remove(path string, logger *zap.Logger) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		if logger != nil {
			logger.Warn("failed to remove temp file", zap.String("path", path), zap.Error(err))
		}
	}
}

// RemoveAll deletes a set of temp files.
func RemoveAll(paths []string, logger *zap.Logger) {
	for _, p := range paths {
		Remove(p, logger)
	}
}
