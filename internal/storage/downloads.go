// Package storage delivers exported documents to the local filesystem.
// It is the stand-in for the browser download step: a rendered payload is
// written under the configured downloads directory with a suggested name.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Downloads writes exported files under a single base directory.
type Downloads struct {
	baseDir string
	logger  *zap.Logger
}

// NewDownloads creates a download target rooted at baseDir.
func NewDownloads(baseDir string, logger *zap.Logger) *Downloads {
	return &Downloads{
		baseDir: baseDir,
		logger:  logger,
	}
}

// Save writes data under the base directory using the suggested filename
// and returns the full path. The filename is sanitized so a hostile
// document name cannot escape the downloads directory.
func (d *Downloads) Save(filename string, data []byte) (string, error) {
	safeName := sanitizeFilename(filename)
	if safeName == "" {
		return "", fmt.Errorf("unusable filename %q", filename)
	}

	if err := os.MkdirAll(d.baseDir, 0755); err != nil {
		d.logger.Error("Failed to create downloads directory",
			zap.String("dir", d.baseDir),
			zap.Error(err))
		return "", fmt.Errorf("failed to create downloads directory: %w", err)
	}

	path := filepath.Join(d.baseDir, safeName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		d.logger.Error("Failed to write exported file",
			zap.String("path", path),
			zap.Error(err))
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	d.logger.Debug("Exported file saved",
		zap.String("path", path),
		zap.Int("size", len(data)))
	return path, nil
}

// sanitizeFilename strips path separators and traversal fragments,
// keeping only the base name.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return name
}
