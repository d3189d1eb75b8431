package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileTypeImage   = 6
	FileTypeUnknown = 99

	MaxImageUploadBytes = 5 * 1024 * 1024
)

func DetectFileTypeFromExt(filename string) int {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return FileTypeImage
	default:
		return FileTypeUnknown
	}
}

// IsImageUpload checks the declared content type first, then the extension.
func IsImageUpload(filename, contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if strings.HasPrefix(ct, "image/") {
		return true
	}
	if ct != "" && ct != "application/octet-stream" {
		return false
	}
	return DetectFileTypeFromExt(filename) == FileTypeImage
}
