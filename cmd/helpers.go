package cmd

import (
	"path/filepath"
	"strings"
)

// imageFormatFor picks the encoding from the output file extension, falling
// back to the configured format.
func imageFormatFor(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	default:
		return fallback
	}
}
