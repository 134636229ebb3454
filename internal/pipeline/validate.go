package pipeline

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ValidateAudioFile checks that path exists and carries one of the allowed
// extensions (compared case-insensitively, e.g. ".wav"). It touches nothing.
func ValidateAudioFile(path string, extensions []string) error {
	if _, err := os.Stat(path); err != nil {
		return newFileNotFound(path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" || !slices.ContainsFunc(extensions, func(allowed string) bool {
		return strings.EqualFold(allowed, ext)
	}) {
		return newUnsupportedFormat(path, extensions)
	}
	return nil
}
