package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// uploadExtensions lists the file types the ingest layer understands.
var uploadExtensions = map[string]bool{
	".csv":     true,
	".geojson": true,
	".json":    true,
}

// ValidateUploadFilename validates a client-supplied filename for safety.
// It ensures the filename is a simple basename with a supported extension.
func ValidateUploadFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidInput, "filename cannot be empty")
	}

	if len(filename) > 256 {
		return New(ErrCodeInvalidInput, "filename too long (max 256 characters)")
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "filename contains invalid control characters")
		}
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidInput, "filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidInput, "filename cannot be a hidden file")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !uploadExtensions[ext] {
		return New(ErrCodeInvalidFormat, "file must be CSV or GeoJSON, got %q", ext)
	}

	return nil
}

// ValidatePath validates a relative output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// planIDRegex matches canonical lowercase UUID strings.
var planIDRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidatePlanID validates a stored plan identifier before it reaches a
// storage backend (file names, database keys).
func ValidatePlanID(id string) error {
	if !planIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid plan id: %q", id)
	}
	return nil
}
