package errors

import (
	"strings"
	"unicode"
)

// ValidateAssetPath validates an asset file path before reads or writes.
// It prevents path traversal through URI fields embedded in documents and
// ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No parent-directory traversal sequences
func ValidateAssetPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > 500 {
		return New(ErrCodeInvalidPath, "path too long (max 500 characters)")
	}

	for _, r := range path {
		if r == 0 || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path contains parent-directory traversal")
	}

	return nil
}

// ValidateBufferURI validates a buffer or image URI read from a document.
// Data URIs are always allowed; relative file URIs must pass the same
// traversal checks as asset paths so a hostile document cannot escape its
// own directory.
func ValidateBufferURI(uri string) error {
	if uri == "" {
		return nil // absent URI means GLB-internal data
	}
	if strings.HasPrefix(uri, "data:") {
		return nil
	}
	if strings.Contains(uri, "://") {
		return New(ErrCodeInvalidPath, "remote buffer URIs are not supported: %q", uri)
	}
	return ValidateAssetPath(uri)
}
