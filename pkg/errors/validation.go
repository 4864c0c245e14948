package errors

import (
	"strings"
	"unicode"
)

// maxFileNameLength bounds a single export file name, extension excluded.
const maxFileNameLength = 250

// ValidateFileName validates an export file name derived from a layer label.
// It ensures the name is a plain basename so an export can never escape the
// output directory.
//
// Validation rules:
//   - Empty names are allowed (an unlabeled layer exports as ".svg")
//   - Maximum length of 250 characters
//   - No control characters or null bytes
//   - No path separators (/ or \)
//   - Not "." or ".."
func ValidateFileName(name string) error {
	if len(name) > maxFileNameLength {
		return New(ErrCodeInvalidPath, "file name too long (max %d characters): %q", maxFileNameLength, name)
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "file name contains invalid control characters: %q", name)
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "file name cannot contain path separators: %q", name)
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidPath, "file name cannot be %q", name)
	}

	return nil
}

// ValidateOutputDir validates the destination directory option.
func ValidateOutputDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return New(ErrCodeInvalidOption, "output directory cannot be empty")
	}
	if strings.ContainsRune(dir, '\x00') {
		return New(ErrCodeInvalidOption, "output directory contains a null byte")
	}
	return nil
}
