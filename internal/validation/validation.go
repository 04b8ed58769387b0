// Package validation checks paths and identifiers supplied on the command
// line or in configuration before they reach the filesystem or the database.
package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/FocuswithJustin/risale/core/errors"
)

// Limits on user-supplied input.
const (
	// MaxFileSize is the largest section file read into memory (64 MB).
	MaxFileSize = 64 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
	// MaxIDLength is the maximum allowed work or section ID length.
	MaxIDLength = 128
)

// ValidatePath rejects empty paths, overlong paths, and paths containing
// null bytes or control characters. field names the flag or setting in the
// returned error.
func ValidatePath(field, path string) error {
	if path == "" {
		return errors.NewValidation(field, "path cannot be empty")
	}
	if len(path) > MaxPathLength {
		return errors.NewValidation(field, fmt.Sprintf("path longer than %d bytes", MaxPathLength))
	}
	if strings.Contains(path, "\x00") {
		return errors.NewValidation(field, "null byte not allowed")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return errors.NewValidation(field, "control character not allowed")
		}
	}
	return nil
}

// ValidateID checks a work or section ID: lowercase ASCII letters, digits,
// and hyphens, starting with a letter.
func ValidateID(field, id string) error {
	if id == "" {
		return errors.NewValidation(field, "ID cannot be empty")
	}
	if len(id) > MaxIDLength {
		return errors.NewValidation(field, fmt.Sprintf("ID longer than %d bytes", MaxIDLength))
	}
	for i, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return &errors.ValidationError{Field: field, Value: id, Message: fmt.Sprintf("invalid character %q in ID", r)}
		}
	}
	return nil
}

// CheckFileSize rejects files larger than MaxFileSize.
func CheckFileSize(path string, size int64) error {
	if size > MaxFileSize {
		return &errors.ValidationError{
			Field:   "file",
			Value:   path,
			Message: fmt.Sprintf("%s is %d bytes, limit is %d", path, size, MaxFileSize),
		}
	}
	return nil
}
