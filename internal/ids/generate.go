// Package ids generates entity identifiers and resolves unique prefixes of
// them typed on the command line.
package ids

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a fresh random (version 4) UUID in its canonical lowercase form.
func New() string {
	return uuid.NewString()
}

// IsUUID reports whether value is a well-formed UUID.
func IsUUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}

// Normalize lowercases an ID for case-insensitive comparison.
func Normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
