package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// problemNameRegex matches safe problem names: they become cache key
// components, output file basenames and job labels.
var problemNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateProblemName validates a user-supplied problem name.
//
// The validation rules are intentionally conservative, since names end
// up in file paths and cache keys:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateProblemName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "problem name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "problem name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "problem name contains control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "problem name contains path characters: %q", name)
	}

	if !problemNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid problem name: %q", name)
	}

	return nil
}
