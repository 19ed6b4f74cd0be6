package errors

import (
	"strings"
	"unicode"
)

// ValidateFactorID validates a factor identifier for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No leading or trailing whitespace
//   - Maximum length of 128 characters
//
// Display codes and descriptions are free text and are not validated here.
func ValidateFactorID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidFactor, "factor id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidFactor, "factor id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFactor, "factor id contains control characters: %q", id)
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidFactor, "factor id has leading or trailing whitespace: %q", id)
	}

	return nil
}

// ValidateStudyName validates a study name for storage.
// Empty names are allowed (the store assigns a fallback); non-empty names
// must be printable and reasonably short.
func ValidateStudyName(name string) error {
	if name == "" {
		return nil
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidStudy, "study name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidStudy, "study name contains control characters")
		}
	}

	return nil
}
