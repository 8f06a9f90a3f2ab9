package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxNameLength is the longest molecule or library entry name accepted.
const MaxNameLength = 256

// ValidateName validates a molecule or library entry name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No leading or trailing whitespace
//   - Maximum length of 256 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidInput, "name too long (max %d characters)", MaxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}

	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidInput, "name has leading or trailing whitespace")
	}

	return nil
}

// ValidateSpacing checks that a spacing parameter is a positive, finite number.
func ValidateSpacing(label string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidOptions, "%s must be finite", label)
	}
	if v <= 0 {
		return New(ErrCodeInvalidOptions, "%s must be positive, got %g", label, v)
	}
	return nil
}

// ValidateLength checks that a sequence length lies within [0, max].
// A max of zero disables the upper bound.
func ValidateLength(n, max int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "length cannot be negative")
	}
	if max > 0 && n > max {
		return New(ErrCodeInvalidInput, "sequence too long (%d bases, max %d)", n, max)
	}
	return nil
}
