package validation

import (
	"fmt"
	"unicode/utf8"

	dErrors "unibus/pkg/domain-errors"
)

// MaxBodySize is the maximum allowed request body size (64 KB).
const MaxBodySize = 64 * 1024

// Field length limits shared by request models and storage schemas.
const (
	MaxNameLength     = 200
	MaxEmailLength    = 255
	MaxCityLength     = 100
	MaxBusPlateLength = 20
)

// CheckStringLength validates that a string does not exceed the maximum length in characters.
func CheckStringLength(fieldName, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}

// CheckNonNegative validates that an integer field is zero or greater.
func CheckNonNegative(fieldName string, value int) error {
	if value < 0 {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must not be negative", fieldName))
	}
	return nil
}
