// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/hex"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/trustregistry/internal/errors"
)

const (
	// MaxPrincipalLength bounds principal identifiers accepted over the API.
	MaxPrincipalLength = 255
	// MaxLabelLength bounds attribute labels.
	MaxLabelLength = 255
	// MaxReferenceLength bounds opaque content references, keys and identifiers.
	MaxReferenceLength = 4096
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Hash32 validates a 32-byte hash written as 64 hex characters with an optional 0x prefix.
var Hash32 = validation.NewStringRuleWithError(
	func(s string) bool {
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		if len(s) != 64 {
			return false
		}
		_, err := hex.DecodeString(s)
		return err == nil
	},
	validation.NewError("validation_hash32", "must be a 32-byte hex encoded hash"),
)

// Principal bounds the length of a principal without otherwise interpreting it.
var Principal = validation.RuneLength(0, MaxPrincipalLength)

// Label bounds the length of an attribute label.
var Label = validation.RuneLength(0, MaxLabelLength)

// Reference bounds the length of an opaque reference.
var Reference = validation.RuneLength(0, MaxReferenceLength)

// EachPrincipal applies Principal to every element of a string slice.
var EachPrincipal = validation.Each(Principal)
