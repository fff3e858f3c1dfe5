// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides presence predicates and a chainable Validator
// that reports the first failed rule as a single [apperr.AppError].
//
// # Architecture
//
// This package is used in the service layer and by request decoders. It only
// checks shape (presence, type, length); business ranges live with the domain.
package validate

import (
	"fmt"
	"math"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// # Presence Predicates

// IsStringProvided reports whether v is a non-blank string.
func IsStringProvided(v *string) bool {
	return v != nil && strings.TrimSpace(*v) != ""
}

// IsNumberProvided reports whether v holds a finite number.
func IsNumberProvided(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// # Validator

// failure is a single failed rule.
type failure struct {
	field   string
	message string
}

// Validator records field-level failures via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	failures []failure
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("must be at least %d characters", min))
	}
	return v
}

// Email fails if the value is not a valid RFC 5322 email address.
func (v *Validator) Email(field, value string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "must be a valid email address")
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("publication", year < 0, "must not be negative")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a VALIDATION_ERROR [apperr.AppError] describing the first failed
// rule, or nil if all rules passed.
//
// The API contract carries one message per response, so later failures are
// only visible through [Validator.Count].
func (v *Validator) Err() error {
	if len(v.failures) == 0 {
		return nil
	}
	first := v.failures[0]
	return apperr.ValidationError(fmt.Sprintf("%s %s", first.field, first.message))
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.failures) > 0
}

// Count returns how many rules failed.
func (v *Validator) Count() int {
	return len(v.failures)
}

// add records a failure.
func (v *Validator) add(field, message string) {
	v.failures = append(v.failures, failure{field: field, message: message})
}
