// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/validate"
)

func strPtr(s string) *string    { return &s }
func numPtr(f float64) *float64 { return &f }

/*
TestIsStringProvided covers the presence predicate for strings.
*/
func TestIsStringProvided(t *testing.T) {
	assert.True(t, validate.IsStringProvided(strPtr("Dune")))
	assert.False(t, validate.IsStringProvided(strPtr("")))
	assert.False(t, validate.IsStringProvided(strPtr("   ")))
	assert.False(t, validate.IsStringProvided(nil))
}

/*
TestIsNumberProvided covers the presence predicate for numbers.
*/
func TestIsNumberProvided(t *testing.T) {
	assert.True(t, validate.IsNumberProvided(numPtr(0)))
	assert.True(t, validate.IsNumberProvided(numPtr(-3.5)))
	assert.False(t, validate.IsNumberProvided(nil))
	assert.False(t, validate.IsNumberProvided(numPtr(math.NaN())))
	assert.False(t, validate.IsNumberProvided(numPtr(math.Inf(1))))
}

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "title", "Dune", false},
		{"empty_string", "title", "", true},
		{"whitespace_only", "title", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeValidation, ae.Code)
				assert.Equal(t, tt.field+" is required", ae.Message)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "reader@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "reader@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "tai").
		MinLen("username", "tai", 3).
		MaxLen("username", "tai", 10).
		Email("email", "tai@bookshelf.app").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_FirstFailureWins verifies that only the first failure is
reported while every failure is still counted.
*/
func TestValidator_Chain_FirstFailureWins(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "").
		MinLen("password", "a", 5).
		Email("email", "not-an-email").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	assert.Equal(t, "username is required", ae.Message)
	assert.Equal(t, 3, v.Count())
}
