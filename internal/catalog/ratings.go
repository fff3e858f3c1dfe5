// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"math"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/validate"
)

// Rating average bounds, inclusive.
const (
	MinAverage = 1.0
	MaxAverage = 5.0
)

// MaxCount is the largest count or publication year the INTEGER columns hold.
const MaxCount int64 = math.MaxInt32

// ValidateRatings checks a rating payload and returns the stored aggregate.
//
// Rules run in order and the first failure wins:
//  1. all seven fields present ([apperr.CodeMissingField])
//  2. average within [MinAverage, MaxAverage] ([apperr.CodeOutOfRangeAvg])
//  3. every count non-negative ([apperr.CodeNegativeCount])
//  4. every count at most [MaxCount] ([apperr.CodeRange])
func ValidateRatings(input *RatingsInput) (Ratings, error) {
	if input == nil {
		return Ratings{}, apperr.Invalid(apperr.CodeMissingField, "ratings is required")
	}

	counts := []struct {
		field string
		value *int64
	}{
		{"count", input.Count},
		{"rating_1", input.Rating1},
		{"rating_2", input.Rating2},
		{"rating_3", input.Rating3},
		{"rating_4", input.Rating4},
		{"rating_5", input.Rating5},
	}

	if !validate.IsNumberProvided(input.Average) {
		return Ratings{}, apperr.Invalid(apperr.CodeMissingField, "ratings.average is required")
	}
	for _, count := range counts {
		if count.value == nil {
			return Ratings{}, apperr.Invalid(apperr.CodeMissingField, "ratings."+count.field+" is required")
		}
	}

	if *input.Average < MinAverage || *input.Average > MaxAverage {
		return Ratings{}, apperr.Invalid(apperr.CodeOutOfRangeAvg, "ratings.average must be between 1 and 5")
	}

	for _, count := range counts {
		if *count.value < 0 {
			return Ratings{}, apperr.Invalid(apperr.CodeNegativeCount, "ratings."+count.field+" must not be negative")
		}
	}

	for _, count := range counts {
		if *count.value > MaxCount {
			return Ratings{}, apperr.Invalid(apperr.CodeRange, "ratings."+count.field+" must be at most 2147483647")
		}
	}

	return Ratings{
		Average: *input.Average,
		Count:   *input.Count,
		Rating1: *input.Rating1,
		Rating2: *input.Rating2,
		Rating3: *input.Rating3,
		Rating4: *input.Rating4,
		Rating5: *input.Rating5,
	}, nil
}
