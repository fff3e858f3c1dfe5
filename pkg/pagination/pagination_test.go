// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookshelf/pkg/pagination"
)

/*
TestResolve covers defaults and clamping for limit and offset.
*/
func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		rawLimit   string
		rawOffset  string
		wantLimit  int
		wantOffset int
	}{
		{"both_absent", "", "", 16, 0},
		{"zero_limit_negative_offset", "0", "-5", 16, 0},
		{"non_numeric", "ten", "abc", 16, 0},
		{"negative_limit", "-3", "4", 16, 4},
		{"zero_offset_is_valid", "10", "0", 10, 0},
		{"explicit_values", "25", "50", 25, 50},
		{"padded_values", " 8 ", " 2 ", 8, 2},
		{"float_is_rejected", "2.5", "1.5", 16, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := pagination.Resolve(tt.rawLimit, tt.rawOffset)
			assert.Equal(t, tt.wantLimit, params.Limit)
			assert.Equal(t, tt.wantOffset, params.Offset)
		})
	}
}

/*
TestNewMeta verifies the forward cursor is limit+offset and is never clamped.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(pagination.Params{Limit: 16, Offset: 0}, 40)
	assert.Equal(t, pagination.Meta{TotalRecords: 40, Limit: 16, Offset: 0, NextPage: 16}, meta)

	pastEnd := pagination.NewMeta(pagination.Params{Limit: 16, Offset: 100}, 40)
	assert.Equal(t, 116, pastEnd.NextPage)
	assert.Equal(t, 40, pastEnd.TotalRecords)
}

/*
TestNewMeta_Saturates keeps the cursor non-negative for huge offsets.
*/
func TestNewMeta_Saturates(t *testing.T) {
	params := pagination.Resolve("16", "9223372036854775807")
	assert.Equal(t, math.MaxInt, params.Offset)
	assert.Equal(t, math.MaxInt, pagination.NewMeta(params, 3).NextPage)

	edge := pagination.NewMeta(pagination.Params{Limit: 1, Offset: math.MaxInt - 1}, 0)
	assert.Equal(t, math.MaxInt, edge.NextPage)
}

/*
TestFromRequest reads the query string.
*/
func TestFromRequest(t *testing.T) {
	request := httptest.NewRequest("GET", "/api/v1/books?limit=5&offset=10", nil)
	assert.Equal(t, pagination.Params{Limit: 5, Offset: 10}, pagination.FromRequest(request))

	bare := httptest.NewRequest("GET", "/api/v1/books", nil)
	assert.Equal(t, pagination.Params{Limit: 16, Offset: 0}, pagination.FromRequest(bare))
}
