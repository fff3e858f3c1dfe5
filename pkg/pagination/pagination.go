// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for offset-paginated
// list endpoints.
//
// # Overview
//
// It resolves the raw "limit" and "offset" query parameters into safe values
// and builds the metadata block returned alongside a page, including a simple
// forward cursor (NextPage = Limit + Offset, saturated at math.MaxInt).
package pagination

import (
	"math"
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 16
	// DefaultOffset is the starting row.
	DefaultOffset = 0
)

// Params holds the resolved limit and offset.
type Params struct {
	Limit  int
	Offset int
}

// Meta is the pagination metadata included in API list responses.
//
// NextPage is not clamped to TotalRecords: a caller may walk past the end and
// receive an empty page together with a cursor beyond the dataset.
type Meta struct {
	TotalRecords int `json:"totalRecords"`
	Limit        int `json:"limit"`
	Offset       int `json:"offset"`
	NextPage     int `json:"nextPage"`
}

// Resolve converts raw query values into [Params].
//
// # Clamping
//
// The limit falls back to [DefaultLimit] when absent, non-numeric, or <= 0.
// The offset falls back to [DefaultOffset] when absent, non-numeric, or < 0;
// zero itself is a valid offset.
func Resolve(rawLimit, rawOffset string) Params {
	limit, ok := parseInt(rawLimit)
	if !ok || limit <= 0 {
		limit = DefaultLimit
	}

	offset, ok := parseInt(rawOffset)
	if !ok || offset < 0 {
		offset = DefaultOffset
	}

	return Params{Limit: limit, Offset: offset}
}

// FromRequest parses "limit" and "offset" query parameters from an HTTP request.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	return Resolve(query.Get("limit"), query.Get("offset"))
}

// NewMeta constructs pagination metadata for a response.
//
// total is a snapshot taken in a separate round trip from the page itself and
// may be stale relative to it.
func NewMeta(p Params, total int) Meta {
	return Meta{
		TotalRecords: total,
		Limit:        p.Limit,
		Offset:       p.Offset,
		NextPage:     nextPage(p),
	}
}

// nextPage is Limit+Offset, saturated at math.MaxInt instead of wrapping.
func nextPage(p Params) int {
	if p.Offset > math.MaxInt-p.Limit {
		return math.MaxInt
	}
	return p.Limit + p.Offset
}

// parseInt parses a base-10 integer, reporting false for blank or malformed input.
func parseInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}

	return n, true
}
