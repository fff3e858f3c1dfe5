// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	requestutil "github.com/taibuivan/bookshelf/internal/platform/request"
	"github.com/taibuivan/bookshelf/internal/platform/validate"
)

func TestDecodeJSON(t *testing.T) {
	var target struct {
		Title string `json:"title"`
	}

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Dune"}`))
	require.NoError(t, requestutil.DecodeJSON(httptest.NewRecorder(), request, &target))
	assert.Equal(t, "Dune", target.Title)

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
	assert.ErrorIs(t, requestutil.DecodeJSON(httptest.NewRecorder(), request, &target), validate.ErrInvalidJSON)

	oversized := `{"title":"` + strings.Repeat("a", 2<<20) + `"}`
	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(oversized))
	assert.ErrorIs(t, requestutil.DecodeJSON(httptest.NewRecorder(), request, &target), validate.ErrInvalidJSON)
}

// route runs fn inside a chi router so URL parameters are populated.
func route(t *testing.T, pattern, target string, fn func(*http.Request)) {
	t.Helper()
	called := false
	router := chi.NewRouter()
	router.Get(pattern, func(_ http.ResponseWriter, request *http.Request) {
		called = true
		fn(request)
	})
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	require.True(t, called)
}

func TestParam_Unescapes(t *testing.T) {
	route(t, "/title/{title}", "/title/The%20Hunger%20Games", func(request *http.Request) {
		assert.Equal(t, "The Hunger Games", requestutil.Param(request, "title"))
	})
	route(t, "/title/{title}", "/title/Dune", func(request *http.Request) {
		assert.Equal(t, "Dune", requestutil.Param(request, "title"))
	})
}

func TestInt64Param(t *testing.T) {
	route(t, "/isbn/{isbn}", "/isbn/9780439023480", func(request *http.Request) {
		value, err := requestutil.Int64Param(request, "isbn", "isbn13")
		require.NoError(t, err)
		assert.Equal(t, int64(9780439023480), value)
	})
	route(t, "/isbn/{isbn}", "/isbn/abc", func(request *http.Request) {
		_, err := requestutil.Int64Param(request, "isbn", "isbn13")
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		assert.EqualError(t, err, "isbn13 must be an integer")
	})
}
