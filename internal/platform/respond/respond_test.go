// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/respond"
	"github.com/taibuivan/bookshelf/pkg/pagination"
)

func TestEnvelopes(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Result(recorder, map[string]int{"isbn13": 1})
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"result":{"isbn13":1}}`, recorder.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))

	recorder = httptest.NewRecorder()
	respond.Created(recorder, "x")
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"result":"x"}`, recorder.Body.String())

	recorder = httptest.NewRecorder()
	respond.Results(recorder, []int{})
	assert.JSONEq(t, `{"results":[]}`, recorder.Body.String())

	recorder = httptest.NewRecorder()
	respond.Page(recorder, []int{1}, pagination.Meta{TotalRecords: 20, Limit: 16, Offset: 0, NextPage: 16})
	assert.JSONEq(t, `{"results":[1],"pagination":{"totalRecords":20,"limit":16,"offset":0,"nextPage":16}}`, recorder.Body.String())
}

func TestError(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", apperr.ValidationError("title is required"), http.StatusBadRequest, `{"message":"title is required"}`},
		{"not found", apperr.NotFound("Book"), http.StatusNotFound, `{"message":"Book not found"}`},
		{"wrapped", errors.Join(errors.New("ctx"), apperr.NotFound("Book")), http.StatusNotFound, `{"message":"Book not found"}`},
		{"unclassified", errors.New("pq: relation missing"), http.StatusInternalServerError, `{"message":"server error - contact support"}`},
		{"integrity", apperr.Integrity(errors.New("two rows")), http.StatusInternalServerError, `{"message":"server error - contact support"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respond.Error(recorder, request, tt.err)
			assert.Equal(t, tt.status, recorder.Code)
			assert.JSONEq(t, tt.body, recorder.Body.String())
		})
	}
}
