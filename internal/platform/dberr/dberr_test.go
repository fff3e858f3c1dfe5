// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "Book", "insert"))

	notFound := apperr.As(dberr.Wrap(fmt.Errorf("scan: %w", pgx.ErrNoRows), "Book", "find"))
	require.NotNil(t, notFound)
	assert.Equal(t, http.StatusNotFound, notFound.HTTPStatus)
	assert.Equal(t, "Book not found", notFound.Message)

	duplicate := &pgconn.PgError{Code: pgerrcode.UniqueViolation, Detail: "Key (isbn13)=(1) already exists."}
	conflict := apperr.As(dberr.Wrap(duplicate, "Book", "insert"))
	require.NotNil(t, conflict)
	assert.Equal(t, apperr.CodeConflict, conflict.Code)
	assert.Equal(t, http.StatusBadRequest, conflict.HTTPStatus)
	assert.Equal(t, "Book already exists", conflict.Message)
	assert.ErrorIs(t, conflict, duplicate)

	boom := errors.New("connection reset")
	internal := apperr.As(dberr.Wrap(boom, "Book", "insert"))
	require.NotNil(t, internal)
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
	assert.ErrorIs(t, internal, boom)
	assert.NotContains(t, internal.Message, "connection reset")

	classified := apperr.ValidationError("title is required")
	assert.Same(t, classified, dberr.Wrap(classified, "Book", "insert"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.True(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: "XX000", Detail: "Key (author_name)=(x) already exists."}))
	assert.False(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
	assert.False(t, dberr.IsUniqueViolation(errors.New("plain")))
}
