// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/validate"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - writer: http.ResponseWriter (used to enforce the body size cap)
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.

chi leaves percent-encoded path segments raw when the router matches on the
escaped path, so the value is unescaped here.
*/
func Param(request *http.Request, name string) string {
	raw := chi.URLParam(request, name)
	if !strings.Contains(raw, "%") {
		return raw
	}
	if unescaped, err := url.PathUnescape(raw); err == nil {
		return unescaped
	}
	return raw
}

/*
Int64Param parses a named URL parameter as a base-10 integer.

Returns:
  - int64: The parsed value
  - error: apperr.ValidationError naming the field when the parameter is not an integer
*/
func Int64Param(request *http.Request, name, field string) (int64, error) {
	value, err := strconv.ParseInt(Param(request, name), 10, 64)
	if err != nil {
		return 0, apperr.ValidationError(field + " must be an integer")
	}
	return value, nil
}
