// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// Every response follows one of a few JSON envelopes:
//
//   - single resource:  { "result": ... }
//   - collection:       { "results": [...] }
//   - page:             { "results": [...], "pagination": {...} }
//   - error:            { "message": "..." }
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/ctxutil"
	"github.com/taibuivan/bookshelf/pkg/pagination"
)

// ResultEnvelope is the JSON envelope for single-resource responses.
type ResultEnvelope struct {
	Result any `json:"result"`
}

// ResultsEnvelope is the JSON envelope for multi-resource responses.
type ResultsEnvelope struct {
	Results any `json:"results"`
}

// PageEnvelope is the JSON envelope for paginated list responses.
type PageEnvelope struct {
	Results    any             `json:"results"`
	Pagination pagination.Meta `json:"pagination"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Message string `json:"message"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// Result writes a 200 OK response wrapping a single resource.
func Result(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, ResultEnvelope{Result: data})
}

// Created writes a 201 Created response wrapping a single resource.
func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, ResultEnvelope{Result: data})
}

// Results writes a 200 OK response wrapping a collection.
func Results(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, ResultsEnvelope{Results: data})
}

// Page writes a 200 OK response with a page of results and its metadata block.
func Page(writer http.ResponseWriter, data any, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, PageEnvelope{Results: data, Pagination: metadata})
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.Logger(request.Context())

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.RequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{Message: appError.Message})
}
