// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/books?sslmode=disable": "pgx5://u:p@db:5432/books?sslmode=disable",
		"postgresql://db/books":                        "pgx5://db/books",
		"pgx5://db/books":                              "pgx5://db/books",
		"host=db dbname=books":                         "host=db dbname=books",
	}

	for input, want := range tests {
		assert.Equal(t, want, pgx5DSN(input), input)
	}
}

func TestRunUp_MissingDirectory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := RunUp(Options{DSN: "postgres://localhost:1/books", Path: t.TempDir() + "/absent"}, logger)
	assert.ErrorContains(t, err, "migration: failed to initialize")
}
