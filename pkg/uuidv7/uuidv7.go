// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 generates time-ordered identifiers for new rows.
//
// Account IDs use it so that inserts land at the right edge of the primary
// key index.
package uuidv7

import (
	"fmt"

	"github.com/google/uuid"
)

// New returns a UUIDv7 in canonical string form.
//
// It fails only when the OS random source does.
func New() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("uuidv7: %w", err)
	}
	return id.String(), nil
}
