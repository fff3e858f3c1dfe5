// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package auth owns account registration and credential verification.
//
// # Architecture
//
// The catalog never sees passwords. It only relies on [middleware.Authenticate]
// having verified a bearer token issued by [Service.Login]; [Service.Verify]
// is the single place where a username/password pair is checked.
package auth

import (
	"time"
)

// Account is a registered API client.
//
// # Rules
//   - Username is unique.
//   - Email is unique and validated.
//   - PasswordHash is generated via Bcrypt exclusively by [Service].
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
}

// AccountRef is the identity returned by a successful credential check.
type AccountRef struct {
	ID       string
	Username string
}

// Global field names for validation
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Credential length rules.
const (
	minUsernameLen = 3
	maxUsernameLen = 64
	minPasswordLen = 8
)
