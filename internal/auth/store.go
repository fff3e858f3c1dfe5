// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// AccountRepository defines the data access contract for accounts.
//
// # Implementations
//
// The canonical implementation is PostgreSQL ([PostgresAccountRepository]).
type AccountRepository interface {
	// FindByID returns the account with the given UUID.
	//
	// Returns [apperr.NotFound] if no such account exists.
	FindByID(ctx context.Context, id string) (*Account, error)

	// FindByUsername returns the account with the given username.
	//
	// Returns [apperr.NotFound] if the username is available.
	FindByUsername(ctx context.Context, username string) (*Account, error)

	// FindByEmail returns the account with the given email.
	//
	// Returns [apperr.NotFound] if no account is registered with this email.
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// Create persists a brand-new account.
	//
	// Returns [apperr.Conflict] if a unique constraint (email/username) fails.
	Create(ctx context.Context, account *Account) error
}
