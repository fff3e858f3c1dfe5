// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/bookshelf/internal/platform/database/schema"
	"github.com/taibuivan/bookshelf/internal/platform/dberr"
	"github.com/taibuivan/bookshelf/internal/platform/postgres"
)

const resourceAccount = "Account"

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	db postgres.DB
}

// NewAccountRepository creates a new PostgreSQL implementation of [AccountRepository].
func NewAccountRepository(db postgres.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

// Create persists a new account and fills in its creation time.
func (repository *PostgresAccountRepository) Create(ctx context.Context, account *Account) error {
	accounts := schema.Accounts
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`,
		accounts.Table, accounts.ID, accounts.Username, accounts.Email, accounts.PasswordHash,
		accounts.CreatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		account.ID,
		account.Username,
		account.Email,
		account.PasswordHash,
	).Scan(&account.CreatedAt)

	return dberr.Wrap(err, resourceAccount, "create_account")
}

// FindByID retrieves an account by its primary key.
func (repository *PostgresAccountRepository) FindByID(ctx context.Context, id string) (*Account, error) {
	return repository.findBy(ctx, schema.Accounts.ID, id, "find_account_by_id")
}

// FindByUsername retrieves an account by its unique username.
func (repository *PostgresAccountRepository) FindByUsername(ctx context.Context, username string) (*Account, error) {
	return repository.findBy(ctx, schema.Accounts.Username, username, "find_account_by_username")
}

// FindByEmail retrieves an account by its unique email address.
func (repository *PostgresAccountRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return repository.findBy(ctx, schema.Accounts.Email, email, "find_account_by_email")
}

func (repository *PostgresAccountRepository) findBy(ctx context.Context, column, value, action string) (*Account, error) {
	accounts := schema.Accounts
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(accounts.Columns(), ", "), accounts.Table, column,
	)

	account := &Account{}
	err := repository.db.QueryRow(ctx, query, value).Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, resourceAccount, action)
	}

	return account, nil
}
