// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/sec"
	"github.com/taibuivan/bookshelf/internal/platform/validate"
	"github.com/taibuivan/bookshelf/pkg/uuidv7"
)

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given account.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - timeToLive: The duration before the token expires.
	GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, error)
}

// Service implements account registration and login.
type Service struct {
	accountRepository AccountRepository
	tokenProvider     TokenProvider
	tokenTTL          time.Duration
	logger            *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repo AccountRepository, tokens TokenProvider, tokenTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: repo,
		tokenProvider:     tokens,
		tokenTTL:          tokenTTL,
		logger:            logger,
	}
}

// RegisterInput holds the data required to enroll a new client.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register validates, hashes, and persists a brand new account.
//
// # Returns
//   - A pointer to the newly created [*Account].
//   - Returns [apperr.Conflict] if email or username already exists.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Account, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	// ── 1. Shape Checks ───────────────────────────────────────────────────

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, minUsernameLen).
		MaxLen(FieldUsername, input.Username, maxUsernameLen).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, minPasswordLen).
		Custom(FieldPassword, len(input.Password) > sec.MaxPasswordBytes, "must be at most 72 bytes")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Uniqueness Checks ──────────────────────────────────────────────

	// The unique indexes still guard concurrent registrations; these checks
	// only produce a clearer message.
	if _, err := service.accountRepository.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken")
	} else if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	if _, err := service.accountRepository.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	} else if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	accountID, err := uuidv7.New()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	account := &Account{
		ID:           accountID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	if err := service.accountRepository.Create(ctx, account); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "account_registered", slog.String("account_id", account.ID))
	return account, nil
}

// Verify checks a username/password pair.
//
// Unknown usernames and wrong passwords produce the same
// [apperr.Unauthorized] error to prevent username enumeration.
func (service *Service) Verify(ctx context.Context, username, password string) (*AccountRef, error) {
	account, err := service.accountRepository.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, account.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return &AccountRef{ID: account.ID, Username: account.Username}, nil
}

// Account returns the account a verified token was issued to.
func (service *Service) Account(ctx context.Context, id string) (*Account, error) {
	if id == "" {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return service.accountRepository.FindByID(ctx, id)
}

// LoginResult is an issued access token and the account it belongs to.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	ID          string `json:"id"`
}

// Login verifies credentials and issues an access token.
func (service *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperr.ValidationError("username and password are required")
	}

	ref, err := service.Verify(ctx, username, password)
	if err != nil {
		return nil, err
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(ref.ID, ref.Username, service.tokenTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_token_generation_failed: %w", err))
	}

	service.logger.InfoContext(ctx, "account_logged_in", slog.String("account_id", ref.ID))
	return &LoginResult{AccessToken: accessToken, ID: ref.ID}, nil
}
