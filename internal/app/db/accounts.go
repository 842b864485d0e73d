package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gatherly/internal/app/identity"
)

const accountColumns = `id::text, email, display_name, photo_url, password_hash, coalesce(google_sub, '')`

// Accounts implements identity.AccountStore on PostgreSQL.
type Accounts struct {
	pool *pgxpool.Pool
}

// NewAccounts wraps pool.
func NewAccounts(pool *pgxpool.Pool) *Accounts {
	return &Accounts{pool: pool}
}

func scanAccount(row pgx.Row) (*identity.Account, error) {
	var a identity.Account
	err := row.Scan(&a.ID, &a.Email, &a.DisplayName, &a.PhotoURL, &a.PasswordHash, &a.GoogleSub)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, identity.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAccount inserts a password account.
func (s *Accounts) CreateAccount(ctx context.Context, email, displayName, passwordHash string) (*identity.Account, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO accounts (email, display_name, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING `+accountColumns,
		email, displayName, passwordHash,
	)

	account, err := scanAccount(row)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, identity.ErrEmailTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	return account, nil
}

// GetAccountByEmail looks an account up case-insensitively.
func (s *Accounts) GetAccountByEmail(ctx context.Context, email string) (*identity.Account, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE lower(email) = lower($1)`,
		email,
	)

	account, err := scanAccount(row)
	if err != nil && !errors.Is(err, identity.ErrAccountNotFound) {
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return account, err
}

// UpsertGoogleAccount links the Google subject to the account with the same email,
// or creates one. Existing display names and photos are kept.
func (s *Accounts) UpsertGoogleAccount(ctx context.Context, profile identity.GoogleProfile) (*identity.Account, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO accounts (email, display_name, photo_url, google_sub)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT ((lower(email))) DO UPDATE SET
		     google_sub   = EXCLUDED.google_sub,
		     display_name = CASE WHEN accounts.display_name = '' THEN EXCLUDED.display_name ELSE accounts.display_name END,
		     photo_url    = CASE WHEN accounts.photo_url = '' THEN EXCLUDED.photo_url ELSE accounts.photo_url END
		 RETURNING `+accountColumns,
		profile.Email, profile.DisplayName, profile.PhotoURL, profile.Subject,
	)

	account, err := scanAccount(row)
	if err != nil {
		return nil, fmt.Errorf("upsert google account: %w", err)
	}
	return account, nil
}

// TouchLastLogin stamps last_login_at.
func (s *Accounts) TouchLastLogin(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `UPDATE accounts SET last_login_at = now() WHERE id = $1::uuid`, id)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}
