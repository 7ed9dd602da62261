// Package session persists the signed-in user's tokens and a few small
// preferences in a local sqlite database, so a restart of the client does not
// end the session.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/rashedul-dev/Qourio-client/internal/client/session/migrations"
	"github.com/rashedul-dev/Qourio-client/internal/dbx"
)

const (
	keyAccessToken     = "access_token"
	keyRefreshToken    = "refresh_token"
	keyRememberedEmail = "remembered_email"
)

// Store is a small key-value store over sqlite. It satisfies api.TokenStore.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the session database at dsn and applies
// pending migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate session db: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(ctx context.Context, q dbx.DBTX, key string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(ctx context.Context, q dbx.DBTX, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func (s *Store) AccessToken(ctx context.Context) (string, error) {
	return s.get(ctx, s.db, keyAccessToken)
}

func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	return s.get(ctx, s.db, keyRefreshToken)
}

// SetTokens stores the token pair atomically.
func (s *Store) SetTokens(ctx context.Context, access, refresh string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.set(ctx, tx, keyAccessToken, access); err != nil {
			return err
		}
		return s.set(ctx, tx, keyRefreshToken, refresh)
	})
}

// Clear drops the token pair but keeps preferences such as the remembered
// email.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM session WHERE key IN (?, ?)`, keyAccessToken, keyRefreshToken)
	if err != nil {
		return fmt.Errorf("failed to clear session tokens: %w", err)
	}
	return nil
}

func (s *Store) RememberedEmail(ctx context.Context) (string, error) {
	return s.get(ctx, s.db, keyRememberedEmail)
}

func (s *Store) SetRememberedEmail(ctx context.Context, email string) error {
	return s.set(ctx, s.db, keyRememberedEmail, email)
}

// AccessTokenExpiresWithin reports whether the stored access token expires
// within d. The token is decoded without signature verification, the client
// does not hold the signing key. Missing token or missing exp claim count as
// expired.
func (s *Store) AccessTokenExpiresWithin(ctx context.Context, d time.Duration) (bool, error) {
	tok, err := s.AccessToken(ctx)
	if err != nil {
		return false, err
	}
	if tok == "" {
		return true, nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return true, nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true, nil
	}
	return time.Until(exp.Time) < d, nil
}
