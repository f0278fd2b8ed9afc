package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hr-service/internal/domain"
)

// TokenRepository manages stored opaque-token hashes. Rows are never
// deleted here; revocation flips a flag and expiry is evaluated by the
// caller, so a leaked hash table stays an audit trail.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.Token) error
	// FindActiveByHash returns the non-revoked token of the given type
	// matching the hash. Expiry is not filtered here; the service
	// compares against its own clock.
	FindActiveByHash(ctx context.Context, hash string, tokenType domain.TokenType) (*domain.Token, bool, error)
	// Revoke flips revoked on the matching non-revoked token and
	// reports whether a row was updated.
	Revoke(ctx context.Context, hash string, tokenType domain.TokenType) (bool, error)
}

type tokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository returns a Postgres-backed implementation.
func NewTokenRepository(pool *pgxpool.Pool) TokenRepository {
	return &tokenRepository{pool: pool}
}

func (r *tokenRepository) Create(ctx context.Context, token *domain.Token) error {
	const query = `
        INSERT INTO token_services (account_id, token_hash, token_type, revoked, expires_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING token_id, created_at`

	q := querierFrom(ctx, r.pool)
	if err := q.QueryRow(ctx, query,
		token.AccountID,
		token.TokenHash,
		token.Type,
		token.Revoked,
		token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt); err != nil {
		return translateError(err)
	}
	return nil
}

func (r *tokenRepository) FindActiveByHash(ctx context.Context, hash string, tokenType domain.TokenType) (*domain.Token, bool, error) {
	const query = `
        SELECT token_id, account_id, token_hash, token_type, revoked, expires_at, created_at
        FROM token_services
        WHERE token_hash=$1 AND token_type=$2 AND NOT revoked`

	var token domain.Token
	q := querierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, query, hash, tokenType).Scan(
		&token.ID,
		&token.AccountID,
		&token.TokenHash,
		&token.Type,
		&token.Revoked,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &token, true, nil
}

func (r *tokenRepository) Revoke(ctx context.Context, hash string, tokenType domain.TokenType) (bool, error) {
	const query = `
        UPDATE token_services SET revoked=TRUE
        WHERE token_hash=$1 AND token_type=$2 AND NOT revoked`

	q := querierFrom(ctx, r.pool)
	cmd, err := q.Exec(ctx, query, hash, tokenType)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
