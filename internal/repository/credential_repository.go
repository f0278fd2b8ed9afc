package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hr-service/internal/domain"
)

// CredentialRepository defines persistence access for login credentials.
// Lookups report absence explicitly instead of leaking a storage
// sentinel into the services.
type CredentialRepository interface {
	Create(ctx context.Context, cred *domain.Credential) error
	FindByUsername(ctx context.Context, username string) (*domain.Credential, bool, error)
}

type credentialRepository struct {
	pool *pgxpool.Pool
}

// NewCredentialRepository returns a Postgres-backed implementation.
func NewCredentialRepository(pool *pgxpool.Pool) CredentialRepository {
	return &credentialRepository{pool: pool}
}

func (r *credentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	const query = `
        INSERT INTO auth_credentials (account_id, username, password_hash)
        VALUES ($1, $2, $3)
        RETURNING created_at`

	q := querierFrom(ctx, r.pool)
	if err := q.QueryRow(ctx, query,
		cred.AccountID,
		cred.Username,
		cred.PasswordHash,
	).Scan(&cred.CreatedAt); err != nil {
		return translateError(err)
	}
	return nil
}

func (r *credentialRepository) FindByUsername(ctx context.Context, username string) (*domain.Credential, bool, error) {
	const query = `
        SELECT account_id, username, password_hash, created_at
        FROM auth_credentials WHERE username=$1`

	var cred domain.Credential
	q := querierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, query, username).Scan(
		&cred.AccountID,
		&cred.Username,
		&cred.PasswordHash,
		&cred.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &cred, true, nil
}
