package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hr-service/internal/domain"
)

// AccountRepository defines persistence access for accounts and their
// admin grants.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	FindByID(ctx context.Context, id string) (*domain.Account, bool, error)
	// IsActiveAdmin reports whether the account exists, is active, has
	// the admin role and carries an admin grant.
	IsActiveAdmin(ctx context.Context, id string) (bool, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (bool, error)
	CreateAdminGrant(ctx context.Context, grant *domain.AdminGrant) error
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (id, role, active, name)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at`

	q := querierFrom(ctx, r.pool)
	if err := q.QueryRow(ctx, query,
		account.ID,
		account.Role,
		account.Active,
		account.Name,
	).Scan(&account.CreatedAt); err != nil {
		return translateError(err)
	}
	return nil
}

func (r *accountRepository) FindByID(ctx context.Context, id string) (*domain.Account, bool, error) {
	const query = `
        SELECT id, role, active, name, created_at
        FROM accounts WHERE id=$1`

	var account domain.Account
	q := querierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.Role,
		&account.Active,
		&account.Name,
		&account.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &account, true, nil
}

func (r *accountRepository) IsActiveAdmin(ctx context.Context, id string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1
            FROM accounts a
            JOIN admin_grants g ON g.account_id = a.id
            WHERE a.id=$1 AND a.role='admin' AND a.active
        )`

	var isAdmin bool
	q := querierFrom(ctx, r.pool)
	if err := q.QueryRow(ctx, query, id).Scan(&isAdmin); err != nil {
		return false, err
	}
	return isAdmin, nil
}

func (r *accountRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (bool, error) {
	const query = `UPDATE accounts SET role=$1 WHERE id=$2`

	q := querierFrom(ctx, r.pool)
	cmd, err := q.Exec(ctx, query, role, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *accountRepository) CreateAdminGrant(ctx context.Context, grant *domain.AdminGrant) error {
	const query = `
        INSERT INTO admin_grants (account_id, permission_level, granted_by)
        VALUES ($1, $2, $3)
        RETURNING created_at`

	q := querierFrom(ctx, r.pool)
	if err := q.QueryRow(ctx, query,
		grant.AccountID,
		grant.PermissionLevel,
		grant.GrantedBy,
	).Scan(&grant.CreatedAt); err != nil {
		return translateError(err)
	}
	return nil
}
