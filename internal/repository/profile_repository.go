package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hr-service/internal/domain"
)

// ProfileRepository defines persistence access for employee profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.EmployeeProfile) error
	FindByAccountID(ctx context.Context, accountID string) (*domain.EmployeeProfile, bool, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.EmployeeProfile) error {
	const query = `
        INSERT INTO employee_profiles (account_id, name, email, department, designation, phone, employee_id, gender)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at`

	q := querierFrom(ctx, r.pool)
	if err := q.QueryRow(ctx, query,
		profile.AccountID,
		profile.Name,
		profile.Email,
		profile.Department,
		profile.Designation,
		profile.Phone,
		profile.EmployeeID,
		profile.Gender,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt); err != nil {
		return translateError(err)
	}
	return nil
}

func (r *profileRepository) FindByAccountID(ctx context.Context, accountID string) (*domain.EmployeeProfile, bool, error) {
	const query = `
        SELECT account_id, name, email, department, designation, phone, employee_id, gender, created_at, updated_at
        FROM employee_profiles WHERE account_id=$1`

	var profile domain.EmployeeProfile
	q := querierFrom(ctx, r.pool)
	err := q.QueryRow(ctx, query, accountID).Scan(
		&profile.AccountID,
		&profile.Name,
		&profile.Email,
		&profile.Department,
		&profile.Designation,
		&profile.Phone,
		&profile.EmployeeID,
		&profile.Gender,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &profile, true, nil
}
