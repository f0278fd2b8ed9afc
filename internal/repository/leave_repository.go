package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hr-service/internal/domain"
)

// LeaveWithProfile joins a leave request with the requesting
// employee's profile details for the admin listing.
type LeaveWithProfile struct {
	domain.LeaveRequest
	EmployeeName *string
	EmployeeID   *string
	Department   *string
}

// LeaveRepository defines persistence access for leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, leave *domain.LeaveRequest) error
	FindByID(ctx context.Context, id string) (*domain.LeaveRequest, bool, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.LeaveRequest, error)
	ListAll(ctx context.Context, status *domain.LeaveStatus) ([]LeaveWithProfile, error)
	ListApprovedInRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.LeaveRequest, error)
	// UpdateStatus moves a pending request to its decision and reports
	// whether a row was updated; already-decided rows are left alone.
	UpdateStatus(ctx context.Context, id string, status domain.LeaveStatus, decidedAt time.Time) (bool, error)
}

type leaveRepository struct {
	pool *pgxpool.Pool
}

// NewLeaveRepository returns a Postgres-backed implementation.
func NewLeaveRepository(pool *pgxpool.Pool) LeaveRepository {
	return &leaveRepository{pool: pool}
}

func (r *leaveRepository) Create(ctx context.Context, leave *domain.LeaveRequest) error {
	const query = `
        INSERT INTO leave_requests (id, account_id, leave_type, from_date, to_date, days, reason, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at`

	q := querierFrom(ctx, r.pool)
	if err := q.QueryRow(ctx, query,
		leave.ID,
		leave.AccountID,
		leave.Type,
		leave.FromDate,
		leave.ToDate,
		leave.Days,
		leave.Reason,
		leave.Status,
	).Scan(&leave.CreatedAt, &leave.UpdatedAt); err != nil {
		return translateError(err)
	}
	return nil
}

func (r *leaveRepository) FindByID(ctx context.Context, id string) (*domain.LeaveRequest, bool, error) {
	const query = `
        SELECT id, account_id, leave_type, from_date, to_date, days, reason, status, created_at, updated_at
        FROM leave_requests WHERE id=$1`

	q := querierFrom(ctx, r.pool)
	leave, err := scanLeave(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return leave, true, nil
}

func (r *leaveRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.LeaveRequest, error) {
	const query = `
        SELECT id, account_id, leave_type, from_date, to_date, days, reason, status, created_at, updated_at
        FROM leave_requests WHERE account_id=$1
        ORDER BY created_at DESC`

	q := querierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeaves(rows)
}

func (r *leaveRepository) ListAll(ctx context.Context, status *domain.LeaveStatus) ([]LeaveWithProfile, error) {
	query := `
        SELECT l.id, l.account_id, l.leave_type, l.from_date, l.to_date, l.days, l.reason, l.status,
               l.created_at, l.updated_at, p.name, p.employee_id, p.department
        FROM leave_requests l
        LEFT JOIN employee_profiles p ON p.account_id = l.account_id`

	args := []any{}
	if status != nil {
		query += " WHERE l.status=$1"
		args = append(args, *status)
	}
	query += " ORDER BY l.created_at DESC"

	q := querierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []LeaveWithProfile
	for rows.Next() {
		var item LeaveWithProfile
		if err := rows.Scan(
			&item.ID,
			&item.AccountID,
			&item.Type,
			&item.FromDate,
			&item.ToDate,
			&item.Days,
			&item.Reason,
			&item.Status,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.EmployeeName,
			&item.EmployeeID,
			&item.Department,
		); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

func (r *leaveRepository) ListApprovedInRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.LeaveRequest, error) {
	const query = `
        SELECT id, account_id, leave_type, from_date, to_date, days, reason, status, created_at, updated_at
        FROM leave_requests
        WHERE account_id=$1 AND status='approved' AND from_date >= $2 AND to_date <= $3`

	q := querierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeaves(rows)
}

func (r *leaveRepository) UpdateStatus(ctx context.Context, id string, status domain.LeaveStatus, decidedAt time.Time) (bool, error) {
	const query = `
        UPDATE leave_requests SET status=$1, updated_at=$2
        WHERE id=$3 AND status='pending'`

	q := querierFrom(ctx, r.pool)
	cmd, err := q.Exec(ctx, query, status, decidedAt, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func scanLeave(row pgx.Row) (*domain.LeaveRequest, error) {
	var leave domain.LeaveRequest
	if err := row.Scan(
		&leave.ID,
		&leave.AccountID,
		&leave.Type,
		&leave.FromDate,
		&leave.ToDate,
		&leave.Days,
		&leave.Reason,
		&leave.Status,
		&leave.CreatedAt,
		&leave.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &leave, nil
}

func collectLeaves(rows pgx.Rows) ([]domain.LeaveRequest, error) {
	var leaves []domain.LeaveRequest
	for rows.Next() {
		leave, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, *leave)
	}
	return leaves, rows.Err()
}
