package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hr-service/internal/domain"
)

// AttendanceRepository defines persistence access for day-scoped
// attendance rows. The (account_id, day) unique constraint is the
// serialization point for concurrent clock-ins: exactly one insert
// wins, the loser surfaces ErrDuplicate.
type AttendanceRepository interface {
	Insert(ctx context.Context, record *domain.AttendanceRecord) error
	FindByAccountAndDay(ctx context.Context, accountID string, day time.Time) (*domain.AttendanceRecord, bool, error)
	// SetClockOut stamps clock_out on the record if it is still open
	// and reports whether a row was updated. The clock_out IS NULL
	// guard keeps a committed clock-out immutable under races.
	SetClockOut(ctx context.Context, id string, clockOut time.Time) (bool, error)
	ListRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.AttendanceRecord, error)
}

type attendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository returns a Postgres-backed implementation.
func NewAttendanceRepository(pool *pgxpool.Pool) AttendanceRepository {
	return &attendanceRepository{pool: pool}
}

func (r *attendanceRepository) Insert(ctx context.Context, record *domain.AttendanceRecord) error {
	const query = `
        INSERT INTO attendance (account_id, day, clock_in, clock_out, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	q := querierFrom(ctx, r.pool)
	if err := q.QueryRow(ctx, query,
		record.AccountID,
		record.Day,
		record.ClockIn,
		record.ClockOut,
		record.Status,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt); err != nil {
		return translateError(err)
	}
	return nil
}

func (r *attendanceRepository) FindByAccountAndDay(ctx context.Context, accountID string, day time.Time) (*domain.AttendanceRecord, bool, error) {
	const query = `
        SELECT id, account_id, day, clock_in, clock_out, status, created_at, updated_at
        FROM attendance WHERE account_id=$1 AND day=$2`

	q := querierFrom(ctx, r.pool)
	record, err := scanAttendance(q.QueryRow(ctx, query, accountID, day))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return record, true, nil
}

func (r *attendanceRepository) SetClockOut(ctx context.Context, id string, clockOut time.Time) (bool, error) {
	const query = `
        UPDATE attendance SET clock_out=$1, updated_at=$1
        WHERE id=$2 AND clock_out IS NULL`

	q := querierFrom(ctx, r.pool)
	cmd, err := q.Exec(ctx, query, clockOut, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *attendanceRepository) ListRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.AttendanceRecord, error) {
	const query = `
        SELECT id, account_id, day, clock_in, clock_out, status, created_at, updated_at
        FROM attendance
        WHERE account_id=$1 AND day >= $2 AND day <= $3
        ORDER BY day`

	q := querierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.AttendanceRecord
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func scanAttendance(row pgx.Row) (*domain.AttendanceRecord, error) {
	var record domain.AttendanceRecord
	if err := row.Scan(
		&record.ID,
		&record.AccountID,
		&record.Day,
		&record.ClockIn,
		&record.ClockOut,
		&record.Status,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &record, nil
}
