package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when an insert hits a unique constraint.
// Services map it to the domain conflict appropriate for the table:
// (account_id, day) on attendance, username on credentials. A duplicate
// token hash has no business meaning and stays a system error.
var ErrDuplicate = errors.New("duplicate row")

const uniqueViolationCode = "23505"

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicate
	}
	return err
}
