package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate reports a uniqueness-constraint violation. Repositories map
// postgres error code 23505 onto it so the service layer never sees raw
// driver errors for expected conflicts.
var ErrDuplicate = errors.New("duplicate record")

// ErrDuplicateEmail is the email-specific variant for the users table, which
// carries unique indexes on both username and email. The violated constraint's
// name tells the two apart.
var ErrDuplicateEmail = errors.New("duplicate email")

const uniqueViolationCode = "23505"

func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicate
	}
	return err
}

// translateUserError is translateError with the email constraint split out.
func translateUserError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return ErrDuplicateEmail
		}
		return ErrDuplicate
	}
	return err
}
