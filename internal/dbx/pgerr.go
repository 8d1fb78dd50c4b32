package dbx

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/matcheat/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// ConstraintError reports a unique-constraint violation. It unwraps to
// common.ErrDuplicateKey; Constraint names the violated index, e.g.
// "users_email_key".
type ConstraintError struct {
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("duplicate key: %s", e.Constraint)
}

func (e *ConstraintError) Unwrap() error {
	return common.ErrDuplicateKey
}

// MapError translates driver errors into the common categories:
// sql.ErrNoRows becomes common.ErrNotFound, a unique violation becomes a
// *ConstraintError, and anything else is wrapped as "db error".
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &ConstraintError{Constraint: pgErr.ConstraintName, Err: err}
	}
	return fmt.Errorf("db error: %w", err)
}
