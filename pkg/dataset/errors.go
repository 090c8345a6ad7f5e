package dataset

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrInvalidParams is returned when scale parameters make the dataset
	// unsatisfiable (for example products without any category to reference).
	ErrInvalidParams = errors.New("invalid dataset parameters")

	// ErrConstraint is returned when an insert violates a declared
	// referential or uniqueness constraint. Duplicate link pairs are the one
	// expected exception and never surface as this error.
	ErrConstraint = errors.New("constraint violation")

	// ErrNoRuns is returned when the run ledger holds no records.
	ErrNoRuns = errors.New("no seeding runs recorded")
)

// ParamError describes a single invalid scale parameter.
type ParamError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ParamError) Error() string {
	return fmt.Sprintf("parameter %s: %s", e.Field, e.Message)
}

// Unwrap makes every ParamError match ErrInvalidParams.
func (e *ParamError) Unwrap() error {
	return ErrInvalidParams
}

// StageError records which pipeline stage an error surfaced in.
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}

// integrity constraint violation class in the PostgreSQL error code table
const pgIntegrityClass = "23"

// classifyError maps PostgreSQL integrity errors onto ErrConstraint so
// callers can distinguish data bugs from connectivity failures.
func classifyError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 && pgErr.Code[:2] == pgIntegrityClass {
		return fmt.Errorf("%w: %s", ErrConstraint, pgErr.Message)
	}
	return err
}
