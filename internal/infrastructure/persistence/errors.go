package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mrtoldo/backend/internal/domain/shared"
)

// PostgreSQL SQLSTATE codes surfaced as domain errors
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// ErrMissingReference is returned when a write points at a row that does not exist
var ErrMissingReference = shared.InvalidInput("Referenced record does not exist")

// translateWriteError maps constraint violations to domain errors.
// Services check references first; this covers rows removed concurrently.
func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return shared.ErrAlreadyExists
	case pgForeignKeyViolation:
		return ErrMissingReference
	default:
		return err
	}
}
