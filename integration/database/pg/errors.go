package pg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrFailedToParseConfig is returned for an invalid connection string.
	ErrFailedToParseConfig = errors.New("failed to parse postgres config")
	// ErrNotReady is returned when the database cannot be reached after
	// all retry attempts.
	ErrNotReady = errors.New("postgres is not ready")
	// ErrConcurrentLogin is returned when a racing login hit the partial
	// unique index on current sessions. Retryable by the caller.
	ErrConcurrentLogin = errors.New("concurrent login detected, retry")
)

// PostgreSQL error codes used for classification.
const (
	uniqueViolationCode = "23505"
)

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
