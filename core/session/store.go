package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store defines the persistence interface for session rows.
// Implementations must handle concurrent access safely.
type Store interface {
	// Create persists sess as the user's current session. Any existing
	// current rows for the user are demoted (IsCurrent=false) and the new
	// row inserted in one atomic step; two racing Create calls must never
	// leave two current rows for one user.
	Create(ctx context.Context, sess *Session) error

	// GetCurrent returns the user's current session, or ErrNotFound.
	GetCurrent(ctx context.Context, userID uuid.UUID) (*Session, error)

	// GetByID returns a session by its ID, or ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)

	// List returns all of the user's sessions, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]Session, error)

	// Touch updates LastActive on a row. Returns ErrNotFound for a
	// missing id.
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error

	// Delete removes one row. Returns ErrNotFound for a missing id;
	// deletion is final.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteOthers removes every row for the user except the one matching
	// token, returning the number of rows removed.
	DeleteOthers(ctx context.Context, userID uuid.UUID, token string) (int64, error)

	// DeleteAll removes every row for the user, returning the number of
	// rows removed.
	DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error)
}
