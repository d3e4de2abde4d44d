package pg

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/sessionguard/core/anomaly"
)

const flagColumns = `id, user_id, session_id, prev_country, prev_country_code,
	new_country, new_country_code, reviewed, action_taken, created_at, reviewed_at`

// FlagStore implements anomaly.Store on PostgreSQL.
type FlagStore struct {
	pool *pgxpool.Pool
}

var _ anomaly.Store = (*FlagStore)(nil)

// NewFlagStore creates an anomaly flag store over the given pool.
func NewFlagStore(pool *pgxpool.Pool) *FlagStore {
	return &FlagStore{pool: pool}
}

func (s *FlagStore) Insert(ctx context.Context, flag *anomaly.Flag) error {
	var reviewedAt *time.Time
	if !flag.ReviewedAt.IsZero() {
		reviewedAt = &flag.ReviewedAt
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO anomaly_flags (`+flagColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		flag.ID, flag.UserID, flag.SessionID,
		flag.PrevCountry, flag.PrevCountryCode,
		flag.NewCountry, flag.NewCountryCode,
		flag.Reviewed, flag.ActionTaken, flag.CreatedAt, reviewedAt,
	)
	return err
}

func (s *FlagStore) GetByID(ctx context.Context, id uuid.UUID) (*anomaly.Flag, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+flagColumns+` FROM anomaly_flags WHERE id = $1`,
		id,
	)
	return scanFlag(row)
}

// ListPending returns unreviewed flags, oldest first, so reviewers work
// through the queue in arrival order.
func (s *FlagStore) ListPending(ctx context.Context) ([]anomaly.Flag, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+flagColumns+` FROM anomaly_flags WHERE NOT reviewed
		 ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flags []anomaly.Flag
	for rows.Next() {
		flag, err := scanFlag(rows)
		if err != nil {
			return nil, err
		}
		flags = append(flags, *flag)
	}
	return flags, rows.Err()
}

func (s *FlagStore) MarkReviewed(ctx context.Context, id uuid.UUID, actionTaken string, at time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE anomaly_flags
		 SET reviewed = TRUE, action_taken = $2, reviewed_at = $3
		 WHERE id = $1`,
		id, actionTaken, at,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return anomaly.ErrNotFound
	}
	return nil
}

func scanFlag(row pgx.Row) (*anomaly.Flag, error) {
	var (
		flag       anomaly.Flag
		reviewedAt *time.Time
	)
	err := row.Scan(
		&flag.ID, &flag.UserID, &flag.SessionID,
		&flag.PrevCountry, &flag.PrevCountryCode,
		&flag.NewCountry, &flag.NewCountryCode,
		&flag.Reviewed, &flag.ActionTaken, &flag.CreatedAt, &reviewedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, anomaly.ErrNotFound
		}
		return nil, err
	}
	if reviewedAt != nil {
		flag.ReviewedAt = *reviewedAt
	}
	return &flag, nil
}
