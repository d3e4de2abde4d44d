package pg

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/sessionguard/core/session"
	"github.com/dmitrymomot/sessionguard/pkg/useragent"
)

const sessionColumns = `id, token, user_id, device_name, device_type, browser, os,
	ip_address, location_country, location_country_code, location_city,
	is_current, last_active, created_at`

// SessionStore implements session.Store on PostgreSQL.
type SessionStore struct {
	pool *pgxpool.Pool
}

var _ session.Store = (*SessionStore)(nil)

// NewSessionStore creates a session store over the given pool.
func NewSessionStore(pool *pgxpool.Pool) *SessionStore {
	return &SessionStore{pool: pool}
}

// Create demotes the user's current rows and inserts sess as current in one
// transaction. The partial unique index on (user_id) WHERE is_current
// backstops the invariant: a racing writer gets ErrConcurrentLogin and
// should retry.
func (s *SessionStore) Create(ctx context.Context, sess *session.Session) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx,
		`UPDATE sessions SET is_current = FALSE WHERE user_id = $1 AND is_current`,
		sess.UserID,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO sessions (`+sessionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		sess.ID, sess.Token, sess.UserID,
		sess.DeviceName, string(sess.DeviceType), sess.Browser, sess.OS,
		sess.IPAddress, sess.LocationCountry, sess.LocationCountryCode, sess.LocationCity,
		true, sess.LastActive, sess.CreatedAt,
	); err != nil {
		if IsUniqueViolation(err) {
			return errors.Join(ErrConcurrentLogin, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if IsUniqueViolation(err) {
			return errors.Join(ErrConcurrentLogin, err)
		}
		return err
	}

	sess.IsCurrent = true
	return nil
}

func (s *SessionStore) GetCurrent(ctx context.Context, userID uuid.UUID) (*session.Session, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE user_id = $1 AND is_current`,
		userID,
	)
	return scanSession(row)
}

func (s *SessionStore) GetByID(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`,
		id,
	)
	return scanSession(row)
}

func (s *SessionStore) List(ctx context.Context, userID uuid.UUID) ([]session.Session, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE user_id = $1
		 ORDER BY created_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []session.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

func (s *SessionStore) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE sessions SET last_active = $2 WHERE id = $1`,
		id, at,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return session.ErrNotFound
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return session.ErrNotFound
	}
	return nil
}

func (s *SessionStore) DeleteOthers(ctx context.Context, userID uuid.UUID, token string) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM sessions WHERE user_id = $1 AND token <> $2`,
		userID, token,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *SessionStore) DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// scanSession maps one row onto a session.Session, translating the
// no-rows case to session.ErrNotFound.
func scanSession(row pgx.Row) (*session.Session, error) {
	var (
		sess       session.Session
		deviceType string
	)
	err := row.Scan(
		&sess.ID, &sess.Token, &sess.UserID,
		&sess.DeviceName, &deviceType, &sess.Browser, &sess.OS,
		&sess.IPAddress, &sess.LocationCountry, &sess.LocationCountryCode, &sess.LocationCity,
		&sess.IsCurrent, &sess.LastActive, &sess.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrNotFound
		}
		return nil, err
	}
	sess.DeviceType = useragent.DeviceType(deviceType)
	return &sess, nil
}
