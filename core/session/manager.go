package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sessionguard/core/anomaly"
	"github.com/dmitrymomot/sessionguard/pkg/geoip"
	"github.com/dmitrymomot/sessionguard/pkg/useragent"
)

// Validation result labels reported to the Recorder.
const (
	resultValid    = "valid"
	resultConflict = "conflict"
	resultMissing  = "missing"
)

// Termination scope labels reported to the Recorder.
const (
	scopeSingle = "single"
	scopeOthers = "others"
	scopeAll    = "all"
)

// Manager orchestrates session creation, validation, heartbeat, and
// termination while preserving the one-current-session-per-user invariant.
type Manager struct {
	store         Store
	resolver      Resolver
	flagger       Flagger
	log           *slog.Logger
	rec           Recorder
	touchInterval time.Duration
}

// NewManager creates a session manager over the given store. Geolocation and
// anomaly flagging are off until enabled via options.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		log:   slog.Default(),
		rec:   noopRecorder{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Validation is the outcome of validating a locally held token against the
// store's canonical current session. It is a normal result, not an error:
// the caller handles Valid=false by re-authenticating or, when Conflict is
// set, by surfacing the superseding device's descriptor.
type Validation struct {
	Valid bool
	// Conflict carries the current session when the presented token belongs
	// to a superseded one ("you are logged in elsewhere").
	Conflict *Session
}

// SessionInfo is a session row annotated for the device-list UI.
type SessionInfo struct {
	Session
	// Current reports whether this row matches the caller's own token.
	Current bool
}

// Create registers a new device-login for the user and returns the session
// whose Token the client must persist locally. The previous current session
// is demoted, not deleted. Not idempotent: repeated calls create additional
// historical rows, so callers should avoid blind retries.
//
// Geolocation failure never blocks creation; the row is inserted with an
// empty location snapshot.
func (m *Manager) Create(ctx context.Context, userID uuid.UUID, userAgent, ipAddress string) (Session, error) {
	device := useragent.Parse(userAgent)

	var loc *geoip.GeoLocation
	if m.resolver != nil && ipAddress != "" {
		loc = m.resolver.Lookup(ctx, ipAddress)
	}

	// Snapshot the outgoing current session before it is demoted; its
	// location feeds the anomaly comparison after the insert commits.
	prev, err := m.store.GetCurrent(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Session{}, errors.Join(ErrCreateSession, err)
	}

	sess, err := New(NewSessionParams{
		UserID:    userID,
		Device:    device,
		IPAddress: ipAddress,
		Location:  loc,
	})
	if err != nil {
		return Session{}, err
	}

	if err := m.store.Create(ctx, &sess); err != nil {
		return Session{}, errors.Join(ErrCreateSession, err)
	}
	m.rec.SessionCreated()

	m.flagIfSuspicious(ctx, prev, sess, loc)

	return sess, nil
}

// Validate checks a locally held token against the user's canonical current
// session. A match touches LastActive (throttled by the touch interval). A
// mismatch returns the current session as the conflict descriptor. Only
// store failures produce an error.
func (m *Manager) Validate(ctx context.Context, userID uuid.UUID, token string) (Validation, error) {
	current, err := m.store.GetCurrent(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			m.rec.SessionValidated(resultMissing)
			return Validation{}, nil
		}
		return Validation{}, errors.Join(ErrValidateSession, err)
	}

	if current.Token != token {
		m.rec.SessionValidated(resultConflict)
		conflict := *current
		return Validation{Conflict: &conflict}, nil
	}

	if m.touchInterval == 0 || time.Since(current.LastActive) >= m.touchInterval {
		if err := m.store.Touch(ctx, current.ID, time.Now()); err != nil && !errors.Is(err, ErrNotFound) {
			return Validation{}, errors.Join(ErrValidateSession, err)
		}
	}

	m.rec.SessionValidated(resultValid)
	return Validation{Valid: true}, nil
}

// ActiveSessions returns all of the user's session rows, newest first, each
// annotated with whether it matches the caller's locally held token.
func (m *Manager) ActiveSessions(ctx context.Context, userID uuid.UUID, localToken string) ([]SessionInfo, error) {
	sessions, err := m.store.List(ctx, userID)
	if err != nil {
		return nil, errors.Join(ErrListSessions, err)
	}

	infos := make([]SessionInfo, len(sessions))
	for i, sess := range sessions {
		infos[i] = SessionInfo{
			Session: sess,
			Current: localToken != "" && sess.Token == localToken,
		}
	}
	return infos, nil
}

// Terminate deletes one session row unconditionally. A missing id yields
// ErrNotFound as a failure result, never a panic; deletion is final.
func (m *Manager) Terminate(ctx context.Context, sessionID uuid.UUID) error {
	if err := m.store.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return errors.Join(ErrTerminateSession, err)
	}
	m.rec.SessionTerminated(scopeSingle)
	return nil
}

// TerminateOthers deletes every session row for the user except the one
// matching the caller's token ("log out other devices").
func (m *Manager) TerminateOthers(ctx context.Context, userID uuid.UUID, localToken string) error {
	deleted, err := m.store.DeleteOthers(ctx, userID, localToken)
	if err != nil {
		return errors.Join(ErrTerminateSession, err)
	}
	if deleted > 0 {
		m.rec.SessionTerminated(scopeOthers)
	}
	return nil
}

// TerminateAll deletes every session row for the user ("log out
// everywhere"). The caller is responsible for clearing its locally cached
// token afterwards; no token remains valid.
func (m *Manager) TerminateAll(ctx context.Context, userID uuid.UUID) error {
	deleted, err := m.store.DeleteAll(ctx, userID)
	if err != nil {
		return errors.Join(ErrTerminateSession, err)
	}
	if deleted > 0 {
		m.rec.SessionTerminated(scopeAll)
	}
	return nil
}

// flagIfSuspicious compares the demoted session's location snapshot against
// the new login's location and records a review flag on a country change.
// Best-effort: the session is already committed, so a flag failure is
// logged, never surfaced to the authenticating user.
func (m *Manager) flagIfSuspicious(ctx context.Context, prev *Session, sess Session, loc *geoip.GeoLocation) {
	if m.flagger == nil || prev == nil {
		return
	}

	prevLoc := prev.locationSnapshot()
	if !anomaly.Suspicious(prevLoc, loc) {
		return
	}

	if err := m.flagger.Flag(ctx, sess.UserID, sess.ID, prevLoc, loc); err != nil {
		m.log.ErrorContext(ctx, "failed to record anomaly flag",
			slog.String("user_id", sess.UserID.String()),
			slog.String("session_id", sess.ID.String()),
			slog.Any("error", err))
		return
	}
	m.rec.AnomalyFlagged()
}
