package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sessionguard/pkg/geoip"
)

// Resolver resolves a client IP to a coarse location. A nil result is the
// valid "unknown location" answer and never blocks session creation.
type Resolver interface {
	Lookup(ctx context.Context, ip string) *geoip.GeoLocation
}

// Flagger records a suspicious location transition for manual review.
// Satisfied by anomaly.Queue.
type Flagger interface {
	Flag(ctx context.Context, userID, sessionID uuid.UUID, prev, curr *geoip.GeoLocation) error
}

// Recorder receives lifecycle events for metrics collection.
type Recorder interface {
	SessionCreated()
	SessionValidated(result string)
	SessionTerminated(scope string)
	AnomalyFlagged()
}

type noopRecorder struct{}

func (noopRecorder) SessionCreated()          {}
func (noopRecorder) SessionValidated(string)  {}
func (noopRecorder) SessionTerminated(string) {}
func (noopRecorder) AnomalyFlagged()          {}

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithResolver enables geolocation of new sessions.
func WithResolver(r Resolver) Option {
	return func(m *Manager) { m.resolver = r }
}

// WithFlagger enables anomaly flagging of suspicious location transitions.
func WithFlagger(f Flagger) Option {
	return func(m *Manager) { m.flagger = f }
}

// WithLogger sets the logger for swallowed best-effort failures.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec Recorder) Option {
	return func(m *Manager) { m.rec = rec }
}

// WithTouchInterval sets the minimum time between heartbeat writes. Zero
// (the default) touches LastActive on every successful validation; raise it
// to trade heartbeat precision for fewer writes under high call volume.
func WithTouchInterval(interval time.Duration) Option {
	return func(m *Manager) { m.touchInterval = interval }
}
