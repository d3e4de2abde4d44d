package anomaly

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sessionguard/pkg/geoip"
)

// Store defines the persistence interface for the review queue.
// Implementations must handle concurrent access safely.
type Store interface {
	Insert(ctx context.Context, flag *Flag) error
	GetByID(ctx context.Context, id uuid.UUID) (*Flag, error)
	// ListPending returns unreviewed flags, oldest first.
	ListPending(ctx context.Context) ([]Flag, error)
	// MarkReviewed records the disposition on a flag. Returns ErrNotFound
	// for an unknown id.
	MarkReviewed(ctx context.Context, id uuid.UUID, actionTaken string, at time.Time) error
}

// Notifier delivers a best-effort alert when a new flag is recorded.
// Delivery failures are logged by the Queue and never propagate.
type Notifier interface {
	NotifyFlag(ctx context.Context, flag Flag) error
}

// Queue coordinates anomaly flags between detection and manual review.
type Queue struct {
	store    Store
	notifier Notifier
	log      *slog.Logger
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithNotifier sets the alert channel for newly recorded flags.
func WithNotifier(n Notifier) QueueOption {
	return func(q *Queue) { q.notifier = n }
}

// WithLogger sets the logger for swallowed notification failures.
func WithLogger(log *slog.Logger) QueueOption {
	return func(q *Queue) { q.log = log }
}

// NewQueue creates a review queue over the given store.
func NewQueue(store Store, opts ...QueueOption) *Queue {
	q := &Queue{
		store: store,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Flag records a suspicious transition for the given user and session.
// The prev/curr pair is assumed to have been judged by Suspicious already;
// Flag stores whatever it is handed.
func (q *Queue) Flag(ctx context.Context, userID, sessionID uuid.UUID, prev, curr *geoip.GeoLocation) error {
	flag := Flag{
		ID:        uuid.New(),
		UserID:    userID,
		SessionID: sessionID,
		CreatedAt: time.Now(),
	}
	if prev != nil {
		flag.PrevCountry = prev.Country
		flag.PrevCountryCode = prev.CountryCode
	}
	if curr != nil {
		flag.NewCountry = curr.Country
		flag.NewCountryCode = curr.CountryCode
	}

	if err := q.store.Insert(ctx, &flag); err != nil {
		return errors.Join(ErrRecordFlag, err)
	}

	if q.notifier != nil {
		if err := q.notifier.NotifyFlag(ctx, flag); err != nil {
			q.log.WarnContext(ctx, "anomaly alert delivery failed",
				slog.String("flag_id", flag.ID.String()),
				slog.String("user_id", flag.UserID.String()),
				slog.Any("error", err))
		}
	}

	return nil
}

// ListPending returns unreviewed flags, oldest first.
func (q *Queue) ListPending(ctx context.Context) ([]Flag, error) {
	return q.store.ListPending(ctx)
}

// Review records an administrator's disposition on a flag and returns the
// updated record. This write is the only state change a flag causes; session
// rows are never touched.
func (q *Queue) Review(ctx context.Context, id uuid.UUID, d Disposition) (Flag, error) {
	action, ok := d.actionTaken()
	if !ok {
		return Flag{}, ErrUnknownDisposition
	}

	if err := q.store.MarkReviewed(ctx, id, action, time.Now()); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Flag{}, err
		}
		return Flag{}, errors.Join(ErrReviewFlag, err)
	}

	flag, err := q.store.GetByID(ctx, id)
	if err != nil {
		return Flag{}, errors.Join(ErrReviewFlag, err)
	}
	return *flag, nil
}
