package anomaly_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionguard/core/anomaly"
	"github.com/dmitrymomot/sessionguard/pkg/geoip"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyFlag(ctx context.Context, flag anomaly.Flag) error {
	args := m.Called(ctx, flag)
	return args.Error(0)
}

func TestQueue_Flag(t *testing.T) {
	t.Parallel()

	us := &geoip.GeoLocation{Country: "United States", CountryCode: "US"}
	in := &geoip.GeoLocation{Country: "India", CountryCode: "IN"}

	t.Run("records unreviewed flag with location snapshot", func(t *testing.T) {
		t.Parallel()

		store := anomaly.NewMemoryStore()
		queue := anomaly.NewQueue(store)
		ctx := context.Background()

		userID := uuid.New()
		sessionID := uuid.New()

		require.NoError(t, queue.Flag(ctx, userID, sessionID, us, in))

		pending, err := queue.ListPending(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)

		flag := pending[0]
		assert.Equal(t, userID, flag.UserID)
		assert.Equal(t, sessionID, flag.SessionID)
		assert.Equal(t, "United States", flag.PrevCountry)
		assert.Equal(t, "US", flag.PrevCountryCode)
		assert.Equal(t, "India", flag.NewCountry)
		assert.Equal(t, "IN", flag.NewCountryCode)
		assert.False(t, flag.Reviewed)
		assert.Empty(t, flag.ActionTaken)
	})

	t.Run("notifies on new flag", func(t *testing.T) {
		t.Parallel()

		store := anomaly.NewMemoryStore()
		notifier := &mockNotifier{}
		queue := anomaly.NewQueue(store, anomaly.WithNotifier(notifier))
		ctx := context.Background()

		notifier.On("NotifyFlag", ctx, mock.MatchedBy(func(f anomaly.Flag) bool {
			return f.NewCountryCode == "IN"
		})).Return(nil)

		require.NoError(t, queue.Flag(ctx, uuid.New(), uuid.New(), us, in))
		notifier.AssertExpectations(t)
	})

	t.Run("notification failure does not fail the flag", func(t *testing.T) {
		t.Parallel()

		store := anomaly.NewMemoryStore()
		notifier := &mockNotifier{}
		queue := anomaly.NewQueue(store, anomaly.WithNotifier(notifier))
		ctx := context.Background()

		notifier.On("NotifyFlag", ctx, mock.Anything).Return(errors.New("smtp down"))

		require.NoError(t, queue.Flag(ctx, uuid.New(), uuid.New(), us, in))

		pending, err := queue.ListPending(ctx)
		require.NoError(t, err)
		assert.Len(t, pending, 1)
	})
}

func TestQueue_ListPending(t *testing.T) {
	t.Parallel()

	t.Run("returns oldest first and excludes reviewed", func(t *testing.T) {
		t.Parallel()

		store := anomaly.NewMemoryStore()
		ctx := context.Background()

		older := &anomaly.Flag{ID: uuid.New(), UserID: uuid.New(), CreatedAt: time.Now().Add(-time.Hour)}
		newer := &anomaly.Flag{ID: uuid.New(), UserID: uuid.New(), CreatedAt: time.Now()}
		reviewed := &anomaly.Flag{ID: uuid.New(), UserID: uuid.New(), Reviewed: true, CreatedAt: time.Now().Add(-2 * time.Hour)}

		require.NoError(t, store.Insert(ctx, newer))
		require.NoError(t, store.Insert(ctx, older))
		require.NoError(t, store.Insert(ctx, reviewed))

		queue := anomaly.NewQueue(store)
		pending, err := queue.ListPending(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		assert.Equal(t, older.ID, pending[0].ID)
		assert.Equal(t, newer.ID, pending[1].ID)
	})
}

func TestQueue_Review(t *testing.T) {
	t.Parallel()

	t.Run("dismissal records audit string without other side effects", func(t *testing.T) {
		t.Parallel()

		store := anomaly.NewMemoryStore()
		queue := anomaly.NewQueue(store)
		ctx := context.Background()

		require.NoError(t, queue.Flag(ctx, uuid.New(), uuid.New(),
			&geoip.GeoLocation{Country: "United States", CountryCode: "US"},
			&geoip.GeoLocation{Country: "India", CountryCode: "IN"}))

		pending, err := queue.ListPending(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)

		reviewed, err := queue.Review(ctx, pending[0].ID, anomaly.Dismissed)
		require.NoError(t, err)
		assert.True(t, reviewed.Reviewed)
		assert.Equal(t, "Dismissed - False Positive", reviewed.ActionTaken)
		assert.False(t, reviewed.ReviewedAt.IsZero())

		remaining, err := queue.ListPending(ctx)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("each disposition maps to its audit string", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			disposition anomaly.Disposition
			action      string
		}{
			{anomaly.Dismissed, "Dismissed - False Positive"},
			{anomaly.WarningIssued, "Warning Issued"},
			{anomaly.Suspended, "Account Suspended"},
		}

		for _, tt := range tests {
			store := anomaly.NewMemoryStore()
			queue := anomaly.NewQueue(store)
			ctx := context.Background()

			flag := &anomaly.Flag{ID: uuid.New(), UserID: uuid.New(), CreatedAt: time.Now()}
			require.NoError(t, store.Insert(ctx, flag))

			reviewed, err := queue.Review(ctx, flag.ID, tt.disposition)
			require.NoError(t, err)
			assert.Equal(t, tt.action, reviewed.ActionTaken)
		}
	})

	t.Run("unknown disposition is rejected", func(t *testing.T) {
		t.Parallel()

		queue := anomaly.NewQueue(anomaly.NewMemoryStore())

		_, err := queue.Review(context.Background(), uuid.New(), anomaly.Disposition("banhammer"))
		require.Error(t, err)
		assert.ErrorIs(t, err, anomaly.ErrUnknownDisposition)
	})

	t.Run("missing flag returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		queue := anomaly.NewQueue(anomaly.NewMemoryStore())

		_, err := queue.Review(context.Background(), uuid.New(), anomaly.Dismissed)
		require.Error(t, err)
		assert.ErrorIs(t, err, anomaly.ErrNotFound)
	})
}
