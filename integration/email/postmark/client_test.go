package postmark_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionguard/core/anomaly"
	"github.com/dmitrymomot/sessionguard/integration/email/postmark"
)

var _ anomaly.Notifier = (*postmark.AlertSender)(nil)

func validConfig() postmark.Config {
	return postmark.Config{
		ServerToken:   "server-token",
		AccountToken:  "account-token",
		SenderEmail:   "alerts@example.com",
		SecurityEmail: "security@example.com",
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		sender, err := postmark.New(validConfig())
		require.NoError(t, err)
		assert.NotNil(t, sender)
	})

	t.Run("missing server token", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.ServerToken = ""
		_, err := postmark.New(cfg)
		require.ErrorIs(t, err, postmark.ErrInvalidConfig)
	})

	t.Run("missing account token", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.AccountToken = ""
		_, err := postmark.New(cfg)
		require.ErrorIs(t, err, postmark.ErrInvalidConfig)
	})

	t.Run("invalid sender email", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.SenderEmail = "not-an-email"
		_, err := postmark.New(cfg)
		require.ErrorIs(t, err, postmark.ErrInvalidConfig)
	})

	t.Run("missing security email", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.SecurityEmail = ""
		_, err := postmark.New(cfg)
		require.ErrorIs(t, err, postmark.ErrInvalidConfig)
	})
}

func TestMustNewPanicsOnInvalidConfig(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		postmark.MustNew(postmark.Config{})
	})
}
