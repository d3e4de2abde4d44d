package postmark

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/sessionguard/core/anomaly"
)

// Config holds Postmark settings with environment variable mapping.
type Config struct {
	ServerToken   string `env:"POSTMARK_SERVER_TOKEN,required"`
	AccountToken  string `env:"POSTMARK_ACCOUNT_TOKEN,required"`
	SenderEmail   string `env:"SENDER_EMAIL,required"`
	SecurityEmail string `env:"SECURITY_ALERT_EMAIL,required"`
}

var (
	// ErrInvalidConfig is returned when required Postmark settings are
	// missing or malformed.
	ErrInvalidConfig = errors.New("invalid postmark config")
	// ErrFailedToSendAlert is returned when Postmark rejects or fails to
	// deliver an alert email.
	ErrFailedToSendAlert = errors.New("failed to send alert email")
)

// AlertSender sends login anomaly alerts to the security inbox. It
// implements anomaly.Notifier.
type AlertSender struct {
	client *postmark.Client
	config Config
}

// New creates a Postmark-backed alert sender. All tokens and addresses are
// validated up front so a misconfigured deployment fails at startup.
func New(cfg Config) (*AlertSender, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: ServerToken is required", ErrInvalidConfig)
	}
	if cfg.AccountToken == "" {
		return nil, fmt.Errorf("%w: AccountToken is required", ErrInvalidConfig)
	}
	if !isValidEmail(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if !isValidEmail(cfg.SecurityEmail) {
		return nil, fmt.Errorf("%w: SecurityEmail must be a valid email address", ErrInvalidConfig)
	}

	return &AlertSender{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		config: cfg,
	}, nil
}

// MustNew creates an alert sender that panics on invalid config. Follows
// the fail-fast initialization pattern: broken services must not start.
func MustNew(cfg Config) *AlertSender {
	sender, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return sender
}

// NotifyFlag sends a plain-text alert describing the flagged login.
func (s *AlertSender) NotifyFlag(ctx context.Context, flag anomaly.Flag) error {
	body := fmt.Sprintf(
		"A login from a new country was flagged for review.\n\n"+
			"User:     %s\n"+
			"Session:  %s\n"+
			"Previous: %s (%s)\n"+
			"New:      %s (%s)\n"+
			"Flagged:  %s\n\n"+
			"Review the flag in the admin queue before taking action.\n",
		flag.UserID, flag.SessionID,
		flag.PrevCountry, flag.PrevCountryCode,
		flag.NewCountry, flag.NewCountryCode,
		flag.CreatedAt.UTC().Format("2006-01-02 15:04:05 MST"),
	)

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     s.config.SenderEmail,
		To:       s.config.SecurityEmail,
		Subject:  fmt.Sprintf("Suspicious login: %s -> %s", flag.PrevCountryCode, flag.NewCountryCode),
		Tag:      "security-alert",
		TextBody: body,
	})
	if err != nil {
		return errors.Join(ErrFailedToSendAlert, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSendAlert,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}

// emailRegex is a simple regex for validating email addresses.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// isValidEmail checks if the provided string is a valid email address.
func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
