package anomaly

import (
	"time"

	"github.com/google/uuid"
)

// Disposition is an administrator's verdict on a flagged login.
type Disposition string

const (
	Dismissed     Disposition = "dismissed"
	WarningIssued Disposition = "warning_issued"
	Suspended     Disposition = "suspended"
)

// actionTaken returns the human-readable audit string recorded on the flag.
func (d Disposition) actionTaken() (string, bool) {
	switch d {
	case Dismissed:
		return "Dismissed - False Positive", true
	case WarningIssued:
		return "Warning Issued", true
	case Suspended:
		return "Account Suspended", true
	default:
		return "", false
	}
}

// Flag records one suspicious location transition awaiting manual review.
// PrevCountry/NewCountry are display names; the codes drove the detection.
type Flag struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	SessionID uuid.UUID

	PrevCountry     string
	PrevCountryCode string
	NewCountry      string
	NewCountryCode  string

	Reviewed    bool
	ActionTaken string

	CreatedAt  time.Time
	ReviewedAt time.Time
}
