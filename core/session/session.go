package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sessionguard/pkg/geoip"
	"github.com/dmitrymomot/sessionguard/pkg/useragent"
)

// Session represents one authenticated device-login for a user. Device and
// location fields are derived once at creation and immutable thereafter;
// only IsCurrent and LastActive change during the row's lifetime.
type Session struct {
	// ID is the stable unique identifier, generated at creation.
	ID uuid.UUID

	// Token is the opaque session token (32 bytes base64url) the client
	// holds as proof of this session. Never reused across rows.
	Token string

	// UserID is the owner. A user may own many rows concurrently
	// (historical plus current).
	UserID uuid.UUID

	DeviceName string
	DeviceType useragent.DeviceType
	Browser    string
	OS         string

	// IPAddress is the client address at creation, possibly empty.
	IPAddress string

	// Location snapshot copied from geolocation at creation. The country
	// code backs anomaly comparison; country and city are display values.
	LocationCountry     string
	LocationCountryCode string
	LocationCity        string

	// IsCurrent marks the canonical row. At most one row per user is
	// current at any quiescent moment.
	IsCurrent bool

	// LastActive is touched on successful validation (heartbeat).
	LastActive time.Time
	CreatedAt  time.Time
}

// Device returns the human-readable device identifier for UI display,
// e.g. "Chrome on Windows".
func (s Session) Device() string {
	if s.DeviceName == "" {
		return "Unknown device"
	}
	return s.DeviceName
}

// NewSessionParams contains parameters for creating a new session row.
type NewSessionParams struct {
	UserID    uuid.UUID
	Device    useragent.DeviceInfo
	IPAddress string
	// Location may be nil; session creation proceeds without location data.
	Location *geoip.GeoLocation
}

// New creates a session row marked current, with a generated ID and token.
func New(params NewSessionParams) (Session, error) {
	if params.UserID == uuid.Nil {
		return Session{}, ErrMissingUserID
	}

	token, err := generateToken()
	if err != nil {
		return Session{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	sess := Session{
		ID:         uuid.New(),
		Token:      token,
		UserID:     params.UserID,
		DeviceName: params.Device.DeviceName,
		DeviceType: params.Device.DeviceType,
		Browser:    params.Device.Browser,
		OS:         params.Device.OS,
		IPAddress:  params.IPAddress,
		IsCurrent:  true,
		LastActive: now,
		CreatedAt:  now,
	}
	if params.Location != nil {
		sess.LocationCountry = params.Location.Country
		sess.LocationCountryCode = params.Location.CountryCode
		sess.LocationCity = params.Location.City
	}
	return sess, nil
}

// locationSnapshot reconstructs the coarse location persisted on the row,
// or nil when the row carries no country code (lookup failed at creation).
func (s Session) locationSnapshot() *geoip.GeoLocation {
	if s.LocationCountryCode == "" {
		return nil
	}
	return &geoip.GeoLocation{
		Country:     s.LocationCountry,
		CountryCode: s.LocationCountryCode,
		City:        s.LocationCity,
	}
}

// generateToken creates a cryptographically secure random token using
// 32 bytes (256 bits) encoded as base64 URL-safe string without padding.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
