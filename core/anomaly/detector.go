package anomaly

import "github.com/dmitrymomot/sessionguard/pkg/geoip"

// Suspicious reports whether the transition between two coarse locations
// warrants manual review: both sides must be known and their country codes
// must differ. Unknown locations (nil, or an empty country code) never flag,
// so a failed geolocation lookup cannot produce a false positive.
func Suspicious(prev, curr *geoip.GeoLocation) bool {
	if prev == nil || curr == nil {
		return false
	}
	if prev.CountryCode == "" || curr.CountryCode == "" {
		return false
	}
	return prev.CountryCode != curr.CountryCode
}
