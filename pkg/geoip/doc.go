// Package geoip resolves IP addresses to coarse geographic locations with a
// time-bounded cache and graceful degradation.
//
// Lookup never returns an error to the caller: a nil result is the valid
// "unknown location" answer. Network failures, timeouts, and malformed
// payloads are logged and swallowed so that a geolocation outage can never
// block the operations that consume location data.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/sessionguard/pkg/geoip"
//
//	resolver := geoip.New()
//	loc := resolver.Lookup(ctx, "203.0.113.10")
//	if loc != nil {
//		fmt.Println(loc.Country, loc.City)
//	}
//
// # Private Addresses
//
// Loopback and RFC1918 addresses (and the literal "localhost") short-circuit
// to a synthetic "Local" entry without touching the network.
//
// # Caching
//
// Results are cached per IP for a fixed TTL (24 hours by default). The cache
// sits behind the Cache interface; the in-process default is suitable for a
// single instance, and multi-instance deployments must inject a shared
// backing store (see integration/database/redis.GeoCache) to stay coherent.
// This is a scaling requirement, not an optional optimization: two instances
// with private caches resolve the same IP independently and can disagree
// while entries age out.
package geoip
