// Package redis provides Redis client initialization with retry logic and a
// Redis-backed cache for geolocation lookups.
//
// Connect validates the connection URL, dials with retries, and verifies
// connectivity with a ping before returning the client. Healthcheck returns
// a probe function suitable for readiness endpoints.
//
// GeoCache implements the geoip.Cache interface over a shared Redis
// instance so that geolocation results survive process restarts and are
// shared between replicas. Entries are stored as JSON under a "geoip:"
// key prefix with a per-entry TTL; Redis handles expiry natively, so
// there is no sweeper to run.
//
// Usage:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	resolver := geoip.New(geoip.WithCache(redis.NewGeoCache(client)))
//
// Cache errors are never surfaced to callers: a failed read is a miss and a
// failed write is dropped, matching the fail-open posture of the geolocation
// resolver itself.
package redis
