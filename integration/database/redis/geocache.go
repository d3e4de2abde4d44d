package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sessionguard/core/logger"
	"github.com/dmitrymomot/sessionguard/pkg/geoip"
)

const geoKeyPrefix = "geoip:"

// GeoCache implements geoip.Cache on Redis. Entries are JSON-encoded and
// expire natively via Redis TTLs. All Redis errors degrade to cache misses
// so a broken cache never breaks geolocation.
type GeoCache struct {
	client *redis.Client
	log    *slog.Logger
}

var _ geoip.Cache = (*GeoCache)(nil)

// GeoCacheOption configures a GeoCache.
type GeoCacheOption func(*GeoCache)

// WithGeoCacheLogger sets the logger for cache failures.
func WithGeoCacheLogger(log *slog.Logger) GeoCacheOption {
	return func(c *GeoCache) {
		if log != nil {
			c.log = log
		}
	}
}

// NewGeoCache creates a Redis-backed geolocation cache.
func NewGeoCache(client *redis.Client, opts ...GeoCacheOption) *GeoCache {
	c := &GeoCache{
		client: client,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *GeoCache) Get(ctx context.Context, ip string) (*geoip.GeoLocation, bool) {
	data, err := c.client.Get(ctx, geoKeyPrefix+ip).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WarnContext(ctx, "geo cache read failed",
				logger.Component("geocache"),
				logger.ClientIP(ip),
				logger.Error(err),
			)
		}
		return nil, false
	}

	var loc geoip.GeoLocation
	if err := json.Unmarshal(data, &loc); err != nil {
		c.log.WarnContext(ctx, "geo cache entry corrupt",
			logger.Component("geocache"),
			logger.ClientIP(ip),
			logger.Error(err),
		)
		return nil, false
	}
	return &loc, true
}

func (c *GeoCache) Set(ctx context.Context, ip string, loc *geoip.GeoLocation, ttl time.Duration) {
	if loc == nil || ttl <= 0 {
		return
	}
	data, err := json.Marshal(loc)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, geoKeyPrefix+ip, data, ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "geo cache write failed",
			logger.Component("geocache"),
			logger.ClientIP(ip),
			logger.Error(err),
		)
	}
}
