package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultTTL bounds how long a resolved location is trusted.
	DefaultTTL = 24 * time.Hour
	// DefaultTimeout caps the single outbound lookup. The resolver performs
	// no retries; the caller decides whether missing data matters.
	DefaultTimeout = 5 * time.Second

	defaultBaseURL = "http://ip-api.com"
)

// GeoLocation is a coarse IP-derived location. The JSON tags match the
// ip-api.com response payload.
type GeoLocation struct {
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	City        string `json:"city"`
	Region      string `json:"regionName"`
	Timezone    string `json:"timezone"`
	ISP         string `json:"isp"`
}

// apiResponse wraps GeoLocation with the lookup status envelope.
type apiResponse struct {
	GeoLocation
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Lookup outcome labels reported to the Recorder.
const (
	OutcomeLocal    = "local"
	OutcomeCacheHit = "cache_hit"
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
)

// Recorder receives a label per lookup for metrics collection.
type Recorder interface {
	GeoLookup(outcome string)
}

type noopRecorder struct{}

func (noopRecorder) GeoLookup(string) {}

// Resolver resolves IP addresses to coarse locations through a cache.
type Resolver struct {
	client  *http.Client
	baseURL string
	ttl     time.Duration
	timeout time.Duration
	cache   Cache
	log     *slog.Logger
	rec     Recorder
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBaseURL overrides the lookup endpoint (scheme and host, no trailing slash).
func WithBaseURL(url string) Option {
	return func(r *Resolver) { r.baseURL = strings.TrimRight(url, "/") }
}

// WithTimeout sets the per-lookup timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.timeout = d }
}

// WithTTL sets how long resolved locations stay cached.
func WithTTL(d time.Duration) Option {
	return func(r *Resolver) { r.ttl = d }
}

// WithCache injects a cache implementation. Multi-instance deployments must
// use a shared store here.
func WithCache(c Cache) Option {
	return func(r *Resolver) { r.cache = c }
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) { r.client = c }
}

// WithLogger sets the logger for swallowed lookup failures.
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec Recorder) Option {
	return func(r *Resolver) { r.rec = rec }
}

// New creates a Resolver with an in-process cache and defaults suitable for
// single-instance deployments.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		client:  &http.Client{},
		baseURL: defaultBaseURL,
		ttl:     DefaultTTL,
		timeout: DefaultTimeout,
		cache:   NewMemoryCache(),
		log:     slog.Default(),
		rec:     noopRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lookup resolves ip to a coarse location. A nil result means "unknown
// location" and is never an error: lookup failures are logged and swallowed
// so geolocation can never block the caller.
func (r *Resolver) Lookup(ctx context.Context, ip string) *GeoLocation {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return nil
	}

	if isPrivate(ip) {
		r.rec.GeoLookup(OutcomeLocal)
		return localLocation()
	}

	if loc, ok := r.cache.Get(ctx, ip); ok {
		r.rec.GeoLookup(OutcomeCacheHit)
		return loc
	}

	loc, err := r.fetch(ctx, ip)
	if err != nil {
		r.rec.GeoLookup(OutcomeFailure)
		r.log.WarnContext(ctx, "geoip lookup failed",
			slog.String("ip", ip),
			slog.Any("error", err))
		return nil
	}

	r.cache.Set(ctx, ip, loc, r.ttl)
	r.rec.GeoLookup(OutcomeSuccess)
	return loc
}

// fetch performs the single outbound lookup with an explicit timeout.
func (r *Resolver) fetch(ctx context.Context, ip string) (*GeoLocation, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/json/"+ip, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if payload.Status != "success" {
		return nil, fmt.Errorf("lookup rejected: %s", payload.Message)
	}

	loc := payload.GeoLocation
	return &loc, nil
}

// isPrivate reports whether ip never leaves the local network and therefore
// must not be sent to the lookup service.
func isPrivate(ip string) bool {
	if strings.EqualFold(ip, "localhost") {
		return true
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsLinkLocalUnicast() || parsed.IsUnspecified()
}

// localLocation is the synthetic entry for private and loopback addresses.
// The country code is a non-ISO sentinel so transitions from a private
// network to a public one remain visible to anomaly comparison.
func localLocation() *GeoLocation {
	return &GeoLocation{
		Country:     "Local",
		CountryCode: "LOCAL",
		City:        "Local Network",
		ISP:         "Private Network",
	}
}
