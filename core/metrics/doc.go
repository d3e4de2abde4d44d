// Package metrics exposes Prometheus counters for session lifecycle events,
// anomaly flags, and geolocation lookups. The Metrics value implements both
// session.Recorder and geoip.Recorder, so one instance wires the whole
// subsystem into a registry.
package metrics
