package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sessionguard"

// Metrics holds the subsystem's Prometheus collectors. It satisfies
// session.Recorder and geoip.Recorder.
type Metrics struct {
	sessionsCreated prometheus.Counter
	validations     *prometheus.CounterVec
	terminations    *prometheus.CounterVec
	anomalyFlags    prometheus.Counter
	geoLookups      *prometheus.CounterVec
}

// New registers the subsystem collectors with reg and returns the recorder.
// Pass prometheus.DefaultRegisterer for the process-global registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		sessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Total number of sessions created.",
		}),
		validations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_validations_total",
			Help:      "Total number of session validations by result.",
		}, []string{"result"}),
		terminations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_terminations_total",
			Help:      "Total number of session termination operations by scope.",
		}, []string{"scope"}),
		anomalyFlags: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "anomaly_flags_total",
			Help:      "Total number of suspicious logins flagged for review.",
		}),
		geoLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geo_lookups_total",
			Help:      "Total number of geolocation lookups by outcome.",
		}, []string{"outcome"}),
	}
}

// SessionCreated implements session.Recorder.
func (m *Metrics) SessionCreated() {
	m.sessionsCreated.Inc()
}

// SessionValidated implements session.Recorder.
func (m *Metrics) SessionValidated(result string) {
	m.validations.WithLabelValues(result).Inc()
}

// SessionTerminated implements session.Recorder.
func (m *Metrics) SessionTerminated(scope string) {
	m.terminations.WithLabelValues(scope).Inc()
}

// AnomalyFlagged implements session.Recorder.
func (m *Metrics) AnomalyFlagged() {
	m.anomalyFlags.Inc()
}

// GeoLookup implements geoip.Recorder.
func (m *Metrics) GeoLookup(outcome string) {
	m.geoLookups.WithLabelValues(outcome).Inc()
}
