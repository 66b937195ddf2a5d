package compliance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	audit "legatia/pkg/platform/audit"
)

// Metrics instruments the publisher. A nil *Metrics is a no-op.
type Metrics struct {
	eventsEmitted   *prometheus.CounterVec
	persistFailures prometheus.Counter
	persistDuration prometheus.Histogram
}

// NewMetrics registers the publisher metrics with the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		eventsEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "legatia_audit_events_emitted_total",
			Help: "Audit events written to the outbox, by category",
		}, []string{"category"}),
		persistFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "legatia_audit_persist_failures_total",
			Help: "Audit events that failed to persist",
		}),
		persistDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "legatia_audit_persist_duration_seconds",
			Help:    "Time to append an audit event to the outbox",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
	}
}

func (m *Metrics) IncEventsEmitted(category audit.EventCategory) {
	if m == nil {
		return
	}
	m.eventsEmitted.WithLabelValues(string(category)).Inc()
}

func (m *Metrics) IncPersistFailures() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}

func (m *Metrics) ObservePersistDuration(seconds float64) {
	if m == nil {
		return
	}
	m.persistDuration.Observe(seconds)
}
