package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments the claim workflow.
type Metrics struct {
	submitted       prometheus.Counter
	resolved        *prometheus.CounterVec
	decisionLatency prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		submitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "legatia_claims_submitted_total",
			Help: "Ghost profile claims submitted",
		}),
		resolved: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "legatia_claims_resolved_total",
			Help: "Claims leaving Pending, by outcome",
		}, []string{"outcome"}),
		decisionLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "legatia_claims_decision_latency_hours",
			Help:    "Time from submission to an admin decision",
			Buckets: []float64{1, 6, 24, 72, 168, 336, 720},
		}),
	}
}

func (m *Metrics) IncSubmitted() {
	m.submitted.Inc()
}

// IncResolved counts a claim leaving Pending: approved, rejected,
// superseded, cancelled or expired.
func (m *Metrics) IncResolved(outcome string) {
	m.resolved.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AddResolved(outcome string, n int) {
	m.resolved.WithLabelValues(outcome).Add(float64(n))
}

func (m *Metrics) ObserveDecisionLatency(d time.Duration) {
	m.decisionLatency.Observe(d.Hours())
}
