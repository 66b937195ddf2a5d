package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Checks       *prometheus.CounterVec
	Denied       *prometheus.CounterVec
	StoreFailure prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		Checks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "legatia_ratelimit_checks_total",
			Help: "Rate limit checks by endpoint class",
		}, []string{"class"}),
		Denied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "legatia_ratelimit_denied_total",
			Help: "Requests rejected by the rate limiter by endpoint class",
		}, []string{"class"}),
		StoreFailure: promauto.NewCounter(prometheus.CounterOpts{
			Name: "legatia_ratelimit_store_failures_total",
			Help: "Bucket store failures; the request is let through",
		}),
	}
}

func (m *Metrics) IncChecks(class string) {
	m.Checks.WithLabelValues(class).Inc()
}

func (m *Metrics) IncDenied(class string) {
	m.Denied.WithLabelValues(class).Inc()
}

func (m *Metrics) IncStoreFailure() {
	m.StoreFailure.Inc()
}
