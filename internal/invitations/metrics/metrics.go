package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	sent     prometheus.Counter
	resolved *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		sent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "legatia_invitations_sent_total",
			Help: "Family invitations sent",
		}),
		resolved: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "legatia_invitations_resolved_total",
			Help: "Invitations leaving Pending, by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncSent() {
	m.sent.Inc()
}

func (m *Metrics) AddResolved(outcome string, n int) {
	m.resolved.WithLabelValues(outcome).Add(float64(n))
}
