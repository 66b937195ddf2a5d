package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts family tree mutations.
type Metrics struct {
	familiesCreated prometheus.Counter
	memberChanges   *prometheus.CounterVec
	visibility      *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		familiesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "legatia_families_created_total",
			Help: "Families created",
		}),
		memberChanges: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "legatia_family_member_changes_total",
			Help: "Member mutations by admins, by operation",
		}, []string{"op"}),
		visibility: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "legatia_family_visibility_changes_total",
			Help: "Visibility toggles, by resulting state",
		}, []string{"state"}),
	}
}

func (m *Metrics) IncFamilyCreated() {
	m.familiesCreated.Inc()
}

func (m *Metrics) IncMemberChange(op string) {
	m.memberChanges.WithLabelValues(op).Inc()
}

func (m *Metrics) IncVisibilityChange(visible bool) {
	state := "hidden"
	if visible {
		state = "visible"
	}
	m.visibility.WithLabelValues(state).Inc()
}
