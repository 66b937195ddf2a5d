package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments notification delivery and the unread cache.
type Metrics struct {
	dispatched  *prometheus.CounterVec
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	cacheErrors prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		dispatched: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "legatia_notifications_dispatched_total",
			Help: "Notifications written, by type",
		}, []string{"type"}),
		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "legatia_notifications_unread_cache_hits_total",
			Help: "Unread counts served from the cache",
		}),
		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "legatia_notifications_unread_cache_misses_total",
			Help: "Unread counts computed from the store",
		}),
		cacheErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "legatia_notifications_unread_cache_errors_total",
			Help: "Unread cache operations that failed",
		}),
	}
}

func (m *Metrics) IncDispatched(kind string) {
	m.dispatched.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncCacheHit() {
	m.cacheHits.Inc()
}

func (m *Metrics) IncCacheMiss() {
	m.cacheMisses.Inc()
}

func (m *Metrics) IncCacheError() {
	m.cacheErrors.Inc()
}
