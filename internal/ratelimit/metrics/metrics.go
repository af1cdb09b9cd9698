package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Decisions      *prometheus.CounterVec
	FallbackChecks prometheus.Counter
	StoreErrors    prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dlscan_ratelimit_decisions_total",
			Help: "Rate limit decisions by endpoint class and result",
		}, []string{"class", "result"}), // result: "allowed", "denied"
		FallbackChecks: factory.NewCounter(prometheus.CounterOpts{
			Name: "dlscan_ratelimit_fallback_checks_total",
			Help: "Checks answered by the in-memory fallback store",
		}),
		StoreErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "dlscan_ratelimit_store_errors_total",
			Help: "Errors returned by the primary bucket store",
		}),
	}
}

func (m *Metrics) IncrementDecision(class string, allowed bool) {
	if m == nil {
		return
	}
	result := "allowed"
	if !allowed {
		result = "denied"
	}
	m.Decisions.WithLabelValues(class, result).Inc()
}

func (m *Metrics) IncrementFallback() {
	if m != nil {
		m.FallbackChecks.Inc()
	}
}

func (m *Metrics) IncrementStoreErrors() {
	if m != nil {
		m.StoreErrors.Inc()
	}
}
