package deferral

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for guard activity, labeled by policy.
type Metrics struct {
	guardsArmed    *prometheus.CounterVec
	guardsFired    *prometheus.CounterVec
	guardsReleased *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance registered with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	return newMetrics(promauto.With(prometheus.DefaultRegisterer))
}

// NewMetricsWith creates a Metrics instance registered with reg. Useful for
// tests and applications with private registries.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	return newMetrics(promauto.With(reg))
}

func newMetrics(factory promauto.Factory) *Metrics {
	return &Metrics{
		guardsArmed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deferral_guards_armed_total",
				Help: "Total number of guards constructed",
			},
			[]string{"policy"},
		),

		guardsFired: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deferral_guards_fired_total",
				Help: "Total number of guard actions invoked at scope exit",
			},
			[]string{"policy"},
		),

		guardsReleased: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deferral_guards_released_total",
				Help: "Total number of guards disarmed before scope exit",
			},
			[]string{"policy"},
		),
	}
}

// activeMetrics is the process-wide collector consulted by guards. Loaded
// atomically so instrumentation can be toggled from any goroutine.
var activeMetrics atomic.Pointer[Metrics]

// SetMetrics installs m as the process-wide guard instrumentation. Passing
// nil uninstalls it. Guards record nothing while no collector is installed.
func SetMetrics(m *Metrics) {
	activeMetrics.Store(m)
}

func recordArmed(p Policy) {
	if m := activeMetrics.Load(); m != nil {
		m.guardsArmed.WithLabelValues(string(p)).Inc()
	}
}

func recordFired(p Policy) {
	if m := activeMetrics.Load(); m != nil {
		m.guardsFired.WithLabelValues(string(p)).Inc()
	}
}

func recordReleased(p Policy) {
	if m := activeMetrics.Load(); m != nil {
		m.guardsReleased.WithLabelValues(string(p)).Inc()
	}
}
