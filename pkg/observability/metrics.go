package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/sail/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels of sail_cycles_total.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the playground collectors on a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	Cycles        *prometheus.CounterVec
	CycleDuration prometheus.Histogram
	StateChanges  prometheus.Counter
	Submits       prometheus.Counter
	Sessions      prometheus.Gauge
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Cycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sail_cycles_total",
				Help: "Render cycles by outcome",
			},
			[]string{"outcome"},
		),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sail_cycle_duration_seconds",
			Help:    "Duration of evaluate plus render",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		StateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sail_state_changes_total",
			Help: "Field values written by controls",
		}),
		Submits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sail_submits_total",
			Help: "Button activations",
		}),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sail_sessions",
			Help: "Live playground sessions",
		}),
	}
	m.registry.MustRegister(m.Cycles, m.CycleDuration, m.StateChanges, m.Submits, m.Sessions)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCycleEnd: func(_ context.Context, e *domain.CycleEvent) {
			outcome := OutcomeSuccess
			if e.Err != nil {
				outcome = OutcomeFailure
			}
			m.Cycles.WithLabelValues(outcome).Inc()
			m.CycleDuration.Observe(e.Duration.Seconds())
		},
		OnStateChange: func(context.Context, *domain.StateEvent) {
			m.StateChanges.Inc()
		},
		OnSubmit: func(context.Context, *domain.SubmitEvent) {
			m.Submits.Inc()
		},
	}
}

// SessionOpened implements ports.SessionObserver.
func (m *Metrics) SessionOpened() { m.Sessions.Inc() }

// SessionClosed implements ports.SessionObserver.
func (m *Metrics) SessionClosed() { m.Sessions.Dec() }

// Handler serves the registry in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
