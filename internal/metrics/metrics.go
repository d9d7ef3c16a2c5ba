// Package metrics holds the engine's prometheus instruments.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Selection outcome label values.
const (
	OutcomePremium  = "premium"
	OutcomeFallback = "fallback"
	OutcomeNoFill   = "no_fill"
)

// Metrics aggregates the selection counters. Register one per process.
type Metrics struct {
	Selections       *prometheus.CounterVec
	SamplerFallbacks prometheus.Counter
}

// New creates and registers the instruments on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vista_ads",
			Name:      "selections_total",
			Help:      "Ad selections by outcome tier.",
		}, []string{"outcome"}),
		SamplerFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vista_ads",
			Name:      "sampler_uniform_fallbacks_total",
			Help:      "Weighted draws that degraded to a uniform pick.",
		}),
	}
	reg.MustRegister(m.Selections, m.SamplerFallbacks)
	return m
}
