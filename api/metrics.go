package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/warp/vanslyke/vanslyke"
)

// Metrics counts derivations and the headline outputs they left unknown.
// Each Metrics owns its registry so tests can build as many as they like.
type Metrics struct {
	registry    *prometheus.Registry
	derivations *prometheus.CounterVec
	unresolved  *prometheus.CounterVec
	resolved    prometheus.Histogram
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		derivations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vanslyke_derivations_total",
			Help: "Derivations run, by source (inline or scenario).",
		}, []string{"source"}),
		unresolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vanslyke_unresolved_outputs_total",
			Help: "Headline outputs left unknown by a derivation.",
		}, []string{"output"}),
		resolved: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vanslyke_resolved_headlines",
			Help:    "Headline outputs resolved per derivation.",
			Buckets: prometheus.LinearBuckets(0, 1, len(vanslyke.Headlines())+1),
		}),
	}
	m.registry.MustRegister(m.derivations, m.unresolved, m.resolved)
	return m
}

// Observe records one derivation.
func (m *Metrics) Observe(source string, diags vanslyke.Diagnostics) {
	m.derivations.WithLabelValues(source).Inc()
	unresolved := diags.Unresolved()
	for _, d := range unresolved {
		m.unresolved.WithLabelValues(string(d.Output)).Inc()
	}
	m.resolved.Observe(float64(len(diags) - len(unresolved)))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
