// Package metrics bundles Prometheus instrumentation for optimization runs
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the solver-facing metrics and the registry they live in
type Collector struct {
	registry *prometheus.Registry

	ScenariosTotal *prometheus.CounterVec
	SolveDuration  *prometheus.HistogramVec
	UnmetDemand    *prometheus.GaugeVec
}

// NewCollector builds a Collector with its own registry so tests stay isolated
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	scenarios := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lineload_scenarios_total",
		Help: "Scenario solves by terminal status.",
	}, []string{"status"})
	reg.MustRegister(scenarios)

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lineload_solve_duration_seconds",
		Help:    "Wall-clock time per scenario solve.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"scenario"})
	reg.MustRegister(durations)

	unmet := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lineload_unmet_demand",
		Help: "Total unmet demand reported by the most recent solve, per scenario.",
	}, []string{"scenario"})
	reg.MustRegister(unmet)

	return &Collector{
		registry:       reg,
		ScenariosTotal: scenarios,
		SolveDuration:  durations,
		UnmetDemand:    unmet,
	}
}

// ObserveSolve records one finished scenario solve
func (c *Collector) ObserveSolve(scenario, status string, elapsed time.Duration, totalUnmet float64) {
	if c == nil {
		return
	}
	c.ScenariosTotal.WithLabelValues(status).Inc()
	c.SolveDuration.WithLabelValues(scenario).Observe(elapsed.Seconds())
	c.UnmetDemand.WithLabelValues(scenario).Set(totalUnmet)
}

// Handler exposes the collector's registry in Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
