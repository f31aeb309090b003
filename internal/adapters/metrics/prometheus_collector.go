// Package metrics instruments the optimization worker with Prometheus
// counters and histograms, held as a per-worker value rather than a global
// singleton: a host process running several workers builds one Collector
// per worker and wires it explicitly into the pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "mission_optimizer"
	subsystem = "worker"
)

// Collector records job lifecycle and solve-performance metrics for one
// worker instance. It is constructed once at startup and held by the
// worker for the lifetime of the process.
type Collector struct {
	registry *prometheus.Registry

	jobsReceived  prometheus.Counter
	jobsSucceeded prometheus.Counter
	jobsFailed    prometheus.Counter
	solveDuration prometheus.Histogram
	solverStatus  *prometheus.CounterVec
	inFlight      prometheus.Gauge
}

// NewCollector builds a Collector registered against a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		jobsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "jobs_received_total", Help: "Optimization requests received from the input queue.",
		}),
		jobsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "jobs_succeeded_total", Help: "Optimization requests solved with a usable result.",
		}),
		jobsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "jobs_failed_total", Help: "Optimization requests that produced an error response.",
		}),
		solveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "solve_duration_seconds", Help: "Wall-clock time spent in the normalize+validate+build+solve+extract stages.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 16),
		}),
		solverStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "solver_status_total", Help: "Count of solves by terminal solver status.",
		}, []string{"status", "termination_condition"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "jobs_in_flight", Help: "Number of requests currently being processed.",
		}),
	}

	reg.MustRegister(c.jobsReceived, c.jobsSucceeded, c.jobsFailed, c.solveDuration, c.solverStatus, c.inFlight)
	return c
}

// Handler returns an http.Handler serving this collector's registry in the
// Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// JobReceived records that one request began processing.
func (c *Collector) JobReceived() {
	c.jobsReceived.Inc()
	c.inFlight.Inc()
}

// JobFinished records the outcome of one request: whether it produced a
// usable result, its wall-clock duration, and the solver's terminal
// status/termination_condition pair.
func (c *Collector) JobFinished(succeeded bool, durationSeconds float64, status, terminationCondition string) {
	c.inFlight.Dec()
	c.solveDuration.Observe(durationSeconds)
	c.solverStatus.WithLabelValues(status, terminationCondition).Inc()
	if succeeded {
		c.jobsSucceeded.Inc()
		return
	}
	c.jobsFailed.Inc()
}
