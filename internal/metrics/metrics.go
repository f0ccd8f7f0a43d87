// Package metrics exposes the optional Prometheus counters/gauges a
// verbose run registers: one counter per lifecycle stage and a gauge for
// the current event queue depth, served over /metrics the way
// etalazz-vsa's tfd-sim wires client_golang directly into its main loop.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"csb/streamer/internal/system"
)

// Collector holds the simulator's Prometheus instruments.
type Collector struct {
	arrived  prometheus.Counter
	started  prometheus.Counter
	finished prometheus.Counter
	queue    prometheus.Gauge
}

// New registers the simulator's instruments against registry.
func New(registry *prometheus.Registry) *Collector {
	c := &Collector{
		arrived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "streamer_jobs_arrived_total",
			Help: "Total number of jobs that have arrived.",
		}),
		started: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "streamer_jobs_started_total",
			Help: "Total number of jobs that have started executing.",
		}),
		finished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "streamer_jobs_finished_total",
			Help: "Total number of jobs that have finished executing.",
		}),
		queue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "streamer_event_queue_depth",
			Help: "Number of events currently pending in the event queue.",
		}),
	}
	registry.MustRegister(c.arrived, c.started, c.finished, c.queue)
	return c
}

// Observe accounts one event against the appropriate counter.
func (c *Collector) Observe(kind system.EventKind) {
	switch kind {
	case system.Arrived:
		c.arrived.Inc()
	case system.Started:
		c.started.Inc()
	case system.Finished:
		c.finished.Inc()
	}
}

// SetQueueDepth updates the event queue depth gauge.
func (c *Collector) SetQueueDepth(depth int) {
	c.queue.Set(float64(depth))
}

// Serve starts an HTTP server exposing /metrics on addr. It blocks until
// the server exits and should be run in its own goroutine.
func Serve(addr string, registry *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return http.ListenAndServe(addr, mux)
}
