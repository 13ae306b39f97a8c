// Package metrics exports service counters in the Prometheus format.
package metrics

import (
	"context"
	"net/http"
	"time"

	"morna/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "logistics"

// Recorder owns a private registry so several instances can coexist in tests.
type Recorder struct {
	registry *prometheus.Registry

	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	refetches  *prometheus.CounterVec
	changes    *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Mutations by operation and outcome. Outcome is ok or the rejection reason.",
		}, []string{"operation", "outcome"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Mutation latency including the database transaction.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		refetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "realtime",
			Name:      "refetches_total",
			Help:      "Dashboard slot refetches by slot and result.",
		}, []string{"slot", "result"}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "realtime",
			Name:      "change_events_total",
			Help:      "Change events received from the change feed by table.",
		}, []string{"table"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.operations,
		r.durations,
		r.refetches,
		r.changes,
	)
	return r
}

// Observe records the outcome of a mutation.
func (r *Recorder) Observe(_ context.Context, operation string, err error, duration time.Duration) {
	if operation == "" {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = string(errs.ReasonOf(err))
	}
	r.operations.WithLabelValues(operation, outcome).Inc()
	r.durations.WithLabelValues(operation).Observe(duration.Seconds())
}

func (r *Recorder) ObserveRefetch(slot string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.refetches.WithLabelValues(slot, result).Inc()
}

func (r *Recorder) ObserveChange(table string) {
	r.changes.WithLabelValues(table).Inc()
}

// RegisterGauge exposes a value computed at scrape time, such as the number of
// attached dashboards.
func (r *Recorder) RegisterGauge(name, help string, value func() float64) {
	r.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, value))
}

func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
