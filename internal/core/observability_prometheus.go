package core

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetricsRecorder exports service operations and enclosure occupancy
// as Prometheus collectors registered on its own registry.
type PrometheusMetricsRecorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	remaining  *prometheus.GaugeVec
	residents  *prometheus.GaugeVec
}

// NewPrometheusMetricsRecorder creates the collectors under namespace, which
// defaults to "zoo".
func NewPrometheusMetricsRecorder(namespace string) *PrometheusMetricsRecorder {
	if namespace == "" {
		namespace = "zoo"
	}
	r := &PrometheusMetricsRecorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Zoo service operations by result.",
		}, []string{"operation", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Zoo service operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"operation"}),
		remaining: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "enclosure_remaining_square",
			Help:      "Unoccupied square of each enclosure.",
		}, []string{"enclosure", "biome"}),
		residents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "enclosure_residents",
			Help:      "Number of animals living in each enclosure.",
		}, []string{"enclosure", "biome"}),
	}
	r.registry.MustRegister(r.operations, r.durations, r.remaining, r.residents)
	return r
}

// Registry exposes the registry for HTTP handlers or gathering.
func (r *PrometheusMetricsRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.operations.WithLabelValues(operation, status).Inc()
	r.durations.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveOccupancy implements OccupancyObserver.
func (r *PrometheusMetricsRecorder) ObserveOccupancy(enclosureID, biome string, remaining float64, residents int) {
	r.remaining.WithLabelValues(enclosureID, biome).Set(remaining)
	r.residents.WithLabelValues(enclosureID, biome).Set(float64(residents))
}
