package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	providerErrors *prometheus.CounterVec
	groupResults   *prometheus.CounterVec
	lastPrice      *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
	runRecords     prometheus.Gauge
	runDuration    prometheus.Histogram
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		providerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_provider_errors_total",
				Help: "Provider call failures by provider and fault kind",
			},
			[]string{"provider", "kind"},
		),
		groupResults: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_field_group_results_total",
				Help: "Field-group outcomes by winning source (or 'failed')",
			},
			[]string{"group", "source"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockpulse_last_price",
				Help: "Last reconciled price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		runRecords: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "stockpulse_run_records",
				Help: "Records produced by the last pipeline run",
			},
		),
		runDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stockpulse_run_duration_seconds",
				Help:    "Duration of full pipeline runs",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
			},
		),
	}
}

// RecordProviderError records a provider call failure by fault kind.
func (r *Recorder) RecordProviderError(provider, kind string) {
	r.providerErrors.WithLabelValues(provider, kind).Inc()
}

// RecordGroupResult records which source won a field-group for a security.
func (r *Recorder) RecordGroupResult(group, source string) {
	r.groupResults.WithLabelValues(group, source).Inc()
}

// RecordLastPrice records the reconciled price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordRun records the size and duration of a completed run.
func (r *Recorder) RecordRun(records int, seconds float64) {
	r.runRecords.Set(float64(records))
	r.runDuration.Observe(seconds)
}
