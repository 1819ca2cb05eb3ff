// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Generation metrics
	RowsGenerated     *prometheus.CounterVec
	FraudTransactions *prometheus.CounterVec
	DrawsRejected     prometheus.Counter

	// Pipeline metrics
	PipelineRunsTotal *prometheus.CounterVec
	PipelineDuration  prometheus.Histogram

	// Staging metrics
	RowsStaged           *prometheus.CounterVec
	QualityCheckFailures *prometheus.CounterVec

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Health metrics
	LastSuccessfulRun prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "shield_data_lab"
	}

	return &Metrics{
		// Generation metrics
		RowsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "rows_generated_total",
			Help:      "Total number of rows generated by table",
		}, []string{"table"}),
		FraudTransactions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "fraud_transactions_total",
			Help:      "Total number of fraudulent transactions generated by pattern",
		}, []string{"fraud_type"}),
		DrawsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "draws_rejected_total",
			Help:      "Total number of draws rejected by seasonality sampling",
		}),

		// Pipeline metrics
		PipelineRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs by status",
		}, []string{"status"}),
		PipelineDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Pipeline execution duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),

		// Staging metrics
		RowsStaged: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "staging",
			Name:      "rows_loaded_total",
			Help:      "Total number of rows loaded into staging by table",
		}, []string{"table"}),
		QualityCheckFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "staging",
			Name:      "quality_check_failures_total",
			Help:      "Total number of staging quality check failures by check",
		}, []string{"check"}),

		// HTTP metrics
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status code",
		}, []string{"route", "status"}),
		HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),

		// Health metrics
		LastSuccessfulRun: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_run_timestamp",
			Help:      "Unix timestamp of the last successful pipeline run",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordRowsGenerated adds to the generated row counter for a table.
func RecordRowsGenerated(table string, n int) {
	DefaultMetrics.RowsGenerated.WithLabelValues(table).Add(float64(n))
}

// RecordFraudTransactions adds to the fraud counter for a pattern.
func RecordFraudTransactions(fraudType string, n int) {
	DefaultMetrics.FraudTransactions.WithLabelValues(fraudType).Add(float64(n))
}

// RecordDrawsRejected adds to the rejected draw counter.
func RecordDrawsRejected(n int) {
	DefaultMetrics.DrawsRejected.Add(float64(n))
}

// RecordPipelineRun records a pipeline run with its status and duration.
func RecordPipelineRun(status string, durationSeconds float64) {
	DefaultMetrics.PipelineRunsTotal.WithLabelValues(status).Inc()
	DefaultMetrics.PipelineDuration.Observe(durationSeconds)
	if status == "success" {
		DefaultMetrics.LastSuccessfulRun.SetToCurrentTime()
	}
}

// RecordRowsStaged adds to the staged row counter for a table.
func RecordRowsStaged(table string, n int64) {
	DefaultMetrics.RowsStaged.WithLabelValues(table).Add(float64(n))
}

// RecordQualityCheckFailure increments the failure counter for a check.
func RecordQualityCheckFailure(check string) {
	DefaultMetrics.QualityCheckFailures.WithLabelValues(check).Inc()
}

// RecordHTTPRequest records a served HTTP request.
func RecordHTTPRequest(route, status string, durationSeconds float64) {
	DefaultMetrics.HTTPRequests.WithLabelValues(route, status).Inc()
	DefaultMetrics.HTTPDuration.WithLabelValues(route).Observe(durationSeconds)
}
