package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studyokr",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "studyokr",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "route"},
	)

	// Chat exchanges by classified intent
	ChatExchangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studyokr",
			Subsystem: "assistant",
			Name:      "exchanges_total",
			Help:      "Total chat exchanges by intent and result",
		},
		[]string{"intent", "status"},
	)

	GoalOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studyokr",
			Subsystem: "goals",
			Name:      "operations_total",
			Help:      "Total learning goal operations",
		},
		[]string{"operation", "status"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studyokr",
			Subsystem: "export",
			Name:      "exports_total",
			Help:      "Total data exports by destination",
		},
		[]string{"destination", "status"},
	)

	S3Duration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "studyokr",
			Subsystem: "export",
			Name:      "s3_duration_seconds",
			Help:      "S3 operation duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"operation"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, route, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, route, status).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(durationSec)
}

// RecordChatExchange records one classified message
func RecordChatExchange(intent, status string) {
	ChatExchangesTotal.WithLabelValues(intent, status).Inc()
}

func RecordGoalOperation(operation, status string) {
	GoalOperationsTotal.WithLabelValues(operation, status).Inc()
}

func RecordExport(destination, status string) {
	ExportsTotal.WithLabelValues(destination, status).Inc()
}

func RecordS3Operation(operation string, durationSec float64) {
	S3Duration.WithLabelValues(operation).Observe(durationSec)
}

// Status maps an error to the status label used by every counter.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
