package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Check outcomes.
const (
	OutcomeNormal = "normal"
	OutcomeAlert  = "alert"
	OutcomeError  = "error"
)

var (
	ChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitals_checks_total",
			Help: "Total number of vital sign checks",
		},
		[]string{"vital", "outcome"},
	)

	NotifyFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vitals_notify_failures_total",
			Help: "Total number of alerts the notifier failed to deliver",
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vitals_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route", "status"},
	)
)

// RecordCheck counts a single check by its outcome.
func RecordCheck(vital string, alerted bool, err error) {
	outcome := OutcomeNormal
	switch {
	case err != nil:
		outcome = OutcomeError
	case alerted:
		outcome = OutcomeAlert
	}
	ChecksTotal.WithLabelValues(vital, outcome).Inc()
}
