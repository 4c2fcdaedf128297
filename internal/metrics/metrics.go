package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_latency_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	EnrollmentsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "enrollments_total",
			Help: "Total successful course enrollments",
		},
	)

	CoursesCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "courses_created_total",
			Help: "Total courses created",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestLatency)
	prometheus.MustRegister(EnrollmentsTotal)
	prometheus.MustRegister(CoursesCreatedTotal)
}
