// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imagehost_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	RequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "imagehost_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	UploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imagehost_uploads_total",
			Help: "Uploads by storage location and outcome.",
		},
		[]string{"location", "status"},
	)
	UploadedBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "imagehost_upload_size_bytes",
			Help:    "Size of stored uploads.",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
		},
		[]string{"location"},
	)
	DeletesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imagehost_deletes_total",
			Help: "Deletions by storage location and outcome.",
		},
		[]string{"location", "status"},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationSeconds)
	prometheus.MustRegister(UploadsTotal)
	prometheus.MustRegister(UploadedBytes)
	prometheus.MustRegister(DeletesTotal)
	prometheus.MustRegister(prometheus.NewBuildInfoCollector())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
