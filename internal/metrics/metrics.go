package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simple_twitter_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "simple_twitter_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// FanoutTasks observes how many count lookups one aggregation issued.
	FanoutTasks = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "simple_twitter_feed_fanout_tasks",
			Help:    "Concurrent count lookups issued per feed aggregation",
			Buckets: prometheus.ExponentialBuckets(2, 2, 10),
		},
		[]string{"view"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration, FanoutTasks)
}
