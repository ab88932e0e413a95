package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archive_http_requests_total",
			Help: "Total number of HTTP requests processed by the archive service.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "archive_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	archiveMessages = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "archive_messages_loaded",
			Help: "Number of messages in the loaded archive.",
		},
	)
	searchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "archive_searches_total",
			Help: "Total number of search queries served.",
		},
	)
	mediaRedirectsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "archive_media_redirects_total",
			Help: "Total number of media URI resolutions served.",
		},
	)
	amqpPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "archive_amqp_publish_errors_total",
			Help: "Total number of AMQP publish errors.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		archiveMessages,
		searchesTotal,
		mediaRedirectsTotal,
		amqpPublishErrorsTotal,
	)
}

func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func SetArchiveSize(n int) {
	archiveMessages.Set(float64(n))
}

func IncSearch() {
	searchesTotal.Inc()
}

func IncMediaRedirect() {
	mediaRedirectsTotal.Inc()
}

func IncAMQPPublishError() {
	amqpPublishErrorsTotal.Inc()
}
