package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "telemonitoring_http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telemonitoring_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "telemonitoring_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	ReadingsRegistered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "telemonitoring_readings_registered_total",
		Help: "Vital-sign readings durably stored.",
	})

	AlertsRaised = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telemonitoring_alerts_raised_total",
			Help: "Alerts produced by evaluation, by kind.",
		},
		[]string{"kind"},
	)

	Deliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telemonitoring_notification_deliveries_total",
			Help: "Per-recipient notification attempts, by result.",
		},
		[]string{"result"},
	)

	ThresholdVersions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "telemonitoring_threshold_versions_total",
		Help: "Threshold records appended.",
	})

	AuditFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "telemonitoring_audit_failures_total",
		Help: "Audit entries that could not be written.",
	})
)

var registerOnce sync.Once

// Init registers every collector in the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpInFlight, httpRequestsTotal, httpRequestDuration,
			ReadingsRegistered, AlertsRaised, Deliveries, ThresholdVersions, AuditFailures,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Instrument records RPS, latency and in-flight requests per matched route.
func Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		httpInFlight.Inc()
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpInFlight.Dec()
	}
}
