// Package metrics defines the Prometheus collectors of the blog and the
// /metrics handler. Collectors register on the default registry at init.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "awesome"

// HTTPRequestsTotal counts finished requests.
// Labels:
//   - method: HTTP method
//   - route: chi route pattern (e.g. "/api/blogs/{id}")
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures handler latency by route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// PersistenceAnomaliesTotal counts writes whose affected-row count was not 1.
// Labels:
//   - table: the record table
//   - op: "insert", "update" or "delete"
var PersistenceAnomaliesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "persistence_anomalies_total",
		Help:      "Writes that affected a row count other than one.",
	},
	[]string{"table", "op"},
)

// SessionRejectionsTotal counts session cookies that failed validation.
var SessionRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_rejections_total",
		Help:      "Session cookies presented but rejected.",
	},
)

// ObserveRequest records one finished request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordAnomaly matches the orm anomaly hook signature.
func RecordAnomaly(table, op string, _ int64) {
	PersistenceAnomaliesTotal.WithLabelValues(table, op).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
