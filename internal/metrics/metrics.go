// Package metrics provides Prometheus instrumentation for the calc engine.
package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CalculationsTotal counts evaluations, partitioned by calculator kind.
	CalculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "calclab_calculations_total",
		Help: "Total number of calculator evaluations",
	}, []string{"kind"})

	// NonFiniteResults counts evaluations whose value was NaN or ±Inf.
	NonFiniteResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "calclab_non_finite_results_total",
		Help: "Evaluations that produced NaN or infinite values",
	}, []string{"kind"})

	// CalculationLatency tracks evaluate-and-record latency.
	CalculationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "calclab_calculation_latency_seconds",
		Help:    "Evaluation latency in seconds, including persistence",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	// WebSocketClients tracks connected WebSocket clients.
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "calclab_websocket_clients",
		Help: "Number of connected WebSocket clients",
	})

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "calclab_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "calclab_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})

	// ThrottleRejections counts requests rejected by the per-client limiter.
	ThrottleRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "calclab_throttle_rejections_total",
		Help: "Requests rejected by the per-client rate limiter",
	})

	// PrunedCalculations counts records removed by the retention job.
	PrunedCalculations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "calclab_pruned_calculations_total",
		Help: "Calculations deleted by retention",
	})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		path := routePattern(r)
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern prefers the matched chi pattern to keep label cardinality
// bounded (ids and kinds stay out of the path label).
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets the WebSocket upgrader take over the connection.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("metrics: response writer does not support hijacking")
	}
	return h.Hijack()
}
