// Package metrics exposes Prometheus collectors for the HTTP surface and
// the settlement engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripledger_http_requests_total",
		Help: "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tripledger_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// SettlementsExecuted counts successful settlement executions.
	SettlementsExecuted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripledger_settlements_executed_total",
		Help: "Settlement executions that committed successfully.",
	})

	// SettlementPaymentsCreated counts payments created by settlement
	// executions.
	SettlementPaymentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripledger_settlement_payments_created_total",
		Help: "Payment records created by settlement executions.",
	})
)

// Handler returns the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Instrument records request counts and latencies, labeled by the chi route
// pattern so per-trip paths don't explode cardinality.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
