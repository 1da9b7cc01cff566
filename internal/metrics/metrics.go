package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/lunorlabs/lunor/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lunor",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lunor",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Session metrics

	SessionValidationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lunor",
		Name:      "session_validations_total",
		Help:      "Session cookie validations, by outcome.",
	}, []string{"outcome"}) // valid | invalid

	// Cart and checkout metrics

	CartAddsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lunor",
		Name:      "cart_adds_total",
		Help:      "Total add-to-cart operations.",
	})

	CheckoutsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lunor",
		Name:      "checkouts_total",
		Help:      "Total checkouts (cart clears).",
	})

	// Catalog metrics

	CatalogQueryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lunor",
		Name:      "catalog_query_duration_seconds",
		Help:      "Duration of catalog queries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"query"})

	CatalogQueryErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lunor",
		Name:      "catalog_query_errors_total",
		Help:      "Catalog queries that failed and degraded to an empty result.",
	}, []string{"query"})

	// Featured cache

	FeaturedRefreshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "lunor",
		Name:      "featured_refresh_duration_seconds",
		Help:      "Time taken to refresh the featured-products snapshot.",
		Buckets:   prometheus.DefBuckets,
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		SessionValidationsTotal,
		CartAddsTotal,
		CheckoutsTotal,
		CatalogQueryDuration,
		CatalogQueryErrors,
		FeaturedRefreshDuration,
	)
}

// NewServer serves Prometheus metrics and the health endpoints on a side
// listener, away from the storefront port.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	if result.Status != "up" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(result)
}
