package httpx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var histogramBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

func (r *Router) initMetrics() {
	r.registry = prometheus.NewRegistry()
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r.requestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matcheat",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "route", "status"})

	r.requestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "matcheat",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   histogramBuckets,
	}, []string{"method", "route"})

	r.gateRejections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matcheat",
		Subsystem: "http",
		Name:      "token_rejections_total",
		Help:      "Requests turned away by the token gate.",
	}, []string{"reason"})

	r.registry.MustRegister(r.requestTotal, r.requestLatency, r.gateRejections)
}

func (r *Router) metricsHandler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Router) recordRequest(method, route string, status int, elapsed time.Duration) {
	r.requestTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.requestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
