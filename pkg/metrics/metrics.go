// Package metrics exposes Prometheus instrumentation for the API server:
// HTTP request counts/latencies and cache hit/miss counters.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the collectors so construction stays explicit and
// injectable (no package-level mutable state).
type Registry struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	cacheRequestsTotal  *prometheus.CounterVec
}

// NewRegistry creates and registers all collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())

	r := &Registry{
		registry: reg,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookshelf_http_requests_total",
				Help: "HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bookshelf_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		cacheRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookshelf_cache_requests_total",
				Help: "Cache lookups by cache name and result (hit|miss|error).",
			},
			[]string{"cache", "result"},
		),
	}

	reg.MustRegister(r.httpRequestsTotal, r.httpRequestDuration, r.cacheRequestsTotal)
	return r
}

// ObserveCache records the outcome of a cache lookup.
// result must be one of "hit", "miss" or "error".
func (r *Registry) ObserveCache(cache, result string) {
	r.cacheRequestsTotal.WithLabelValues(cache, result).Inc()
}

// GinMiddleware instruments every request with count and latency.
func (r *Registry) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		r.httpRequestsTotal.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(c.Writer.Status()),
		).Inc()
		r.httpRequestDuration.WithLabelValues(
			c.Request.Method, route,
		).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the /metrics scrape endpoint.
func (r *Registry) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
