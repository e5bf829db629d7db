// Package metrics collects and exposes Prometheus metrics for the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
}

// NewCollector creates a Collector with its own registry so tests can
// instantiate it repeatedly without duplicate-registration panics.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crm_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "crm_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(c.requestsTotal, c.requestDuration)
	return c
}

// Middleware records every request against the matched route template
// (not the raw path, to keep label cardinality bounded).
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		c.requestsTotal.WithLabelValues(
			ctx.Request.Method,
			route,
			strconv.Itoa(ctx.Writer.Status()),
		).Inc()
		c.requestDuration.Observe(time.Since(start).Seconds())
	}
}

// Handler serves the /metrics endpoint.
func (c *Collector) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
