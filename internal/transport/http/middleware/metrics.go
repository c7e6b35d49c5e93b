package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	opsReqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ops_http_requests_total", Help: "Ops listener requests by route group, route and status"},
		[]string{"group", "route", "method", "status"},
	)
	opsLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ops_http_request_duration_seconds",
			Help:    "Ops listener request latency by route group and route",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1},
		}, []string{"group", "route", "method"},
	)
)

func init() { prometheus.MustRegister(opsReqTotal, opsLatency) }

// Metrics counts and times requests under group. Requests that match no
// route share the "unmatched" label so scanners cannot blow up cardinality.
func Metrics(group string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		opsReqTotal.WithLabelValues(group, route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		opsLatency.WithLabelValues(group, route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
