package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsPath = "/metrics"

var (
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	ItemsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "items_created_total",
		Help: "Total number of items created",
	})
	ItemsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "items_deleted_total",
		Help: "Total number of items deleted",
	})
)

// RoutePath labels requests by their route template so /items/1 and /items/2 share a series.
func RoutePath(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unmatched"
}

func Middleware(c *gin.Context) {
	if c.Request.URL.Path == metricsPath {
		c.Next()
		return
	}
	start := time.Now()
	c.Next()
	duration := time.Since(start).Seconds()
	path := RoutePath(c)
	status := strconv.Itoa(c.Writer.Status())
	RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	RequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
}

func Register(r gin.IRoutes) {
	r.GET(metricsPath, gin.WrapH(promhttp.Handler()))
}
