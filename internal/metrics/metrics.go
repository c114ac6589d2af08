package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 15, 30},
		},
		[]string{"method", "endpoint"},
	)

	IntentCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_intents_total",
			Help: "Classified farmer messages by intent category",
		},
		[]string{"category"},
	)

	GenerationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_calls_total",
			Help: "Generation attempts by path (primary, fallback) and outcome",
		},
		[]string{"path", "outcome"},
	)

	KnowledgeFetchCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "knowledge_fetch_total",
			Help: "Knowledge provider fetches by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	SessionFullCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_session_full_total",
			Help: "Chat writes rejected because the session reached its size ceiling",
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			IntentCounter,
			GenerationCounter,
			KnowledgeFetchCounter,
			SessionFullCounter,
		)
	})
}

func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		RequestCounter.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
