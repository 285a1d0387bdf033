package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes settlement-level instruments.
type Metrics struct {
	SettlementsTotal  *prometheus.CounterVec
	SettledAmount     prometheus.Counter
	RewardPointsTotal prometheus.Counter
	SoftFailures      *prometheus.CounterVec
}

const (
	OutcomeSettled   = "settled"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
)

func New() *Metrics {
	return &Metrics{
		SettlementsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nepfund",
			Name:      "settlements_total",
			Help:      "Donation settlements by outcome.",
		}, []string{"outcome"}),
		SettledAmount: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "nepfund",
			Name:      "settled_amount_total",
			Help:      "Total donated amount settled, in rupees.",
		}),
		RewardPointsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "nepfund",
			Name:      "reward_points_total",
			Help:      "Total reward points awarded.",
		}),
		SoftFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nepfund",
			Name:      "settlement_soft_failures_total",
			Help:      "Best-effort settlement steps that failed and were skipped.",
		}, []string{"step"}),
	}
}

// HTTPMetrics records request durations per route.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nepfund",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.duration.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
