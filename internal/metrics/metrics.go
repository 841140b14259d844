package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the scoring service's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crease",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "crease",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	ballsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crease",
			Subsystem: "scoring",
			Name:      "balls_total",
			Help:      "Deliveries submitted by scorers.",
		},
		[]string{"result"},
	)

	snapshotWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crease",
			Subsystem: "sync",
			Name:      "snapshot_writes_total",
			Help:      "Snapshot writes to the shared store.",
		},
		[]string{"result"},
	)

	snapshotDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "crease",
			Subsystem: "sync",
			Name:      "snapshot_write_duration_seconds",
			Help:      "Duration of snapshot writes.",
			Buckets:   prometheus.ExponentialBuckets(0.002, 2, 12),
		},
	)

	transferClaims = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crease",
			Subsystem: "sync",
			Name:      "transfer_claims_total",
			Help:      "Transfer code redemptions by outcome.",
		},
		[]string{"result"},
	)

	liveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "crease",
			Subsystem: "scoring",
			Name:      "live_sessions",
			Help:      "Matches currently held in memory for scoring.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		ballsRecorded,
		snapshotWrites,
		snapshotDuration,
		transferClaims,
		liveSessions,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Instrument records request counts and latency by route template.
func Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		if path == "/metrics" {
			return
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordBall counts a submitted delivery: "applied", "ignored" or "rejected".
func RecordBall(result string) {
	ballsRecorded.WithLabelValues(result).Inc()
}

func RecordSnapshotWrite(success bool, duration time.Duration) {
	result := "ok"
	if !success {
		result = "error"
	}
	snapshotWrites.WithLabelValues(result).Inc()
	snapshotDuration.Observe(duration.Seconds())
}

// RecordTransferClaim counts a redemption: "ok", "invalid", "expired" or "error".
func RecordTransferClaim(result string) {
	transferClaims.WithLabelValues(result).Inc()
}

func SetLiveSessions(n int) {
	liveSessions.Set(float64(n))
}
