package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	registry   *prometheus.Registry
	summaryVec *prometheus.SummaryVec
	counterVec *prometheus.CounterVec
	scores     *prometheus.HistogramVec
}

func newMetrics(registry *prometheus.Registry) *metrics {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &metrics{
		registry: registry,
		summaryVec: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.95: 0.005,
					0.99: 0.001,
				},
			},
			[]string{"method", "path", "status_code"},
		),
		counterVec: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		scores: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "resume_scores",
				Help:    "Distribution of resume analysis scores",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
			[]string{"kind"},
		),
	}
}

func (m *metrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.summaryVec.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		m.counterVec.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

func (m *metrics) observeScores(match, content float64, format int) {
	m.scores.WithLabelValues("match").Observe(match)
	m.scores.WithLabelValues("content").Observe(content)
	m.scores.WithLabelValues("format").Observe(float64(format))
}
