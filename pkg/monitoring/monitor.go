package monitoring

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
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	AssessmentsScored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessments_scored_total",
			Help: "Assessments scored, by scoring method",
		},
		[]string{"method"},
	)

	IssueSeverities = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_issue_severity_total",
			Help: "Issue results produced, by severity",
		},
		[]string{"severity"},
	)

	SuggestionsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "education_suggestions_generated_total",
			Help: "Education suggestions generated, by type",
		},
		[]string{"type"},
	)

	NutritionRecommendations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrition_recommendations_generated_total",
			Help: "Nutrition recommendations generated, by priority",
		},
		[]string{"priority"},
	)

	ScoringConfigReloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_config_reloads_total",
			Help: "Scoring configuration reload attempts, by result",
		},
		[]string{"result"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_cache_lookups_total",
			Help: "Analytics cache lookups, by result",
		},
		[]string{"result"},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			AssessmentsScored,
			IssueSeverities,
			SuggestionsGenerated,
			NutritionRecommendations,
			ScoringConfigReloads,
			CacheLookups,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
