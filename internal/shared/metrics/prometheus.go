package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Business metrics
	triageRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_requests_total",
			Help: "Total number of triage requests by resolved risk level and result source",
		},
		[]string{"risk_level", "source"},
	)

	triageFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_fallbacks_total",
			Help: "Total number of triage requests resolved by the deterministic fallback",
		},
		[]string{"reason"},
	)

	doctorMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "doctor_matches_total",
			Help: "Total number of doctor match lookups by outcome",
		},
		[]string{"outcome"},
	)

	challengePlansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "challenge_plans_total",
			Help: "Total number of generated challenge plans by source",
		},
		[]string{"source"},
	)

	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "Language model request duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"status"},
	)

	moodSummariesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mood_summaries_total",
			Help: "Total number of mood summaries by source",
		},
		[]string{"source"},
	)

	auditEntriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_entries_total",
			Help: "Total number of audit entries recorded",
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware creates HTTP metrics middleware
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// normalizePath normalizes URL paths for metrics to avoid cardinality explosion
func normalizePath(path string) string {
	if len(path) > 100 {
		return "/api/..."
	}
	return path
}

// --- Business metric helpers ---

// RecordTriage records a completed triage request
func RecordTriage(riskLevel, source string) {
	triageRequestsTotal.WithLabelValues(riskLevel, source).Inc()
}

// RecordTriageFallback records a triage request resolved deterministically
func RecordTriageFallback(reason string) {
	triageFallbacksTotal.WithLabelValues(reason).Inc()
}

// RecordDoctorMatch records a doctor match lookup outcome
func RecordDoctorMatch(matched bool) {
	outcome := "none"
	if matched {
		outcome = "matched"
	}
	doctorMatchesTotal.WithLabelValues(outcome).Inc()
}

// RecordChallengePlan records a generated challenge plan
func RecordChallengePlan(source string) {
	challengePlansTotal.WithLabelValues(source).Inc()
}

// RecordAIRequest records a language model request duration
func RecordAIRequest(status string, duration time.Duration) {
	aiRequestDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordMoodSummary records a generated mood summary
func RecordMoodSummary(source string) {
	moodSummariesTotal.WithLabelValues(source).Inc()
}

// RecordAuditEntry records an audit entry creation
func RecordAuditEntry() {
	auditEntriesTotal.Inc()
}
