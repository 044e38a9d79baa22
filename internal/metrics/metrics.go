// Package metrics exposes Prometheus instrumentation for the HTTP
// surface and the domain counters the dashboards track.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"prepagent/internal/models"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prepagent",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "prepagent",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	httpInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "prepagent",
		Name:      "http_in_flight_requests",
		Help:      "Current number of in-flight HTTP requests",
	})

	attemptsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prepagent",
		Name:      "attempts_recorded_total",
		Help:      "Solution attempts recorded, by verdict",
	}, []string{"verdict"})

	sessionsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prepagent",
		Name:      "mock_sessions_finished_total",
		Help:      "Mock sessions reaching a terminal status",
	}, []string{"status"})

	reviewsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "prepagent",
		Name:      "reviews_completed_total",
		Help:      "Spaced-repetition reviews completed",
	})
)

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// Middleware records request metrics. The chi route pattern is used as
// the route label so path parameters don't explode cardinality.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			httpInFlight.Inc()
			defer httpInFlight.Dec()

			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			labels := prometheus.Labels{
				"method": r.Method,
				"route":  route,
				"status": strconv.Itoa(rec.status),
			}
			httpRequests.With(labels).Inc()
			httpLatency.With(labels).Observe(time.Since(start).Seconds())
		})
	}
}

// CountAttempt records one evaluated attempt.
func CountAttempt(verdict models.Verdict) {
	attemptsRecorded.WithLabelValues(string(verdict)).Inc()
}

// CountSessionFinished records one terminal session transition.
func CountSessionFinished(status models.SessionStatus) {
	sessionsFinished.WithLabelValues(string(status)).Inc()
}

// CountReview records one completed spaced-repetition review.
func CountReview() {
	reviewsCompleted.Inc()
}

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
