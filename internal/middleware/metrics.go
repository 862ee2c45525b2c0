package middleware

import (
	"net/http"
	"time"

	"github.com/tasknest/tasknest/internal/metrics"
)

// Metrics returns a middleware that records request durations.
func Metrics(recorder metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			recorder.ObserveRequestDuration(time.Since(start))
		})
	}
}
