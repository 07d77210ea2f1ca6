package middleware

import (
	"net/http"
	"time"

	"github.com/heartmarshall/regatta-backend/pkg/metrics"
)

// Metrics records request counts and latency per route pattern. Requests that
// matched no route are recorded as "unmatched".
func Metrics(m *metrics.Manager) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.ObserveHTTP(r.Method, route, sw.status, time.Since(start))
		})
	}
}
