package middleware

import (
	"net/http"
	"time"

	"ticket-service/pkg/metrics"
)

// Metrics records request count and latency labelled by the chi route pattern,
// so path parameters do not explode label cardinality.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newStatusRecorder(w)

			next.ServeHTTP(rw, r)

			m.ObserveHTTPRequest(r.Method, routePattern(r), rw.status, time.Since(start))
		})
	}
}
