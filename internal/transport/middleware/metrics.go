package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

//go:generate moq -out request_observer_mock_test.go -pkg middleware . requestObserver

type requestObserver interface {
	RequestStarted() func()
	ObserveRequest(method, route string, status int, d time.Duration)
}

// unmatchedRoute labels requests no route pattern matched, keeping label
// cardinality bounded.
const unmatchedRoute = "unmatched"

// Metrics records request counts, latency and in-flight requests labelled by
// chi route pattern. It must be installed with chi's Use so the route
// context exists.
func Metrics(obs requestObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			done := obs.RequestStarted()
			defer done()

			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			route := unmatchedRoute
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			obs.ObserveRequest(r.Method, route, sw.status, time.Since(start))
		})
	}
}
