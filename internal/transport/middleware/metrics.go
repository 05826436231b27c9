package middleware

import (
	"context"
	"net/http"
	"strings"
)

// unmatchedRoute labels requests no mux pattern matched, keeping raw paths
// out of metric labels.
const unmatchedRoute = "unmatched"

type requestObserver interface {
	ObserveHTTP(method, path string, status int)
}

type routeRecord struct {
	pattern string
}

type routeKey struct{}

// Metrics returns middleware that counts every response by method, matched
// route and status code. Routes are reported by muxes wrapped in Routed.
func Metrics(obs requestObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &routeRecord{}
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), routeKey{}, rec)))

			route := rec.pattern
			if route == "" {
				route = unmatchedRoute
			}
			obs.ObserveHTTP(r.Method, route, sw.status)
		})
	}
}

// Routed wraps a ServeMux and reports the pattern it matched to Metrics. With
// nested muxes the innermost match wins.
func Routed(mux http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r)

		rec, ok := r.Context().Value(routeKey{}).(*routeRecord)
		if !ok || rec.pattern != "" || r.Pattern == "" {
			return
		}
		rec.pattern = r.Pattern
		if _, path, found := strings.Cut(r.Pattern, " "); found {
			rec.pattern = path
		}
	})
}
