package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes mws so the first one is outermost:
// Chain(a, b)(h) == a(b(h)).
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			if mws[i] != nil {
				h = mws[i](h)
			}
		}
		return h
	}
}

// When returns mw if enabled is true and a pass-through otherwise, so optional
// layers such as rate limiting can sit in a Chain literal.
func When(enabled bool, mw Middleware) Middleware {
	if !enabled || mw == nil {
		return nil
	}
	return mw
}
