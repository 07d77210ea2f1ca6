package middleware

import (
	"net/http"
	"slices"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes mws so the first runs outermost: Chain(a, b)(h) is a(b(h)).
// Nil entries are skipped, so optional per-route middleware can stay unset.
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for _, mw := range slices.Backward(mws) {
			if mw != nil {
				h = mw(h)
			}
		}
		return h
	}
}
