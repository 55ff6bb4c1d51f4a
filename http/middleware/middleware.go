package middleware

import (
	"net/http"
)

// An Adapter wraps an http.Handler with behavior shared across devtools endpoints,
// e.g., request ids, rate limits, or replaying idempotent navigations.
// Adapters compose with Chain.
type Adapter func(http.Handler) http.Handler

// Chain glues the set of adapters to the handler.
// The first adapter is the outermost, seeing a request before any other.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	//NOTE: Loop in reverse to preserve middleware order
	for i := len(adapters) - 1; i >= 0; i-- {
		handler = adapters[i](handler)
	}

	return handler
}

// NoopAdapter passes the request on to the handler untouched.
func NoopAdapter(h http.Handler) http.Handler { return h }
