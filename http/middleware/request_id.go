package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	waypoint "github.com/xy-planning-network/waypoint"
)

// RequestIDHeader echoes the ID RequestID assigned back to the client.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under waypoint.RequestIDKey
// and sets it as the RequestIDHeader of the response.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set(RequestIDHeader, id)

			ctx := context.WithValue(r.Context(), waypoint.RequestIDKey, id)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
