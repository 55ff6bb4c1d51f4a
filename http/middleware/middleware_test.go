package middleware_test

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint/http/middleware"
	"github.com/xy-planning-network/waypoint/logger"
)

func noopHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func quietLogger(w io.Writer) logger.Logger {
	return logger.New(logger.WithLogger(log.New(w, "", 0)))
}

func TestChain(t *testing.T) {
	// Arrange
	var order []string
	adapter := func(name string) middleware.Adapter {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, r)
			})
		}
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/location", nil)

	// Act
	middleware.Chain(noopHandler(), adapter("first"), adapter("second"), middleware.NoopAdapter).
		ServeHTTP(w, r)

	// Assert
	require.Equal(t, []string{"first", "second"}, order)
}
