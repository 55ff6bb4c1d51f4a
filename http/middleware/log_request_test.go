package middleware_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	waypoint "github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/middleware"
)

func TestLogRequest(t *testing.T) {
	// Arrange + Act
	actual := middleware.LogRequest(nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange
	var buf bytes.Buffer
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/push?url=%2Factive%2F2", nil)
	ctx := context.WithValue(r.Context(), waypoint.IpAddrKey, "8.8.8.8")
	ctx = context.WithValue(ctx, waypoint.RequestIDKey, "test-id")

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("ok"))
	})

	// Act
	middleware.LogRequest(quietLogger(&buf))(handler).ServeHTTP(w, r.WithContext(ctx))

	// Assert
	require.Equal(t, http.StatusAccepted, w.Code)
	require.Contains(t, buf.String(), "8.8.8.8 POST /push?url=%2Factive%2F2")
	require.Contains(t, buf.String(), `"status":202`)
	require.Contains(t, buf.String(), `"size":2`)
	require.Contains(t, buf.String(), `"request_id":"test-id"`)
}
