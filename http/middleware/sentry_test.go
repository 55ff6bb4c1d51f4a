package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	waypoint "github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/middleware"
)

func TestReportPanic(t *testing.T) {
	// Arrange + Act
	actual := middleware.ReportPanic(waypoint.Development)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/push", nil)
	handler := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	// Act
	require.NotPanics(t, func() { middleware.ReportPanic(waypoint.Testing)(handler).ServeHTTP(w, r) })

	// Assert
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
