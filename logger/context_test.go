package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint/logger"
)

func TestLogContextMarshalText(t *testing.T) {
	for _, tc := range []struct {
		name     string
		lc       logger.LogContext
		expected string
	}{
		{"Zero", logger.LogContext{}, "{}"},
		{"Caller-Omitted", logger.LogContext{Caller: "nav/controller.go:1"}, "{}"},
		{"Data", logger.LogContext{Data: map[string]any{"applied": true}}, `{"data":{"applied":true}}`},
		{"Error", logger.LogContext{Error: errors.New("test")}, `{"error":"test"}`},
		{"Path", logger.LogContext{Path: "/active/2"}, `{"path":"/active/2"}`},
		{
			"All",
			logger.LogContext{
				Data:    map[string]any{"prev": "/"},
				Error:   errors.New("test"),
				Path:    "/active/2",
				Session: "abc",
			},
			`{"data":{"prev":"/"},"error":"test","path":"/active/2","session":"abc"}`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			b, err := tc.lc.MarshalText()

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expected, string(b))
			require.Equal(t, tc.expected, tc.lc.String())
		})
	}
}

func TestLogContextStringBadData(t *testing.T) {
	// Arrange
	lc := logger.LogContext{Data: map[string]any{"fn": func() {}}}

	// Act
	_, err := lc.MarshalText()

	// Assert
	require.NotNil(t, err)
	require.Contains(t, lc.String(), `"error"`)
}

func TestCurrentCaller(t *testing.T) {
	var caller string
	func() { caller = logger.CurrentCaller() }()

	require.Regexp(t, `logger/context_test\.go:\d+$`, caller)
}
