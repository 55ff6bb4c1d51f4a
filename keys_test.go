package waypoint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint"
)

func TestKeyString(t *testing.T) {
	require.Equal(t, "waypoint context key: RequestIDKey", waypoint.RequestIDKey.String())
	require.Equal(t, "waypoint context key: ", waypoint.Key("").String())
}

func TestKeyContextValue(t *testing.T) {
	// Arrange
	ctx := context.WithValue(context.Background(), waypoint.ResolutionIDKey, "abc")

	// Act
	val, ok := ctx.Value(waypoint.ResolutionIDKey).(string)

	// Assert
	require.True(t, ok)
	require.Equal(t, "abc", val)
	require.Nil(t, ctx.Value(waypoint.Key("ResolutionIDKey ")))
}
