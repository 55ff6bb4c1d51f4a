package waypoint_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/logger"
)

func TestEnvironmentValid(t *testing.T) {
	require.Nil(t, waypoint.Development.Valid())
	require.Nil(t, waypoint.Production.Valid())
	require.ErrorIs(t, waypoint.Environment("LOCAL").Valid(), waypoint.ErrNotValid)
	require.ErrorIs(t, waypoint.Environment("").Valid(), waypoint.ErrNotValid)
}

func TestEnvironmentToggles(t *testing.T) {
	require.True(t, waypoint.Development.CanUseMemoryHistory())
	require.False(t, waypoint.Production.CanUseMemoryHistory())
	require.False(t, waypoint.Staging.CanUseMemoryHistory())
	require.True(t, waypoint.Staging.ToolboxEnabled())
	require.False(t, waypoint.Production.ToolboxEnabled())
}

func TestEnvVarOr(t *testing.T) {
	key := "WAYPOINT_TEST_ENV_VAR"

	t.Run("Bool", func(t *testing.T) {
		t.Setenv(key, "TRUE")
		require.True(t, waypoint.EnvVarOrBool(key, false))

		t.Setenv(key, "false")
		require.False(t, waypoint.EnvVarOrBool(key, true))

		t.Setenv(key, "yes")
		require.True(t, waypoint.EnvVarOrBool(key, true))
	})

	t.Run("Duration", func(t *testing.T) {
		t.Setenv(key, "3s")
		require.Equal(t, 3*time.Second, waypoint.EnvVarOrDuration(key, time.Second))

		t.Setenv(key, "three")
		require.Equal(t, time.Second, waypoint.EnvVarOrDuration(key, time.Second))
	})

	t.Run("Env", func(t *testing.T) {
		t.Setenv(key, "staging")
		require.Equal(t, waypoint.Staging, waypoint.EnvVarOrEnv(key, waypoint.Development))

		t.Setenv(key, "LOCAL")
		require.Equal(t, waypoint.Development, waypoint.EnvVarOrEnv(key, waypoint.Development))

		t.Setenv(key, "")
		require.Equal(t, waypoint.Testing, waypoint.EnvVarOrEnv(key, waypoint.Testing))
	})

	t.Run("Int", func(t *testing.T) {
		t.Setenv(key, "42")
		require.Equal(t, 42, waypoint.EnvVarOrInt(key, 1))

		t.Setenv(key, "4.2")
		require.Equal(t, 1, waypoint.EnvVarOrInt(key, 1))
	})

	t.Run("LogLevel", func(t *testing.T) {
		t.Setenv(key, "warn")
		require.Equal(t, logger.LogLevelWarn, waypoint.EnvVarOrLogLevel(key, logger.LogLevelInfo))

		t.Setenv(key, "LOUD")
		require.Equal(t, logger.LogLevelInfo, waypoint.EnvVarOrLogLevel(key, logger.LogLevelInfo))
	})

	t.Run("String", func(t *testing.T) {
		t.Setenv(key, "")
		require.Equal(t, "def", waypoint.EnvVarOrString(key, "def"))

		t.Setenv(key, "val")
		require.Equal(t, "val", waypoint.EnvVarOrString(key, "def"))
	})
}
