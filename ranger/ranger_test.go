package ranger_test

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	waypoint "github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/history"
	"github.com/xy-planning-network/waypoint/logger"
	"github.com/xy-planning-network/waypoint/ranger"
	"github.com/xy-planning-network/waypoint/route"
)

func quiet() ranger.RangerOption {
	return ranger.WithLogger(logger.New(logger.WithLogger(log.New(io.Discard, "", 0))))
}

func location(t *testing.T, h history.History) string {
	t.Helper()
	loc, err := h.Location(context.Background())
	require.Nil(t, err)
	return loc.Path
}

func TestNewDefaults(t *testing.T) {
	// Arrange
	t.Setenv("REDIS_URL", "")

	// Act
	rng, err := ranger.New(ranger.WithEnv(waypoint.Testing.String()), quiet())

	// Assert
	require.Nil(t, err)
	require.Equal(t, waypoint.Testing, rng.Env())
	require.IsType(t, new(history.Memory), rng.EmitHistory())
	require.NotNil(t, rng.EmitLogger())
	require.True(t, rng.Subscribed())
}

func TestNewRequiresRedis(t *testing.T) {
	// Arrange
	t.Setenv("REDIS_URL", "")

	// Act
	_, err := ranger.New(ranger.WithEnv(waypoint.Production.String()), quiet())

	// Assert
	require.ErrorIs(t, err, waypoint.ErrBadConfig)
}

func TestNewBadRedisURL(t *testing.T) {
	// Arrange
	t.Setenv("REDIS_URL", "not a url")

	// Act
	_, err := ranger.New(ranger.WithEnv(waypoint.Testing.String()), quiet())

	// Assert
	require.ErrorIs(t, err, waypoint.ErrBadConfig)
}

func TestWithEnvFallback(t *testing.T) {
	// Arrange
	t.Setenv("ENVIRONMENT", "DEMO")

	// Act
	rng, err := ranger.New(ranger.WithEnv("nope"), quiet())

	// Assert
	require.Nil(t, err)
	require.Equal(t, waypoint.Demo, rng.Env())
}

func TestHandler(t *testing.T) {
	// Arrange
	m := history.NewMemory(history.Entry{Path: "/"})
	rng, err := ranger.New(ranger.WithEnv(waypoint.Testing.String()), ranger.WithHistory(m), quiet())
	require.Nil(t, err)

	var ids []string
	rng.On("/active/:id", func(n route.Navigation) { ids = append(ids, n.Params["id"]) })

	// Act
	w := httptest.NewRecorder()
	rng.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/push?url=%2Factive%2F5", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"5"}, ids)
	require.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var body struct {
		Data struct {
			Committed bool `json:"committed"`
		} `json:"data"`
	}
	require.Nil(t, json.NewDecoder(w.Body).Decode(&body))
	require.True(t, body.Data.Committed)
}

func TestHandlerPrefix(t *testing.T) {
	// Arrange
	t.Setenv("DEVTOOLS_PREFIX", "_waypoint/")
	m := history.NewMemory(history.Entry{Path: "/"})
	rng, err := ranger.New(ranger.WithEnv(waypoint.Testing.String()), ranger.WithHistory(m), quiet())
	require.Nil(t, err)
	rng.On("/about", func(route.Navigation) {})

	// Act
	w := httptest.NewRecorder()
	rng.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/_waypoint/toolbox", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data waypoint.Toolbox `json:"data"`
	}
	require.Nil(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body.Data, 2)
	require.Equal(t, "/_waypoint/push?url=%2Fabout", body.Data[0].Actions[0].URL)
	for _, tool := range body.Data {
		for _, action := range tool.Actions {
			require.True(t, strings.HasPrefix(action.URL, "/_waypoint/"), action.URL)
		}
	}

	w = httptest.NewRecorder()
	rng.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/toolbox", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerCORS(t *testing.T) {
	// Arrange
	t.Setenv("DEVTOOLS_ORIGINS", "http://localhost:8080, https://tools.example.com")
	m := history.NewMemory(history.Entry{Path: "/"})
	rng, err := ranger.New(ranger.WithEnv(waypoint.Testing.String()), ranger.WithHistory(m), quiet())
	require.Nil(t, err)

	preflight := httptest.NewRequest(http.MethodOptions, "/push?url=%2Fabout", nil)
	preflight.Header.Set("Origin", "https://tools.example.com")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)

	push := httptest.NewRequest(http.MethodPost, "/push?url=%2Fabout", nil)
	push.Header.Set("Origin", "http://localhost:8080")

	// Act
	pw := httptest.NewRecorder()
	rng.Handler().ServeHTTP(pw, preflight)

	w := httptest.NewRecorder()
	rng.Handler().ServeHTTP(w, push)

	// Assert
	require.Equal(t, http.StatusOK, pw.Code)
	require.Equal(t, "https://tools.example.com", pw.Header().Get("Access-Control-Allow-Origin"))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "http://localhost:8080", w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "/about", location(t, m))
}

func TestGuide(t *testing.T) {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())
	m := history.NewMemory(history.Entry{Path: "/active/1"})
	rng, err := ranger.New(
		ranger.WithContext(ctx),
		ranger.WithEnv(waypoint.Testing.String()),
		ranger.WithHistory(m),
		ranger.WithServer(&http.Server{Addr: "127.0.0.1:0"}),
		quiet(),
	)
	require.Nil(t, err)

	resolved := make(chan string, 1)
	rng.On("/active/:id", func(n route.Navigation) { resolved <- n.Params["id"] })

	done := make(chan error, 1)

	// Act
	go func() { done <- rng.Guide() }()

	// Assert
	select {
	case id := <-resolved:
		require.Equal(t, "1", id)
	case <-time.After(time.Second):
		t.Fatal("initial location never resolved")
	}

	cancel()
	select {
	case err := <-done:
		require.Nil(t, err)
	case <-time.After(time.Second):
		t.Fatal("Guide never returned")
	}

	require.False(t, rng.Subscribed())
	require.Nil(t, rng.Shutdown())
}
