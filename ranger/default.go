package ranger

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	waypoint "github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/history"
	"github.com/xy-planning-network/waypoint/http/devtools"
	"github.com/xy-planning-network/waypoint/http/middleware"
	"github.com/xy-planning-network/waypoint/http/router"
	"github.com/xy-planning-network/waypoint/logger"
	"github.com/xy-planning-network/waypoint/nav"
)

const (
	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"
	defaultLogLvl  = logger.LogLevelInfo
	navDebugEnvVar = "NAV_DEBUG"

	// History defaults
	redisURLEnvVar        = "REDIS_URL"
	historySessionEnvVar  = "HISTORY_SESSION"
	DefaultHistorySession = "default"
	rootPath              = "/"

	// Web server defaults
	DefaultHost               = "localhost"
	hostEnvVar                = "HOST"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second

	// Devtools defaults
	devtoolsOriginsEnvVar = "DEVTOOLS_ORIGINS"
	devtoolsPrefixEnvVar  = "DEVTOOLS_PREFIX"
	devtoolsRateLimit     = 20
	devtoolsBurst         = 40
	replayTTL             = time.Hour
)

// defaultOpts returns the RangerOptions New applies before any passed to it.
func defaultOpts() []RangerOption {
	return []RangerOption{
		WithEnv(""),
		withDefaultLogger(),
		withDefaultHistory(),
		withDefaultServer(),
	}
}

// defaultLogger constructs a logger.Logger at the level LOG_LEVEL sets.
func defaultLogger(env waypoint.Environment) logger.Logger {
	return logger.New(
		logger.WithEnv(env.String()),
		logger.WithLevel(waypoint.EnvVarOrLogLevel(logLevelEnvVar, defaultLogLvl)),
	)
}

// defaultHistory connects to the Redis backend at REDIS_URL, if set,
// or keeps the history in memory when env allows.
func defaultHistory(env waypoint.Environment) (history.History, *redis.Client, error) {
	rawURL := os.Getenv(redisURLEnvVar)
	if rawURL == "" {
		if !env.CanUseMemoryHistory() {
			return nil, nil, fmt.Errorf("%w: %s required in %s", waypoint.ErrBadConfig, redisURLEnvVar, env)
		}

		return history.NewMemory(history.Entry{Path: rootPath}), nil, nil
	}

	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %s", waypoint.ErrBadConfig, redisURLEnvVar, err)
	}

	client := redis.NewClient(opts)
	session := waypoint.EnvVarOrString(historySessionEnvVar, DefaultHistorySession)

	return history.NewRedisFromClient(client, session), client, nil
}

// defaultController constructs the *nav.Controller navigating h.
func defaultController(h history.History, l logger.Logger, opts ...nav.Option) *nav.Controller {
	session := waypoint.EnvVarOrString(historySessionEnvVar, DefaultHistorySession)
	base := []nav.Option{
		nav.WithLogger(l),
		nav.WithDebug(waypoint.EnvVarOrBool(navDebugEnvVar, false)),
		nav.WithSession(session),
	}

	return nav.New(h, append(base, opts...)...)
}

// defaultRouter constructs the http.Handler serving the devtools endpoints for c
// under DEVTOOLS_PREFIX, answering cross-origin requests from DEVTOOLS_ORIGINS.
func defaultRouter(env waypoint.Environment, l logger.Logger, c *nav.Controller, h history.History, client *redis.Client) http.Handler {
	var cache middleware.IdempotencyCacher = middleware.NewReplayMap(replayTTL)
	if client != nil {
		cache = middleware.NewReplayRedis(client, replayTTL)
	}

	r := router.New(env)
	r.OnEveryRequest(
		middleware.RateLimit(middleware.NewVisitors(devtoolsRateLimit, devtoolsBurst)),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(l),
	)

	prefix := devtoolsPrefix()
	mount := r
	if prefix != "" {
		mount = r.Subrouter(prefix)
	}

	devtools.New(c, h,
		devtools.WithBase(prefix),
		devtools.WithLogger(l),
		devtools.WithIdempotencyCache(cache),
	).Register(mount)

	// NOTE: CORS wraps the whole router so preflight requests
	// are answered before routing rejects the OPTIONS method
	return middleware.Chain(r, middleware.CORS(devtoolsOrigins()...))
}

// devtoolsPrefix reads DEVTOOLS_PREFIX as a path prefix without a trailing slash,
// e.g., "_waypoint/" becomes "/_waypoint".
func devtoolsPrefix() string {
	prefix := strings.Trim(waypoint.EnvVarOrString(devtoolsPrefixEnvVar, ""), "/ ")
	if prefix == "" {
		return ""
	}

	return "/" + prefix
}

// devtoolsOrigins reads the comma-separated DEVTOOLS_ORIGINS.
func devtoolsOrigins() []string {
	var origins []string
	for _, o := range strings.Split(os.Getenv(devtoolsOriginsEnvVar), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return origins
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context) *http.Server {
	port := waypoint.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         waypoint.EnvVarOrString(hostEnvVar, DefaultHost) + port,
		IdleTimeout:  waypoint.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  waypoint.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: waypoint.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
