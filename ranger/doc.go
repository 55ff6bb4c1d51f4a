/*
Package ranger initializes and manages a waypoint navigation controller with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type, constructed with [New].
A [Ranger] embeds the [*nav.Controller] it manages,
so routes and the guard are registered on it directly:

	rng, err := ranger.New()
	if err != nil {
		log.Fatal(err)
	}

	rng.On("/active/:id", showActive).Default(notFound)

	if err := rng.Guide(); err != nil {
		log.Fatal(err)
	}

[*Ranger.Guide] signals the history is ready, resolving the initial location,
and, in environments enabling the toolbox, begins the devtools web server.
By default, that server listens on [DefaultHost]:[DefaultPort] (localhost:3000).
Stop it with [*Ranger.Shutdown], cancel the context passed to [WithContext],
or send a signal [*Ranger.Guide] listens for.

# Configuration

A developer configures a Ranger through environment variables and [RangerOption]s.
Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - DEVTOOLS_ORIGINS: comma-separated origins allowed to call the devtools server from a browser, e.g., http://localhost:8080; default: none
  - DEVTOOLS_PREFIX: the path prefix the devtools endpoints are mounted under, e.g., /_waypoint; default: none
  - ENVIRONMENT: the environment the application is running in; default: DEVELOPMENT; cf. [waypoint.Environment]
  - HISTORY_SESSION: the key a shared history is stored under; default: default
  - HOST: the host the devtools server is running on; default: localhost
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - NAV_DEBUG: whether to log every location change; default: false
  - PORT: the port the devtools server should listen on; default: :3000
  - REDIS_URL: the URL of a Redis backend to keep the history in; required outside DEMO, DEVELOPMENT and TESTING
  - SENTRY_DSN: the DSN errors are reported to Sentry with
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
*/
package ranger
