/*
Package logger provides logging functionality to a waypoint controller by defining the required behavior in [Logger]
and providing an implementation of it with [WaypointLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [WaypointLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*WaypointLogger.Warn], [*WaypointLogger.Error], and [*WaypointLogger.Fatal] produce messages.

# WaypointLogger

Log messages emitted by [WaypointLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2024/04/28 15:55:21 [DEBUG] waypoint/nav/controller.go:143 'location change' log_context: {"path":"/active/2"}

The log context is a JSON-encoded [LogContext].
It carries the path being navigated to, the history session, an error, and any other data
inessential to the message proper.

# SentryLogger

When SENTRY_DSN is set, [New] wraps the [WaypointLogger] in a [SentryLogger],
which ships the error in a [LogContext] to Sentry for Warn, Error, and Fatal messages.
*/
package logger
