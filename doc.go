/*
Package waypoint holds the configuration and error vocabulary shared by the packages
making up a waypoint navigation controller.

The controller itself lives in package nav.
It resolves URL changes against the routes registered in package route,
reading and writing locations through a history adapter from package history.

Configuration is read from the environment with the EnvVarOr family of functions,
using an [Environment] to toggle development conveniences like the devtools [Toolbox].
*/
package waypoint
