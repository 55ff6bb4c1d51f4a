package waypoint

var _ Enumerable = Environment("")

// Enumerable is the interface implemented by types that can only be represented by enumerable, constant values,
// such as an [Environment] read from configuration.
type Enumerable interface {
	String() string
	Valid() error
}
