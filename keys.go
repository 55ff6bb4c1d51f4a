package waypoint

type Key string

const (
	// IpAddrKey stashes the IP address of an HTTP request made to the devtools server.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// ResolutionIDKey stashes the unique UUID of the navigation resolution
	// a guard is being consulted for.
	ResolutionIDKey Key = "ResolutionIDKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "waypoint context key: " + string(k)
}
