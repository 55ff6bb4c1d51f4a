package resp

import "github.com/xy-planning-network/waypoint/logger"

// A ResponderOptFn configures a *Responder when constructing a new one.
type ResponderOptFn func(*Responder)

// WithLogger sets the logger.Logger the Responder reports errors to.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}
