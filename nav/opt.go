package nav

import (
	"github.com/xy-planning-network/waypoint/history"
	"github.com/xy-planning-network/waypoint/logger"
)

// An Option configures a *Controller when constructing a new one.
type Option func(*Controller)

// WithDebug logs every location change the Controller sees at the debug level.
func WithDebug(debug bool) Option {
	return func(c *Controller) {
		c.debug = debug
	}
}

// WithGuard sets the Guard the Controller starts with.
func WithGuard(g Guard) Option {
	return func(c *Controller) {
		if g != nil {
			c.guard = g
		}
	}
}

// WithLogger sets the logger.Logger the Controller uses.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		c.l = l
	}
}

// WithNotifier sets the source of signals the Controller subscribes to.
//
// By default, a Controller subscribes to the history.History it was constructed with,
// if that also implements history.Notifier.
// WithNotifier(nil) disables subscribing.
func WithNotifier(n history.Notifier) Option {
	return func(c *Controller) {
		c.notifier = n
		c.notifierSet = true
	}
}

// WithSession names the history the Controller navigates in its logs.
func WithSession(session string) Option {
	return func(c *Controller) {
		c.session = session
	}
}
