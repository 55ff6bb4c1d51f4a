package nav

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/xy-planning-network/waypoint/history"
	"github.com/xy-planning-network/waypoint/logger"
	"github.com/xy-planning-network/waypoint/route"
)

// A Snapshot is the last location a Controller committed,
// and what it reverts the history to when a Guard rejects a navigation.
type Snapshot struct {
	// URL is the path as the history stored it.
	URL   string
	State any
}

// A Controller navigates a history.History,
// resolving every location change against its route table.
//
// A Controller is safe for concurrent use.
// Handlers, the always-handler, and the Guard are called without any lock held,
// so they may call back into the Controller.
type Controller struct {
	h      history.History
	routes *route.Table

	l       logger.Logger
	debug   bool
	session string

	notifier    history.Notifier
	notifierSet bool
	subs        subscription

	// signaled tracks resolutions started by history signals.
	signaled sync.WaitGroup

	mu       sync.Mutex
	guard    Guard
	snap     *Snapshot
	pending  *resolution
	disposed bool
}

// New constructs a *Controller navigating h,
// subscribing to its signals if h is also a history.Notifier.
func New(h history.History, opts ...Option) *Controller {
	c := &Controller{
		h:      h,
		routes: route.NewTable(),
		guard:  Allow,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.l == nil {
		c.l = logger.New()
	}

	if !c.notifierSet {
		if n, ok := h.(history.Notifier); ok {
			c.notifier = n
		}
	}

	c.Subscribe()

	return c
}

// On registers handler for paths matching the template pattern,
// e.g., "/users/:id" or "/files/*".
//
// A pattern that does not compile is logged and registered anyway;
// resolving a navigation that reaches it fails with route.ErrBadPattern.
func (c *Controller) On(pattern string, handler route.HandlerFunc) *Controller {
	return c.OnPattern(route.Template(pattern), handler)
}

// OnRegexp registers handler for paths matching re.
// Every capture group of re must be named.
func (c *Controller) OnRegexp(re *regexp.Regexp, handler route.HandlerFunc) *Controller {
	return c.OnPattern(route.Regexp(re), handler)
}

// OnPattern registers handler for paths matching p.
func (c *Controller) OnPattern(p route.Pattern, handler route.HandlerFunc) *Controller {
	if err := c.routes.On(p, handler); err != nil {
		c.l.Error("registering route", &logger.LogContext{
			Caller:  logger.CurrentCaller(),
			Data:    map[string]any{"pattern": p.String()},
			Error:   err,
			Session: c.session,
		})
	}

	return c
}

// Default registers handler for every path.
// Routes registered after it are never reached.
func (c *Controller) Default(handler route.HandlerFunc) *Controller {
	return c.OnPattern(route.Template(""), handler)
}

// Always sets fn to be called with the path of every committed navigation,
// whether or not a route matched.
func (c *Controller) Always(fn route.AlwaysFunc) *Controller {
	c.routes.Always(fn)
	return c
}

// Resolve sets the Guard consulted before committing any navigation.
// A nil Guard resets the Controller to Allow.
//
// A navigation already resolving keeps the Guard it started with.
func (c *Controller) Resolve(g Guard) *Controller {
	if g == nil {
		g = Allow
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.guard = g

	return c
}

// PushState navigates to url, storing state with the new history entry.
//
// The current location becomes the Snapshot to revert to,
// and url is pushed onto the history, or replaces the current entry if url is already its path.
// PushState then resolves the new location,
// reporting whether it committed.
//
// If another navigation is resolving, PushState still writes the history
// but returns false without resolving.
func (c *Controller) PushState(ctx context.Context, url string, state any) (bool, error) {
	return c.push(ctx, url, state, false)
}

// ReplaceState replaces the current history entry with url and state,
// then resolves the new location, reporting whether it committed.
//
// If another navigation is resolving, ReplaceState waits for it
// and returns its outcome.
func (c *Controller) ReplaceState(ctx context.Context, url string, state any) (bool, error) {
	c.mu.Lock()
	loc, err := c.h.Location(ctx)
	if err != nil {
		c.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrHistory, err)
	}

	e := history.Entry{Path: url, Title: loc.Title, State: state}
	if err := c.h.Replace(ctx, e); err != nil {
		c.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrHistory, err)
	}

	return c.resolveLocked(ctx, e, false)
}

// ApplyState resolves the current location as one that already happened,
// e.g., when starting up on a location the Controller did not navigate to.
// Handlers receive a route.Navigation with Applied set.
//
// The current location becomes the Snapshot to revert to.
// If another navigation is resolving, ApplyState waits for it
// and returns its outcome.
func (c *Controller) ApplyState(ctx context.Context) (bool, error) {
	c.mu.Lock()
	loc, err := c.h.Location(ctx)
	if err != nil {
		c.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrHistory, err)
	}

	c.snap = &Snapshot{URL: loc.Path, State: loc.State}

	return c.resolveLocked(ctx, loc, true)
}

// PopState steps the history back one entry.
// The resulting location change is resolved when the history signals it.
func (c *Controller) PopState(ctx context.Context) error {
	if err := c.h.Back(ctx); err != nil {
		return fmt.Errorf("%w: %s", ErrHistory, err)
	}

	return nil
}

// Dispose clears the Snapshot and stops listening to history signals.
// Signals a history delivers after Dispose are ignored,
// even from listeners it copied before detaching them.
// Routes and the Guard stay registered.
func (c *Controller) Dispose() {
	c.mu.Lock()
	c.snap = nil
	c.disposed = true
	c.mu.Unlock()

	c.subs.detach()
}

// Snapshot returns the last committed location,
// reporting false if none has been yet.
func (c *Controller) Snapshot() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap == nil {
		return Snapshot{}, false
	}

	return *c.snap, true
}

// Resolving reports whether a navigation is pending.
func (c *Controller) Resolving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pending != nil
}

// Routes returns the registered routes, in order.
func (c *Controller) Routes() []route.Route { return c.routes.Routes() }

// Err joins the configuration errors of every registered route.
func (c *Controller) Err() error { return c.routes.Err() }

// push implements PushState.
// reverted marks the push a revert to the Snapshot,
// which must not capture a new one.
func (c *Controller) push(ctx context.Context, url string, state any, reverted bool) (bool, error) {
	c.mu.Lock()
	loc, err := c.h.Location(ctx)
	if err != nil {
		c.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrHistory, err)
	}

	if !reverted {
		c.snap = &Snapshot{URL: loc.Path, State: loc.State}
	}

	e := history.Entry{Path: url, Title: loc.Title, State: state}
	if url != loc.Path {
		err = c.h.Push(ctx, e)
	} else {
		err = c.h.Replace(ctx, e)
	}

	if err != nil {
		c.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrHistory, err)
	}

	if c.pending != nil {
		c.mu.Unlock()
		c.trace(e.Path, false)
		return false, nil
	}

	r := c.startLocked(e, false)
	c.mu.Unlock()

	return c.run(ctx, r)
}
