package nav

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	waypoint "github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/history"
	"github.com/xy-planning-network/waypoint/logger"
	"github.com/xy-planning-network/waypoint/route"
)

// A resolution is a pending navigation.
// Its outcome is readable once done is closed.
type resolution struct {
	id      string
	raw     string
	path    string
	prev    string
	state   any
	applied bool
	guard   Guard

	done chan struct{}
	ok   bool
	err  error
}

// wait blocks until r finishes or ctx is done.
func (r *resolution) wait(ctx context.Context) (bool, error) {
	select {
	case <-r.done:
		return r.ok, r.err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// startLocked marks a resolution of loc as pending.
// c.mu must be held and no resolution pending.
func (c *Controller) startLocked(loc history.Entry, applied bool) *resolution {
	r := &resolution{
		id:      uuid.NewString(),
		raw:     loc.Path,
		path:    route.DecodePath(loc.Path),
		state:   loc.State,
		applied: applied,
		guard:   c.guard,
		done:    make(chan struct{}),
	}

	if c.snap != nil {
		r.prev = route.DecodePath(c.snap.URL)
	}

	c.pending = r

	return r
}

// resolveLocked resolves loc, or waits for the pending resolution if there is one.
// c.mu must be held; resolveLocked releases it.
func (c *Controller) resolveLocked(ctx context.Context, loc history.Entry, applied bool) (bool, error) {
	if r := c.pending; r != nil {
		c.mu.Unlock()
		c.trace(loc.Path, applied)
		return r.wait(ctx)
	}

	r := c.startLocked(loc, applied)
	c.mu.Unlock()

	return c.run(ctx, r)
}

// locationChanged resolves the history's current location.
func (c *Controller) locationChanged(ctx context.Context, applied bool) (bool, error) {
	c.mu.Lock()
	loc, err := c.h.Location(ctx)
	if err != nil {
		c.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrHistory, err)
	}

	return c.resolveLocked(ctx, loc, applied)
}

// run consults r's Guard, then commits or reverts r.
// Whatever happens, r is no longer pending once run returns.
func (c *Controller) run(ctx context.Context, r *resolution) (bool, error) {
	defer close(r.done)
	defer c.finish(r)

	c.trace(r.raw, r.applied)

	ok, err := callGuard(context.WithValue(ctx, waypoint.ResolutionIDKey, r.id), r.guard, r.prev, r.path)
	switch {
	case err != nil:
		c.finish(r)
		r.err = fmt.Errorf("%w: %w", ErrGuardFailed, err)
		c.l.Error("resolving navigation", c.logContext(r, r.err))

	case ok:
		c.finish(r)
		r.ok, r.err = c.commit(r)

	default:
		if err := c.revert(ctx); err != nil {
			r.err = err
			c.l.Error("reverting navigation", c.logContext(r, err))
		}
	}

	return r.ok, r.err
}

// finish clears r as the pending resolution.
func (c *Controller) finish(r *resolution) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == r {
		c.pending = nil
	}
}

// commit handles the first route matching r, records r as the Snapshot,
// then calls the always-handler.
// A route with a configuration error aborts the commit.
func (c *Controller) commit(r *resolution) (bool, error) {
	matched, err := c.routes.Handle(route.Navigation{Path: r.path, State: r.state, Applied: r.applied})
	if err != nil {
		c.l.Error("handling navigation", c.logContext(r, err))
		return false, err
	}

	c.mu.Lock()
	c.snap = &Snapshot{URL: r.raw, State: r.state}
	c.mu.Unlock()

	c.routes.Fire(r.path)

	if c.debug {
		lc := c.logContext(r, nil)
		lc.Data["matched"] = matched
		c.l.Debug("committed navigation", lc)
	}

	return true, nil
}

// revert restores the history to the Snapshot,
// or steps it back if nothing was committed yet.
//
// revert runs while the rejected resolution is still pending,
// so the history changes it makes are not resolved themselves.
func (c *Controller) revert(ctx context.Context) error {
	c.mu.Lock()
	snap := c.snap
	c.mu.Unlock()

	if snap == nil {
		return c.PopState(ctx)
	}

	_, err := c.push(ctx, snap.URL, snap.State, true)

	return err
}

// trace logs a location change in debug mode.
func (c *Controller) trace(path string, applied bool) {
	if !c.debug {
		return
	}

	c.l.Debug("location changed", &logger.LogContext{
		Data:    map[string]any{"applied": applied},
		Path:    path,
		Session: c.session,
	})
}

func (c *Controller) logContext(r *resolution, err error) *logger.LogContext {
	return &logger.LogContext{
		Data: map[string]any{
			"applied":    r.applied,
			"prev":       r.prev,
			"resolution": r.id,
		},
		Error:   err,
		Path:    r.path,
		Session: c.session,
	}
}
