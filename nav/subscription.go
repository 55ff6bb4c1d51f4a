package nav

import (
	"context"
	"sync"

	"github.com/xy-planning-network/waypoint/logger"
)

// subscription holds the cancel funcs of a Controller's history signal listeners.
type subscription struct {
	mu      sync.Mutex
	cancels []func()
}

func (s *subscription) attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cancels != nil
}

// attach calls subscribe unless already attached.
func (s *subscription) attach(subscribe func() []func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancels != nil {
		return
	}

	s.cancels = subscribe()
}

func (s *subscription) detach() {
	s.mu.Lock()
	cancels := s.cancels
	s.cancels = nil
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Subscribe listens to the pop and ready signals of the Controller's history.Notifier,
// resolving the current location each time one fires.
// Subscribe is a no-op if the Controller has no history.Notifier or is already subscribed.
//
// New subscribes; call Subscribe to listen again after Dispose.
func (c *Controller) Subscribe() {
	if c.notifier == nil {
		return
	}

	c.mu.Lock()
	c.disposed = false
	c.mu.Unlock()

	c.subs.attach(func() []func() {
		return []func(){
			c.notifier.OnPop(c.signal),
			c.notifier.OnReady(c.signal),
		}
	})
}

// Subscribed reports whether the Controller listens to history signals.
func (c *Controller) Subscribed() bool { return c.subs.attached() }

// Wait blocks until every resolution started by a history signal has finished.
func (c *Controller) Wait() { c.signaled.Wait() }

// signal resolves the current location in a new goroutine.
// Notifiers may signal from inside a history call the Controller itself is making,
// e.g., stepping back to revert a first navigation.
//
// signal drops signals arriving after Dispose,
// so Wait never races a new resolution being added.
func (c *Controller) signal() {
	caller := logger.CurrentCaller()

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.signaled.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.signaled.Done()

		if _, err := c.locationChanged(context.Background(), false); err != nil {
			c.l.Error("resolving signaled location change", &logger.LogContext{
				Caller:  caller,
				Error:   err,
				Session: c.session,
			})
		}
	}()
}
