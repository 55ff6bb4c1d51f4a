package route

import (
	"errors"
	"sync"
)

// A Navigation is what a [HandlerFunc] receives when its route matches.
type Navigation struct {
	// Path is the decoded path that matched.
	Path string

	// State is the opaque state stored with the history entry.
	State any

	// Params are the parameters captured from Path.
	Params map[string]string

	// Applied reports whether the location change already happened
	// outside of the controller, e.g., replaying an entry after a back or forward jump.
	// Handlers may use it to skip re-triggering side effects.
	Applied bool
}

// A HandlerFunc handles a committed navigation to a matching route.
type HandlerFunc func(Navigation)

// An AlwaysFunc is called with the path of every committed navigation.
type AlwaysFunc func(path string)

// A Route pairs a Pattern with the HandlerFunc called when a path matches it.
type Route struct {
	Pattern Pattern
	Handler HandlerFunc

	matcher Matcher
	err     error
}

// Err returns the configuration error compiling the Route's Pattern produced, if any.
func (r Route) Err() error { return r.err }

// A Table is an append-only, ordered list of Routes
// plus a single AlwaysFunc.
//
// A Table is safe for concurrent use.
type Table struct {
	mu     sync.RWMutex
	routes []Route
	always AlwaysFunc
}

// NewTable constructs an empty *Table.
func NewTable() *Table {
	return &Table{always: func(string) {}}
}

// On appends a Route for p, compiling it right away.
// On returns the configuration error compiling p produced, if any;
// the Route is registered either way and reports the error again
// whenever a scan reaches it.
func (t *Table) On(p Pattern, h HandlerFunc) error {
	m, err := Compile(p)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.routes = append(t.routes, Route{Pattern: p, Handler: h, matcher: m, err: err})

	return err
}

// Default appends a Route for the empty Template, matching every path.
func (t *Table) Default(h HandlerFunc) error {
	return t.On(Template(""), h)
}

// Always sets fn as the AlwaysFunc, replacing any set before.
func (t *Table) Always(fn AlwaysFunc) {
	if fn == nil {
		fn = func(string) {}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.always = fn
}

// Handle scans the Routes in registration order
// and calls the handler of the first whose Pattern matches nav.Path,
// setting nav.Params from the match.
//
// Handle reports whether a Route matched.
// A scan reaching a Route whose Pattern failed to compile stops with that error.
func (t *Table) Handle(nav Navigation) (bool, error) {
	t.mu.RLock()
	routes := t.routes
	t.mu.RUnlock()

	for _, r := range routes {
		if r.err != nil {
			return false, r.err
		}

		params, ok := r.matcher.Match(nav.Path)
		if !ok {
			continue
		}

		nav.Params = params
		if r.Handler != nil {
			r.Handler(nav)
		}

		return true, nil
	}

	return false, nil
}

// Fire calls the AlwaysFunc with path.
func (t *Table) Fire(path string) {
	t.mu.RLock()
	fn := t.always
	t.mu.RUnlock()

	fn(path)
}

// Routes returns a copy of the registered Routes, in order.
func (t *Table) Routes() []Route {
	t.mu.RLock()
	defer t.mu.RUnlock()

	routes := make([]Route, len(t.routes))
	copy(routes, t.routes)

	return routes
}

// Err joins the configuration errors of all registered Routes.
func (t *Table) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var errs []error
	for _, r := range t.routes {
		if r.err != nil {
			errs = append(errs, r.err)
		}
	}

	return errors.Join(errs...)
}
