package history

import (
	"context"
	"sync"
)

var (
	_ History  = (*Memory)(nil)
	_ Notifier = (*Memory)(nil)
)

// A Memory is a History kept in process.
//
// Server restarts reset a Memory.
// Memory is best suited for tests and development.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
	idx     int
	pop     listeners
	ready   listeners
}

// NewMemory constructs a *Memory whose only Entry is initial.
func NewMemory(initial Entry) *Memory {
	return &Memory{entries: []Entry{initial}}
}

// Location returns the current Entry.
func (m *Memory) Location(ctx context.Context) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.entries[m.idx], nil
}

// Push discards the entries after the current one and appends e.
// Push fires no signal.
func (m *Memory) Push(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries[:m.idx+1], e)
	m.idx++

	return nil
}

// Replace overwrites the current Entry.
// Replace fires no signal.
func (m *Memory) Replace(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[m.idx] = e

	return nil
}

// Back is Go(ctx, -1).
func (m *Memory) Back(ctx context.Context) error { return m.Go(ctx, -1) }

// Forward is Go(ctx, 1).
func (m *Memory) Forward(ctx context.Context) error { return m.Go(ctx, 1) }

// Go moves the current Entry delta entries away and fires a pop signal.
// Moving out of bounds does nothing, as a browser does.
func (m *Memory) Go(ctx context.Context, delta int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	next := m.idx + delta
	if delta == 0 || next < 0 || next >= len(m.entries) {
		m.mu.Unlock()
		return nil
	}

	m.idx = next
	fns := m.pop.snapshot()
	m.mu.Unlock()

	for _, fn := range fns {
		fn()
	}

	return nil
}

// Ready fires a ready signal.
func (m *Memory) Ready() {
	m.mu.Lock()
	fns := m.ready.snapshot()
	m.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// OnPop subscribes fn to pop signals.
func (m *Memory) OnPop(fn func()) func() {
	return m.subscribe(&m.pop, fn)
}

// OnReady subscribes fn to ready signals.
func (m *Memory) OnReady(fn func()) func() {
	return m.subscribe(&m.ready, fn)
}

func (m *Memory) subscribe(ls *listeners, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := ls.add(fn)
	var once sync.Once

	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			ls.remove(id)
		})
	}
}

// Entries returns a copy of every Entry and the index of the current one.
func (m *Memory) Entries() ([]Entry, int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]Entry, len(m.entries))
	copy(entries, m.entries)

	return entries, m.idx
}
