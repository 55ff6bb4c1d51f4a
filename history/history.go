package history

//go:generate mockgen -source=history.go -destination=mock/history.go

import (
	"context"
	"errors"
)

// ErrCodec is returned when an Entry cannot be encoded for or decoded from a store.
var ErrCodec = errors.New("entry codec")

// An Entry is one location in a History.
type Entry struct {
	Path  string
	Title string

	// State is opaque to the History.
	// Stores serializing entries may require registering its concrete type;
	// cf. [*Redis].
	State any
}

// A History is the stack of locations navigation moves through.
type History interface {
	// Location returns the current Entry.
	Location(ctx context.Context) (Entry, error)

	// Push discards every Entry after the current one
	// and appends e as the new current Entry.
	Push(ctx context.Context, e Entry) error

	// Replace overwrites the current Entry with e.
	Replace(ctx context.Context, e Entry) error

	// Back moves to the previous Entry, if there is one.
	Back(ctx context.Context) error
}

// A Notifier announces location changes a controller did not make itself.
// Each method returns a function unsubscribing fn.
type Notifier interface {
	// OnPop calls fn whenever the current Entry moves through back, forward or go.
	OnPop(fn func()) (cancel func())

	// OnReady calls fn when the initial location has loaded.
	OnReady(fn func()) (cancel func())
}

// listeners is a set of callbacks keyed by subscription.
type listeners struct {
	next int
	fns  map[int]func()
}

func (ls *listeners) add(fn func()) int {
	if ls.fns == nil {
		ls.fns = make(map[int]func())
	}

	id := ls.next
	ls.next++
	ls.fns[id] = fn

	return id
}

func (ls *listeners) remove(id int) { delete(ls.fns, id) }

func (ls *listeners) snapshot() []func() {
	fns := make([]func(), 0, len(ls.fns))
	for i := 0; i < ls.next; i++ {
		if fn, ok := ls.fns[i]; ok {
			fns = append(fns, fn)
		}
	}

	return fns
}
