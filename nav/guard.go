package nav

import (
	"context"
	"fmt"
)

// A Guard decides whether navigating from prev to next may commit.
//
// prev is empty when no location has been committed yet.
// Returning false reverts the navigation; returning an error fails it.
type Guard func(ctx context.Context, prev, next string) (bool, error)

// Allow is the Guard approving every navigation.
func Allow(context.Context, string, string) (bool, error) { return true, nil }

// GuardNext adapts fn, which only considers the candidate path, into a Guard.
func GuardNext(fn func(ctx context.Context, next string) (bool, error)) Guard {
	return func(ctx context.Context, _, next string) (bool, error) {
		return fn(ctx, next)
	}
}

// callGuard calls g, turning a panic into an error.
func callGuard(ctx context.Context, g Guard, prev, next string) (ok bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			ok, err = false, fmt.Errorf("panic: %v", p)
		}
	}()

	return g(ctx, prev, next)
}
