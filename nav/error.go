package nav

import "errors"

var (
	// ErrGuardFailed wraps an error returned, or panic raised, by a Guard.
	ErrGuardFailed = errors.New("guard failed")

	// ErrHistory wraps an error returned by a history.History.
	ErrHistory = errors.New("history unavailable")
)
