/*
Package nav implements a navigation controller:
it resolves location changes against a route table, consulting a [Guard] that may veto them.

# Resolving

Every location change goes through the same steps.
The [Guard] is called with the last committed path and the candidate path.
If it approves, the first route matching the candidate is handled,
the candidate becomes the committed [Snapshot], and the always-handler is called.
If it rejects, the controller reverts the history to the Snapshot.

Only one resolution is pending at a time.
[*Controller.PushState] fails fast while one is:
it still writes the history, but returns false without resolving.
[*Controller.ReplaceState], [*Controller.ApplyState] and history signals
instead wait for the pending resolution and share its outcome.

A Guard that never returns leaves the controller resolving forever;
there is no timeout.

# Usage

	c := nav.New(history.NewMemory(history.Entry{Path: "/"})).
		Resolve(func(ctx context.Context, prev, next string) (bool, error) {
			return !unsaved, nil
		}).
		On("/active/:id", func(n route.Navigation) { show(n.Params["id"]) }).
		Default(notFound)

	ok, err := c.PushState(ctx, "/active/2", nil)
*/
package nav
