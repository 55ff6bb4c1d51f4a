/*

Package main provides a toy example use of waypoint:
a controller with a few routes and a guard that holds navigation
while a form has unsaved changes, driven through the devtools server.

	go run ./http/example
	curl -X POST 'localhost:3000/push?url=%2Fusers%2F1%2Fedit' -d '{"dirty":true}'
	curl -X POST 'localhost:3000/push?url=%2Fusers%2F1'
	curl -X POST 'localhost:3000/replace?url=%2Fusers%2F1%2Fedit' -d '{"dirty":false}'
	curl -X POST 'localhost:3000/push?url=%2Fusers%2F1'
	curl localhost:3000/location
	curl localhost:3000/toolbox

*/
package main

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/xy-planning-network/waypoint/logger"
	"github.com/xy-planning-network/waypoint/nav"
	"github.com/xy-planning-network/waypoint/ranger"
	"github.com/xy-planning-network/waypoint/route"
)

// editing reports whether the edit form has unsaved changes.
var editing atomic.Bool

func main() {
	rng, err := ranger.New(ranger.WithNavOptions(nav.WithDebug(true)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	l := rng.EmitLogger()

	rng.
		Resolve(func(_ context.Context, prev, next string) (bool, error) {
			if editing.Load() && !strings.HasSuffix(next, "/edit") {
				l.Warn("unsaved changes, staying put", &logger.LogContext{
					Data: map[string]any{"from": prev},
					Path: next,
				})
				return false, nil
			}

			return true, nil
		}).
		On("/", func(route.Navigation) { l.Info("home", nil) }).
		On("/users/:id/edit", func(n route.Navigation) {
			editing.Store(isDirty(n.State))
			l.Info("editing user "+n.Params["id"], nil)
		}).
		On("/users/:id", func(n route.Navigation) {
			l.Info("viewing user "+n.Params["id"], nil)
		}).
		OnRegexp(regexp.MustCompile(`^/files/(?P<file>.+)$`), func(n route.Navigation) {
			l.Info("opening "+n.Params["file"], nil)
		}).
		On("/about", func(route.Navigation) { l.Info("about", nil) }).
		Default(func(n route.Navigation) {
			l.Warn("nothing at "+n.Path, nil)
		}).
		Always(func(path string) {
			l.Debug("arrived", &logger.LogContext{Path: path})
		})

	if err := rng.Guide(); err != nil {
		l.Fatal(err.Error(), nil)
	}
}

// isDirty reads the "dirty" flag a client sends as the state of an edit navigation.
func isDirty(state any) bool {
	m, ok := state.(map[string]any)
	if !ok {
		return false
	}

	dirty, _ := m["dirty"].(bool)
	return dirty
}
