package ranger

import (
	"context"
	"net/http"

	waypoint "github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/history"
	"github.com/xy-planning-network/waypoint/logger"
	"github.com/xy-planning-network/waypoint/nav"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some RangerOptions require data in others and thus an OptFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithHistory is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// The default logger is an example of the second:
// it depends on the Environment, which a later WithEnv may still change.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// WithContext sets the context.Context stopping the Ranger when done
// and serving as the base context of devtools requests.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.ctx = ctx
		return nil, nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, reads from the ENVIRONMENT environment variable a valid Environment.
//
// If both fail, the default Environment is set to Development.
func WithEnv(envVar string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		e := waypoint.Environment(envVar)
		if err := e.Valid(); err != nil {
			e = waypoint.EnvVarOrEnv(environmentEnvVar, waypoint.Development)
		}

		rng.env = e
		return nil, nil
	}
}

// WithHistory sets the history.History the Ranger navigates,
// replacing the default Redis or in-memory one.
func WithHistory(h history.History) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.h = h
		return nil, nil
	}
}

// WithLogger sets the logger.Logger the Ranger and everything it constructs use.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.l = l
		return nil, nil
	}
}

// WithNavOptions configures the *nav.Controller the Ranger constructs.
// They are applied after the Ranger's own.
func WithNavOptions(opts ...nav.Option) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.navOpts = append(rng.navOpts, opts...)
		return nil, nil
	}
}

// WithServer sets the *http.Server the devtools endpoints are served with.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.srv = s
		return nil, nil
	}
}

func withDefaultLogger() RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			if rng.l == nil {
				rng.l = defaultLogger(rng.env)
			}

			return nil
		}, nil
	}
}

func withDefaultHistory() RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			if rng.h != nil {
				return nil
			}

			h, client, err := defaultHistory(rng.env)
			if err != nil {
				return err
			}

			rng.h, rng.client = h, client
			rng.l.Debug("using history", &logger.LogContext{Data: map[string]any{"type": historyType(h)}})

			return nil
		}, nil
	}
}

func withDefaultServer() RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			if rng.srv == nil {
				rng.srv = defaultServer(rng.ctx)
			}

			return nil
		}, nil
	}
}

func historyType(h history.History) string {
	switch h.(type) {
	case *history.Memory:
		return "memory"
	case *history.Redis:
		return "redis"
	default:
		return "custom"
	}
}
