package ranger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/joho/godotenv/autoload"

	waypoint "github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/history"
	"github.com/xy-planning-network/waypoint/logger"
	"github.com/xy-planning-network/waypoint/nav"
)

const shutdownTimeout = 5 * time.Second

// A Ranger manages a *nav.Controller, the history it navigates,
// and the devtools server driving it.
type Ranger struct {
	*nav.Controller

	ctx     context.Context
	env     waypoint.Environment
	h       history.History
	client  *redis.Client
	l       logger.Logger
	navOpts []nav.Option
	r       http.Handler
	srv     *http.Server

	shutdown    sync.Once
	shutdownErr error
}

// New constructs a Ranger from the provided options.
// Default options are applied first followed by the options passed into New.
// Options supplied to New overwrite default configurations.
func New(opts ...RangerOption) (*Ranger, error) {
	r := &Ranger{ctx: context.Background()}
	followups := make([]OptFollowup, 0)

	for _, opt := range append(defaultOpts(), opts...) {
		fn, err := opt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", waypoint.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", waypoint.ErrBadConfig, err)
		}
	}

	r.Controller = defaultController(r.h, r.l, r.navOpts...)
	r.r = defaultRouter(r.env, r.l, r.Controller, r.h, r.client)
	r.srv.Handler = r.r

	return r, nil
}

func (r *Ranger) EmitHistory() history.History { return r.h }
func (r *Ranger) EmitLogger() logger.Logger    { return r.l }
func (r *Ranger) Env() waypoint.Environment    { return r.env }

// Handler returns the http.Handler serving the devtools endpoints.
func (r *Ranger) Handler() http.Handler { return r.r }

// Guide signals the history is ready, resolving the initial location,
// and, if the Environment enables the toolbox, begins the devtools web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - the context.Context passed to WithContext being done
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ctx, cancel := context.WithCancel(r.ctx)
	defer cancel()

	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := r.ready(ctx); err != nil {
		r.l.Error("resolving initial location", &logger.LogContext{Error: err})
	}

	r.srv.RegisterOnShutdown(cancel)

	errs := make(chan error, 1)
	if r.env.ToolboxEnabled() {
		go func() {
			r.l.Info(fmt.Sprintf("running devtools server at %s", r.srv.Addr), nil)
			if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				errs <- fmt.Errorf("could not listen: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		return r.Shutdown()

	case err := <-errs:
		r.l.Error(err.Error(), nil)
		return errors.Join(err, r.Shutdown())
	}
}

// ready fires the ready signal of histories that have one
// or otherwise resolves the current location as already applied.
func (r *Ranger) ready(ctx context.Context) error {
	if m, ok := r.h.(interface{ Ready() }); ok && r.Controller.Subscribed() {
		m.Ready()
		r.Controller.Wait()
		return nil
	}

	_, err := r.Controller.ApplyState(ctx)
	return err
}

// Shutdown shuts down the devtools server, detaches the controller from the history,
// and closes the history if it holds a connection.
//
// Calling Shutdown more than once returns the result of the first call.
func (r *Ranger) Shutdown() error {
	r.shutdown.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		r.l.Info("shutting down", nil)

		var errs []error
		if err := r.srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, fmt.Errorf("could not shutdown: %w", err))
		}

		r.Controller.Dispose()
		r.Controller.Wait()

		if c, ok := r.h.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("could not close history: %w", err))
			}
		}

		r.shutdownErr = errors.Join(errs...)
		if r.shutdownErr == nil {
			r.l.Info("shutdown successfully", nil)
		}
	})

	return r.shutdownErr
}
