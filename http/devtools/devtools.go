package devtools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	waypoint "github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/history"
	"github.com/xy-planning-network/waypoint/http/middleware"
	"github.com/xy-planning-network/waypoint/http/resp"
	"github.com/xy-planning-network/waypoint/http/router"
	"github.com/xy-planning-network/waypoint/logger"
	"github.com/xy-planning-network/waypoint/nav"
	"github.com/xy-planning-network/waypoint/route"
)

// maxStateBytes caps the JSON state a push or replace may carry.
const maxStateBytes = 1 << 20

// A Navigator is the navigation controller a Server drives.
// *nav.Controller implements it.
type Navigator interface {
	PushState(ctx context.Context, url string, state any) (bool, error)
	ReplaceState(ctx context.Context, url string, state any) (bool, error)
	ApplyState(ctx context.Context) (bool, error)
	PopState(ctx context.Context) error
	Snapshot() (nav.Snapshot, bool)
	Resolving() bool
	Routes() []route.Route
}

var _ Navigator = new(nav.Controller)

// A Server handles the devtools endpoints for a Navigator and the history.History it navigates.
type Server struct {
	n     Navigator
	h     history.History
	doer  *resp.Responder
	l     logger.Logger
	cache middleware.IdempotencyCacher
	base  string
}

// New constructs a *Server driving n through h.
func New(n Navigator, h history.History, opts ...Option) *Server {
	s := &Server{n: n, h: h}
	for _, opt := range opts {
		opt(s)
	}

	if s.l == nil {
		s.l = logger.New()
	}

	if s.doer == nil {
		s.doer = resp.NewResponder(resp.WithLogger(s.l))
	}

	if s.cache == nil {
		s.cache = middleware.NewReplayMap(defaultReplayTTL)
	}

	return s
}

// Register handles the devtools endpoints on r.
func (s *Server) Register(r *router.Router) {
	r.HandleRoutes([]router.Route{
		{Path: "/location", Method: http.MethodGet, Handler: s.location},
		{Path: "/routes", Method: http.MethodGet, Handler: s.routes},
		{Path: "/toolbox", Method: http.MethodGet, Handler: s.toolbox},
	})

	r.HandleRoutes([]router.Route{
		{Path: "/push", Method: http.MethodPost, Handler: s.push},
		{Path: "/replace", Method: http.MethodPost, Handler: s.replace},
		{Path: "/apply", Method: http.MethodPost, Handler: s.apply},
		{Path: "/back", Method: http.MethodPost, Handler: s.back},
	}, middleware.Idempotent(s.cache, s.l))

	r.HandleNotFound(func(w http.ResponseWriter, req *http.Request) {
		s.doer.Json(w, req, resp.GenericErr(fmt.Errorf("%w: %s", waypoint.ErrNotExist, req.URL.Path)))
	})
}

// A Location is the current history entry alongside what the Navigator last committed.
type Location struct {
	Path      string `json:"path"`
	Title     string `json:"title,omitempty"`
	State     any    `json:"state,omitempty"`
	Committed string `json:"committed,omitempty"`
	Resolving bool   `json:"resolving"`
}

func (s *Server) location(w http.ResponseWriter, r *http.Request) {
	loc, err := s.h.Location(r.Context())
	if err != nil {
		s.doer.Json(w, r, resp.GenericErr(fmt.Errorf("%w: %s", nav.ErrHistory, err)))
		return
	}

	data := Location{Path: loc.Path, Title: loc.Title, State: loc.State, Resolving: s.n.Resolving()}
	if snap, ok := s.n.Snapshot(); ok {
		data.Committed = snap.URL
	}

	s.doer.Json(w, r, resp.Data(data))
}

// A RouteInfo describes a registered route.
type RouteInfo struct {
	Pattern string `json:"pattern"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) routes(w http.ResponseWriter, r *http.Request) {
	routes := s.n.Routes()
	data := make([]RouteInfo, len(routes))
	for i, rt := range routes {
		data[i] = RouteInfo{Pattern: patternString(rt.Pattern)}
		if err := rt.Err(); err != nil {
			data[i].Error = err.Error()
		}
	}

	s.doer.Json(w, r, resp.Data(data))
}

func (s *Server) toolbox(w http.ResponseWriter, r *http.Request) {
	s.doer.Json(w, r, resp.Data(Toolbox(s.base, s.n.Routes()).Filter()))
}

// An Outcome reports whether a navigation committed.
type Outcome struct {
	Committed bool `json:"committed"`
}

func (s *Server) push(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, s.n.PushState)
}

func (s *Server) replace(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, s.n.ReplaceState)
}

func (s *Server) navigate(w http.ResponseWriter, r *http.Request, fn func(context.Context, string, any) (bool, error)) {
	url := r.URL.Query().Get("url")
	if url == "" {
		s.doer.Json(w, r, resp.GenericErr(fmt.Errorf("%w: missing url", waypoint.ErrNotValid)))
		return
	}

	state, err := decodeState(r)
	if err != nil {
		s.doer.Json(w, r, resp.GenericErr(err))
		return
	}

	ok, err := fn(r.Context(), url, state)
	s.respond(w, r, ok, err)
}

func (s *Server) apply(w http.ResponseWriter, r *http.Request) {
	ok, err := s.n.ApplyState(r.Context())
	s.respond(w, r, ok, err)
}

func (s *Server) back(w http.ResponseWriter, r *http.Request) {
	if err := s.n.PopState(r.Context()); err != nil {
		s.doer.Json(w, r, resp.GenericErr(err))
		return
	}

	s.doer.Json(w, r, resp.Code(http.StatusAccepted))
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, ok bool, err error) {
	if err != nil {
		s.doer.Json(w, r, resp.Data(Outcome{Committed: ok}), resp.GenericErr(err))
		return
	}

	s.doer.Json(w, r, resp.Data(Outcome{Committed: ok}))
}

// decodeState reads the JSON body of r, if any, as the state of a navigation.
func decodeState(r *http.Request) (any, error) {
	if r.Body == nil {
		return nil, nil
	}

	var state any
	err := json.NewDecoder(io.LimitReader(r.Body, maxStateBytes)).Decode(&state)
	switch {
	case errors.Is(err, io.EOF):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("%w: state: %s", waypoint.ErrNotValid, err)
	}

	return state, nil
}

func patternString(p route.Pattern) string {
	if p == nil {
		return ""
	}

	return p.String()
}
