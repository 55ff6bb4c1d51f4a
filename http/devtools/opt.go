package devtools

import (
	"time"

	"github.com/xy-planning-network/waypoint/http/middleware"
	"github.com/xy-planning-network/waypoint/http/resp"
	"github.com/xy-planning-network/waypoint/logger"
)

const defaultReplayTTL = time.Hour

// An Option configures a *Server when constructing a new one.
type Option func(*Server)

// WithBase sets the URL prefix the Server's endpoints are mounted under,
// used when linking to them from the toolbox.
func WithBase(base string) Option {
	return func(s *Server) {
		s.base = base
	}
}

// WithIdempotencyCache sets where responses to POST requests carrying an Idempotency-Key are kept.
// By default, they are kept in memory for an hour.
func WithIdempotencyCache(c middleware.IdempotencyCacher) Option {
	return func(s *Server) {
		s.cache = c
	}
}

// WithLogger sets the logger.Logger the Server uses.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		s.l = l
	}
}

// WithResponder sets the *resp.Responder the Server responds with.
func WithResponder(d *resp.Responder) Option {
	return func(s *Server) {
		s.doer = d
	}
}
