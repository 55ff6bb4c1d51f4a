package resp

import (
	"errors"
	"net/http"

	waypoint "github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/logger"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	r    *http.Request
	code int
	data any
	err  error
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Data stores the provided value for writing to the client.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err sets the status code http.StatusInternalServerError and logs the error.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if e != nil {
			d.logger.Error(e.Error(), newLogContext(r.r, e, r.data))
			r.err = e
		}

		r.code = http.StatusInternalServerError
		return nil
	}
}

// GenericErr reports e to the client, picking the status code from what e wraps:
//
//   - waypoint.ErrNotValid: http.StatusBadRequest
//   - waypoint.ErrNotExist: http.StatusNotFound
//   - waypoint.ErrBadConfig: http.StatusConflict
//
// Any other error is logged and responded to with http.StatusInternalServerError.
func GenericErr(e error) Fn {
	return func(d Responder, r *Response) error {
		switch {
		case errors.Is(e, waypoint.ErrNotValid):
			r.code = http.StatusBadRequest
		case errors.Is(e, waypoint.ErrNotExist):
			r.code = http.StatusNotFound
		case errors.Is(e, waypoint.ErrBadConfig):
			r.code = http.StatusConflict
		default:
			return Err(e)(d, r)
		}

		r.err = e
		return nil
	}
}

func newLogContext(r *http.Request, err error, data any) *logger.LogContext {
	lc := &logger.LogContext{Error: err}
	if r == nil {
		return lc
	}

	lc.Data = map[string]any{"method": r.Method, "url": r.URL.String()}
	if data != nil {
		lc.Data["data"] = data
	}

	if id, ok := r.Context().Value(waypoint.RequestIDKey).(string); ok {
		lc.Data["request_id"] = id
	}

	return lc
}
