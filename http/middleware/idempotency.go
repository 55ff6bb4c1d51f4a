package middleware

import (
	"bytes"
	"crypto/sha256"
	"io"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/xy-planning-network/waypoint/logger"
)

const (
	IdempotencyHeader = "Idempotency-Key"

	// ReplayedHeader marks a response as replayed from an earlier request.
	ReplayedHeader = "Idempotent-Replayed"
)

// Idempotent returns a middleware.Adapter that makes POST requests carrying an IdempotencyHeader
// safe to retry: the handler runs once per key.
// Requests without the header, or with methods other than POST, pass through.
//
// The first request for a key claims it in cache, runs the handler,
// and saves the status code and body of its response as a Replay.
// A later request reusing the key falls into one of these scenarios:
//
//   - if the first request is still being handled,
//     Idempotent responds with 409
//
//   - if the requested URI or the body does not match the first request's,
//     Idempotent responds with 422
//
//   - otherwise, Idempotent writes the saved response again.
//
// If cache is nil, an in-memory ReplayMap is used.
//
// Idempotent implements the draft Idempotent HTTP Header Field specification:
// https://tools.ietf.org/id/draft-idempotency-header-01.html
func Idempotent(cache IdempotencyCacher, l logger.Logger) Adapter {
	if cache == nil {
		cache = NewReplayMap(defaultReplayTTL)
	}

	if l == nil {
		l = logger.New()
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if key == "" || r.Method != http.MethodPost {
				handler.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			sum := sha256.Sum256(body)
			rp := Replay{Digest: sum[:], URI: r.URL.RequestURI()}

			claimed, err := cache.Claim(r.Context(), key, rp)
			if err != nil {
				l.Error("claiming idempotency key", &logger.LogContext{Error: err, Data: map[string]any{"key": key}})
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			if !claimed {
				replay(w, r, cache, key, rp)
				return
			}

			var buf bytes.Buffer
			ww := httpsnoop.Wrap(w, httpsnoop.Hooks{
				WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
					return func(code int) {
						if rp.Status == 0 {
							rp.Status = code
						}
						next(code)
					}
				},
				Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
					return func(b []byte) (int, error) {
						if rp.Status == 0 {
							rp.Status = http.StatusOK
						}
						buf.Write(b)
						return next(b)
					}
				},
			})

			handler.ServeHTTP(ww, r)

			if rp.Status == 0 {
				rp.Status = http.StatusOK
			}
			rp.Body = buf.Bytes()
			rp.ContentType = w.Header().Get("Content-Type")

			if err := cache.Set(r.Context(), key, rp); err != nil {
				l.Error("saving idempotent response", &logger.LogContext{Error: err, Data: map[string]any{"key": key}})
			}
		})
	}
}

// replay responds to a request reusing key with the Replay saved for it.
func replay(w http.ResponseWriter, r *http.Request, cache IdempotencyCacher, key string, req Replay) {
	saved, ok, err := cache.Get(r.Context(), key)
	switch {
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)

	case !ok || saved.Status == 0:
		w.WriteHeader(http.StatusConflict)

	case saved.URI != req.URI || !bytes.Equal(saved.Digest, req.Digest):
		w.WriteHeader(http.StatusUnprocessableEntity)

	default:
		if saved.ContentType != "" {
			w.Header().Set("Content-Type", saved.ContentType)
		}
		w.Header().Set(ReplayedHeader, "true")
		w.WriteHeader(saved.Status)
		w.Write(saved.Body)
	}
}
