package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	waypoint "github.com/xy-planning-network/waypoint"
)

// ReportPanic recovers panics in the handler and reports them to Sentry,
// responding with http.StatusInternalServerError.
//
// In development, panics are left alone so they crash loudly.
func ReportPanic(env waypoint.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var completed bool
			sh.HandleFunc(func(w http.ResponseWriter, r *http.Request) {
				handler.ServeHTTP(w, r)
				completed = true
			}).ServeHTTP(w, r)

			if !completed {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		})
	}
}
