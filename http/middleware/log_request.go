package middleware

import (
	"net/http"
	"strings"

	"github.com/felixge/httpsnoop"
	waypoint "github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/logger"
)

// LogRequest logs the request's method, requested URL and originating IP address
// along with the status code and duration of the response
// using the enclosed implementation of logger.Logger.
//
// If logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(h, w, r)

			strs := []string{r.Method, r.URL.RequestURI()}
			if ip, ok := r.Context().Value(waypoint.IpAddrKey).(string); ok {
				strs = append([]string{ip}, strs...)
			}

			data := map[string]any{
				"duration": m.Duration.String(),
				"size":     m.Written,
				"status":   m.Code,
			}
			if id, ok := r.Context().Value(waypoint.RequestIDKey).(string); ok {
				data["request_id"] = id
			}

			ls.Info(strings.Join(strs, " "), &logger.LogContext{Data: data})
		})
	}
}
