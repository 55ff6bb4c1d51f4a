package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	waypoint "github.com/xy-planning-network/waypoint"
)

// unknownIP is reported when no address can be found.
const unknownIP = "0.0.0.0"

// InjectIPAddress grabs the IP address of the *http.Request
// and promotes it to *http.Request.Context under waypoint.IpAddrKey.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), waypoint.IpAddrKey, GetIPAddress(r))
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}

// GetIPAddress parses the "X-Forwarded-For" and "X-Real-Ip" headers for the IP address
// of the client, falling back to the remote address of the connection.
//
// Addresses in the headers from private or non-unicast ranges are skipped;
// the right-most public one is the address right before our proxy.
func GetIPAddress(r *http.Request) string {
	for _, h := range []string{"X-Forwarded-For", "X-Real-Ip"} {
		addresses := strings.Split(r.Header.Get(h), ",")
		for i := len(addresses) - 1; i >= 0; i-- {
			ip := net.ParseIP(strings.TrimSpace(addresses[i]))
			if ip == nil || !ip.IsGlobalUnicast() || ip.IsPrivate() {
				continue
			}

			return ip.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || net.ParseIP(host) == nil {
		return unknownIP
	}

	return host
}
