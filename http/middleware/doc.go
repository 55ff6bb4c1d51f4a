/*
The middleware package defines what a middleware is in waypoint and the set of middlewares
the devtools server runs.

The available middlewares are:
- CORS
- ForceHTTPS
- Idempotent
- InjectIPAddress
- LogRequest
- RateLimit
- ReportPanic
- RequestID

The devtools server chains them like so:

	vs := middleware.NewVisitors(5, 20)
	adpts := []middleware.Adapter{
		middleware.RateLimit(vs),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.ReportPanic(env),
	}
*/
package middleware
