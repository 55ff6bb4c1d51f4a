/*
Package router routes HTTP requests to the devtools server's handlers.

[*Router] is a thin wrapper around [mux.Router].
A [Route] is a path and an HTTP method, plus the [http.HandlerFunc] called when a request matches it.
Before a request gets to a handler, any middlewares added to the Route are called in the order they appear.

Routes sharing identical middleware stacks are registered in one call to HandleRoutes;
middlewares every request runs through are added with OnEveryRequest.
*/
package router
