/*
The resp package provides a high-level API for responding to HTTP requests with JSON,
configured once for an application.

Calling code supplies the data, status code and errors of each response through Fn functional options:

	doer := resp.NewResponder(resp.WithLogger(l))
	doer.Json(w, r, resp.Data(snapshot))
	doer.Json(w, r, resp.GenericErr(err))
*/
package resp
