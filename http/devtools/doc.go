/*
Package devtools serves remote control of a navigation controller over HTTP,
for development and for driving a controller from tests or scripts.

	GET  /location  the current history entry and the committed Snapshot
	GET  /routes    the registered routes and their configuration errors
	GET  /toolbox   a waypoint.Toolbox of navigations to trigger
	POST /push      ?url=<path>, with an optional JSON body as the state
	POST /replace   ?url=<path>, with an optional JSON body as the state
	POST /apply     resolve the current location as already applied
	POST /back      step the history back

POST endpoints honor the Idempotency-Key header.
*/
package devtools
