/*
Package route compiles route patterns into matchers and keeps the ordered table
a navigation controller resolves paths against.

# Patterns

A [Pattern] is either a [Template] or an [Expr].

A Template is a path with placeholders:

	/active/:id      → named, matches one path segment, captured as "id"
	/files/*name     → named, matches one path segment, captured as "name"
	/assets/*        → wildcard, matches any remainder, not captured

Every Template tolerates a trailing slash and is anchored to the end of a path,
but not to its start, so "/active/:id" also matches "/archive/active/2".
Text around placeholders is handed to the regexp engine as is.

An Expr wraps a precompiled [*regexp.Regexp] used verbatim.
Its named groups, e.g., (?P<id>[0-9]+), become parameters.

# Table

A [Table] scans its routes in registration order and invokes the handler
of the first one matching a path. [*Table.Default] registers the empty Template,
which matches every path, so it acts as a fallback only when registered last.
*/
package route
