// Package scope provides explicit unit-of-work scopes: transactional
// scopes with flattened nesting, and request scopes that pin one
// connection for the lifetime of an inbound request.
//
// Scopes are plain objects passed through the call chain; there is no
// goroutine-local state. A scope and its session belong to the goroutine
// that created them and must not be shared.
package scope
