// Package httpapi exposes the retrieval engine and lifecycle services
// over HTTP: search, grounded question answering, the document lifecycle,
// team management, and the activity feed. Domain sentinel errors map to
// HTTP statuses in one place; an empty result set and a fallback answer
// are successful responses, not errors.
package httpapi
