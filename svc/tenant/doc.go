// Package tenant resolves the calling tenant for API requests and carries it
// through the request context. Every document operation downstream is scoped
// by the tenant ID this package extracts.
package tenant
