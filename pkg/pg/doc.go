// Package pg manages the PostgreSQL connection pool and schema migrations.
//
// Connect dials with retry and returns a pgx pool, Migrate applies goose
// migrations from the configured directory, and Healthcheck exposes a probe
// suitable for readiness endpoints.
package pg
