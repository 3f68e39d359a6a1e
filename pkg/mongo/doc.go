// Package mongo connects to MongoDB for deployments that use the document
// store backend instead of Postgres. Configuration is environment driven and
// connection attempts are retried, matching pkg/pg and pkg/redis.
package mongo
