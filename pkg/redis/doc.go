// Package redis connects to the Redis instance that backs the quota usage
// cache. Connect retries until the server is reachable or the attempts run
// out, and Healthcheck exposes a readiness probe.
package redis
