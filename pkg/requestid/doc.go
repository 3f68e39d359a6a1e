// Package requestid attaches a correlation ID to every request. A valid
// client-supplied X-Request-ID is reused, anything else is replaced with a
// fresh UUID. The ID travels in the request context and is echoed in the
// response header so log records and client reports can be matched up.
package requestid
