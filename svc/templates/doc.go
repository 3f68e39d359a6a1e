// Package templates is the HTTP service for newsletter template and snippet
// management: create and update flows with schema plus content validation,
// quota enforcement, previews with optional test email delivery, and quota
// status reporting.
package templates
