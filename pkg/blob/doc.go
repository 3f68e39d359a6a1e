// Package blob stores raw template and snippet markup. Documents in the
// store package reference markup by key; this package resolves those keys to
// content.
//
// S3Store targets Amazon S3 and S3-compatible services (MinIO, R2).
// MemoryStore backs tests and local development.
package blob
