// Package store provides tenant-scoped persistence for newsletter templates
// and snippets. Documents carry metadata only; raw template markup lives in
// blob storage and is referenced by ContentKey.
//
// Three implementations are provided:
//
//   - PostgresStore: production storage backed by pgx
//   - MongoStore: document storage backed by the official MongoDB driver
//   - MemoryStore: in-memory storage for tests and local development
//
// All implementations satisfy the DocumentStore interface and are safe for
// concurrent use.
package store
