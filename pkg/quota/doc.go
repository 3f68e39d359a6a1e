// Package quota enforces per-tenant template and snippet limits based on
// subscription tiers.
//
// Usage is derived, never stored: the service counts existing documents
// through the store on every decision (optionally short-circuited by a
// Redis-backed cache). Checks are read-then-decide without a transactional
// guarantee, so two concurrent creates racing at the boundary can both pass;
// this is a known, accepted consistency gap.
//
// Unknown tiers fall back to free-tier limits.
package quota
