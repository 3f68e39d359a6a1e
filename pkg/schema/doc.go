// Package schema validates request bodies against a closed set of named
// schemas before content validation runs.
//
// Schema identifiers form a closed enum mapping to immutable rule tables;
// an unknown identifier is a programmer error returned from
// ValidateRequestBody, never a validation result. Field-level findings use
// the same Result type as content validation, so handlers can merge and
// report both in one response.
package schema
