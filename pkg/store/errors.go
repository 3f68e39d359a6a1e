package store

import "errors"

// Domain errors for store operations.
var (
	ErrTemplateNotFound = errors.New("store.errors.template_not_found")
	ErrSnippetNotFound  = errors.New("store.errors.snippet_not_found")
	ErrDuplicateName    = errors.New("store.errors.duplicate_name")
	ErrNilDocument      = errors.New("store.errors.nil_document")

	ErrFailedToCreateDocument = errors.New("store.errors.failed_to_create_document")
	ErrFailedToUpdateDocument = errors.New("store.errors.failed_to_update_document")
	ErrFailedToQueryDocuments = errors.New("store.errors.failed_to_query_documents")
	ErrFailedToCountDocuments = errors.New("store.errors.failed_to_count_documents")
)
