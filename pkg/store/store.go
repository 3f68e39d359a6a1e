package store

import (
	"context"

	"github.com/google/uuid"
)

// DocumentStore is the persistence contract consumed by the render engine,
// the quota service, and the HTTP service layer. All lookups are scoped to a
// tenant; a document belonging to another tenant is indistinguishable from a
// missing one.
type DocumentStore interface {
	CreateTemplate(ctx context.Context, tpl *Template) error
	UpdateTemplate(ctx context.Context, tpl *Template) error
	GetTemplate(ctx context.Context, tenantID, id uuid.UUID) (*Template, error)
	ListTemplates(ctx context.Context, tenantID uuid.UUID) ([]Template, error)

	CreateSnippet(ctx context.Context, sn *Snippet) error
	GetSnippet(ctx context.Context, tenantID, id uuid.UUID) (*Snippet, error)
	FindSnippetByName(ctx context.Context, tenantID uuid.UUID, name string) (*Snippet, error)
	ListSnippets(ctx context.Context, tenantID uuid.UUID) ([]Snippet, error)

	CountTemplates(ctx context.Context, tenantID uuid.UUID) (int64, error)
	CountSnippets(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
