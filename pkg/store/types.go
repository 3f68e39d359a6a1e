package store

import (
	"time"

	"github.com/google/uuid"
)

// ParamType enumerates the value types a snippet parameter may declare.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamNumber  ParamType = "number"
	ParamBoolean ParamType = "boolean"
)

// Valid reports whether the parameter type is one of the known types.
func (t ParamType) Valid() bool {
	switch t {
	case ParamString, ParamNumber, ParamBoolean:
		return true
	}
	return false
}

// Parameter is a single declared snippet parameter.
type Parameter struct {
	Name        string    `json:"name" bson:"name"`
	Type        ParamType `json:"type" bson:"type"`
	Required    bool      `json:"required" bson:"required"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
}

// Template is a tenant-scoped newsletter template document.
//
// Snippets holds the snippet names referenced by the template content at the
// time it was last validated. It is derived data: the render path recomputes
// references from content on every call and never trusts this list.
type Template struct {
	ID         uuid.UUID `json:"id" bson:"_id"`
	TenantID   uuid.UUID `json:"tenantId" bson:"tenant_id"`
	Name       string    `json:"name" bson:"name"`
	Category   string    `json:"category,omitempty" bson:"category,omitempty"`
	Tags       []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	VisualMode bool      `json:"visualMode" bson:"visual_mode"`
	Snippets   []string  `json:"snippets,omitempty" bson:"snippets,omitempty"`
	ContentKey string    `json:"contentKey" bson:"content_key"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updated_at"`
}

// Snippet is a tenant-scoped reusable template fragment.
type Snippet struct {
	ID         uuid.UUID   `json:"id" bson:"_id"`
	TenantID   uuid.UUID   `json:"tenantId" bson:"tenant_id"`
	Name       string      `json:"name" bson:"name"`
	Parameters []Parameter `json:"parameters,omitempty" bson:"parameters,omitempty"`
	ContentKey string      `json:"contentKey" bson:"content_key"`
	CreatedAt  time.Time   `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time   `json:"updatedAt" bson:"updated_at"`
}
