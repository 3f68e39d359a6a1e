package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory DocumentStore for tests and local development.
type MemoryStore struct {
	mu        sync.RWMutex
	templates map[uuid.UUID]Template
	snippets  map[uuid.UUID]Snippet
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		templates: make(map[uuid.UUID]Template),
		snippets:  make(map[uuid.UUID]Snippet),
	}
}

func (s *MemoryStore) CreateTemplate(ctx context.Context, tpl *Template) error {
	if tpl == nil {
		return ErrNilDocument
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.templates {
		if existing.TenantID == tpl.TenantID && strings.EqualFold(existing.Name, tpl.Name) {
			return ErrDuplicateName
		}
	}

	if tpl.ID == uuid.Nil {
		tpl.ID = uuid.New()
	}
	now := time.Now().UTC()
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = now
	}
	tpl.UpdatedAt = now

	s.templates[tpl.ID] = cloneTemplate(*tpl)
	return nil
}

func (s *MemoryStore) UpdateTemplate(ctx context.Context, tpl *Template) error {
	if tpl == nil {
		return ErrNilDocument
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.templates[tpl.ID]
	if !ok || existing.TenantID != tpl.TenantID {
		return ErrTemplateNotFound
	}

	for id, other := range s.templates {
		if id != tpl.ID && other.TenantID == tpl.TenantID && strings.EqualFold(other.Name, tpl.Name) {
			return ErrDuplicateName
		}
	}

	tpl.CreatedAt = existing.CreatedAt
	tpl.UpdatedAt = time.Now().UTC()
	s.templates[tpl.ID] = cloneTemplate(*tpl)
	return nil
}

func (s *MemoryStore) GetTemplate(ctx context.Context, tenantID, id uuid.UUID) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tpl, ok := s.templates[id]
	if !ok || tpl.TenantID != tenantID {
		return nil, ErrTemplateNotFound
	}

	out := cloneTemplate(tpl)
	return &out, nil
}

func (s *MemoryStore) ListTemplates(ctx context.Context, tenantID uuid.UUID) ([]Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Template
	for _, tpl := range s.templates {
		if tpl.TenantID == tenantID {
			out = append(out, cloneTemplate(tpl))
		}
	}

	slices.SortFunc(out, func(a, b Template) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) CreateSnippet(ctx context.Context, sn *Snippet) error {
	if sn == nil {
		return ErrNilDocument
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.snippets {
		if existing.TenantID == sn.TenantID && strings.EqualFold(existing.Name, sn.Name) {
			return ErrDuplicateName
		}
	}

	if sn.ID == uuid.Nil {
		sn.ID = uuid.New()
	}
	now := time.Now().UTC()
	if sn.CreatedAt.IsZero() {
		sn.CreatedAt = now
	}
	sn.UpdatedAt = now

	s.snippets[sn.ID] = cloneSnippet(*sn)
	return nil
}

func (s *MemoryStore) GetSnippet(ctx context.Context, tenantID, id uuid.UUID) (*Snippet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sn, ok := s.snippets[id]
	if !ok || sn.TenantID != tenantID {
		return nil, ErrSnippetNotFound
	}

	out := cloneSnippet(sn)
	return &out, nil
}

func (s *MemoryStore) FindSnippetByName(ctx context.Context, tenantID uuid.UUID, name string) (*Snippet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sn := range s.snippets {
		if sn.TenantID == tenantID && strings.EqualFold(sn.Name, name) {
			out := cloneSnippet(sn)
			return &out, nil
		}
	}
	return nil, ErrSnippetNotFound
}

func (s *MemoryStore) ListSnippets(ctx context.Context, tenantID uuid.UUID) ([]Snippet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Snippet
	for _, sn := range s.snippets {
		if sn.TenantID == tenantID {
			out = append(out, cloneSnippet(sn))
		}
	}

	slices.SortFunc(out, func(a, b Snippet) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) CountTemplates(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, tpl := range s.templates {
		if tpl.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) CountSnippets(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, sn := range s.snippets {
		if sn.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

// Copies guard against callers mutating shared slices after a read.
func cloneTemplate(tpl Template) Template {
	tpl.Tags = slices.Clone(tpl.Tags)
	tpl.Snippets = slices.Clone(tpl.Snippets)
	return tpl
}

func cloneSnippet(sn Snippet) Snippet {
	sn.Parameters = slices.Clone(sn.Parameters)
	return sn
}
