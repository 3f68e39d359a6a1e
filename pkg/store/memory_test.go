package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letterkit/letterkit/pkg/store"
)

func TestMemoryStore_Templates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("create assigns id and timestamps", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		tpl := &store.Template{TenantID: tenantID, Name: "Welcome", ContentKey: "k"}
		require.NoError(t, s.CreateTemplate(ctx, tpl))
		assert.NotEqual(t, uuid.Nil, tpl.ID)
		assert.False(t, tpl.CreatedAt.IsZero())

		got, err := s.GetTemplate(ctx, tenantID, tpl.ID)
		require.NoError(t, err)
		assert.Equal(t, "Welcome", got.Name)
	})

	t.Run("duplicate name is case insensitive", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		require.NoError(t, s.CreateTemplate(ctx, &store.Template{TenantID: tenantID, Name: "Digest"}))
		err := s.CreateTemplate(ctx, &store.Template{TenantID: tenantID, Name: "DIGEST"})
		assert.ErrorIs(t, err, store.ErrDuplicateName)
	})

	t.Run("same name across tenants is allowed", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		require.NoError(t, s.CreateTemplate(ctx, &store.Template{TenantID: uuid.New(), Name: "Digest"}))
		require.NoError(t, s.CreateTemplate(ctx, &store.Template{TenantID: uuid.New(), Name: "Digest"}))
	})

	t.Run("get scoped by tenant", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		tpl := &store.Template{TenantID: tenantID, Name: "Private"}
		require.NoError(t, s.CreateTemplate(ctx, tpl))

		_, err := s.GetTemplate(ctx, uuid.New(), tpl.ID)
		assert.ErrorIs(t, err, store.ErrTemplateNotFound)
	})

	t.Run("update", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		tpl := &store.Template{TenantID: tenantID, Name: "Before"}
		require.NoError(t, s.CreateTemplate(ctx, tpl))

		tpl.Name = "After"
		tpl.Snippets = []string{"header"}
		require.NoError(t, s.UpdateTemplate(ctx, tpl))

		got, err := s.GetTemplate(ctx, tenantID, tpl.ID)
		require.NoError(t, err)
		assert.Equal(t, "After", got.Name)
		assert.Equal(t, []string{"header"}, got.Snippets)
	})

	t.Run("update rejects rename onto existing name", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		require.NoError(t, s.CreateTemplate(ctx, &store.Template{TenantID: tenantID, Name: "Digest"}))
		tpl := &store.Template{TenantID: tenantID, Name: "Welcome"}
		require.NoError(t, s.CreateTemplate(ctx, tpl))

		tpl.Name = "DIGEST"
		err := s.UpdateTemplate(ctx, tpl)
		assert.ErrorIs(t, err, store.ErrDuplicateName)

		got, err := s.GetTemplate(ctx, tenantID, tpl.ID)
		require.NoError(t, err)
		assert.Equal(t, "Welcome", got.Name)
	})

	t.Run("update keeping own name succeeds", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		tpl := &store.Template{TenantID: tenantID, Name: "Digest"}
		require.NoError(t, s.CreateTemplate(ctx, tpl))

		tpl.Name = "DIGEST"
		tpl.Category = "reports"
		require.NoError(t, s.UpdateTemplate(ctx, tpl))
	})

	t.Run("update missing template", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		err := s.UpdateTemplate(ctx, &store.Template{ID: uuid.New(), TenantID: tenantID})
		assert.ErrorIs(t, err, store.ErrTemplateNotFound)
	})

	t.Run("nil document", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		assert.ErrorIs(t, s.CreateTemplate(ctx, nil), store.ErrNilDocument)
	})

	t.Run("list and count are tenant scoped", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		mine := uuid.New()
		require.NoError(t, s.CreateTemplate(ctx, &store.Template{TenantID: mine, Name: "A"}))
		require.NoError(t, s.CreateTemplate(ctx, &store.Template{TenantID: mine, Name: "B"}))
		require.NoError(t, s.CreateTemplate(ctx, &store.Template{TenantID: uuid.New(), Name: "C"}))

		docs, err := s.ListTemplates(ctx, mine)
		require.NoError(t, err)
		assert.Len(t, docs, 2)

		n, err := s.CountTemplates(ctx, mine)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})
}

func TestMemoryStore_Snippets(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("create and find by name", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		sn := &store.Snippet{
			TenantID: tenantID,
			Name:     "header",
			Parameters: []store.Parameter{
				{Name: "title", Type: store.ParamString, Required: true},
			},
		}
		require.NoError(t, s.CreateSnippet(ctx, sn))

		got, err := s.FindSnippetByName(ctx, tenantID, "header")
		require.NoError(t, err)
		assert.Equal(t, sn.ID, got.ID)
		require.Len(t, got.Parameters, 1)
		assert.Equal(t, "title", got.Parameters[0].Name)
	})

	t.Run("find by name is case insensitive", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		sn := &store.Snippet{TenantID: tenantID, Name: "Header"}
		require.NoError(t, s.CreateSnippet(ctx, sn))

		got, err := s.FindSnippetByName(ctx, tenantID, "header")
		require.NoError(t, err)
		assert.Equal(t, sn.ID, got.ID)
	})

	t.Run("find by name scoped by tenant", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		require.NoError(t, s.CreateSnippet(ctx, &store.Snippet{TenantID: tenantID, Name: "header"}))

		_, err := s.FindSnippetByName(ctx, uuid.New(), "header")
		assert.ErrorIs(t, err, store.ErrSnippetNotFound)
	})

	t.Run("duplicate name", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		require.NoError(t, s.CreateSnippet(ctx, &store.Snippet{TenantID: tenantID, Name: "cta"}))
		err := s.CreateSnippet(ctx, &store.Snippet{TenantID: tenantID, Name: "CTA"})
		assert.ErrorIs(t, err, store.ErrDuplicateName)
	})

	t.Run("returned documents are copies", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		sn := &store.Snippet{
			TenantID:   tenantID,
			Name:       "cta",
			Parameters: []store.Parameter{{Name: "label", Type: store.ParamString}},
		}
		require.NoError(t, s.CreateSnippet(ctx, sn))

		got, err := s.GetSnippet(ctx, tenantID, sn.ID)
		require.NoError(t, err)
		got.Parameters[0].Name = "mutated"

		fresh, err := s.GetSnippet(ctx, tenantID, sn.ID)
		require.NoError(t, err)
		assert.Equal(t, "label", fresh.Parameters[0].Name)
	})
}
