package render_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letterkit/letterkit/pkg/blob"
	"github.com/letterkit/letterkit/pkg/render"
	"github.com/letterkit/letterkit/pkg/store"
)

// newTestEngine seeds a memory-backed engine with the given snippets.
func newTestEngine(t *testing.T, tenantID uuid.UUID, snippets map[string]string) *render.Engine {
	t.Helper()

	docs := store.NewMemoryStore()
	blobs := blob.NewMemoryStore()
	ctx := context.Background()

	for name, content := range snippets {
		id := uuid.New()
		key := "snippets/" + id.String()
		require.NoError(t, blobs.Put(ctx, key, content))
		require.NoError(t, docs.CreateSnippet(ctx, &store.Snippet{
			ID:         id,
			TenantID:   tenantID,
			Name:       name,
			ContentKey: key,
		}))
	}

	return render.New(docs, blobs)
}

func TestEngine_RenderTemplate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("substitutes data values", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t, uuid.New(), nil)
		out, err := e.RenderTemplate(ctx, "<h1>{{title}}</h1>", map[string]any{"title": "Weekly Digest"}, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, "<h1>Weekly Digest</h1>", out)
	})

	t.Run("missing data renders empty", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t, uuid.New(), nil)
		out, err := e.RenderTemplate(ctx, "<p>{{missing}}</p>", map[string]any{}, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, "<p></p>", out)
	})

	t.Run("resolves snippet references", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		e := newTestEngine(t, tenantID, map[string]string{
			"header": "<header>{{company}}</header>",
		})

		out, err := e.RenderTemplate(ctx, "{{> header}}<main>{{body}}</main>", map[string]any{
			"company": "Acme",
			"body":    "News",
		}, tenantID)
		require.NoError(t, err)
		assert.Equal(t, "<header>Acme</header><main>News</main>", out)
	})

	t.Run("resolves nested snippets", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		e := newTestEngine(t, tenantID, map[string]string{
			"header": "{{> logo}}<h1>{{title}}</h1>",
			"logo":   `<img src="logo.png" alt="logo">`,
		})

		out, err := e.RenderTemplate(ctx, "{{> header}}", map[string]any{"title": "Hi"}, tenantID)
		require.NoError(t, err)
		assert.Equal(t, `<img src="logo.png" alt="logo"><h1>Hi</h1>`, out)
	})

	t.Run("snippet names resolve case insensitively", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		e := newTestEngine(t, tenantID, map[string]string{
			"Header": "<header>{{company}}</header>",
		})

		out, err := e.RenderTemplate(ctx, "{{> header}}", map[string]any{"company": "Acme"}, tenantID)
		require.NoError(t, err)
		assert.Equal(t, "<header>Acme</header>", out)
	})

	t.Run("missing snippet renders empty and does not fail", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		e := newTestEngine(t, tenantID, nil)

		out, err := e.RenderTemplate(ctx, "<p>before</p>{{> nope}}<p>after</p>", nil, tenantID)
		require.NoError(t, err)
		assert.Equal(t, "<p>before</p><p>after</p>", out)
	})

	t.Run("snippets belong to tenants", func(t *testing.T) {
		t.Parallel()

		owner := uuid.New()
		e := newTestEngine(t, owner, map[string]string{
			"header": "<header>secret</header>",
		})

		out, err := e.RenderTemplate(ctx, "{{> header}}", nil, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, out, "another tenant's snippet must not resolve")
	})

	t.Run("malformed content fails with render prefix", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t, uuid.New(), nil)
		_, err := e.RenderTemplate(ctx, "{{title", nil, uuid.New())
		require.Error(t, err)
		assert.ErrorIs(t, err, render.ErrTemplateRender)
		assert.Contains(t, err.Error(), "Template rendering failed")
	})
}

func TestEngine_RenderSnippet(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, uuid.New(), nil)

	t.Run("substitutes parameters", func(t *testing.T) {
		t.Parallel()

		out, err := e.RenderSnippet("<h2>{{title}}</h2>", map[string]any{"title": "Promo"})
		require.NoError(t, err)
		assert.Equal(t, "<h2>Promo</h2>", out)
	})

	t.Run("missing parameter renders empty", func(t *testing.T) {
		t.Parallel()

		out, err := e.RenderSnippet("<h2>{{title}}</h2>", map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, "<h2></h2>", out)
	})

	t.Run("malformed content fails with snippet prefix", func(t *testing.T) {
		t.Parallel()

		_, err := e.RenderSnippet("{{#if x}}", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, render.ErrSnippetRender)
		assert.Contains(t, err.Error(), "Snippet rendering failed")
	})
}

func TestEngine_GetSnippetByID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tenantID := uuid.New()

	docs := store.NewMemoryStore()
	blobs := blob.NewMemoryStore()
	id := uuid.New()
	require.NoError(t, blobs.Put(ctx, "k", "<p>body</p>"))
	require.NoError(t, docs.CreateSnippet(ctx, &store.Snippet{
		ID: id, TenantID: tenantID, Name: "cta", ContentKey: "k",
	}))
	e := render.New(docs, blobs)

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		sn, content, err := e.GetSnippetByID(ctx, tenantID, id)
		require.NoError(t, err)
		assert.Equal(t, "cta", sn.Name)
		assert.Equal(t, "<p>body</p>", content)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		_, _, err := e.GetSnippetByID(ctx, tenantID, uuid.New())
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrSnippetNotFound)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestEngine_Helpers(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, uuid.New(), nil)

	t.Run("formatNumber", func(t *testing.T) {
		t.Parallel()

		out, err := e.RenderSnippet("{{formatNumber opens}}", map[string]any{"opens": 1234567})
		require.NoError(t, err)
		assert.Equal(t, "1,234,567", out)
	})

	t.Run("gte block", func(t *testing.T) {
		t.Parallel()

		content := "{{#gte rate 20}}good{{else}}poor{{/gte}}"

		out, err := e.RenderSnippet(content, map[string]any{"rate": 42.5})
		require.NoError(t, err)
		assert.Equal(t, "good", out)

		out, err = e.RenderSnippet(content, map[string]any{"rate": 3})
		require.NoError(t, err)
		assert.Equal(t, "poor", out)
	})

	t.Run("colorForDelta", func(t *testing.T) {
		t.Parallel()

		out, err := e.RenderSnippet("{{colorForDelta d}}", map[string]any{"d": -4})
		require.NoError(t, err)
		assert.Equal(t, "#b91c1c", out)
	})
}
