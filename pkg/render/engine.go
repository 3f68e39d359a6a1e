package render

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mailgun/raymond/v2"

	"github.com/letterkit/letterkit/pkg/blob"
	"github.com/letterkit/letterkit/pkg/store"
)

// SnippetStore is the narrow document-store surface the engine needs.
// *store.MemoryStore, *store.PostgresStore and *store.MongoStore all satisfy
// it.
type SnippetStore interface {
	FindSnippetByName(ctx context.Context, tenantID uuid.UUID, name string) (*store.Snippet, error)
	GetSnippet(ctx context.Context, tenantID, id uuid.UUID) (*store.Snippet, error)
}

// Engine resolves snippets and renders templates. Stateless between calls;
// safe for concurrent use.
type Engine struct {
	snippets SnippetStore
	blobs    blob.Store
	log      *slog.Logger
}

// Option configures the engine.
type Option func(*Engine)

// WithLogger sets the logger used for snippet resolution failures.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates a render engine backed by the given stores.
func New(snippets SnippetStore, blobs blob.Store, opts ...Option) *Engine {
	e := &Engine{
		snippets: snippets,
		blobs:    blobs,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RenderTemplate compiles the content, resolves every referenced snippet for
// the tenant, and evaluates the result against data. Missing data values
// render as empty strings; required-ness is a validation-time concern only.
func (e *Engine) RenderTemplate(ctx context.Context, content string, data map[string]any, tenantID uuid.UUID) (string, error) {
	registerHelpers()

	tpl, err := raymond.Parse(content)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateRender, err)
	}

	for name, body := range e.resolvePartials(ctx, tenantID, content) {
		tpl.RegisterPartial(name, body)
	}

	out, err := tpl.Exec(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateRender, err)
	}
	return out, nil
}

// RenderSnippet compiles and evaluates a single content string with the given
// parameters. No snippet resolution is performed.
func (e *Engine) RenderSnippet(content string, params map[string]any) (string, error) {
	registerHelpers()

	tpl, err := raymond.Parse(content)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrSnippetRender, err)
	}

	out, err := tpl.Exec(params)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrSnippetRender, err)
	}
	return out, nil
}

// GetSnippetByID fetches a snippet document and its raw content.
func (e *Engine) GetSnippetByID(ctx context.Context, tenantID, id uuid.UUID) (*store.Snippet, string, error) {
	sn, err := e.snippets.GetSnippet(ctx, tenantID, id)
	if err != nil {
		return nil, "", fmt.Errorf("Snippet %s not found: %w", id, err)
	}

	content, err := e.blobs.Get(ctx, sn.ContentKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load content for snippet %s: %w", id, err)
	}
	return sn, content, nil
}

// resolvePartials walks snippet references recursively, breadth first, and
// returns a partial body per referenced name. Resolution failures are
// isolated: the failing name maps to an empty body so the surrounding render
// still succeeds, and the failure is logged. A visited set guards against
// snippet reference cycles.
func (e *Engine) resolvePartials(ctx context.Context, tenantID uuid.UUID, content string) map[string]string {
	partials := make(map[string]string)

	queue := ExtractUsedSnippets(content)
	visited := make(map[string]struct{}, len(queue))

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		if _, done := visited[name]; done {
			continue
		}
		visited[name] = struct{}{}

		body, err := e.snippetBody(ctx, tenantID, name)
		if err != nil {
			e.log.WarnContext(ctx, "snippet resolution failed, rendering reference as empty",
				slog.String("snippet", name),
				slog.String("tenant_id", tenantID.String()),
				slog.Any("error", err),
			)
			partials[name] = ""
			continue
		}

		partials[name] = body
		queue = append(queue, ExtractUsedSnippets(body)...)
	}

	return partials
}

func (e *Engine) snippetBody(ctx context.Context, tenantID uuid.UUID, name string) (string, error) {
	sn, err := e.snippets.FindSnippetByName(ctx, tenantID, name)
	if err != nil {
		return "", err
	}
	return e.blobs.Get(ctx, sn.ContentKey)
}
