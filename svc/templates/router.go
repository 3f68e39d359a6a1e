package templates

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/letterkit/letterkit/pkg/schema"
	"github.com/letterkit/letterkit/svc/tenant"
)

// Handle mounts the template API. Every route runs behind tenant resolution;
// mutating routes additionally run behind schema and content validation.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(tenant.Middleware)

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", s.listTemplates)
		r.Get("/{id}", s.getTemplate)
		r.With(schema.Middleware(schema.CreateTemplate, s.log)).Post("/", s.createTemplate)
		r.With(schema.Middleware(schema.UpdateTemplate, s.log)).Put("/{id}", s.updateTemplate)
		r.With(schema.Middleware(schema.PreviewTemplate, s.log)).Post("/preview", s.previewTemplate)
	})

	r.Route("/snippets", func(r chi.Router) {
		r.Get("/", s.listSnippets)
		r.Get("/{id}", s.getSnippet)
		r.With(schema.Middleware(schema.CreateSnippet, s.log)).Post("/", s.createSnippet)
		r.Post("/{id}/preview", s.previewSnippet)
	})

	r.Route("/quota", func(r chi.Router) {
		r.Get("/", s.getQuota)
		r.Get("/upgrade-options", s.getUpgradeOptions)
	})

	return r
}
