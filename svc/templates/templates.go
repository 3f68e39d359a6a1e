package templates

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/letterkit/letterkit/pkg/quota"
	"github.com/letterkit/letterkit/pkg/render"
	"github.com/letterkit/letterkit/pkg/schema"
	"github.com/letterkit/letterkit/pkg/store"
	"github.com/letterkit/letterkit/svc/tenant"
)

type templateRequest struct {
	Name       string   `json:"name"`
	Content    string   `json:"content"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
	VisualMode bool     `json:"visualMode"`
}

// templateDocument is the API shape of a template: the stored document plus
// its markup, which lives in blob storage rather than the document store.
type templateDocument struct {
	store.Template
	Content string `json:"content"`
}

func (s *Service) createTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := tenant.MustIDFromContext(ctx)

	body, _ := schema.BodyFromContext(ctx)
	req, err := schema.DecodeBody[templateRequest](body)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "INVALID_REQUEST_FORMAT", "Unable to decode request body")
		return
	}

	if err := s.quotas.Enforce(ctx, tenantID, s.tiers(ctx, tenantID), quota.ResourceTemplate); err != nil {
		s.writeQuotaError(w, r, err)
		return
	}

	id := uuid.New()
	key := templateContentKey(tenantID, id)
	if err := s.blobs.Put(ctx, key, req.Content); err != nil {
		s.log.ErrorContext(ctx, "failed to store template content", "error", err)
		writeAPIError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to store template content")
		return
	}

	tpl := &store.Template{
		ID:         id,
		TenantID:   tenantID,
		Name:       req.Name,
		Category:   req.Category,
		Tags:       req.Tags,
		VisualMode: req.VisualMode,
		Snippets:   render.ExtractUsedSnippets(req.Content),
		ContentKey: key,
	}
	if err := s.docs.CreateTemplate(ctx, tpl); err != nil {
		_ = s.blobs.Delete(ctx, key)
		s.writeStoreError(w, r, err)
		return
	}

	s.quotas.Invalidate(ctx, tenantID)
	writeJSON(w, http.StatusCreated, templateDocument{Template: *tpl, Content: req.Content})
}

func (s *Service) updateTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := tenant.MustIDFromContext(ctx)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "INVALID_ID", "Template ID must be a valid UUID")
		return
	}

	tpl, err := s.docs.GetTemplate(ctx, tenantID, id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	// Partial update: only fields present in the body change.
	body, _ := schema.BodyFromContext(ctx)
	if name, ok := body["name"].(string); ok {
		tpl.Name = name
	}
	if category, ok := body["category"].(string); ok {
		tpl.Category = category
	}
	if visualMode, ok := body["visualMode"].(bool); ok {
		tpl.VisualMode = visualMode
	}
	if rawTags, ok := body["tags"].([]any); ok {
		tags := make([]string, 0, len(rawTags))
		for _, t := range rawTags {
			if tag, ok := t.(string); ok {
				tags = append(tags, tag)
			}
		}
		tpl.Tags = tags
	}

	content, contentChanged := body["content"].(string)
	var prevContent string
	if contentChanged {
		// Keep the current markup around so a rejected document update can
		// restore it instead of serving content from a failed request.
		prevContent, err = s.blobs.Get(ctx, tpl.ContentKey)
		if err != nil {
			s.log.ErrorContext(ctx, "failed to load template content", "error", err)
			writeAPIError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to load template content")
			return
		}
		if err := s.blobs.Put(ctx, tpl.ContentKey, content); err != nil {
			s.log.ErrorContext(ctx, "failed to store template content", "error", err)
			writeAPIError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to store template content")
			return
		}
		tpl.Snippets = render.ExtractUsedSnippets(content)
	}

	if err := s.docs.UpdateTemplate(ctx, tpl); err != nil {
		if contentChanged {
			if putErr := s.blobs.Put(ctx, tpl.ContentKey, prevContent); putErr != nil {
				s.log.ErrorContext(ctx, "failed to restore template content", "error", putErr)
			}
		}
		s.writeStoreError(w, r, err)
		return
	}

	if !contentChanged {
		content, err = s.blobs.Get(ctx, tpl.ContentKey)
		if err != nil {
			s.log.ErrorContext(ctx, "failed to load template content", "error", err)
			writeAPIError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to load template content")
			return
		}
	}
	writeJSON(w, http.StatusOK, templateDocument{Template: *tpl, Content: content})
}

func (s *Service) getTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := tenant.MustIDFromContext(ctx)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "INVALID_ID", "Template ID must be a valid UUID")
		return
	}

	tpl, err := s.docs.GetTemplate(ctx, tenantID, id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	content, err := s.blobs.Get(ctx, tpl.ContentKey)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to load template content", "error", err)
		writeAPIError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to load template content")
		return
	}
	writeJSON(w, http.StatusOK, templateDocument{Template: *tpl, Content: content})
}

func (s *Service) listTemplates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := tenant.MustIDFromContext(ctx)

	docs, err := s.docs.ListTemplates(ctx, tenantID)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if docs == nil {
		docs = []store.Template{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"templates": docs,
		"total":     len(docs),
	})
}
