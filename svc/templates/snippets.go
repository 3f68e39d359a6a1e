package templates

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/letterkit/letterkit/pkg/quota"
	"github.com/letterkit/letterkit/pkg/schema"
	"github.com/letterkit/letterkit/pkg/store"
	"github.com/letterkit/letterkit/svc/tenant"
)

type snippetRequest struct {
	Name       string            `json:"name"`
	Content    string            `json:"content"`
	Parameters []store.Parameter `json:"parameters"`
}

type snippetDocument struct {
	store.Snippet
	Content string `json:"content"`
}

func (s *Service) createSnippet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := tenant.MustIDFromContext(ctx)

	body, _ := schema.BodyFromContext(ctx)
	req, err := schema.DecodeBody[snippetRequest](body)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "INVALID_REQUEST_FORMAT", "Unable to decode request body")
		return
	}

	if err := s.quotas.Enforce(ctx, tenantID, s.tiers(ctx, tenantID), quota.ResourceSnippet); err != nil {
		s.writeQuotaError(w, r, err)
		return
	}

	id := uuid.New()
	key := snippetContentKey(tenantID, id)
	if err := s.blobs.Put(ctx, key, req.Content); err != nil {
		s.log.ErrorContext(ctx, "failed to store snippet content", "error", err)
		writeAPIError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to store snippet content")
		return
	}

	sn := &store.Snippet{
		ID:         id,
		TenantID:   tenantID,
		Name:       req.Name,
		Parameters: req.Parameters,
		ContentKey: key,
	}
	if err := s.docs.CreateSnippet(ctx, sn); err != nil {
		_ = s.blobs.Delete(ctx, key)
		s.writeStoreError(w, r, err)
		return
	}

	s.quotas.Invalidate(ctx, tenantID)
	writeJSON(w, http.StatusCreated, snippetDocument{Snippet: *sn, Content: req.Content})
}

func (s *Service) getSnippet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := tenant.MustIDFromContext(ctx)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "INVALID_ID", "Snippet ID must be a valid UUID")
		return
	}

	sn, content, err := s.renderer.GetSnippetByID(ctx, tenantID, id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snippetDocument{Snippet: *sn, Content: content})
}

func (s *Service) listSnippets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := tenant.MustIDFromContext(ctx)

	docs, err := s.docs.ListSnippets(ctx, tenantID)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if docs == nil {
		docs = []store.Snippet{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"snippets": docs,
		"total":    len(docs),
	})
}

// previewSnippet renders a stored snippet with caller-supplied parameter
// values. Values are checked against the snippet's declarations first so a
// missing required parameter is an itemized error, not a blank render.
func (s *Service) previewSnippet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := tenant.MustIDFromContext(ctx)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "INVALID_ID", "Snippet ID must be a valid UUID")
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "INVALID_REQUEST_FORMAT", "Unable to read request body")
		return
	}
	body := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			writeAPIError(w, http.StatusBadRequest, "INVALID_REQUEST_FORMAT", "Request body must be valid JSON")
			return
		}
	}

	sn, content, err := s.renderer.GetSnippetByID(ctx, tenantID, id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	result := schema.ValidatePreviewRequest(body, schema.PreviewKindSnippet, sn.Parameters)
	if !result.Valid {
		schema.WriteError(w, schema.NewValidationErrorResponse("Preview validation failed", result.Errors, result.Warnings))
		return
	}

	params, _ := body["parameters"].(map[string]any)
	html, err := s.renderer.RenderSnippet(content, params)
	if err != nil {
		writeAPIError(w, http.StatusUnprocessableEntity, "RENDER_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"html":    html,
		"snippet": sn,
	})
}
