package templates

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/letterkit/letterkit/pkg/quota"
	"github.com/letterkit/letterkit/pkg/store"
)

type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: message, Code: code})
}

// writeStoreError maps document-store failures onto API responses.
func (s *Service) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrTemplateNotFound):
		writeAPIError(w, http.StatusNotFound, "TEMPLATE_NOT_FOUND", "Template not found")
	case errors.Is(err, store.ErrSnippetNotFound):
		writeAPIError(w, http.StatusNotFound, "SNIPPET_NOT_FOUND", "Snippet not found")
	case errors.Is(err, store.ErrDuplicateName):
		writeAPIError(w, http.StatusConflict, "DUPLICATE_NAME", "A document with this name already exists")
	default:
		s.log.ErrorContext(r.Context(), "store operation failed", "error", err)
		writeAPIError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
	}
}

// writeQuotaError maps Enforce failures: exceeded quotas get the upgrade
// payload with 403, anything else is internal.
func (s *Service) writeQuotaError(w http.ResponseWriter, r *http.Request, err error) {
	resp := quota.FormatQuotaError(err)
	status := http.StatusForbidden
	if !errors.Is(err, quota.ErrQuotaExceeded) {
		s.log.ErrorContext(r.Context(), "quota check failed", "error", err)
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, resp)
}
