package templates

import (
	"net/http"

	"github.com/letterkit/letterkit/pkg/email"
	"github.com/letterkit/letterkit/pkg/schema"
	"github.com/letterkit/letterkit/svc/tenant"
)

type previewRequest struct {
	Content          string         `json:"content"`
	Data             map[string]any `json:"data"`
	SendTestEmail    bool           `json:"sendTestEmail"`
	TestEmailAddress string         `json:"testEmailAddress"`
}

// previewTemplate renders ad-hoc template content with sample data. When the
// caller asks for a test email the rendered HTML is delivered to the given
// address; delivery failure downgrades to a warning rather than failing the
// preview itself.
func (s *Service) previewTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := tenant.MustIDFromContext(ctx)

	body, _ := schema.BodyFromContext(ctx)
	result := schema.ValidatePreviewRequest(body, schema.PreviewKindTemplate, nil)
	if !result.Valid {
		schema.WriteError(w, schema.NewValidationErrorResponse("Preview validation failed", result.Errors, result.Warnings))
		return
	}

	req, err := schema.DecodeBody[previewRequest](body)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "INVALID_REQUEST_FORMAT", "Unable to decode request body")
		return
	}

	html, err := s.renderer.RenderTemplate(ctx, req.Content, req.Data, tenantID)
	if err != nil {
		writeAPIError(w, http.StatusUnprocessableEntity, "RENDER_FAILED", err.Error())
		return
	}

	resp := map[string]any{"html": html}
	if req.SendTestEmail {
		if s.mailer == nil {
			writeAPIError(w, http.StatusNotImplemented, "TEST_EMAIL_DISABLED", "Test email delivery is not configured")
			return
		}
		err := s.mailer.Send(ctx, email.Message{
			To:       req.TestEmailAddress,
			Subject:  "Template preview",
			BodyHTML: html,
			Tag:      "template-preview",
		})
		if err != nil {
			s.log.ErrorContext(ctx, "test email delivery failed", "error", err)
			resp["testEmailSent"] = false
			resp["testEmailError"] = "Delivery failed"
		} else {
			resp["testEmailSent"] = true
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
