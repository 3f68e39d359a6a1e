package schema

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/letterkit/letterkit/pkg/store"
	"github.com/letterkit/letterkit/pkg/validate"
)

type contextKey struct{}

var bodyKey contextKey

// BodyFromContext returns the decoded request body stashed by Middleware.
func BodyFromContext(ctx context.Context) (map[string]any, bool) {
	body, ok := ctx.Value(bodyKey).(map[string]any)
	return body, ok
}

// maxBodyBytes caps request bodies well above the template size ceiling,
// leaving headroom for JSON escaping of the content field, so oversized
// content is reported by the validator rather than truncated by the reader.
const maxBodyBytes = 8 << 20

// Middleware returns an http middleware that decodes the JSON body, checks
// it against the named schema, and for create/update flows runs the
// corresponding content validator. On success the decoded body is stashed in
// the request context for the handler; on failure a 400 with itemized errors
// is written and the chain stops.
//
// An unknown schema ID panics at route registration time: wiring a route to
// a schema that does not exist is a programming error.
func Middleware(id ID, log *slog.Logger) func(http.Handler) http.Handler {
	if _, ok := schemas[id]; !ok {
		panic(ErrUnknownSchema)
	}
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
			if err != nil {
				WriteError(w, newErrorResponse(CodeInvalidRequestFormat, "Unable to read request body", nil, nil))
				return
			}

			var body map[string]any
			if err := json.Unmarshal(raw, &body); err != nil {
				WriteError(w, newErrorResponse(CodeInvalidRequestFormat, "Request body must be valid JSON", nil, nil))
				return
			}

			result, err := ValidateRequestBody(body, id)
			if err != nil {
				// Unreachable given the registration-time check above.
				WriteError(w, newErrorResponse(CodeRequestValidationFailed, err.Error(), nil, nil))
				return
			}
			if !result.Valid {
				WriteError(w, newErrorResponse(CodeRequestValidationFailed, "Request validation failed", result.Errors, result.Warnings))
				return
			}

			if content := contentValidation(body, id); content != nil {
				if len(content.Warnings) > 0 {
					log.WarnContext(r.Context(), "content validation warnings",
						slog.String("schema", string(id)),
						slog.Int("count", len(content.Warnings)),
					)
				}
				if !content.Valid {
					WriteError(w, newErrorResponse(CodeContentValidationFailed, "Content validation failed", content.Errors, content.Warnings))
					return
				}
			}

			ctx := context.WithValue(r.Context(), bodyKey, body)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// contentValidation runs the content validator matching the schema, or
// returns nil when the schema has no content semantics to check.
func contentValidation(body map[string]any, id ID) *validate.Result {
	switch id {
	case CreateTemplate, PreviewTemplate:
		content, _ := body["content"].(string)
		result := validate.ValidateTemplate(content, validate.WithBestPractices())
		return &result

	case UpdateTemplate:
		// Partial update: only validate content when it is being changed.
		content, ok := body["content"].(string)
		if !ok {
			return nil
		}
		result := validate.ValidateTemplate(content, validate.WithBestPractices())
		return &result

	case CreateSnippet:
		content, _ := body["content"].(string)
		params, _ := decodeDeclaredParameters(body["parameters"])
		result := validate.ValidateSnippet(content, params, validate.WithBestPractices())
		return &result
	}
	return nil
}

// decodeDeclaredParameters converts the raw parameters array into typed
// declarations. Shape defects have already been reported by the schema pass,
// so undecodable entries are simply skipped here.
func decodeDeclaredParameters(value any) ([]store.Parameter, bool) {
	items, ok := value.([]any)
	if !ok {
		return nil, false
	}

	params := make([]store.Parameter, 0, len(items))
	for _, item := range items {
		decl, ok := item.(map[string]any)
		if !ok {
			continue
		}
		p := store.Parameter{}
		p.Name, _ = decl["name"].(string)
		if typ, ok := decl["type"].(string); ok {
			p.Type = store.ParamType(typ)
		}
		p.Required, _ = decl["required"].(bool)
		p.Description, _ = decl["description"].(string)
		if p.Name != "" {
			params = append(params, p)
		}
	}
	return params, true
}
