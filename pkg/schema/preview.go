package schema

import (
	"fmt"
	"strconv"

	"github.com/letterkit/letterkit/pkg/store"
	"github.com/letterkit/letterkit/pkg/validate"
)

// PreviewKind selects which preview rules apply.
type PreviewKind string

const (
	PreviewKindTemplate PreviewKind = "template"
	PreviewKindSnippet  PreviewKind = "snippet"
)

// Preview error codes.
const (
	CodeTestEmailRequired        = "TEST_EMAIL_REQUIRED"
	CodeRequiredParameterMissing = "REQUIRED_PARAMETER_MISSING"
	CodeInvalidParameterType     = "INVALID_PARAMETER_TYPE"
)

// ValidatePreviewRequest checks preview-specific constraints on an already
// shape-validated body. For template previews that request a test email, an
// address must be supplied. For snippet previews, supplied parameter values
// are checked against the snippet's declarations; string-encoded numbers and
// booleans ("5", "true") are accepted for their target types.
func ValidatePreviewRequest(body map[string]any, kind PreviewKind, declared []store.Parameter) validate.Result {
	result := validate.NewResult()

	switch kind {
	case PreviewKindTemplate:
		send, _ := body["sendTestEmail"].(bool)
		address, _ := body["testEmailAddress"].(string)
		if send && address == "" {
			result.AddError(CodeTestEmailRequired, validate.TypeField,
				"testEmailAddress is required when sendTestEmail is true")
		}

	case PreviewKindSnippet:
		values, _ := body["parameters"].(map[string]any)
		for _, p := range declared {
			value, present := values[p.Name]
			if !present || value == nil {
				if p.Required {
					result.AddError(CodeRequiredParameterMissing, validate.TypeParameter,
						fmt.Sprintf("Required parameter %q is missing", p.Name))
				}
				continue
			}
			if !matchesParamType(value, p.Type) {
				result.AddError(CodeInvalidParameterType, validate.TypeParameter,
					fmt.Sprintf("Parameter %q must be of type %s", p.Name, p.Type))
			}
		}
	}

	return result
}

func matchesParamType(value any, typ store.ParamType) bool {
	switch typ {
	case store.ParamString:
		_, ok := value.(string)
		return ok
	case store.ParamNumber:
		switch v := value.(type) {
		case float64:
			return true
		case string:
			_, err := strconv.ParseFloat(v, 64)
			return err == nil
		}
		return false
	case store.ParamBoolean:
		switch v := value.(type) {
		case bool:
			return true
		case string:
			_, err := strconv.ParseBool(v)
			return err == nil
		}
		return false
	}
	return false
}
