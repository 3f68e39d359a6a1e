package schema

import (
	"encoding/json"
	"fmt"

	"github.com/letterkit/letterkit/pkg/store"
	"github.com/letterkit/letterkit/pkg/validate"
)

// ValidateRequestBody checks a decoded JSON body against the named schema.
// The error return is reserved for unknown schema IDs; every user-input
// defect lands in the Result.
func ValidateRequestBody(body map[string]any, id ID) (validate.Result, error) {
	rules, ok := schemas[id]
	if !ok {
		return validate.Result{}, fmt.Errorf("%w: %q", ErrUnknownSchema, id)
	}

	result := validate.NewResult()

	for _, rule := range rules {
		value, present := body[rule.Name]
		if !present || value == nil {
			if rule.Required {
				code := rule.RequiredCode
				if code == "" {
					code = CodeFieldRequired
				}
				result.AddError(code, validate.TypeField,
					fmt.Sprintf("Field %q is required", rule.Name))
			}
			continue
		}

		checkField(&result, rule, value)
	}

	return result, nil
}

func checkField(result *validate.Result, rule fieldRule, value any) {
	switch rule.Kind {
	case kindString:
		s, ok := value.(string)
		if !ok {
			addTypeError(result, rule.Name, "string")
			return
		}
		if rule.MaxLen > 0 && len(s) > rule.MaxLen {
			result.AddError(CodeMaxLengthViolation, validate.TypeField,
				fmt.Sprintf("Field %q exceeds maximum length of %d characters", rule.Name, rule.MaxLen))
		}
		if rule.Pattern != nil && !rule.Pattern.MatchString(s) {
			result.AddError(CodePatternViolation, validate.TypeField,
				fmt.Sprintf("Field %q must contain only letters, digits, hyphens and underscores", rule.Name))
		}

	case kindBool:
		if _, ok := value.(bool); !ok {
			addTypeError(result, rule.Name, "boolean")
		}

	case kindStringArray:
		items, ok := value.([]any)
		if !ok {
			addTypeError(result, rule.Name, "array of strings")
			return
		}
		if rule.MaxItems > 0 && len(items) > rule.MaxItems {
			result.AddError(CodeMaxItemsViolation, validate.TypeField,
				fmt.Sprintf("Field %q exceeds maximum of %d items", rule.Name, rule.MaxItems))
		}
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				addTypeError(result, rule.Name, "array of strings")
				return
			}
			if rule.MaxLen > 0 && len(s) > rule.MaxLen {
				result.AddError(CodeMaxLengthViolation, validate.TypeField,
					fmt.Sprintf("Items of field %q exceed maximum length of %d characters", rule.Name, rule.MaxLen))
				return
			}
		}

	case kindObject:
		if _, ok := value.(map[string]any); !ok {
			addTypeError(result, rule.Name, "object")
		}

	case kindParameters:
		checkParameters(result, rule, value)
	}
}

func checkParameters(result *validate.Result, rule fieldRule, value any) {
	items, ok := value.([]any)
	if !ok {
		addTypeError(result, rule.Name, "array of parameter declarations")
		return
	}
	if rule.MaxItems > 0 && len(items) > rule.MaxItems {
		result.AddError(CodeMaxItemsViolation, validate.TypeField,
			fmt.Sprintf("Field %q exceeds maximum of %d items", rule.Name, rule.MaxItems))
	}

	seen := make(map[string]struct{}, len(items))
	duplicate := false

	for i, item := range items {
		decl, ok := item.(map[string]any)
		if !ok {
			addTypeError(result, fmt.Sprintf("%s[%d]", rule.Name, i), "parameter declaration")
			continue
		}

		name, ok := decl["name"].(string)
		if !ok || name == "" {
			result.AddError(CodeFieldRequired, validate.TypeParameter,
				fmt.Sprintf("Parameter declaration %d is missing a name", i))
			continue
		}
		if !snippetNameRe.MatchString(name) {
			result.AddError(CodePatternViolation, validate.TypeParameter,
				fmt.Sprintf("Parameter name %q must contain only letters, digits, hyphens and underscores", name))
		}

		if _, dup := seen[name]; dup {
			duplicate = true
		}
		seen[name] = struct{}{}

		typ, ok := decl["type"].(string)
		if !ok || !store.ParamType(typ).Valid() {
			result.AddError(CodeInvalidType, validate.TypeParameter,
				fmt.Sprintf("Parameter %q has an invalid type; valid types are string, number, boolean", name))
		}

		if v, present := decl["required"]; present {
			if _, ok := v.(bool); !ok {
				addTypeError(result, fmt.Sprintf("%s.required", name), "boolean")
			}
		}
		if v, present := decl["description"]; present {
			if _, ok := v.(string); !ok {
				addTypeError(result, fmt.Sprintf("%s.description", name), "string")
			}
		}
	}

	if duplicate {
		result.AddError(CodeDuplicateParameterNames, validate.TypeParameter,
			"Parameter names must be unique within a snippet")
	}
}

func addTypeError(result *validate.Result, field, expected string) {
	result.AddError(CodeInvalidType, validate.TypeField,
		fmt.Sprintf("Field %q must be a %s", field, expected))
}

// DecodeBody converts a validated body map into a typed request struct via a
// JSON round trip. Intended for handlers running after the middleware, where
// shape errors have already been reported.
func DecodeBody[T any](body map[string]any) (T, error) {
	var out T

	raw, err := json.Marshal(body)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return out, nil
}
