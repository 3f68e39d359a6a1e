package schema

import (
	"regexp"

	"github.com/letterkit/letterkit/pkg/validate"
)

// ID identifies a request-body schema. The set is closed: adding a schema
// means adding a constant and a rule table here.
type ID string

const (
	CreateTemplate  ID = "createTemplate"
	CreateSnippet   ID = "createSnippet"
	UpdateTemplate  ID = "updateTemplate"
	PreviewTemplate ID = "previewTemplate"
)

// Field-level error codes.
const (
	CodeFieldRequired           = "FIELD_REQUIRED"
	CodePatternViolation        = "PATTERN_VIOLATION"
	CodeMaxLengthViolation      = "MAX_LENGTH_VIOLATION"
	CodeMaxItemsViolation       = "MAX_ITEMS_VIOLATION"
	CodeInvalidType             = "INVALID_TYPE"
	CodeDuplicateParameterNames = "DUPLICATE_PARAMETER_NAMES"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindBool
	kindStringArray
	kindObject
	kindParameters
)

// fieldRule declares the constraints for one request field. Rules are
// immutable after package init.
type fieldRule struct {
	Name         string
	Required     bool
	RequiredCode string // overrides CodeFieldRequired when set
	Kind         fieldKind
	MaxLen       int
	MaxItems     int
	Pattern      *regexp.Regexp
}

var snippetNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

const (
	maxNameLen     = 100
	maxCategoryLen = 50
	maxTagLen      = 50
	maxTags        = 10
)

// templateFields is shared by createTemplate and, with Required stripped,
// updateTemplate.
var templateFields = []fieldRule{
	{Name: "name", Required: true, Kind: kindString, MaxLen: maxNameLen},
	{Name: "content", Required: true, RequiredCode: validate.CodeTemplateContentRequired, Kind: kindString, MaxLen: validate.MaxTemplateSize},
	{Name: "category", Kind: kindString, MaxLen: maxCategoryLen},
	{Name: "tags", Kind: kindStringArray, MaxItems: maxTags, MaxLen: maxTagLen},
	{Name: "visualMode", Kind: kindBool},
}

var schemas = map[ID][]fieldRule{
	CreateTemplate: templateFields,
	UpdateTemplate: optional(templateFields),
	CreateSnippet: {
		{Name: "name", Required: true, Kind: kindString, MaxLen: maxNameLen, Pattern: snippetNameRe},
		{Name: "content", Required: true, RequiredCode: validate.CodeSnippetContentRequired, Kind: kindString, MaxLen: validate.MaxSnippetSize},
		{Name: "parameters", Kind: kindParameters, MaxItems: validate.MaxParameters},
	},
	PreviewTemplate: {
		{Name: "content", Required: true, RequiredCode: validate.CodeTemplateContentRequired, Kind: kindString, MaxLen: validate.MaxTemplateSize},
		{Name: "data", Kind: kindObject},
		{Name: "sendTestEmail", Kind: kindBool},
		{Name: "testEmailAddress", Kind: kindString, MaxLen: maxNameLen},
	},
}

// optional returns a copy of rules with every field made optional; used for
// partial updates where per-field constraints still apply to present fields.
func optional(rules []fieldRule) []fieldRule {
	out := make([]fieldRule, len(rules))
	copy(out, rules)
	for i := range out {
		out[i].Required = false
		out[i].RequiredCode = ""
	}
	return out
}
