package validate

// Issue is a single validation finding. Type is set on errors only and
// groups them by origin (content, size, syntax, reference).
type Issue struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code"`
}

// Issue types for errors.
const (
	TypeContent   = "content"
	TypeSize      = "size"
	TypeSyntax    = "syntax"
	TypeReference = "reference"
	TypeField     = "field"
	TypeParameter = "parameter"
)

// Result is the outcome of a validation pass. Constructed fresh per call and
// never persisted.
type Result struct {
	Valid    bool    `json:"isValid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// NewResult returns a valid Result with empty issue lists. Empty slices are
// allocated so JSON encodes [] rather than null.
func NewResult() Result {
	return Result{
		Valid:    true,
		Errors:   []Issue{},
		Warnings: []Issue{},
	}
}

// AddError records an error and marks the result invalid.
func (r *Result) AddError(code, typ, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, Issue{Message: message, Type: typ, Code: code})
}

// AddWarning records a warning. Warnings never affect validity.
func (r *Result) AddWarning(code, message string) {
	r.Warnings = append(r.Warnings, Issue{Message: message, Code: code})
}
