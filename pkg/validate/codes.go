package validate

// Size ceilings, in characters. Content at or above the ceiling is rejected.
const (
	MaxTemplateSize = 1_000_000
	MaxSnippetSize  = 100_000
)

// MaxParameters is the declared-parameter ceiling for a snippet.
const MaxParameters = 10

// deepNestingThreshold is the block-helper nesting depth at which the
// DEEP_NESTING warning fires.
const deepNestingThreshold = 8

// highComplexityThreshold is the structural complexity score at which the
// HIGH_COMPLEXITY warning fires.
const highComplexityThreshold = 10

// Template error codes.
const (
	CodeTemplateContentRequired = "TEMPLATE_CONTENT_REQUIRED"
	CodeTemplateContentEmpty    = "TEMPLATE_CONTENT_EMPTY"
	CodeTemplateSizeExceeded    = "TEMPLATE_SIZE_EXCEEDED"
	CodeTemplateSyntaxError     = "TEMPLATE_SYNTAX_ERROR"
	CodeInvalidSnippetName      = "INVALID_SNIPPET_NAME"
	CodeReservedSnippetName     = "RESERVED_SNIPPET_NAME"
)

// Template warning codes (best-practice heuristics).
const (
	CodePotentialXSSScript  = "POTENTIAL_XSS_SCRIPT"
	CodeMissingAltAttribute = "MISSING_ALT_ATTRIBUTE"
	CodeInlineStyles        = "INLINE_STYLES"
	CodeDeepNesting         = "DEEP_NESTING"
)

// Snippet error codes.
const (
	CodeSnippetContentRequired = "SNIPPET_CONTENT_REQUIRED"
	CodeSnippetContentEmpty    = "SNIPPET_CONTENT_EMPTY"
	CodeSnippetSizeExceeded    = "SNIPPET_SIZE_EXCEEDED"
)

// Snippet warning codes.
const (
	CodeUnusedRequiredParameter     = "UNUSED_REQUIRED_PARAMETER"
	CodeUndefinedParameter          = "UNDEFINED_PARAMETER"
	CodeTooManyParameters           = "TOO_MANY_PARAMETERS"
	CodeMissingParameterDescription = "MISSING_PARAMETER_DESCRIPTION"
	CodeHighComplexity              = "HIGH_COMPLEXITY"
)
