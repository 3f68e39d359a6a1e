package validate

import (
	"fmt"

	"github.com/mailgun/raymond/v2"
)

// Option configures a validation pass.
type Option func(*options)

type options struct {
	checkBestPractices bool
}

// WithBestPractices enables the heuristic warning checks (unescaped script
// output, missing alt attributes, inline styles, deep nesting, snippet
// complexity). Hard errors run regardless.
func WithBestPractices() Option {
	return func(o *options) {
		o.checkBestPractices = true
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ValidateTemplate statically checks template markup. It never touches the
// snippet store: reference checks are purely lexical, so a template that
// names a snippet which does not exist yet still validates.
func ValidateTemplate(content string, opts ...Option) Result {
	o := buildOptions(opts)
	result := NewResult()

	if content == "" {
		result.AddError(CodeTemplateContentEmpty, TypeContent, "Template content cannot be empty")
		return result
	}

	// Not terminal: an oversized template may carry further problems worth
	// reporting in the same pass.
	if len(content) >= MaxTemplateSize {
		result.AddError(CodeTemplateSizeExceeded, TypeSize,
			fmt.Sprintf("Template content exceeds maximum size of %d characters", MaxTemplateSize))
	}

	if _, err := raymond.Parse(content); err != nil {
		result.AddError(CodeTemplateSyntaxError, TypeSyntax, err.Error())
	}

	// Reference checks are regex-based and run even when compilation failed.
	for _, name := range partialReferences(content) {
		switch {
		case !isValidName(name):
			result.AddError(CodeInvalidSnippetName, TypeReference,
				fmt.Sprintf("Invalid snippet name %q: only letters, digits, hyphens and underscores are allowed", name))
		case isReservedName(name):
			result.AddError(CodeReservedSnippetName, TypeReference,
				fmt.Sprintf("Snippet name %q collides with a built-in helper", name))
		}
	}

	if o.checkBestPractices {
		if hasUnescapedScript(content) {
			result.AddWarning(CodePotentialXSSScript,
				"Unescaped (triple-brace) output combined with script tags may allow script injection")
		}
		if n := imagesMissingAlt(content); n > 0 {
			result.AddWarning(CodeMissingAltAttribute,
				fmt.Sprintf("%d image tag(s) missing an alt attribute", n))
		}
		if hasInlineStyles(content) {
			result.AddWarning(CodeInlineStyles,
				"Inline style attributes found; prefer a stylesheet or the visual editor")
		}
		if depth := maxNestingDepth(content); depth >= deepNestingThreshold {
			result.AddWarning(CodeDeepNesting,
				fmt.Sprintf("Block helpers nested %d levels deep; consider extracting snippets", depth))
		}
	}

	return result
}
