package validate

import (
	"fmt"

	"github.com/letterkit/letterkit/pkg/store"
)

// ValidateSnippet statically checks snippet markup against its declared
// parameter list. All parameter findings are warnings: a snippet with unused
// or undocumented parameters still works, it is just harder to maintain.
func ValidateSnippet(content string, parameters []store.Parameter, opts ...Option) Result {
	o := buildOptions(opts)
	result := NewResult()

	if content == "" {
		result.AddError(CodeSnippetContentEmpty, TypeContent, "Snippet content cannot be empty")
		return result
	}

	if len(content) >= MaxSnippetSize {
		result.AddError(CodeSnippetSizeExceeded, TypeSize,
			fmt.Sprintf("Snippet content exceeds maximum size of %d characters", MaxSnippetSize))
	}

	refs := variableReferences(content)
	used := make(map[string]struct{}, len(refs))
	for _, name := range refs {
		used[name] = struct{}{}
	}

	declared := make(map[string]struct{}, len(parameters))
	for _, p := range parameters {
		declared[p.Name] = struct{}{}

		if _, ok := used[p.Name]; p.Required && !ok {
			result.AddWarning(CodeUnusedRequiredParameter,
				fmt.Sprintf("Required parameter %q is never referenced in the snippet content", p.Name))
		}
		if p.Description == "" {
			result.AddWarning(CodeMissingParameterDescription,
				fmt.Sprintf("Parameter %q has no description", p.Name))
		}
	}

	for _, name := range refs {
		if _, ok := declared[name]; !ok {
			result.AddWarning(CodeUndefinedParameter,
				fmt.Sprintf("Variable %q is referenced in the content but not declared as a parameter", name))
		}
	}

	if len(parameters) > MaxParameters {
		result.AddWarning(CodeTooManyParameters,
			fmt.Sprintf("Snippet declares %d parameters; maximum recommended is %d", len(parameters), MaxParameters))
	}

	if o.checkBestPractices {
		if score := complexityScore(content); score > highComplexityThreshold {
			result.AddWarning(CodeHighComplexity,
				fmt.Sprintf("Snippet complexity score %d exceeds %d; consider splitting it up", score, highComplexityThreshold))
		}
	}

	return result
}
