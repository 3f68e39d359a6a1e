package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letterkit/letterkit/pkg/store"
	"github.com/letterkit/letterkit/pkg/validate"
)

func TestValidateSnippet(t *testing.T) {
	t.Parallel()

	t.Run("valid snippet", func(t *testing.T) {
		t.Parallel()

		params := []store.Parameter{
			{Name: "title", Type: store.ParamString, Required: true, Description: "Heading text"},
		}
		result := validate.ValidateSnippet(`<h2>{{title}}</h2>`, params)
		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
		assert.Empty(t, result.Warnings)
	})

	t.Run("empty content is terminal", func(t *testing.T) {
		t.Parallel()

		result := validate.ValidateSnippet("", nil)
		require.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, validate.CodeSnippetContentEmpty, result.Errors[0].Code)
	})

	t.Run("size at the ceiling is rejected", func(t *testing.T) {
		t.Parallel()

		result := validate.ValidateSnippet(strings.Repeat("a", validate.MaxSnippetSize), nil)
		assert.False(t, result.Valid)
		assert.Contains(t, errorCodes(result), validate.CodeSnippetSizeExceeded)
	})

	t.Run("unused required parameter", func(t *testing.T) {
		t.Parallel()

		params := []store.Parameter{
			{Name: "title", Type: store.ParamString, Required: true, Description: "Heading"},
		}
		result := validate.ValidateSnippet(`<p>static</p>`, params)
		assert.True(t, result.Valid, "parameter findings are warnings only")
		assert.Contains(t, warningCodes(result), validate.CodeUnusedRequiredParameter)
	})

	t.Run("unused optional parameter passes silently", func(t *testing.T) {
		t.Parallel()

		params := []store.Parameter{
			{Name: "subtitle", Type: store.ParamString, Description: "Optional subheading"},
		}
		result := validate.ValidateSnippet(`<p>static</p>`, params)
		assert.True(t, result.Valid)
		assert.NotContains(t, warningCodes(result), validate.CodeUnusedRequiredParameter)
	})

	t.Run("undefined parameter", func(t *testing.T) {
		t.Parallel()

		result := validate.ValidateSnippet(`<p>{{mystery}}</p>`, nil)
		assert.True(t, result.Valid)
		assert.Contains(t, warningCodes(result), validate.CodeUndefinedParameter)
	})

	t.Run("missing description", func(t *testing.T) {
		t.Parallel()

		params := []store.Parameter{
			{Name: "title", Type: store.ParamString},
		}
		result := validate.ValidateSnippet(`{{title}}`, params)
		assert.Contains(t, warningCodes(result), validate.CodeMissingParameterDescription)
	})

	t.Run("too many parameters", func(t *testing.T) {
		t.Parallel()

		params := make([]store.Parameter, validate.MaxParameters+1)
		var sb strings.Builder
		for i := range params {
			name := "p" + strings.Repeat("x", i+1)
			params[i] = store.Parameter{Name: name, Type: store.ParamString, Description: "d"}
			sb.WriteString("{{" + name + "}}")
		}
		result := validate.ValidateSnippet(sb.String(), params)
		assert.True(t, result.Valid)
		assert.Contains(t, warningCodes(result), validate.CodeTooManyParameters)
	})

	t.Run("high complexity is gated", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		for i := 0; i < 12; i++ {
			sb.WriteString("{{#if a}}x{{/if}}")
		}
		content := sb.String()

		plain := validate.ValidateSnippet(content, nil)
		assert.NotContains(t, warningCodes(plain), validate.CodeHighComplexity)

		checked := validate.ValidateSnippet(content, nil, validate.WithBestPractices())
		assert.Contains(t, warningCodes(checked), validate.CodeHighComplexity)
	})

	t.Run("repeated calls yield identical results", func(t *testing.T) {
		t.Parallel()

		params := []store.Parameter{
			{Name: "title", Type: store.ParamString, Required: true},
			{Name: "count", Type: store.ParamNumber, Required: true},
		}
		content := `{{title}} {{extra}} {{count}} {{extra}} {{another}}`
		first := validate.ValidateSnippet(content, params)
		second := validate.ValidateSnippet(content, params)
		assert.Equal(t, first, second)
	})
}
