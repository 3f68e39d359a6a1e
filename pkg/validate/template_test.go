package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letterkit/letterkit/pkg/validate"
)

func errorCodes(r validate.Result) []string {
	codes := make([]string, 0, len(r.Errors))
	for _, issue := range r.Errors {
		codes = append(codes, issue.Code)
	}
	return codes
}

func warningCodes(r validate.Result) []string {
	codes := make([]string, 0, len(r.Warnings))
	for _, issue := range r.Warnings {
		codes = append(codes, issue.Code)
	}
	return codes
}

func TestValidateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("valid template", func(t *testing.T) {
		t.Parallel()

		result := validate.ValidateTemplate(`<h1>Hello {{name}}</h1>{{> header}}`)
		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
		assert.Empty(t, result.Warnings)
	})

	t.Run("empty content is terminal", func(t *testing.T) {
		t.Parallel()

		result := validate.ValidateTemplate("")
		require.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, validate.CodeTemplateContentEmpty, result.Errors[0].Code)
		assert.Equal(t, validate.TypeContent, result.Errors[0].Type)
	})

	t.Run("size at the ceiling is rejected", func(t *testing.T) {
		t.Parallel()

		content := strings.Repeat("a", validate.MaxTemplateSize)
		result := validate.ValidateTemplate(content)
		assert.False(t, result.Valid)
		assert.Contains(t, errorCodes(result), validate.CodeTemplateSizeExceeded)
	})

	t.Run("size below the ceiling passes", func(t *testing.T) {
		t.Parallel()

		content := strings.Repeat("a", validate.MaxTemplateSize-1)
		result := validate.ValidateTemplate(content)
		assert.True(t, result.Valid)
	})

	t.Run("unclosed expression is a syntax error", func(t *testing.T) {
		t.Parallel()

		result := validate.ValidateTemplate("{{title")
		assert.False(t, result.Valid)
		assert.Contains(t, errorCodes(result), validate.CodeTemplateSyntaxError)
	})

	t.Run("unclosed block is a syntax error", func(t *testing.T) {
		t.Parallel()

		result := validate.ValidateTemplate("{{#if show}}visible")
		assert.False(t, result.Valid)
		assert.Contains(t, errorCodes(result), validate.CodeTemplateSyntaxError)
	})

	t.Run("invalid snippet name", func(t *testing.T) {
		t.Parallel()

		result := validate.ValidateTemplate("{{> my.header}}")
		assert.False(t, result.Valid)
		assert.Contains(t, errorCodes(result), validate.CodeInvalidSnippetName)
	})

	t.Run("reserved snippet name", func(t *testing.T) {
		t.Parallel()

		result := validate.ValidateTemplate("{{> if}}")
		assert.False(t, result.Valid)
		assert.Contains(t, errorCodes(result), validate.CodeReservedSnippetName)
	})

	t.Run("reference checks run on broken templates", func(t *testing.T) {
		t.Parallel()

		result := validate.ValidateTemplate("{{> bad.name}} {{#if x}}")
		codes := errorCodes(result)
		assert.Contains(t, codes, validate.CodeTemplateSyntaxError)
		assert.Contains(t, codes, validate.CodeInvalidSnippetName)
	})

	t.Run("best practice warnings are opt-in", func(t *testing.T) {
		t.Parallel()

		content := `<img src="a.png"><div style="color:red">{{{body}}}<script>x()</script></div>`

		plain := validate.ValidateTemplate(content)
		assert.True(t, plain.Valid)
		assert.Empty(t, plain.Warnings)

		checked := validate.ValidateTemplate(content, validate.WithBestPractices())
		assert.True(t, checked.Valid, "warnings must not invalidate")
		codes := warningCodes(checked)
		assert.Contains(t, codes, validate.CodePotentialXSSScript)
		assert.Contains(t, codes, validate.CodeMissingAltAttribute)
		assert.Contains(t, codes, validate.CodeInlineStyles)
	})

	t.Run("deep nesting warning", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		for i := 0; i < 8; i++ {
			sb.WriteString("{{#if a}}")
		}
		sb.WriteString("deep")
		for i := 0; i < 8; i++ {
			sb.WriteString("{{/if}}")
		}

		result := validate.ValidateTemplate(sb.String(), validate.WithBestPractices())
		assert.True(t, result.Valid)
		assert.Contains(t, warningCodes(result), validate.CodeDeepNesting)
	})

	t.Run("repeated calls yield identical results", func(t *testing.T) {
		t.Parallel()

		content := `{{> header}} {{title}} {{body}} {{title}} {{#each items}}{{this}}{{/each}}`
		first := validate.ValidateTemplate(content, validate.WithBestPractices())
		second := validate.ValidateTemplate(content, validate.WithBestPractices())
		assert.Equal(t, first, second)
	})
}
