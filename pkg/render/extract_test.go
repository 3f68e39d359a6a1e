package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/letterkit/letterkit/pkg/render"
)

func TestExtractUsedSnippets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "no references",
			content:  "<h1>{{title}}</h1>",
			expected: nil,
		},
		{
			name:     "single reference",
			content:  "{{> header}}",
			expected: []string{"header"},
		},
		{
			name:     "no space after marker",
			content:  "{{>header}}",
			expected: []string{"header"},
		},
		{
			name:     "first occurrence order with duplicates",
			content:  "{{> footer}} {{> header}} {{> footer}}",
			expected: []string{"footer", "header"},
		},
		{
			name:     "mixed with variables and blocks",
			content:  "{{#if x}}{{> cta-button}}{{/if}} {{name}} {{> header_v2}}",
			expected: []string{"cta-button", "header_v2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, render.ExtractUsedSnippets(tt.content))
		})
	}
}
