package render

import "errors"

// Render failures carry user-facing prefixes: handler layers surface these
// messages verbatim.
var (
	ErrTemplateRender = errors.New("Template rendering failed")
	ErrSnippetRender  = errors.New("Snippet rendering failed")
)
