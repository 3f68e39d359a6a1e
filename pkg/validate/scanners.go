package validate

import (
	"regexp"
	"slices"
	"strings"
)

// Each scanner inspects raw markup independently; none of them require the
// template to compile.

var (
	partialRefRe = regexp.MustCompile(`\{\{>\s*([^\s}]+)`)
	nameRe       = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

	blockOpenRe  = regexp.MustCompile(`\{\{#\s*[A-Za-z0-9_-]+`)
	blockCloseRe = regexp.MustCompile(`\{\{/\s*[A-Za-z0-9_-]+`)

	tripleBraceRe = regexp.MustCompile(`\{\{\{[^}]*\}\}\}`)
	scriptTagRe   = regexp.MustCompile(`(?i)<\s*script\b`)

	imgTagRe      = regexp.MustCompile(`(?i)<img\b[^>]*>`)
	altAttrRe     = regexp.MustCompile(`(?i)\balt\s*=`)
	inlineStyleRe = regexp.MustCompile(`(?i)\bstyle\s*=\s*["']`)

	// Simple {{name}} or {{{name}}} variable output; block helpers, partials,
	// comments and else branches are excluded by the leading character class.
	variableRefRe = regexp.MustCompile(`\{\{\{?\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}?\}\}`)
)

// reservedNames are built-in block helper names a snippet must not shadow.
var reservedNames = map[string]struct{}{
	"if":                 {},
	"unless":             {},
	"each":               {},
	"with":               {},
	"lookup":             {},
	"log":                {},
	"helperMissing":      {},
	"blockHelperMissing": {},
}

// keywords that look like variable references but are not data lookups.
var nonVariableNames = map[string]struct{}{
	"else": {},
	"this": {},
}

// partialReferences returns every partial reference name in order of
// occurrence, duplicates included.
func partialReferences(content string) []string {
	matches := partialRefRe.FindAllStringSubmatch(content, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// variableReferences returns the distinct simple variable names the content
// outputs, in first-occurrence order. Order is stable so repeated validation
// of the same content yields identical results.
func variableReferences(content string) []string {
	seen := make(map[string]struct{})
	var refs []string
	for _, m := range variableRefRe.FindAllStringSubmatch(content, -1) {
		name := m[1]
		if _, skip := nonVariableNames[name]; skip {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		refs = append(refs, name)
	}
	return refs
}

// maxNestingDepth walks block open/close markers and returns the deepest
// nesting level. Unbalanced markup is tolerated; depth never goes negative.
func maxNestingDepth(content string) int {
	type marker struct {
		pos  int
		open bool
	}

	var markers []marker
	for _, loc := range blockOpenRe.FindAllStringIndex(content, -1) {
		markers = append(markers, marker{pos: loc[0], open: true})
	}
	for _, loc := range blockCloseRe.FindAllStringIndex(content, -1) {
		markers = append(markers, marker{pos: loc[0], open: false})
	}

	// Markers must be processed in document order.
	slices.SortFunc(markers, func(a, b marker) int {
		return a.pos - b.pos
	})

	depth, maxDepth := 0, 0
	for _, m := range markers {
		if m.open {
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		} else if depth > 0 {
			depth--
		}
	}
	return maxDepth
}

// complexityScore is a rough structural measure: every block helper counts
// once, and the deepest nesting level is weighted on top.
func complexityScore(content string) int {
	blocks := len(blockOpenRe.FindAllString(content, -1))
	return blocks + maxNestingDepth(content)
}

// hasUnescapedScript reports whether the content combines raw (triple-brace)
// output with script tags. Approximate by design.
func hasUnescapedScript(content string) bool {
	return tripleBraceRe.MatchString(content) && scriptTagRe.MatchString(content)
}

// imagesMissingAlt counts <img> tags without an alt attribute.
func imagesMissingAlt(content string) int {
	n := 0
	for _, tag := range imgTagRe.FindAllString(content, -1) {
		if !altAttrRe.MatchString(tag) {
			n++
		}
	}
	return n
}

// hasInlineStyles reports whether any element carries a style attribute.
func hasInlineStyles(content string) bool {
	return inlineStyleRe.MatchString(content)
}

// isValidName reports whether a snippet or parameter name matches the
// allowed pattern: alphanumeric plus hyphen and underscore, no spaces.
func isValidName(name string) bool {
	return nameRe.MatchString(name)
}

// isReservedName reports whether the name collides with a built-in helper.
func isReservedName(name string) bool {
	_, ok := reservedNames[strings.TrimSpace(name)]
	return ok
}
