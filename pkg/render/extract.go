package render

import "regexp"

var partialRefRe = regexp.MustCompile(`\{\{>\s*([^\s}]+)`)

// ExtractUsedSnippets returns the distinct snippet names referenced by the
// content, in first-occurrence order. References are recomputed from content
// on every call; the Snippets list stored on a template document is derived
// data only.
func ExtractUsedSnippets(content string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, m := range partialRefRe.FindAllStringSubmatch(content, -1) {
		name := m[1]
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
