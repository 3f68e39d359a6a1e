// Package validate performs static analysis of template and snippet markup
// before anything is persisted or rendered.
//
// ValidateTemplate checks template content: presence, size, Handlebars
// syntax, snippet reference names, and a set of opt-in best-practice
// heuristics (unescaped script output, missing alt attributes, inline styles,
// deep block nesting). ValidateSnippet checks snippet content against its
// declared parameter list.
//
// Results are value objects: errors make a Result invalid, warnings never
// do. The heuristic checks are regex-based and inherently approximate, so
// they only ever produce warnings.
package validate
