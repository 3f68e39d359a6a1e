// Package render compiles Handlebars markup and evaluates it against a data
// context. Templates may include tenant-scoped snippets as partials
// ({{> snippet-name param=value}}); the engine resolves referenced snippets
// through the document and blob stores before compilation.
//
// Snippet resolution is fault tolerant: a snippet that cannot be resolved is
// registered as an empty partial and the failure is logged, so a single
// missing fragment never breaks an entire newsletter render. Syntax errors
// in the top-level content are fatal to that render call.
package render
