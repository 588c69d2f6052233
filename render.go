package md2html

import "github.com/alnah/go-md2html/internal/pipeline"

// Render converts Markdown to an HTML fragment with the classic engine.
// Empty input yields "". Render is deterministic, performs no I/O and
// never fails; unsupported syntax passes through as text.
//
// Output is not escaped: raw HTML in the input reaches the output as is.
// Sanitize untrusted input with a Converter built WithSanitize(true).
func Render(markdown string) string {
	return pipeline.RenderClassic(markdown)
}
