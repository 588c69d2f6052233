package pipeline

import (
	"regexp"
	"strings"
)

// inlineRule is one span-level substitution.
type inlineRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// inlineRules run in order. Bold must precede italic, otherwise "**"
// would be split into two empty <em> spans.
// Spans never cross a line break.
var inlineRules = []inlineRule{
	{regexp.MustCompile(`\*\*(` + lineClass + `*?)\*\*`), "<strong>${1}</strong>"},
	{regexp.MustCompile(`\*(` + lineClass + `*?)\*`), "<em>${1}</em>"},
	{regexp.MustCompile("`(" + lineClass + "*?)`"), "<code>${1}</code>"},
	{regexp.MustCompile(`\[(` + lineClass + `*?)\]\((` + lineClass + `*?)\)`), `<a href="${2}">${1}</a>`},
}

// codeSpanPattern finds rendered fenced code, which inline rules skip.
var codeSpanPattern = regexp.MustCompile(`(?s)<pre><code>.*?</code></pre>`)

// renderInline applies bold, italic, inline code and links to the text
// between fenced code blocks.
func renderInline(text string) string {
	spans := codeSpanPattern.FindAllStringIndex(text, -1)
	if spans == nil {
		return applyInlineRules(text)
	}

	var b strings.Builder
	b.Grow(len(text))

	last := 0
	for _, span := range spans {
		b.WriteString(applyInlineRules(text[last:span[0]]))
		b.WriteString(text[span[0]:span[1]])
		last = span[1]
	}
	b.WriteString(applyInlineRules(text[last:]))
	return b.String()
}

func applyInlineRules(text string) string {
	for _, rule := range inlineRules {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}
	return text
}
