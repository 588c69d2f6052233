package pipeline

import (
	"context"
	"regexp"
	"strings"
	"unicode"
)

// Character classes shared by the classic patterns. Whitespace is the
// Unicode space separators plus tab, vertical tab, form feed, BOM and the
// line breaks. A line ends at \n, \r, U+2028 or U+2029, so "." and the
// line anchors never run across a lone carriage return.
const (
	lineBreaks = `\n\r\x{2028}\x{2029}`
	spaceClass = `[\t\v\f\p{Zs}\x{FEFF}` + lineBreaks + `]`
	lineClass  = `[^` + lineBreaks + `]`

	// lineStart captures the break before a line, or "" at the start of
	// the text. Replacements must write group 1 back.
	lineStart = `(^|[` + lineBreaks + `])`
)

// isClassicSpace reports whether r belongs to spaceClass.
func isClassicSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// Stage rewrites a whole document and hands the result to the next stage.
// Stages never fail: malformed input produces best-effort output.
type Stage func(text string) string

// classicStages is the fixed rendering order. Each stage sees the complete
// output of the previous one; there is no intermediate tree.
var classicStages = []Stage{
	renderHeadings,
	renderCodeBlocks,
	renderParagraphs,
	renderLists,
	renderBlockquotes,
	renderInline,
}

// RenderClassic converts the supported Markdown subset to an HTML fragment
// by running the classic stages in order. Empty input yields "".
func RenderClassic(markdown string) string {
	if markdown == "" {
		return ""
	}

	html := markdown
	for _, stage := range classicStages {
		html = stage(html)
	}
	return html
}

// ClassicConverter adapts RenderClassic to the HTMLConverter contract.
type ClassicConverter struct{}

// ToHTML renders content with the classic stages.
// The rendering itself is synchronous and cheap, so only the context
// state before starting is checked.
func (c *ClassicConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return RenderClassic(content), nil
}

// replaceAllGroupsFunc replaces every match of re in src with the value
// returned by repl, which receives the full match followed by the capture
// groups (unmatched groups are "").
func replaceAllGroupsFunc(re *regexp.Regexp, src string, repl func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(src, -1)
	if matches == nil {
		return src
	}

	var b strings.Builder
	b.Grow(len(src))

	last := 0
	for _, m := range matches {
		groups := make([]string, len(m)/2)
		for i := range groups {
			if m[2*i] >= 0 {
				groups[i] = src[m[2*i]:m[2*i+1]]
			}
		}
		b.WriteString(src[last:m[0]])
		b.WriteString(repl(groups))
		last = m[1]
	}
	b.WriteString(src[last:])
	return b.String()
}
