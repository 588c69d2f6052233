package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strconv"
	"strings"
)

// ErrDocumentRender indicates the document template failed to execute.
var ErrDocumentRender = errors.New("document template rendering failed")

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	if ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if insertPos := afterBodyTag(htmlContent, lowerHTML); insertPos != -1 {
		return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes "</" so the stylesheet cannot close its <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// afterBodyTag returns the offset just past the opening <body ...> tag,
// or -1 when there is none.
func afterBodyTag(htmlContent, lowerHTML string) int {
	idx := strings.Index(lowerHTML, "<body")
	if idx == -1 {
		return -1
	}
	closeIdx := strings.Index(htmlContent[idx:], ">")
	if closeIdx == -1 {
		return -1
	}
	return idx + closeIdx + 1
}

// DocumentData feeds the document template.
type DocumentData struct {
	Title string
	Lang  string
	Body  string
}

// DocumentWrapper turns an HTML fragment into a complete HTML document.
type DocumentWrapper interface {
	WrapDocument(ctx context.Context, data *DocumentData) (string, error)
}

// DocumentTemplate renders DocumentData through an html/template.
// The title is escaped; the body is trusted engine output.
type DocumentTemplate struct {
	tmpl *template.Template
}

// templateDocument is what the template sees: Body is marked safe.
type templateDocument struct {
	Title string
	Lang  string
	Body  template.HTML
}

// NewDocumentTemplate parses the document template content.
func NewDocumentTemplate(tmplContent string) (*DocumentTemplate, error) {
	tmpl, err := template.New("document").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}
	return &DocumentTemplate{tmpl: tmpl}, nil
}

// WrapDocument executes the template. Empty Lang defaults to "en".
func (d *DocumentTemplate) WrapDocument(ctx context.Context, data *DocumentData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if data == nil {
		data = &DocumentData{}
	}

	lang := data.Lang
	if lang == "" {
		lang = "en"
	}

	var buf bytes.Buffer
	err := d.tmpl.Execute(&buf, templateDocument{
		Title: data.Title,
		Lang:  lang,
		Body:  template.HTML(data.Body), // #nosec G203 -- engine output, optionally sanitized upstream
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return buf.String(), nil
}

// TOCData holds TOC configuration for injection.
type TOCData struct {
	Title    string
	MinDepth int // Minimum heading level (default: 2, skips H1)
	MaxDepth int // Maximum heading level (default: 3)
}

// TOCInjector defines the contract for TOC injection into HTML.
type TOCInjector interface {
	InjectTOC(ctx context.Context, htmlContent string, data *TOCData) (string, error)
}

// headingInfo represents an extracted heading from HTML.
type headingInfo struct {
	Level int
	ID    string
	Text  string
}

var (
	// Captures: 1=level, 2=id, 3=inner HTML.
	headingWithIDPattern = regexp.MustCompile(`(?is)<h([1-6])[^>]*\bid="([^"]*)"[^>]*>(.*?)</h[1-6]>`)

	// Opening heading tags without attributes, as the classic engine emits them.
	bareHeadingPattern = regexp.MustCompile(`(?is)<h([1-6])>(.*?)</h[1-6]>`)

	headingOpenPattern = regexp.MustCompile(`(?i)<h[1-6][\s>]`)

	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
	slugStrip      = regexp.MustCompile(`[^\p{L}\p{N}\s-]+`)
	slugSpaces     = regexp.MustCompile(`[\s-]+`)
)

// stripHTMLTags removes tags, decodes entities and trims whitespace, so the
// text can be escaped once when written back.
func stripHTMLTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}

// slugify builds a lowercase, hyphenated anchor from heading text.
func slugify(text string) string {
	s := strings.ToLower(stripHTMLTags(text))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(strings.TrimSpace(s), "-")
	if s == "" {
		return "heading"
	}
	return s
}

// ensureHeadingIDs adds id attributes to attribute-less headings. Duplicate
// slugs get a numeric suffix ("intro", "intro-1", ...).
func ensureHeadingIDs(htmlContent string) string {
	seen := make(map[string]int)
	for _, m := range headingWithIDPattern.FindAllStringSubmatch(htmlContent, -1) {
		seen[m[2]]++
	}

	return replaceAllGroupsFunc(bareHeadingPattern, htmlContent, func(groups []string) string {
		level, inner := groups[1], groups[2]
		id := uniqueID(slugify(inner), seen)
		return `<h` + level + ` id="` + html.EscapeString(id) + `">` + inner + `</h` + level + `>`
	})
}

// uniqueID returns base, or base-N with the first N not already in seen,
// and records the result.
func uniqueID(base string, seen map[string]int) string {
	id := base
	for n := seen[base]; seen[id] > 0; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	if id != base {
		seen[base]++
	}
	seen[id]++
	return id
}

// extractHeadings returns headings with IDs between minDepth and maxDepth.
func extractHeadings(htmlContent string, minDepth, maxDepth int) []headingInfo {
	matches := headingWithIDPattern.FindAllStringSubmatch(htmlContent, -1)
	if len(matches) == 0 {
		return nil
	}

	var headings []headingInfo
	for _, m := range matches {
		level, _ := strconv.Atoi(m[1])
		if level < minDepth || level > maxDepth {
			continue
		}
		headings = append(headings, headingInfo{
			Level: level,
			ID:    m[2],
			Text:  stripHTMLTags(m[3]),
		})
	}
	return headings
}

// numberingState tracks hierarchical numbering for TOC entries.
// The first heading seen becomes depth 1 and skipped levels collapse.
type numberingState struct {
	counters     [6]int
	minLevelSeen int
	lastLevel    int
}

// next returns the number string ("1.2.") and the effective depth.
func (n *numberingState) next(level int) (numStr string, effectiveDepth int) {
	if n.minLevelSeen == 0 {
		n.minLevelSeen = level
	}

	effectiveDepth = level - n.minLevelSeen + 1
	if effectiveDepth < 1 {
		effectiveDepth = 1
	}

	// H1 -> H3 nests as depth 2, not 3.
	if n.lastLevel > 0 && effectiveDepth > n.lastLevel+1 {
		effectiveDepth = n.lastLevel + 1
	}

	for i := effectiveDepth; i < 6; i++ {
		n.counters[i] = 0
	}
	n.counters[effectiveDepth-1]++
	n.lastLevel = effectiveDepth

	parts := make([]string, effectiveDepth)
	for i := 0; i < effectiveDepth; i++ {
		parts[i] = strconv.Itoa(n.counters[i])
	}
	return strings.Join(parts, ".") + ".", effectiveDepth
}

// generateNumberedTOC renders the TOC as a <nav> of indented links.
func generateNumberedTOC(headings []headingInfo, title string) string {
	if len(headings) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(`<nav class="toc">`)

	if title != "" {
		buf.WriteString(`<h2 class="toc-title">`)
		buf.WriteString(html.EscapeString(title))
		buf.WriteString(`</h2>`)
	}

	buf.WriteString(`<div class="toc-list">`)

	var numbering numberingState
	for _, h := range headings {
		num, depth := numbering.next(h.Level)

		buf.WriteString(`<div class="toc-item"`)
		if indent := float64(depth-1) * 1.5; indent > 0 {
			fmt.Fprintf(&buf, ` style="padding-left:%.1fem"`, indent)
		}
		buf.WriteString(`><a href="#`)
		buf.WriteString(html.EscapeString(h.ID))
		buf.WriteString(`">`)
		buf.WriteString(num)
		buf.WriteString(` `)
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString(`</a></div>`)
	}

	buf.WriteString(`</div></nav>`)
	return buf.String()
}

// TOCInjection implements TOCInjector.
type TOCInjection struct{}

// InjectTOC anchors headings that have no id, then inserts a numbered TOC
// before the first heading of the body (or of a fragment).
// If data is nil, returns htmlContent unchanged.
func (t *TOCInjection) InjectTOC(ctx context.Context, htmlContent string, data *TOCData) (string, error) {
	if data == nil {
		return htmlContent, nil
	}

	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	htmlContent = ensureHeadingIDs(htmlContent)

	headings := extractHeadings(htmlContent, data.MinDepth, data.MaxDepth)
	tocHTML := generateNumberedTOC(headings, data.Title)
	if tocHTML == "" {
		return htmlContent, nil
	}

	insertPos := tocInsertPos(htmlContent)
	return htmlContent[:insertPos] + tocHTML + htmlContent[insertPos:], nil
}

// tocInsertPos returns the offset of the first heading in the body, or the
// start of the body when there is none.
func tocInsertPos(htmlContent string) int {
	start := afterBodyTag(htmlContent, strings.ToLower(htmlContent))
	if start == -1 {
		start = 0
	}
	if loc := headingOpenPattern.FindStringIndex(htmlContent[start:]); loc != nil {
		return start + loc[0]
	}
	return start
}
