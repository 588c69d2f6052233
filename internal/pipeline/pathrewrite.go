package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PathRewriter resolves relative resource references in rendered HTML
// against the directory of the Markdown source.
//
// With TargetDir empty, references become absolute file:// URLs, which is
// what the headless browser needs for PDF export. With TargetDir set, they
// are re-expressed relative to TargetDir, so an HTML file written next to
// (or away from) its source still finds its images.
type PathRewriter struct {
	SourceDir string
	TargetDir string
}

// rewrittenAttrs lists, per element, the attribute holding a resource path.
var rewrittenAttrs = map[atom.Atom]string{
	atom.Img:    "src",
	atom.A:      "href",
	atom.Video:  "src",
	atom.Audio:  "src",
	atom.Source: "src",
}

// RewriteRelativePaths converts relative image and link paths to absolute
// file:// URLs. If sourceDir is empty, returns the HTML unchanged.
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	return (&PathRewriter{SourceDir: sourceDir}).Rewrite(htmlContent)
}

// Rewrite parses htmlContent (document or fragment), rewrites relative
// references and renders it back.
// Paths escaping SourceDir, URLs, anchors and absolute paths are kept.
func (r *PathRewriter) Rewrite(htmlContent string) (string, error) {
	if r.SourceDir == "" {
		return htmlContent, nil
	}

	absSourceDir, err := filepath.Abs(r.SourceDir)
	if err != nil {
		return "", err
	}

	absTargetDir := ""
	if r.TargetDir != "" {
		if absTargetDir, err = filepath.Abs(r.TargetDir); err != nil {
			return "", err
		}
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	walkElements(doc, func(n *html.Node) {
		attrName, ok := rewrittenAttrs[n.DataAtom]
		if !ok {
			return
		}
		for i, attr := range n.Attr {
			if attr.Key != attrName {
				continue
			}
			if resolved, ok := resolveReference(attr.Val, absSourceDir, absTargetDir); ok {
				n.Attr[i].Val = resolved
			}
		}
	})

	return renderHTML(doc, isFragment)
}

// resolveReference returns the rewritten reference and true, or false when
// ref must be left as written.
func resolveReference(ref, sourceDir, targetDir string) (string, bool) {
	if !isRelativePath(ref) {
		return "", false
	}

	// Keep "#section" and "?v=2" suffixes out of the filesystem path.
	pathPart, suffix := ref, ""
	if i := strings.IndexAny(ref, "?#"); i != -1 {
		pathPart, suffix = ref[:i], ref[i:]
	}
	if pathPart == "" {
		return "", false
	}

	absPath := filepath.Join(sourceDir, filepath.FromSlash(pathPart))
	if !isPathUnderDir(absPath, sourceDir) {
		return "", false
	}

	if targetDir == "" {
		return pathToFileURL(absPath) + suffix, true
	}

	rel, err := filepath.Rel(targetDir, absPath)
	if err != nil {
		return pathToFileURL(absPath) + suffix, true
	}
	return filepath.ToSlash(rel) + suffix, true
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node and whether it was a fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Parse with a body context so no <html><body> wrapper is added.
	bodyCtx := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), bodyCtx)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the tree back to a string. Fragments render their
// children only.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// walkElements calls fn for every element node under n, depth first.
func walkElements(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, fn)
	}
}

// isRelativePath reports whether path is a local relative reference.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	if u, err := url.Parse(path); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		// http:, https:, file:, data:, mailto:... (single letters are drive names)
		return false
	}
	return !filepath.IsAbs(path) && !strings.HasPrefix(path, "/")
}

// isPathUnderDir checks that absPath stays inside dir.
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
