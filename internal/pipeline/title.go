package pipeline

import (
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultTitle is used when no better document title can be found.
const DefaultTitle = "Document"

var firstH1Pattern = regexp.MustCompile(`(?is)<h1(?:\s[^>]*)?>(.*?)</h1>`)

// ExtractTitle picks the document title, first non-empty wins:
// explicit, the text of the first <h1> in htmlContent, the base name of
// sourcePath without extension, then DefaultTitle.
func ExtractTitle(explicit, htmlContent, sourcePath string) string {
	if t := strings.TrimSpace(explicit); t != "" {
		return t
	}

	if m := firstH1Pattern.FindStringSubmatch(htmlContent); m != nil {
		if t := stripHTMLTags(m[1]); t != "" {
			return t
		}
	}

	if sourcePath != "" {
		base := filepath.Base(sourcePath)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		if base != "" && base != "." && base != string(filepath.Separator) {
			return base
		}
	}

	return DefaultTitle
}
