package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// headingPatterns holds one pattern per ATX level, index 0 = level 1.
// Levels are applied from 6 down to 1 so "##" is never consumed by the
// level 1 pattern. The text runs to the end of the line; group 1 is the
// preceding line break.
var headingPatterns = func() [6]*regexp.Regexp {
	var patterns [6]*regexp.Regexp
	for level := 1; level <= 6; level++ {
		patterns[level-1] = regexp.MustCompile(lineStart + `#{` + strconv.Itoa(level) + `}` + spaceClass + `+(` + lineClass + `*)`)
	}
	return patterns
}()

var (
	// Fenced code: the fence lines are matched by their newlines only,
	// content may span lines and is matched lazily.
	codeBlockPattern = regexp.MustCompile("(?s)```\n(.*?)\n```")

	// Two or more newlines separate blocks.
	blockSeparator = regexp.MustCompile(`\n\n+`)

	unorderedListPattern = regexp.MustCompile(`<p>(` + spaceClass + `*-` + lineClass + `*(?:\n` + spaceClass + `*-` + lineClass + `*)*)</p>`)
	unorderedItemMarker  = regexp.MustCompile(`^` + spaceClass + `*-` + spaceClass + `*`)
	orderedListPattern   = regexp.MustCompile(`<p>(` + spaceClass + `*\d+\.` + lineClass + `*(?:\n` + spaceClass + `*\d+\.` + lineClass + `*)*)</p>`)
	orderedItemMarker    = regexp.MustCompile(`^` + spaceClass + `*\d+\.` + spaceClass + `*`)

	blockquotePattern = regexp.MustCompile(`<p>` + spaceClass + `*>` + spaceClass + `*(` + lineClass + `*?)</p>`)
)

// blockTagPrefixes mark blocks that are already HTML and must not be
// wrapped in a paragraph. "<h" is deliberately loose: it matches any tag
// starting with h.
var blockTagPrefixes = []string{"<pre>", "<h", "<ul>", "<ol>", "<blockquote>"}

// renderHeadings converts "# text" through "###### text" at line start.
func renderHeadings(text string) string {
	for level := 6; level >= 1; level-- {
		n := strconv.Itoa(level)
		text = headingPatterns[level-1].ReplaceAllString(text, "${1}<h"+n+">${2}</h"+n+">")
	}
	return text
}

// renderCodeBlocks converts fenced blocks to <pre><code>, keeping a trailing
// newline inside the block.
func renderCodeBlocks(text string) string {
	return codeBlockPattern.ReplaceAllString(text, "<pre><code>${1}\n</code></pre>")
}

// renderParagraphs splits on blank lines and wraps every plain block in <p>.
// Whitespace-only blocks collapse to "" but still take part in the join.
func renderParagraphs(text string) string {
	blocks := blockSeparator.Split(text, -1)
	for i, block := range blocks {
		if hasBlockTagPrefix(block) {
			continue
		}
		if strings.TrimFunc(block, isClassicSpace) == "" {
			blocks[i] = ""
			continue
		}
		blocks[i] = "<p>" + block + "</p>"
	}
	return strings.Join(blocks, "\n")
}

func hasBlockTagPrefix(block string) bool {
	for _, prefix := range blockTagPrefixes {
		if strings.HasPrefix(block, prefix) {
			return true
		}
	}
	return false
}

// renderLists turns paragraphs made only of "-" lines into <ul> and
// paragraphs made only of "N." lines into <ol>.
func renderLists(text string) string {
	text = replaceAllGroupsFunc(unorderedListPattern, text, func(groups []string) string {
		return buildList("ul", groups[1], unorderedItemMarker)
	})
	return replaceAllGroupsFunc(orderedListPattern, text, func(groups []string) string {
		return buildList("ol", groups[1], orderedItemMarker)
	})
}

// buildList emits one <li> per line of content, with the marker stripped.
func buildList(tag, content string, marker *regexp.Regexp) string {
	lines := strings.Split(content, "\n")
	items := make([]string, len(lines))
	for i, line := range lines {
		items[i] = "<li>" + marker.ReplaceAllString(line, "") + "</li>"
	}
	return "<" + tag + ">\n" + strings.Join(items, "\n") + "\n</" + tag + ">"
}

// renderBlockquotes converts single-line "> text" paragraphs.
func renderBlockquotes(text string) string {
	return blockquotePattern.ReplaceAllString(text, "<blockquote>${1}</blockquote>")
}
