// Package md2html converts Markdown to HTML, and optionally to PDF through
// headless Chrome.
//
// # Quick Start
//
// Render is the pure entry point. It handles the classic subset (headings,
// fenced code, paragraphs, lists, single-line blockquotes, bold, italic,
// inline code and links) with a fixed sequence of regular-expression passes:
//
//	html := md2html.Render("# Hello\n\nSome **bold** text.")
//	// <h1>Hello</h1>
//	// <p>Some <strong>bold</strong> text.</p>
//
// Render never fails and is safe for concurrent use.
//
// # Converter
//
// Converter adds engines, styles, standalone documents and PDF export:
//
//	conv, err := md2html.NewConverter(
//	    md2html.WithEngine(md2html.EngineCommonMark),
//	    md2html.WithStyle("github"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2html.Input{
//	    Markdown:   content,
//	    SourcePath: "docs/guide.md",
//	    Standalone: true,
//	})
//
// The conversion runs these stages:
//
//  1. Source preprocessing (line endings, optional ==mark== syntax)
//  2. Engine: classic (default), commonmark (goldmark) or blackfriday
//  3. Optional sanitizing (bluemonday) and table of contents
//  4. Standalone document: title, template, stylesheet, relative paths
//  5. Optional PDF rendering via headless Chrome (go-rod)
//
// A Converter owns at most one browser and is not safe for concurrent use.
// For batch work use ConverterPool.
//
// # Custom Assets
//
// Styles and the document template can be overridden from a directory:
//
//	assets/
//	├── styles/
//	│   └── corporate.css
//	└── templates/
//	    └── document.html
//
// Missing files fall back to the embedded defaults.
package md2html
