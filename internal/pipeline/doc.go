// Package pipeline implements the Markdown-to-HTML conversion stages.
//
// The classic engine (RenderClassic) is a fixed sequence of regex rewrites
// over the whole text: headings, fenced code, paragraphs, lists,
// blockquotes, then inline spans. It covers a small Markdown subset and
// never fails.
//
// Alongside it live the richer engines (goldmark, blackfriday) and the
// stages applied around any engine:
//   - Markdown preprocessing (line endings, ==highlight== syntax)
//   - HTML sanitizing (bluemonday)
//   - relative path rewriting for images and links
//   - table of contents generation
//   - document wrapping and CSS injection
//
// PDF export is handled by the root md2html package using headless Chrome.
package pipeline
