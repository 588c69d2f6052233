package md2html

import "time"

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds the settings collected from options.
type converterConfig struct {
	timeout        time.Duration
	engine         Engine
	styleInput     string // name, file path or CSS content
	resolvedStyle  string
	assetPath      string
	highlightStyle string
	sanitize       bool
	marks          bool
}

// defaultTimeout bounds PDF page loads when the context has no deadline.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithEngine selects the Markdown engine. NewConverter rejects unknown
// values with ErrUnknownEngine.
func WithEngine(e Engine) Option {
	return func(c *Converter) {
		c.cfg.engine = e
	}
}

// WithStyle sets the stylesheet for standalone and PDF output.
// Accepts a style name ("github"), a file path ("./custom.css") or CSS
// content (anything containing "{").
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath loads styles and templates from a directory, falling back
// to the embedded assets for missing files.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithHighlightStyle sets the chroma style used for code blocks of the
// commonmark engine. See HighlightStyles.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}

// WithSanitize filters engine output through a user-content HTML policy.
func WithSanitize(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.sanitize = enabled
	}
}

// WithMarks enables ==text== highlighting.
func WithMarks(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.marks = enabled
	}
}
