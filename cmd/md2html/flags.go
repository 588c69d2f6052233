package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlags wraps flag parsing failures.
var ErrInvalidFlags = errors.New("invalid flags")

// parseFlagSet parses args, passing flag.ErrHelp through unchanged.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
}

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags selects the engine and how its output is styled.
type renderFlags struct {
	engine    string
	style     string // name, CSS file path or inline CSS
	highlight string
	assetPath string
	sanitize  bool
	marks     bool
	noStyle   bool
}

// documentFlags holds standalone document flags.
type documentFlags struct {
	standalone bool
	title      string
	lang       string
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	enabled  bool
	title    string
	minDepth int
	maxDepth int
	disabled bool
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// outputFlags holds output mode flags.
type outputFlags struct {
	pdf    bool // also write a PDF next to each HTML file
	stdout bool // print the single result instead of writing a file
	watch  bool // keep running and re-convert changed files
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	timeout    string
	render     renderFlags
	document   documentFlags
	toc        tocFlags
	page       pageFlags
	outputMode outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and debug logs")
}

// addRenderFlags adds engine and styling flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.engine, "engine", "e", "", "markdown engine: classic, commonmark, blackfriday")
	fs.StringVarP(&f.style, "style", "s", "", "CSS style name, file path or inline CSS")
	fs.StringVar(&f.highlight, "highlight", "", "code highlight style (commonmark engine)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.sanitize, "sanitize", false, "sanitize rendered HTML")
	fs.BoolVar(&f.marks, "marks", false, "render ==text== as <mark>")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
}

// addDocumentFlags adds standalone document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.BoolVar(&f.standalone, "standalone", false, "write a full HTML document")
	fs.StringVar(&f.title, "title", "", "document title (\"\" = first H1, then file name)")
	fs.StringVar(&f.lang, "lang", "", "document language (default: en)")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.BoolVar(&f.enabled, "toc", false, "insert a table of contents")
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.IntVar(&f.minDepth, "toc-min-depth", 0, "min heading depth for TOC (1-6, default: 2)")
	fs.IntVar(&f.maxDepth, "toc-max-depth", 0, "max heading depth for TOC (1-6, default: 3)")
	fs.BoolVar(&f.disabled, "no-toc", false, "disable table of contents")
}

// addPageFlags adds PDF page flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "PDF page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "PDF orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "PDF margin in inches (0.25-3.0)")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.pdf, "pdf", false, "also write a PDF (requires Chrome)")
	fs.BoolVar(&f.stdout, "stdout", false, "print the result to stdout")
	fs.BoolVar(&f.watch, "watch", false, "re-convert files when they change")
}

// newConvertFlagSet registers every convert flag on a new FlagSet.
// Shared by parseConvertFlags and shell completion.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addDocumentFlags(fs, &f.document)
	addTOCFlags(fs, &f.toc)
	addPageFlags(fs, &f.page)
	addOutputFlags(fs, &f.outputMode)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
// Usage goes to usageOut on -h.
func parseConvertFlags(args []string, usageOut io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printConvertUsage(usageOut) }

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// previewFlags holds flags for the preview command.
type previewFlags struct {
	style string // glamour style: auto, dark, light, notty, ...
	width int
}

// newPreviewFlagSet registers the preview flags on a new FlagSet.
func newPreviewFlagSet(f *previewFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.StringVarP(&f.style, "style", "s", defaultPreviewStyle, "terminal style: auto, dark, light, notty, ascii")
	fs.IntVar(&f.width, "width", defaultPreviewWidth, "word wrap width")
	return fs
}

// parsePreviewFlags parses preview command flags and returns positional args.
func parsePreviewFlags(args []string, usageOut io.Writer) (*previewFlags, []string, error) {
	f := &previewFlags{}
	fs := newPreviewFlagSet(f)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printPreviewUsage(usageOut) }

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
