package md2html

import (
	"fmt"
	"strings"
)

// Engine selects the Markdown implementation.
type Engine string

// Engines.
const (
	// EngineClassic is the regex pipeline behind Render.
	EngineClassic Engine = "classic"
	// EngineCommonMark uses goldmark with GFM, footnotes and highlighting.
	EngineCommonMark Engine = "commonmark"
	// EngineBlackfriday uses blackfriday v2 with its common extensions.
	EngineBlackfriday Engine = "blackfriday"
)

// Engines returns the engine names in display order.
func Engines() []string {
	return []string{string(EngineClassic), string(EngineCommonMark), string(EngineBlackfriday)}
}

// ParseEngine resolves a case-insensitive engine name. Empty means classic.
func ParseEngine(name string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(name))) {
	case "", EngineClassic:
		return EngineClassic, nil
	case EngineCommonMark:
		return EngineCommonMark, nil
	case EngineBlackfriday:
		return EngineBlackfriday, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEngine, name)
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid. A nil receiver is valid and
// means defaults. Comparison is case-insensitive.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	switch strings.ToLower(p.Size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// TOC depth defaults.
const (
	DefaultTOCMinDepth = 2
	DefaultTOCMaxDepth = 3
)

// TOC configures the generated table of contents.
type TOC struct {
	Title    string // optional heading above the list
	MinDepth int    // 1-6, 0 = DefaultTOCMinDepth
	MaxDepth int    // 1-6, 0 = DefaultTOCMaxDepth
}

// Validate checks depth ranges. A nil TOC is valid and means no TOC.
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	minDepth, maxDepth := t.depths()
	if minDepth < 1 || minDepth > 6 {
		return fmt.Errorf("%w: minDepth %d (must be 1-6)", ErrInvalidTOCDepth, t.MinDepth)
	}
	if maxDepth < 1 || maxDepth > 6 {
		return fmt.Errorf("%w: maxDepth %d (must be 1-6)", ErrInvalidTOCDepth, t.MaxDepth)
	}
	if minDepth > maxDepth {
		return fmt.Errorf("%w: minDepth %d exceeds maxDepth %d", ErrInvalidTOCDepth, minDepth, maxDepth)
	}
	return nil
}

func (t *TOC) depths() (minDepth, maxDepth int) {
	minDepth, maxDepth = t.MinDepth, t.MaxDepth
	if minDepth == 0 {
		minDepth = DefaultTOCMinDepth
	}
	if maxDepth == 0 {
		maxDepth = DefaultTOCMaxDepth
	}
	return minDepth, maxDepth
}

// Input contains per-conversion parameters. Only Markdown is used by
// default; every other field is optional.
type Input struct {
	Markdown string // may be empty

	// SourcePath is the file the Markdown came from. It feeds the title
	// fallback and, when SourceDir is empty, locates relative references.
	SourcePath string
	// SourceDir is the base for relative img/a/media references.
	SourceDir string
	// OutputDir is where the standalone HTML will be written. When set,
	// relative references are rebased from SourceDir onto it.
	OutputDir string

	Standalone bool   // full HTML document instead of a fragment
	Title      string // document title, empty = first H1, then file name
	Lang       string // html lang attribute, empty = "en"
	CSS        string // appended after the converter style

	TOC *TOC // nil = no table of contents

	PDF  bool          // also render a PDF
	Page *PageSettings // nil = DefaultPageSettings
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	HTML []byte
	PDF  []byte // nil unless Input.PDF
}
