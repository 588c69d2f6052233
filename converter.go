package md2html

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.SourcePreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.ClassicConverter)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.BlackfridayConverter)(nil)
	_ pipeline.HTMLSanitizer        = (*pipeline.PolicySanitizer)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ pipeline.TOCInjector          = (*pipeline.TOCInjection)(nil)
	_ pipeline.DocumentWrapper      = (*pipeline.DocumentTemplate)(nil)
	_ assets.AssetLoader            = (AssetLoader)(nil)
	_ pdfConverter                  = (*rodConverter)(nil)
)

// Converter runs the Markdown to HTML (and PDF) pipeline.
// Create with NewConverter, call Convert, and Close when done.
// A Converter is not safe for concurrent use; see ConverterPool.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	highlightCSS      string
	preprocessor      pipeline.MarkdownPreprocessor
	htmlConverter     pipeline.HTMLConverter
	sanitizer         pipeline.HTMLSanitizer // nil unless WithSanitize(true)
	cssInjector       pipeline.CSSInjector
	tocInjector       pipeline.TOCInjector
	documentWrapper   pipeline.DocumentWrapper
	pdfConverter      pdfConverter
}

// NewConverter creates a Converter. With no options it renders fragments
// with the classic engine, exactly like Render.
// Returns an error for an unknown engine or highlight style, or when a
// style or the document template cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{timeout: defaultTimeout, engine: EngineClassic},
		assetLoader: assets.NewEmbeddedLoader(),
		cssInjector: &pipeline.CSSInjection{},
		tocInjector: &pipeline.TOCInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	engine, err := ParseEngine(string(c.cfg.engine))
	if err != nil {
		return nil, err
	}
	c.cfg.engine = engine
	if c.htmlConverter == nil {
		c.htmlConverter = newEngine(engine)
	}

	c.preprocessor = &pipeline.SourcePreprocessor{Marks: c.cfg.marks}
	if c.cfg.sanitize {
		c.sanitizer = pipeline.NewPolicySanitizer()
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}
	if c.publicAssetLoader != nil {
		c.assetLoader = c.publicAssetLoader
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}
	if err := c.resolveHighlight(); err != nil {
		return nil, err
	}

	if c.documentWrapper == nil {
		tmpl, err := c.assetLoader.LoadTemplate(assets.DefaultTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading document template: %w", convertAssetError(err))
		}
		if c.documentWrapper, err = pipeline.NewDocumentTemplate(tmpl); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocumentRender, err)
		}
	}

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}
	return c, nil
}

func newEngine(e Engine) pipeline.HTMLConverter {
	switch e {
	case EngineCommonMark:
		return pipeline.NewGoldmarkConverter()
	case EngineBlackfriday:
		return pipeline.NewBlackfridayConverter()
	default:
		return &pipeline.ClassicConverter{}
	}
}

// Engine returns the engine the converter renders with.
func (c *Converter) Engine() Engine {
	return c.cfg.engine
}

// Convert runs the pipeline. The context is used for cancellation and
// bounds PDF rendering. Internal panics are recovered and returned as
// errors.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fragment, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	if c.cfg.marks {
		fragment = pipeline.ConvertMarkPlaceholders(fragment)
	}

	if c.sanitizer != nil {
		fragment = c.sanitizer.SanitizeHTML(ctx, fragment)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	if input.TOC != nil {
		minDepth, maxDepth := input.TOC.depths()
		fragment, err = c.tocInjector.InjectTOC(ctx, fragment, &pipeline.TOCData{
			Title:    input.TOC.Title,
			MinDepth: minDepth,
			MaxDepth: maxDepth,
		})
		if err != nil {
			return nil, fmt.Errorf("injecting TOC: %w", err)
		}
	}

	if !input.Standalone && !input.PDF {
		return &ConvertResult{HTML: []byte(c.cssInjector.InjectCSS(ctx, fragment, input.CSS))}, nil
	}

	document, err := c.buildDocument(ctx, fragment, input)
	if err != nil {
		return nil, err
	}

	sourceDir := input.SourceDir
	if sourceDir == "" && input.SourcePath != "" {
		sourceDir = filepath.Dir(input.SourcePath)
	}

	res := &ConvertResult{HTML: []byte(document)}
	if input.Standalone && input.OutputDir != "" && sourceDir != "" {
		rewriter := &pipeline.PathRewriter{SourceDir: sourceDir, TargetDir: input.OutputDir}
		rebased, err := rewriter.Rewrite(document)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
		res.HTML = []byte(rebased)
	}

	if !input.PDF {
		return res, nil
	}

	// Chrome loads the page from a temp file, so references must be absolute.
	printable := document
	if sourceDir != "" {
		if printable, err = pipeline.RewriteRelativePaths(document, sourceDir); err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, printable, &pdfOptions{Page: input.Page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes
	return res, nil
}

// buildDocument wraps the fragment in the document template and injects
// the combined stylesheet.
func (c *Converter) buildDocument(ctx context.Context, fragment string, input Input) (string, error) {
	document, err := c.documentWrapper.WrapDocument(ctx, &pipeline.DocumentData{
		Title: pipeline.ExtractTitle(input.Title, fragment, input.SourcePath),
		Lang:  input.Lang,
		Body:  fragment,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}

	// Converter style first, user CSS last so it can override.
	var css []string
	for _, part := range []string{c.cfg.resolvedStyle, c.highlightCSS, input.CSS} {
		if part != "" {
			css = append(css, part)
		}
	}
	document = c.cssInjector.InjectCSS(ctx, document, strings.Join(css, "\n"))
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return document, nil
}

// Close releases the headless browser, if one was started.
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle turns the style input (name, path, or CSS content) into CSS.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		return nil
	}

	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	c.cfg.resolvedStyle = css
	return nil
}

// resolveHighlight validates the highlight style and, for the commonmark
// engine, prepares the matching stylesheet. Other engines emit no chroma
// classes.
func (c *Converter) resolveHighlight() error {
	name := c.cfg.highlightStyle
	if name == "" {
		if c.cfg.engine != EngineCommonMark {
			return nil
		}
		name = pipeline.DefaultHighlightStyle
	}

	css, err := pipeline.HighlightCSS(name)
	if err != nil {
		if errors.Is(err, pipeline.ErrUnknownHighlightStyle) {
			return fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, name)
		}
		return err
	}
	if c.cfg.engine == EngineCommonMark {
		c.highlightCSS = css
	}
	return nil
}

// validateInput is the trust boundary for library callers building Input
// by hand; CLI input was already checked by config validation.
func (c *Converter) validateInput(input Input) error {
	if err := input.Page.Validate(); err != nil {
		return err
	}
	return input.TOC.Validate()
}
