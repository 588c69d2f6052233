package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/hints"
)

// ErrConflictingFlags is returned for flag combinations that cannot work together.
var ErrConflictingFlags = errors.New("conflicting flags")

// runConvertCmd parses convert flags and runs the conversion.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate flags early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if flags.outputMode.stdout && (flags.outputMode.watch || flags.outputMode.pdf) {
		return fmt.Errorf("%w: --stdout cannot be combined with --watch or --pdf", ErrConflictingFlags)
	}

	// Load configuration: file, then environment, then flags
	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	env.Config = cfg

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	output := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, output)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if flags.outputMode.stdout && len(files) != 1 {
		return fmt.Errorf("%w: --stdout needs a single input file, found %d", ErrConflictingFlags, len(files))
	}

	opts, err := converterOptions(cfg)
	if err != nil {
		return err
	}
	if err := checkConverterOptions(opts); err != nil {
		return err
	}

	params := &conversionParams{
		input:  buildInput(cfg),
		logger: env.Logger,
	}
	if flags.outputMode.stdout {
		params.stdout = env.Stdout
	}

	poolSize := md2html.ResolvePoolSize(cfg.Workers)
	env.Logger.Debug("converter pool", zap.Int("size", poolSize), zap.String("engine", cfg.Engine))
	pool := env.NewPool(poolSize, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			env.Logger.Warn("closing converter pool", zap.Error(err))
		}
	}()

	quiet := flags.common.quiet || flags.outputMode.stdout
	results := convertBatch(ctx, pool, files, params)
	summary := printResultsWithWriter(results, quiet, flags.common.verbose, env)

	if flags.outputMode.watch {
		return watchAndConvert(ctx, inputPath, output, pool, params, flags.common, env)
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d conversion(s) failed: %w", summary.Failed, summary.FirstErr)
	}
	return nil
}

// loadConfig reads the config named by the flag, else by MD2HTML_CONFIG,
// and applies environment overrides on top.
func loadConfig(flagConfig string, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Render flags
	if flags.render.engine != "" {
		cfg.Engine = flags.render.engine
	}
	if flags.render.style != "" {
		cfg.Style = flags.render.style
	}
	if flags.render.noStyle {
		cfg.Style = ""
	}
	if flags.render.highlight != "" {
		cfg.Highlight = flags.render.highlight
	}
	if flags.render.assetPath != "" {
		cfg.Assets.BasePath = flags.render.assetPath
	}
	if flags.render.sanitize {
		cfg.Sanitize = true
	}
	if flags.render.marks {
		cfg.Marks = true
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}

	// Document flags
	if flags.document.standalone {
		cfg.Document.Standalone = true
	}
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.lang != "" {
		cfg.Document.Lang = flags.document.lang
	}

	// TOC flags; a depth or title implies --toc
	if flags.toc.title != "" {
		cfg.TOC.Title = flags.toc.title
	}
	if flags.toc.minDepth > 0 {
		cfg.TOC.MinDepth = flags.toc.minDepth
	}
	if flags.toc.maxDepth > 0 {
		cfg.TOC.MaxDepth = flags.toc.maxDepth
	}
	if flags.toc.enabled || flags.toc.title != "" || flags.toc.minDepth > 0 || flags.toc.maxDepth > 0 {
		cfg.TOC.Enabled = true
	}
	if flags.toc.disabled {
		cfg.TOC.Enabled = false
	}

	// PDF flags
	if flags.outputMode.pdf {
		cfg.PDF.Enabled = true
	}
	if flags.timeout != "" {
		cfg.PDF.Timeout = flags.timeout
	}
	if flags.page.size != "" {
		cfg.PDF.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.PDF.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin > 0 {
		cfg.PDF.Page.Margin = flags.page.margin
	}
}

// resolveInputPath returns the input argument, falling back to config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir returns the -o value, falling back to config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// converterOptions translates the merged config into converter options.
func converterOptions(cfg *config.Config) ([]md2html.Option, error) {
	engine, err := md2html.ParseEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}

	opts := []md2html.Option{
		md2html.WithEngine(engine),
		md2html.WithSanitize(cfg.Sanitize),
		md2html.WithMarks(cfg.Marks),
	}
	if cfg.Style != "" {
		opts = append(opts, md2html.WithStyle(cfg.Style))
	}
	if cfg.Highlight != "" {
		opts = append(opts, md2html.WithHighlightStyle(cfg.Highlight))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2html.WithAssetPath(cfg.Assets.BasePath))
	}

	timeout, err := cfg.PDFTimeout()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, md2html.WithTimeout(timeout))
	}
	return opts, nil
}

// checkConverterOptions builds and discards one converter so that a bad
// style, engine or asset path fails the run once instead of once per file.
// No browser is started.
func checkConverterOptions(opts []md2html.Option) error {
	conv, err := md2html.NewConverter(opts...)
	if err != nil {
		return err
	}
	return conv.Close()
}

// buildInput returns the per-run part of md2html.Input.
func buildInput(cfg *config.Config) md2html.Input {
	input := md2html.Input{
		Standalone: cfg.Document.Standalone,
		Title:      cfg.Document.Title,
		Lang:       cfg.Document.Lang,
	}

	if cfg.TOC.Enabled {
		input.TOC = &md2html.TOC{
			Title:    cfg.TOC.Title,
			MinDepth: cfg.TOC.MinDepth, // 0 = library default
			MaxDepth: cfg.TOC.MaxDepth,
		}
	}

	if cfg.PDF.Enabled {
		input.PDF = true
		input.Page = buildPageSettings(cfg)
	}
	return input
}

// buildPageSettings fills unset page fields with library defaults.
func buildPageSettings(cfg *config.Config) *md2html.PageSettings {
	page := md2html.DefaultPageSettings()
	if cfg.PDF.Page.Size != "" {
		page.Size = cfg.PDF.Page.Size
	}
	if cfg.PDF.Page.Orientation != "" {
		page.Orientation = cfg.PDF.Page.Orientation
	}
	if cfg.PDF.Page.Margin > 0 {
		page.Margin = cfg.PDF.Page.Margin
	}
	return page
}
