package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDirName is the directory searched under the user config dir.
const AppDirName = "go-md2html"

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxTitleLength    = 200
	MaxLangLength     = 35 // BCP 47 tags stay well below this
	MaxNameLength     = 64
	MaxDurationLength = 20
	MaxStyleLength    = 1 << 16 // inline CSS is allowed
)

// Allowed enum values, lower case.
var (
	Engines      = []string{"classic", "commonmark", "blackfriday"}
	PageSizes    = []string{"letter", "a4", "legal"}
	Orientations = []string{"portrait", "landscape"}
)

// MaxWorkers caps the workers setting.
const MaxWorkers = 32

// Config holds all configuration for a conversion run.
type Config struct {
	Input     InputConfig    `yaml:"input"`
	Output    OutputConfig   `yaml:"output"`
	Engine    string         `yaml:"engine"`    // classic (default), commonmark, blackfriday
	Style     string         `yaml:"style"`     // style name, CSS file path or inline CSS; empty = none
	Highlight string         `yaml:"highlight"` // chroma style for commonmark code blocks
	Sanitize  bool           `yaml:"sanitize"`
	Marks     bool           `yaml:"marks"` // ==highlight== syntax
	Workers   int            `yaml:"workers"`
	Document  DocumentConfig `yaml:"document"`
	TOC       TOCConfig      `yaml:"toc"`
	PDF       PDFConfig      `yaml:"pdf"`
	Assets    AssetsConfig   `yaml:"assets"`
	Watch     WatchConfig    `yaml:"watch"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // used when no input argument is given
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
}

// DocumentConfig controls standalone HTML documents.
type DocumentConfig struct {
	Standalone bool   `yaml:"standalone"` // full <html> document instead of a fragment
	Title      string `yaml:"title"`      // empty = first H1, then file name
	Lang       string `yaml:"lang"`       // default "en"
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`
	MinDepth int    `yaml:"minDepth"` // 1-6, default 2
	MaxDepth int    `yaml:"maxDepth"` // 1-6, default 3
}

// PDFConfig defines PDF export options.
type PDFConfig struct {
	Enabled bool       `yaml:"enabled"`
	Timeout string     `yaml:"timeout"` // Go duration, e.g. "30s"
	Page    PageConfig `yaml:"page"`
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // letter, a4, legal
	Orientation string  `yaml:"orientation"` // portrait, landscape
	Margin      float64 `yaml:"margin"`      // inches
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// WatchConfig defines watch mode options.
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // Go duration, default "200ms"
}

// DefaultConfig returns a configuration that reproduces the plain
// fragment output: classic engine, no style, no PDF.
func DefaultConfig() *Config {
	return &Config{
		Engine: "classic",
		TOC:    TOCConfig{MinDepth: 2, MaxDepth: 3},
	}
}

// Validate checks lengths, enum values and ranges.
// Called by LoadConfig; also usable on a Config built in code.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"style", c.Style, MaxStyleLength},
		{"highlight", c.Highlight, MaxNameLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.lang", c.Document.Lang, MaxLangLength},
		{"toc.title", c.TOC.Title, MaxTitleLength},
		{"pdf.timeout", c.PDF.Timeout, MaxDurationLength},
		{"watch.debounce", c.Watch.Debounce, MaxDurationLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if err := validateEnum("engine", c.Engine, Engines); err != nil {
		return err
	}
	if err := validateEnum("pdf.page.size", c.PDF.Page.Size, PageSizes); err != nil {
		return err
	}
	if err := validateEnum("pdf.page.orientation", c.PDF.Page.Orientation, Orientations); err != nil {
		return err
	}

	if m := c.PDF.Page.Margin; m != 0 && (m < 0.25 || m > 3.0) {
		return fmt.Errorf("%w: pdf.page.margin: must be between 0.25 and 3.0 inches, got %.2f", ErrInvalidValue, m)
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	if c.TOC.Enabled {
		if err := validateDepth("toc.minDepth", c.TOC.MinDepth); err != nil {
			return err
		}
		if err := validateDepth("toc.maxDepth", c.TOC.MaxDepth); err != nil {
			return err
		}
		if c.TOC.MinDepth != 0 && c.TOC.MaxDepth != 0 && c.TOC.MinDepth > c.TOC.MaxDepth {
			return fmt.Errorf("%w: toc.minDepth (%d) exceeds toc.maxDepth (%d)", ErrInvalidValue, c.TOC.MinDepth, c.TOC.MaxDepth)
		}
	}

	if _, err := c.PDFTimeout(); err != nil {
		return err
	}
	if _, err := c.WatchDebounce(); err != nil {
		return err
	}
	return nil
}

// PDFTimeout parses pdf.timeout. Zero means "use the library default".
func (c *Config) PDFTimeout() (time.Duration, error) {
	return parsePositiveDuration("pdf.timeout", c.PDF.Timeout)
}

// WatchDebounce parses watch.debounce. Zero means "use the default".
func (c *Config) WatchDebounce() (time.Duration, error) {
	return parsePositiveDuration("watch.debounce", c.Watch.Debounce)
}

func parsePositiveDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s: must be positive, got %s", ErrInvalidValue, field, value)
	}
	return d, nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateEnum accepts empty (default) or a case-insensitive member of allowed.
func validateEnum(fieldName, value string, allowed []string) error {
	if value == "" || slices.Contains(allowed, strings.ToLower(value)) {
		return nil
	}
	return fmt.Errorf("%w: %s: %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

func validateDepth(fieldName string, depth int) error {
	if depth != 0 && (depth < 1 || depth > 6) {
		return fmt.Errorf("%w: %s: must be between 1 and 6, got %d", ErrInvalidValue, fieldName, depth)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a file; otherwise
// name.yaml and name.yml are searched in the current directory, then in
// the user config directory under AppDirName.
// A missing file is an error, there is no silent fallback.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths returns the files LoadConfig tries for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
