package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/config"
)

// envPrefix marks the variables read by loadEnvConfig.
const envPrefix = "MD2HTML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MD2HTML_CONFIG: config file name or path
	Engine     string        // MD2HTML_ENGINE: classic, commonmark, blackfriday
	Style      string        // MD2HTML_STYLE: CSS style name or path
	Timeout    time.Duration // MD2HTML_TIMEOUT: PDF generation timeout
	InputDir   string        // MD2HTML_INPUT_DIR: default input directory
	OutputDir  string        // MD2HTML_OUTPUT_DIR: default output directory
	PageSize   string        // MD2HTML_PAGE_SIZE: a4, letter, legal
	Workers    int           // MD2HTML_WORKERS: parallel workers
}

// knownEnvVars lists valid MD2HTML_* environment variables.
var knownEnvVars = map[string]bool{
	"MD2HTML_CONFIG":     true,
	"MD2HTML_ENGINE":     true,
	"MD2HTML_STYLE":      true,
	"MD2HTML_TIMEOUT":    true,
	"MD2HTML_INPUT_DIR":  true,
	"MD2HTML_OUTPUT_DIR": true,
	"MD2HTML_PAGE_SIZE":  true,
	"MD2HTML_WORKERS":    true,
	"MD2HTML_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2HTML_CONFIG"),
		Engine:     os.Getenv("MD2HTML_ENGINE"),
		Style:      os.Getenv("MD2HTML_STYLE"),
		InputDir:   os.Getenv("MD2HTML_INPUT_DIR"),
		OutputDir:  os.Getenv("MD2HTML_OUTPUT_DIR"),
		PageSize:   os.Getenv("MD2HTML_PAGE_SIZE"),
	}

	if timeout := os.Getenv("MD2HTML_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MD2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars warns about unrecognized MD2HTML_* variables, which are
// usually typos.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config file values with set environment
// variables. CLI flags are applied afterwards by mergeFlags, giving
// flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Engine != "" {
		cfg.Engine = env.Engine
	}
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.Timeout > 0 {
		cfg.PDF.Timeout = env.Timeout.String()
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.PageSize != "" {
		cfg.PDF.Page.Size = env.PageSize
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
