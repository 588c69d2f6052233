package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
)

// ErrInvalidPreviewStyle is returned for a style glamour does not know.
var ErrInvalidPreviewStyle = errors.New("invalid preview style")

// Preview defaults.
const (
	defaultPreviewStyle = "auto"
	defaultPreviewWidth = 80
	maxPreviewWidth     = 400
)

// runPreview renders a Markdown file for the terminal.
func runPreview(args []string, env *Environment) error {
	flags, positional, err := parsePreviewFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: preview needs exactly one file", ErrNoInput)
	}
	if err := validateMarkdownExtension(positional[0]); err != nil {
		return err
	}

	content, err := os.ReadFile(positional[0]) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	out, err := renderTerminal(string(content), flags.style, flags.width)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(env.Stdout, out); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// renderTerminal renders markdown with glamour. Width is clamped to
// [20, maxPreviewWidth]; style "auto" follows the terminal background.
func renderTerminal(markdown, style string, width int) (string, error) {
	width = max(20, min(width, maxPreviewWidth))

	styleOpt := glamour.WithStandardStyle(style)
	if style == "" || style == defaultPreviewStyle {
		styleOpt = glamour.WithAutoStyle()
	}

	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPreviewStyle, err)
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering preview: %w", err)
	}
	return out, nil
}
