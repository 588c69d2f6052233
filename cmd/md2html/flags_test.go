package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseConvertFlags - Flag values and positional args
// ---------------------------------------------------------------------------

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	t.Run("long and short flags", func(t *testing.T) {
		t.Parallel()

		args := []string{
			"-o", "out", "-w", "4", "-t", "45s", "-c", "work", "-q",
			"-e", "commonmark", "-s", "github", "--highlight", "monokai",
			"--asset-path", "assets", "--sanitize", "--marks",
			"--standalone", "--title", "Guide", "--lang", "fr",
			"--toc", "--toc-title", "Contents", "--toc-min-depth", "1", "--toc-max-depth", "4",
			"-p", "a4", "--orientation", "landscape", "--margin", "1.5",
			"--pdf", "docs",
		}
		f, pos, err := parseConvertFlags(args, io.Discard)
		if err != nil {
			t.Fatalf("parseConvertFlags() error = %v", err)
		}

		if len(pos) != 1 || pos[0] != "docs" {
			t.Errorf("positional = %v, want [docs]", pos)
		}
		if f.output != "out" || f.workers != 4 || f.timeout != "45s" {
			t.Errorf("io flags = %q %d %q", f.output, f.workers, f.timeout)
		}
		if f.common.config != "work" || !f.common.quiet || f.common.verbose {
			t.Errorf("common = %+v", f.common)
		}
		wantRender := renderFlags{
			engine: "commonmark", style: "github", highlight: "monokai",
			assetPath: "assets", sanitize: true, marks: true,
		}
		if f.render != wantRender {
			t.Errorf("render = %+v, want %+v", f.render, wantRender)
		}
		wantDoc := documentFlags{standalone: true, title: "Guide", lang: "fr"}
		if f.document != wantDoc {
			t.Errorf("document = %+v, want %+v", f.document, wantDoc)
		}
		wantTOC := tocFlags{enabled: true, title: "Contents", minDepth: 1, maxDepth: 4}
		if f.toc != wantTOC {
			t.Errorf("toc = %+v, want %+v", f.toc, wantTOC)
		}
		wantPage := pageFlags{size: "a4", orientation: "landscape", margin: 1.5}
		if f.page != wantPage {
			t.Errorf("page = %+v, want %+v", f.page, wantPage)
		}
		if !f.outputMode.pdf || f.outputMode.stdout || f.outputMode.watch {
			t.Errorf("outputMode = %+v", f.outputMode)
		}
	})

	t.Run("flags after positional", func(t *testing.T) {
		t.Parallel()

		f, pos, err := parseConvertFlags([]string{"doc.md", "--stdout", "--no-style"}, io.Discard)
		if err != nil {
			t.Fatalf("parseConvertFlags() error = %v", err)
		}
		if len(pos) != 1 || pos[0] != "doc.md" {
			t.Errorf("positional = %v, want [doc.md]", pos)
		}
		if !f.outputMode.stdout || !f.render.noStyle {
			t.Errorf("stdout = %v, noStyle = %v, want both true", f.outputMode.stdout, f.render.noStyle)
		}
	})

	t.Run("help prints usage", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, _, err := parseConvertFlags([]string{"--help"}, &buf)
		if !errors.Is(err, flag.ErrHelp) {
			t.Fatalf("error = %v, want flag.ErrHelp", err)
		}
		if !strings.Contains(buf.String(), "Usage: md2html convert") {
			t.Errorf("usage output = %q", buf.String())
		}
	})

	t.Run("bad values are usage errors", func(t *testing.T) {
		t.Parallel()

		for _, args := range [][]string{
			{"--bogus"},
			{"--workers", "many"},
			{"--margin", "wide"},
			{"-o"},
		} {
			_, _, err := parseConvertFlags(args, io.Discard)
			if !errors.Is(err, ErrInvalidFlags) {
				t.Errorf("parseConvertFlags(%v) error = %v, want ErrInvalidFlags", args, err)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestParsePreviewFlags - Defaults and overrides
// ---------------------------------------------------------------------------

func TestParsePreviewFlags(t *testing.T) {
	t.Parallel()

	f, pos, err := parsePreviewFlags([]string{"doc.md"}, io.Discard)
	if err != nil {
		t.Fatalf("parsePreviewFlags() error = %v", err)
	}
	if f.style != defaultPreviewStyle || f.width != defaultPreviewWidth {
		t.Errorf("defaults = %+v", f)
	}
	if len(pos) != 1 || pos[0] != "doc.md" {
		t.Errorf("positional = %v", pos)
	}

	f, _, err = parsePreviewFlags([]string{"-s", "notty", "--width", "60", "doc.md"}, io.Discard)
	if err != nil {
		t.Fatalf("parsePreviewFlags() error = %v", err)
	}
	if f.style != "notty" || f.width != 60 {
		t.Errorf("flags = %+v, want notty/60", f)
	}
}
