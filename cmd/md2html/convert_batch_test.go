package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/fileutil"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

// mockConverter echoes the markdown inside <p> and records every input.
type mockConverter struct {
	mu     sync.Mutex
	inputs []md2html.Input
	err    error
	pdf    bool
}

func (m *mockConverter) Convert(_ context.Context, input md2html.Input) (*md2html.ConvertResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	res := &md2html.ConvertResult{HTML: []byte("<p>" + input.Markdown + "</p>")}
	if m.pdf {
		res.PDF = []byte("%PDF-1.7")
	}
	return res, nil
}

func (m *mockConverter) calls() []md2html.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]md2html.Input(nil), m.inputs...)
}

// mockPool hands out the same converter to every worker.
type mockPool struct {
	conv       CLIConverter
	size       int
	acquireErr error

	mu       sync.Mutex
	acquired int
	released int
}

func (p *mockPool) Acquire(context.Context) (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.mu.Lock()
	p.acquired++
	p.mu.Unlock()
	return p.conv, nil
}

func (p *mockPool) Release(CLIConverter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *mockPool) Size() int    { return p.size }
func (p *mockPool) Close() error { return nil }

func testParams() *conversionParams {
	return &conversionParams{logger: zap.NewNop()}
}

// ---------------------------------------------------------------------------
// TestConvertBatch - Concurrent conversion
// ---------------------------------------------------------------------------

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	t.Run("writes every file in order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var files []FileToConvert
		for i := range 5 {
			in := filepath.Join(dir, fmt.Sprintf("doc%d.md", i))
			writeTestFile(t, in, fmt.Sprintf("body %d", i))
			files = append(files, FileToConvert{
				InputPath:  in,
				OutputPath: filepath.Join(dir, "out", fmt.Sprintf("doc%d.html", i)),
			})
		}

		pool := &mockPool{conv: &mockConverter{}, size: 3}
		results := convertBatch(context.Background(), pool, files, testParams())

		if len(results) != len(files) {
			t.Fatalf("got %d results, want %d", len(results), len(files))
		}
		for i, r := range results {
			if r.Err != nil {
				t.Errorf("result %d error = %v", i, r.Err)
				continue
			}
			if r.InputPath != files[i].InputPath {
				t.Errorf("result %d InputPath = %q, want %q", i, r.InputPath, files[i].InputPath)
			}
			want := fmt.Sprintf("<p>body %d</p>", i)
			if got := readTestFile(t, files[i].OutputPath); got != want {
				t.Errorf("output %d = %q, want %q", i, got, want)
			}
		}
		if pool.acquired != 3 || pool.released != 3 {
			t.Errorf("acquired/released = %d/%d, want 3/3", pool.acquired, pool.released)
		}
	})

	t.Run("no files", func(t *testing.T) {
		t.Parallel()

		pool := &mockPool{conv: &mockConverter{}, size: 2}
		if got := convertBatch(context.Background(), pool, nil, testParams()); got != nil {
			t.Errorf("convertBatch(nil) = %v, want nil", got)
		}
		if pool.acquired != 0 {
			t.Errorf("acquired = %d, want 0", pool.acquired)
		}
	})

	t.Run("acquire failure fails every file", func(t *testing.T) {
		t.Parallel()

		pool := &mockPool{size: 2, acquireErr: md2html.ErrPoolClosed}
		files := []FileToConvert{{InputPath: "a.md"}, {InputPath: "b.md"}, {InputPath: "c.md"}}
		results := convertBatch(context.Background(), pool, files, testParams())

		for i, r := range results {
			if !errors.Is(r.Err, md2html.ErrPoolClosed) {
				t.Errorf("result %d error = %v, want ErrPoolClosed", i, r.Err)
			}
			if r.InputPath != files[i].InputPath {
				t.Errorf("result %d InputPath = %q", i, r.InputPath)
			}
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		conv := &mockConverter{}
		pool := &mockPool{conv: conv, size: 1}
		files := []FileToConvert{{InputPath: "a.md"}, {InputPath: "b.md"}}
		results := convertBatch(ctx, pool, files, testParams())

		for i, r := range results {
			if !errors.Is(r.Err, context.Canceled) {
				t.Errorf("result %d error = %v, want context.Canceled", i, r.Err)
			}
		}
		if n := len(conv.calls()); n != 0 {
			t.Errorf("converter called %d times, want 0", n)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConvertFile - Single file conversion
// ---------------------------------------------------------------------------

func TestConvertFile(t *testing.T) {
	t.Parallel()

	t.Run("fills per-file input", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "src", "doc.md")
		out := filepath.Join(dir, "site", "doc.html")
		writeTestFile(t, in, "hello")

		conv := &mockConverter{}
		params := testParams()
		params.input = md2html.Input{Standalone: true, Lang: "fr"}

		r := convertFile(context.Background(), conv, FileToConvert{InputPath: in, OutputPath: out}, params)
		if r.Err != nil {
			t.Fatalf("convertFile() error = %v", r.Err)
		}

		got := conv.calls()[0]
		want := md2html.Input{
			Markdown:   "hello",
			SourcePath: in,
			SourceDir:  filepath.Join(dir, "src"),
			OutputDir:  filepath.Join(dir, "site"),
			Standalone: true,
			Lang:       "fr",
		}
		if got != want {
			t.Errorf("input = %+v, want %+v", got, want)
		}
		if params.input.Markdown != "" {
			t.Error("shared params were modified")
		}
		if r.PDFPath != "" {
			t.Errorf("PDFPath = %q, want empty", r.PDFPath)
		}
	})

	t.Run("writes pdf next to html", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "doc.md")
		writeTestFile(t, in, "x")
		f := FileToConvert{InputPath: in, OutputPath: filepath.Join(dir, "doc.html")}

		r := convertFile(context.Background(), &mockConverter{pdf: true}, f, testParams())
		if r.Err != nil {
			t.Fatalf("convertFile() error = %v", r.Err)
		}
		if r.PDFPath != filepath.Join(dir, "doc.pdf") {
			t.Errorf("PDFPath = %q", r.PDFPath)
		}
		if got := readTestFile(t, r.PDFPath); got != "%PDF-1.7" {
			t.Errorf("pdf = %q", got)
		}
	})

	t.Run("stdout mode", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "doc.md")
		writeTestFile(t, in, "x")

		var buf strings.Builder
		conv := &mockConverter{}
		params := testParams()
		params.stdout = &buf

		r := convertFile(context.Background(), conv, FileToConvert{InputPath: in, OutputPath: filepath.Join(dir, "doc.html")}, params)
		if r.Err != nil {
			t.Fatalf("convertFile() error = %v", r.Err)
		}
		if r.OutputPath != "-" {
			t.Errorf("OutputPath = %q, want -", r.OutputPath)
		}
		if buf.String() != "<p>x</p>" {
			t.Errorf("stdout = %q", buf.String())
		}
		if conv.calls()[0].OutputDir != "" {
			t.Errorf("OutputDir = %q, want empty in stdout mode", conv.calls()[0].OutputDir)
		}
		if fileutil.FileExists(filepath.Join(dir, "doc.html")) {
			t.Error("stdout mode wrote a file")
		}
	})

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()

		f := FileToConvert{InputPath: filepath.Join(t.TempDir(), "nope.md")}
		r := convertFile(context.Background(), &mockConverter{}, f, testParams())
		if !errors.Is(r.Err, ErrReadMarkdown) {
			t.Errorf("error = %v, want ErrReadMarkdown", r.Err)
		}
	})

	t.Run("converter error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "doc.md")
		writeTestFile(t, in, "x")

		conv := &mockConverter{err: md2html.ErrStyleNotFound}
		r := convertFile(context.Background(), conv, FileToConvert{InputPath: in, OutputPath: filepath.Join(dir, "doc.html")}, testParams())
		if !errors.Is(r.Err, md2html.ErrStyleNotFound) {
			t.Errorf("error = %v, want ErrStyleNotFound", r.Err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPrintResults - Result reporting
// ---------------------------------------------------------------------------

func TestPrintResultsWithWriter(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.md", OutputPath: "a.html", PDFPath: "a.pdf", Duration: 12 * time.Millisecond},
		{InputPath: "b.md", Err: errors.New("boom")},
	}

	tests := []struct {
		name        string
		quiet       bool
		verbose     bool
		wantStdout  []string
		avoidStdout []string
	}{
		{"default", false, false, []string{"Created a.html", "Created a.pdf", "1 succeeded, 1 failed"}, nil},
		{"verbose", false, true, []string{"a.md -> a.html (12ms)", "Created a.pdf"}, []string{"Created a.html"}},
		{"quiet", true, false, nil, []string{"Created", "succeeded"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			summary := printResultsWithWriter(results, tt.quiet, tt.verbose, env)

			if summary.Succeeded != 1 || summary.Failed != 1 || summary.FirstErr == nil {
				t.Errorf("summary = %+v", summary)
			}
			if !strings.Contains(stderr.String(), "FAILED b.md: boom") {
				t.Errorf("stderr = %q", stderr)
			}
			for _, s := range tt.wantStdout {
				if !strings.Contains(stdout.String(), s) {
					t.Errorf("stdout = %q, want it to contain %q", stdout, s)
				}
			}
			for _, s := range tt.avoidStdout {
				if strings.Contains(stdout.String(), s) {
					t.Errorf("stdout = %q, should not contain %q", stdout, s)
				}
			}
		})
	}
}

func TestPrintResultsWithWriter_SingleResultNoSummary(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	printResultsWithWriter([]ConversionResult{{InputPath: "a.md", OutputPath: "a.html"}}, false, false, env)

	if strings.Contains(stdout.String(), "succeeded") {
		t.Errorf("stdout = %q, want no summary line", stdout)
	}
}

func TestPoolAdapter_ReleaseForeignConverter(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(1)
	defer pool.Close()

	defer func() {
		if recover() == nil {
			t.Error("Release of a foreign converter did not panic")
		}
	}()
	pool.Release(&mockConverter{})
}
