package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/alnah/go-md2html/internal/fileutil"
)

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext     string
		wantErr error
	}{
		{"html", nil},
		{"pdf", nil},
		{"", fileutil.ErrExtensionEmpty},
		{"../html", fileutil.ErrExtensionPathTraversal},
		{`x\y`, fileutil.ErrExtensionPathTraversal},
		{"ht\x00ml", fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()

			if err := fileutil.ValidateExtension(tt.ext); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.ext, err, tt.wantErr)
			}
		})
	}
}

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	path, cleanup, err := fileutil.WriteTempFile("<p>hi</p>", "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}

	if !strings.HasPrefix(filepath.Base(path), "md2html-") || filepath.Ext(path) != ".html" {
		t.Errorf("WriteTempFile() path = %q, want md2html-*.html", path)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != "<p>hi</p>" {
		t.Errorf("temp file content = (%q, %v)", got, err)
	}

	cleanup()
	if fileutil.FileExists(path) {
		t.Error("cleanup() should remove the temp file")
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	if _, _, err := fileutil.WriteTempFile("x", "a/b"); !errors.Is(err, fileutil.ErrExtensionPathTraversal) {
		t.Errorf("WriteTempFile() error = %v, want ErrExtensionPathTraversal", err)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.html")

	if err := fileutil.WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() overwrite error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil || string(got) != "second" {
		t.Errorf("content = (%q, %v), want second", got, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory should hold only the target, got %d entries", len(entries))
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0o644 {
			t.Errorf("permissions = %v, want 0644", info.Mode().Perm())
		}
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.html")
	if err := fileutil.WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
		t.Error("WriteFileAtomic() into a missing directory should fail")
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	if err := os.WriteFile(file, []byte("# a"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing.md")) {
		t.Error("FileExists(missing) = true, want false")
	}
}

func TestNameClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		wantPath bool
		wantCSS  bool
	}{
		{"github", false, false},
		{"my-style", false, false},
		{"./custom.css", true, false},
		{"../shared/style.css", true, false},
		{`C:\styles\a.css`, true, false},
		{"body { color: red; }", false, true},
		{"a{}", false, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.input); got != tt.wantPath {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.wantPath)
			}
			if got := fileutil.IsCSS(tt.input); got != tt.wantCSS {
				t.Errorf("IsCSS(%q) = %v, want %v", tt.input, got, tt.wantCSS)
			}
		})
	}
}

func TestIsMarkdownFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"README.md", true},
		{"notes/Guide.MD", true},
		{"post.markdown", true},
		{"page.html", false},
		{"md", false},
		{"archive.md.bak", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsMarkdownFile(tt.path); got != tt.want {
				t.Errorf("IsMarkdownFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestReplaceExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, ext, want string
	}{
		{"doc.md", ".html", "doc.html"},
		{"dir/doc.markdown", ".pdf", "dir/doc.pdf"},
		{"noext", ".html", "noext.html"},
		{"a.b.md", ".html", "a.b.html"},
	}

	for _, tt := range tests {
		if got := fileutil.ReplaceExt(tt.path, tt.ext); got != tt.want {
			t.Errorf("ReplaceExt(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
		}
	}
}
