package assets

import (
	"errors"
	"html/template"
	"slices"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	for _, name := range []string{"default", "github", "minimal"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			css, err := loader.LoadStyle(name)
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", name, err)
			}
			if !strings.Contains(css, "body") {
				t.Errorf("LoadStyle(%q) should style body", name)
			}
		})
	}

	t.Run("unknown style", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadStyle("nope"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadStyle("../default"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle() error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	content, err := loader.LoadTemplate(DefaultTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "{{.Title}}", "{{.Lang}}", "{{.Body}}", "</head>"} {
		if !strings.Contains(content, want) {
			t.Errorf("document template missing %q", want)
		}
	}
	if _, err := template.New("doc").Parse(content); err != nil {
		t.Errorf("document template does not parse: %v", err)
	}

	if _, err := loader.LoadTemplate("missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(missing) error = %v, want ErrTemplateNotFound", err)
	}
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	got := StyleNames()
	want := []string{"default", "github", "minimal"}
	if !slices.Equal(got, want) {
		t.Errorf("StyleNames() = %v, want %v", got, want)
	}
	if !slices.Contains(got, DefaultStyleName) {
		t.Errorf("StyleNames() should contain %q", DefaultStyleName)
	}
}

func TestPackageLoaders(t *testing.T) {
	t.Parallel()

	if _, err := LoadStyle(DefaultStyleName); err != nil {
		t.Errorf("LoadStyle(default) error = %v", err)
	}
	if _, err := LoadTemplate(DefaultTemplateName); err != nil {
		t.Errorf("LoadTemplate(document) error = %v", err)
	}
}
