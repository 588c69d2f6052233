package pipeline

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestHighlightCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		style   string
		wantErr error
	}{
		{name: "default style", style: ""},
		{name: "named style", style: "monokai"},
		{name: "unknown style", style: "no-such-style", wantErr: ErrUnknownHighlightStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			css, err := HighlightCSS(tt.style)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("HighlightCSS(%q) error = %v, want %v", tt.style, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("HighlightCSS(%q) error = %v", tt.style, err)
			}
			if !strings.Contains(css, ".chroma") {
				t.Errorf("HighlightCSS(%q) should target .chroma classes", tt.style)
			}
		})
	}
}

func TestHighlightStyles(t *testing.T) {
	t.Parallel()

	names := HighlightStyles()
	if !slices.IsSorted(names) {
		t.Error("HighlightStyles() should be sorted")
	}
	if !slices.Contains(names, DefaultHighlightStyle) {
		t.Errorf("HighlightStyles() should contain %q", DefaultHighlightStyle)
	}
}
