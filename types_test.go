package md2html

import (
	"errors"
	"testing"
)

func TestParseEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Engine
		wantErr error
	}{
		{"", EngineClassic, nil},
		{"classic", EngineClassic, nil},
		{"CommonMark", EngineCommonMark, nil},
		{" blackfriday ", EngineBlackfriday, nil},
		{"pandoc", "", ErrUnknownEngine},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseEngine(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseEngine(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseEngine(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEngines(t *testing.T) {
	t.Parallel()

	for _, name := range Engines() {
		if _, err := ParseEngine(name); err != nil {
			t.Errorf("Engines() lists %q but ParseEngine rejects it: %v", name, err)
		}
	}
}

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{"nil means defaults", nil, nil},
		{"defaults", DefaultPageSettings(), nil},
		{"a4 landscape upper case", &PageSettings{Size: "A4", Orientation: "LANDSCAPE", Margin: 1}, nil},
		{"legal min margin", &PageSettings{Size: "legal", Orientation: "portrait", Margin: MinMargin}, nil},
		{"max margin", &PageSettings{Size: "letter", Orientation: "portrait", Margin: MaxMargin}, nil},
		{"unknown size", &PageSettings{Size: "a3", Orientation: "portrait", Margin: 1}, ErrInvalidPageSize},
		{"empty size", &PageSettings{Orientation: "portrait", Margin: 1}, ErrInvalidPageSize},
		{"unknown orientation", &PageSettings{Size: "a4", Orientation: "sideways", Margin: 1}, ErrInvalidOrientation},
		{"margin too small", &PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.1}, ErrInvalidMargin},
		{"margin too large", &PageSettings{Size: "a4", Orientation: "portrait", Margin: 3.5}, ErrInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.page.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTOC_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		toc     *TOC
		wantErr bool
	}{
		{"nil", nil, false},
		{"zero value uses defaults", &TOC{}, false},
		{"full range", &TOC{MinDepth: 1, MaxDepth: 6}, false},
		{"single level", &TOC{MinDepth: 4, MaxDepth: 4}, false},
		{"min above default max", &TOC{MinDepth: 5}, true},
		{"max out of range", &TOC{MaxDepth: 7}, true},
		{"negative min", &TOC{MinDepth: -1}, true},
		{"inverted", &TOC{MinDepth: 3, MaxDepth: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.toc.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTOCDepth) {
					t.Errorf("Validate() error = %v, want ErrInvalidTOCDepth", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}
