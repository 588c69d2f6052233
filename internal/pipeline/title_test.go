package pipeline

import "testing"

func TestExtractTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		explicit   string
		html       string
		sourcePath string
		want       string
	}{
		{"explicit wins", "  Given ", "<h1>Heading</h1>", "doc.md", "Given"},
		{"first h1", "", "<p>x</p><h1>First</h1><h1>Second</h1>", "doc.md", "First"},
		{"h1 with id and markup", "", `<h1 id="a">A <em>b</em> &amp; c</h1>`, "", "A b & c"},
		{"empty h1 falls through", "", "<h1> </h1>", "notes/guide.md", "guide"},
		{"file base name", "", "<p>x</p>", "notes/guide.md", "guide"},
		{"default", "", "<p>x</p>", "", DefaultTitle},
		{"h2 is not a title", "", "<h2>Sub</h2>", "", DefaultTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ExtractTitle(tt.explicit, tt.html, tt.sourcePath); got != tt.want {
				t.Errorf("ExtractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
