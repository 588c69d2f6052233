//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// generateMixedMarkdown builds n sections using every construct the
// classic engine knows.
func generateMixedMarkdown(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "## Section %d\n\n", i)
		b.WriteString("Some **bold**, some *italic*, a `span` and a [link](https://example.com).\n\n")
		b.WriteString("- one\n- two\n- three\n\n")
		b.WriteString("1. first\n2. second\n\n")
		b.WriteString("> quoted line\n\n")
		b.WriteString("```\nfmt.Println(\"hi\")\n```\n\n")
	}
	return b.String()
}

// BenchmarkEngines compares the three engines on the same document.
func BenchmarkEngines(b *testing.B) {
	ctx := context.Background()
	content := generateMixedMarkdown(50)

	engines := []struct {
		name string
		conv HTMLConverter
	}{
		{"classic", &ClassicConverter{}},
		{"goldmark", NewGoldmarkConverter()},
		{"blackfriday", NewBlackfridayConverter()},
	}

	for _, e := range engines {
		b.Run(e.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := e.conv.ToHTML(ctx, content); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkRenderClassicBySize shows how the whole-text rewrites scale.
func BenchmarkRenderClassicBySize(b *testing.B) {
	for _, n := range []int{1, 10, 100, 1000} {
		content := generateMixedMarkdown(n)
		b.Run(fmt.Sprintf("sections_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(content)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = RenderClassic(content)
			}
		})
	}
}

// BenchmarkInjectTOC benchmarks anchoring and TOC generation.
func BenchmarkInjectTOC(b *testing.B) {
	ctx := context.Background()
	html := RenderClassic(generateMixedMarkdown(100))
	injector := &TOCInjection{}
	data := &TOCData{Title: "Contents", MinDepth: 2, MaxDepth: 3}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := injector.InjectTOC(ctx, html, data); err != nil {
			b.Fatal(err)
		}
	}
}
