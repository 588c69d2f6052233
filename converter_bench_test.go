//go:build bench

package md2html

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func benchmarkDocument(sections int) string {
	var b strings.Builder
	for i := 0; i < sections; i++ {
		fmt.Fprintf(&b, "## Section %d\n\nSome **bold** and *italic* text with a [link](https://example.com/%d).\n\n", i, i)
		b.WriteString("- first\n- second\n- third\n\n")
		b.WriteString("```\nfmt.Println(\"hello\")\n```\n\n")
	}
	return b.String()
}

func BenchmarkRender(b *testing.B) {
	md := benchmarkDocument(50)
	b.SetBytes(int64(len(md)))
	b.ReportAllocs()

	for b.Loop() {
		_ = Render(md)
	}
}

func BenchmarkConvert(b *testing.B) {
	md := benchmarkDocument(50)
	ctx := context.Background()

	cases := []struct {
		name  string
		opts  []Option
		input Input
	}{
		{"classic fragment", nil, Input{Markdown: md}},
		{"classic standalone toc", []Option{WithStyle("github")}, Input{Markdown: md, Standalone: true, TOC: &TOC{}}},
		{"commonmark standalone", []Option{WithEngine(EngineCommonMark)}, Input{Markdown: md, Standalone: true}},
		{"blackfriday sanitized", []Option{WithEngine(EngineBlackfriday), WithSanitize(true)}, Input{Markdown: md}},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			conv, err := NewConverter(tc.opts...)
			if err != nil {
				b.Fatal(err)
			}
			defer conv.Close()

			b.ReportAllocs()
			for b.Loop() {
				if _, err := conv.Convert(ctx, tc.input); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
