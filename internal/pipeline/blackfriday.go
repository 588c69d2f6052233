package pipeline

import (
	"context"
	"fmt"

	"github.com/russross/blackfriday/v2"
)

// BlackfridayConverter converts Markdown to HTML using blackfriday v2.
type BlackfridayConverter struct {
	opts []blackfriday.Option
}

// NewBlackfridayConverter creates a BlackfridayConverter with the common
// extension set (tables, fenced code, autolinks, strikethrough, heading IDs).
func NewBlackfridayConverter() *BlackfridayConverter {
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.CommonHTMLFlags,
	})
	return &BlackfridayConverter{
		opts: []blackfriday.Option{
			blackfriday.WithExtensions(blackfriday.CommonExtensions | blackfriday.AutoHeadingIDs),
			blackfriday.WithRenderer(renderer),
		},
	}
}

// ToHTML converts Markdown content to an HTML fragment.
// Runs in a goroutine so ctx cancellation is honoured; panics inside the
// parser are reported as ErrHTMLConversion.
func (c *BlackfridayConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, r)}
			}
		}()
		out := blackfriday.Run([]byte(content), c.opts...)
		done <- result{html: string(out)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
