package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	md2html "github.com/alnah/go-md2html"
)

// maxRenderInput bounds what render reads from stdin or a file.
const maxRenderInput = 16 << 20

// ErrInputTooLarge is returned when render input exceeds maxRenderInput.
var ErrInputTooLarge = errors.New("markdown input exceeds 16 MiB")

// runRender writes the classic HTML fragment of a file, or of stdin when
// no file (or "-") is given. No config, styles or engines are involved.
func runRender(args []string, env *Environment) error {
	if len(args) == 1 && (args[0] == "-h" || args[0] == "--help") {
		printRenderUsage(env.Stdout)
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: render takes at most one file", ErrConflictingFlags)
	}

	var r io.Reader = env.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0]) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, maxRenderInput+1))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	if len(data) > maxRenderInput {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, ErrInputTooLarge)
	}

	html := md2html.Render(string(data))
	if html != "" {
		html += "\n"
	}
	if _, err := io.WriteString(env.Stdout, html); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
