package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUnknownCommand is returned for a first argument that is neither a
// command nor a markdown input.
var ErrUnknownCommand = errors.New("unknown command")

var commands = []string{"convert", "render", "preview", "config", "doctor", "completion", "version", "help"}

func main() {
	env := DefaultEnv()
	env.Logger = newLogger(env.Stderr, wantsVerbose(os.Args[1:]))
	setMaxProcs(env.Logger)

	ctx, stop := notifyContext(context.Background())
	code := run(ctx, os.Args, env)
	stop()
	_ = env.Logger.Sync()
	os.Exit(code)
}

// run dispatches args (os.Args layout) and returns the exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) && looksLikeConvertArg(cmd) {
		cmd, rest = "convert", args[1:]
	}

	var err error
	switch cmd {
	case "convert":
		err = runConvertCmd(ctx, rest, env)
	case "render":
		err = runRender(rest, env)
	case "preview":
		err = runPreview(rest, env)
	case "config":
		err = runConfigCmd(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "go-md2html %s\n", Version)
	case "help", "-h", "--help":
		err = runHelp(rest, env)
	default:
		printUsage(env.Stderr)
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, errorHint(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func isCommand(arg string) bool {
	return slices.Contains(commands, arg)
}

// looksLikeConvertArg reports whether arg starts an implicit convert:
// a flag, a markdown file, or an existing directory.
func looksLikeConvertArg(arg string) bool {
	if strings.HasPrefix(arg, "-") {
		return !slices.Contains([]string{"-h", "--help", "--version"}, arg)
	}
	if fileutil.IsMarkdownFile(arg) {
		return true
	}
	info, err := os.Stat(arg)
	return err == nil && info.IsDir()
}

// errorHint returns an actionable hint for well-known failures, or "".
func errorHint(err error) string {
	switch {
	case errors.Is(err, md2html.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, md2html.ErrStyleNotFound):
		return hints.ForStyleNotFound(md2html.StyleNames())
	case errors.Is(err, md2html.ErrUnknownEngine):
		return hints.ForEngine(md2html.Engines())
	case errors.Is(err, md2html.ErrUnknownHighlightStyle):
		return hints.ForHighlightStyle()
	case errors.Is(err, ErrInputTooLarge):
		return hints.ForInputTooLarge()
	}
	return ""
}
