package main

import (
	"errors"
	"os"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunHelp - Per-command usage
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		topic string
		want  string
	}{
		{"", "Commands:"},
		{"convert", "--toc-max-depth"},
		{"render", "Usage: md2html render [file]"},
		{"preview", "--width <n>"},
		{"config", "MD2HTML_* environment variables"},
		{"doctor", "Usage: md2html doctor [--json]"},
		{"completion", "eval \"$(md2html completion bash)\""},
		{"version", "Show version information."},
		{"help", "Usage: md2html help [command]"},
	}

	for _, tt := range tests {
		t.Run("topic "+tt.topic, func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := testEnv()
			var args []string
			if tt.topic != "" {
				args = []string{tt.topic}
			}
			if err := runHelp(args, env); err != nil {
				t.Fatalf("runHelp(%v) error = %v", args, err)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("stdout = %q, want it to contain %q", stdout, tt.want)
			}
		})
	}
}

func TestRunHelp_UnknownTopic(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv()
	err := runHelp([]string{"frobnicate"}, env)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("error = %v, want ErrUnknownCommand", err)
	}
	if stdout.Len() != 0 || !strings.Contains(stderr.String(), "Usage: md2html") {
		t.Errorf("stdout = %q, stderr = %q", stdout, stderr)
	}
}

func TestPrintConvertUsage_ListsEnginesAndStyles(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	printConvertUsage(env.Stdout)

	for _, want := range []string{"classic, commonmark, blackfriday", "default, github, minimal"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("usage missing %q", want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestDefaultEnv - Production wiring
// ---------------------------------------------------------------------------

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()
	if env.Stdout != os.Stdout || env.Stderr != os.Stderr || env.Stdin != os.Stdin {
		t.Error("DefaultEnv() should use the process streams")
	}
	if env.Config == nil || env.Logger == nil || env.NewPool == nil {
		t.Errorf("DefaultEnv() has nil fields: %+v", env)
	}

	pool := env.NewPool(1)
	defer pool.Close()
	if pool.Size() != 1 {
		t.Errorf("pool.Size() = %d, want 1", pool.Size())
	}
}
