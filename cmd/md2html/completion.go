package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Desc     string
	TakesArg bool
	Values   []string // enum values
	FileGlob string   // e.g. "*.css"
	IsDir    bool
}

// commandDef describes a command for completion.
type commandDef struct {
	Name       string
	Desc       string
	Flags      []flagDef
	TakesFiles bool // accepts markdown file arguments
}

// completionMeta holds completion-specific metadata for flags.
// Names, shorthands and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"engine":      {Values: md2html.Engines()},
	"page-size":   {Values: config.PageSizes},
	"orientation": {Values: config.Orientations},
	"config":      {FileGlob: "*.yaml,*.yml"},
	"style":       {FileGlob: "*.css"},
	"output":      {IsDir: true},
	"asset-path":  {IsDir: true},
}

// extractFlags converts a FlagSet into completion definitions, sorted by name.
func extractFlags(fs *flag.FlagSet, meta map[string]completionMeta) []flagDef {
	var flags []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:     f.Name,
			Short:    f.Shorthand,
			Desc:     f.Usage,
			TakesArg: f.Value.Type() != "bool",
		}
		if m, ok := meta[f.Name]; ok {
			fd.Values = m.Values
			fd.FileGlob = m.FileGlob
			fd.IsDir = m.IsDir
		}
		flags = append(flags, fd)
	})
	sort.Slice(flags, func(i, j int) bool { return flags[i].Long < flags[j].Long })
	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	var cf convertFlags
	var pf previewFlags
	previewMeta := map[string]completionMeta{
		"style": {Values: []string{"auto", "ascii", "dark", "dracula", "light", "notty", "pink", "tokyo-night"}},
	}

	return []commandDef{
		{Name: "convert", Desc: "Convert markdown files to HTML", Flags: extractFlags(newConvertFlagSet(&cf), flagCompletionMeta), TakesFiles: true},
		{Name: "render", Desc: "Render markdown from stdin with the classic engine", TakesFiles: true},
		{Name: "preview", Desc: "Preview a markdown file in the terminal", Flags: extractFlags(newPreviewFlagSet(&pf), previewMeta), TakesFiles: true},
		{Name: "config", Desc: "Print the effective configuration", Flags: []flagDef{{Long: "config", Short: "c", Desc: "config file name or path", TakesArg: true, FileGlob: "*.yaml,*.yml"}}},
		{Name: "doctor", Desc: "Check system configuration", Flags: []flagDef{{Long: "json", Desc: "print results as JSON"}}},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w, getCommands())
	case ShellZsh:
		return generateZsh(w, getCommands())
	case ShellFish:
		return generateFish(w, getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func generateBash(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("# bash completion for md2html\n")
	b.WriteString("_md2html() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", commandNames(cmds))
	b.WriteString("        return\n    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		if c.Name == "completion" {
			b.WriteString("        COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"$cur\"))\n        return\n        ;;\n")
			continue
		}

		b.WriteString("        case \"$prev\" in\n")
		for _, f := range c.Flags {
			if !f.TakesArg {
				continue
			}
			fmt.Fprintf(&b, "        %s)\n", bashFlagPattern(f))
			switch {
			case len(f.Values) > 0:
				fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(f.Values, " "))
			case f.IsDir:
				b.WriteString("            COMPREPLY=($(compgen -d -- \"$cur\"))\n")
			case f.FileGlob != "":
				b.WriteString("            COMPREPLY=($(compgen -f -- \"$cur\"))\n")
			default:
				b.WriteString("            COMPREPLY=()\n")
			}
			b.WriteString("            return\n            ;;\n")
		}
		b.WriteString("        esac\n")

		var words []string
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
		}
		b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
		fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(words, " "))
		if c.TakesFiles {
			b.WriteString("        else\n")
			b.WriteString("            COMPREPLY=($(compgen -f -X '!*.@(md|markdown)' -- \"$cur\") $(compgen -d -- \"$cur\"))\n")
		}
		b.WriteString("        fi\n        ;;\n")
	}
	b.WriteString("    esac\n}\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -F _md2html md2html\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func bashFlagPattern(f flagDef) string {
	if f.Short != "" {
		return "-" + f.Short + "|--" + f.Long
	}
	return "--" + f.Long
}

func generateZsh(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("#compdef md2html\n\n")
	b.WriteString("_md2html() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		if c.Name == "completion" {
			b.WriteString("        _values 'shell' bash zsh fish\n        ;;\n")
			continue
		}
		b.WriteString("        _arguments \\\n")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "            %s \\\n", zshFlagSpec(f))
		}
		if c.TakesFiles {
			b.WriteString("            '*:file:_files -g \"*.(md|markdown)\"'\n")
		} else {
			b.WriteString("            '*: :'\n")
		}
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n}\n\n")
	b.WriteString("_md2html \"$@\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func zshFlagSpec(f flagDef) string {
	desc := zshEscape(f.Desc)
	action := ""
	if f.TakesArg {
		switch {
		case len(f.Values) > 0:
			action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
		case f.IsDir:
			action = fmt.Sprintf(":%s:_directories", f.Long)
		case f.FileGlob != "":
			globs := strings.ReplaceAll(f.FileGlob, ",", "|")
			globs = strings.ReplaceAll(globs, "*.", "")
			action = fmt.Sprintf(":%s:_files -g \"*.(%s)\"", f.Long, globs)
		default:
			action = fmt.Sprintf(":%s: ", f.Long)
		}
	}
	if f.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
	}
	return fmt.Sprintf("'--%s[%s]%s'", f.Long, desc, action)
}

// zshEscape makes s safe inside a single-quoted zsh _arguments entry.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

func generateFish(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("# fish completion for md2html\n")
	b.WriteString("complete -c md2html -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c md2html -n __fish_use_subcommand -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}
	b.WriteString("complete -c md2html -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_seen_subcommand_from %s'", c.Name)
		if c.TakesFiles {
			fmt.Fprintf(&b, "complete -c md2html -n %s -F -a '(__fish_complete_suffix .md .markdown)'\n", cond)
		}
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c md2html -n %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			if f.TakesArg {
				line += " -r"
				switch {
				case len(f.Values) > 0:
					line += " -f -a " + fishQuote(strings.Join(f.Values, " "))
				case f.IsDir:
					line += " -f -a '(__fish_complete_directories)'"
				case f.FileGlob != "":
					line += " -F"
				}
			}
			line += " -d " + fishQuote(f.Desc)
			b.WriteString(line + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func fishQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
}
