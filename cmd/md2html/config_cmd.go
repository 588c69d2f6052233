package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2html/internal/yamlutil"
)

// runConfigCmd prints the effective configuration as YAML: the config
// file (if any) with environment overrides applied.
func runConfigCmd(args []string, env *Environment) error {
	var common commonFlags
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVarP(&common.config, "config", "c", "", "config file name or path")
	fs.Usage = func() { printConfigUsage(env.Stdout) }
	if err := parseFlagSet(fs, args); err != nil {
		return err
	}

	cfg, err := loadConfig(common.config, env)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}
