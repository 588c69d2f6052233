package main

import (
	"io"
	"os"

	"go.uber.org/zap"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Config *config.Config // loaded once per command
	Logger *zap.Logger    // diagnostics; Nop unless --verbose

	// NewPool builds the converter pool used by convert.
	NewPool func(size int, opts ...md2html.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  config.DefaultConfig(),
		Logger:  zap.NewNop(),
		NewPool: newConverterPool,
	}
}
