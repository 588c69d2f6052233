package main

import (
	"io"
	"slices"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a console logger at debug level writing to w when
// verbose, and a no-op logger otherwise.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core)
}

// setMaxProcs aligns GOMAXPROCS with the container CPU quota.
// The error is ignored: maxprocs.Set only fails if the GOMAXPROCS env is
// invalid, in which case the runtime default applies.
func setMaxProcs(logger *zap.Logger) {
	_, _ = maxprocs.Set(maxprocs.Logger(logger.Sugar().Debugf))
}

// wantsVerbose reports whether -v or --verbose appears before a "--".
func wantsVerbose(args []string) bool {
	end := slices.Index(args, "--")
	if end >= 0 {
		args = args[:end]
	}
	return slices.Contains(args, "-v") || slices.Contains(args, "--verbose")
}
