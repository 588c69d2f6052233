package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/alnah/go-md2html/internal/watch"
)

// watchAndConvert re-converts Markdown files under inputPath as they change,
// until ctx is done. Failures are reported and watching continues.
func watchAndConvert(ctx context.Context, inputPath, output string, pool Pool, params *conversionParams, common commonFlags, env *Environment) error {
	debounce, err := env.Config.WatchDebounce()
	if err != nil {
		return err
	}

	w, err := watch.New(debounce, env.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(inputPath); err != nil {
		return err
	}

	// Watcher paths are absolute; the layout base must be too.
	baseDir := ""
	if info, err := os.Stat(inputPath); err == nil && info.IsDir() {
		if baseDir, err = filepath.Abs(inputPath); err != nil {
			return fmt.Errorf("resolving %s: %w", inputPath, err)
		}
	}

	if !common.quiet {
		fmt.Fprintf(env.Stdout, "Watching %s for changes (Ctrl+C to stop)\n", inputPath)
	}

	return w.Run(ctx, func(ctx context.Context, paths []string) {
		files := make([]FileToConvert, 0, len(paths))
		for _, p := range paths {
			files = append(files, FileToConvert{
				InputPath:  p,
				OutputPath: resolveOutputPath(p, output, baseDir),
			})
		}
		env.Logger.Debug("re-converting", zap.Strings("paths", paths))
		printResultsWithWriter(convertBatch(ctx, pool, files, params), common.quiet, common.verbose, env)
	})
}
