// Package watch re-runs conversions when Markdown sources change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// DefaultDebounce is the quiet period before a batch of changes is handled.
const DefaultDebounce = 200 * time.Millisecond

// ErrWatcherClosed is returned when Add or Run is called after Close.
var ErrWatcherClosed = errors.New("watcher closed")

// Handler receives the changed paths of one debounced batch, sorted.
type Handler func(ctx context.Context, paths []string)

// Watcher collects fsnotify events for Markdown files and delivers them in
// debounced batches.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	trees  map[string]bool // directories watched for any Markdown file
	files  map[string]bool // single files watched through their parent
	closed bool
	once   sync.Once
}

// New creates a Watcher. A non-positive debounce uses DefaultDebounce and a
// nil logger discards output.
func New(debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	return &Watcher{
		fsw:      fsw,
		debounce: debounce,
		logger:   logger,
		trees:    make(map[string]bool),
		files:    make(map[string]bool),
	}, nil
}

// Add watches a file or a directory tree. Files are watched through their
// parent directory so editors that save by rename are still seen.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWatcherClosed
	}

	if !info.IsDir() {
		if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		w.files[abs] = true
		return nil
	}
	return w.addTreeLocked(abs)
}

func (w *Watcher) addTreeLocked(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && len(d.Name()) > 1 && d.Name()[0] == '.' {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		w.trees[p] = true
		return nil
	})
}

// Run delivers batches to handle until ctx is done or the watcher fails.
// It closes the watcher before returning.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	defer w.Close()

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return ErrWatcherClosed
			}
			path, ok := w.accept(event)
			if !ok {
				continue
			}
			w.logger.Debug("change detected", zap.String("path", path), zap.Stringer("op", event.Op))
			pending[path] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			slices.Sort(paths)
			handle(ctx, paths)
		}
	}
}

// accept filters an event down to a Markdown path worth re-converting.
// New subdirectories of a watched tree are added on the fly.
func (w *Watcher) accept(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return "", false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	name := filepath.Clean(event.Name)
	if w.files[name] {
		return name, true
	}
	if !w.trees[filepath.Dir(name)] {
		return "", false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			if err := w.addTreeLocked(name); err != nil {
				w.logger.Warn("watching new directory", zap.String("path", name), zap.Error(err))
			}
			return "", false
		}
	}
	return name, fileutil.IsMarkdownFile(name)
}

// Close stops the underlying fsnotify watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		err = w.fsw.Close()
	})
	return err
}
