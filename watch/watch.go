// Package watch regenerates enum accessors when Go sources change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pablor21/enummessage/config"
	"github.com/pablor21/enummessage/logger"
	"github.com/pablor21/enummessage/parser"
)

// ChangeFunc is called with the Go files changed during one debounce window.
type ChangeFunc func(ctx context.Context, changed []string) error

// Watcher watches package directories recursively for Go source changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	ignore   []string
	debounce time.Duration
	log      logger.Logger
	onChange ChangeFunc
	pending  map[string]struct{}
}

// New creates a watcher over roots and their subdirectories. Directories are
// registered before New returns, so changes made afterwards are not missed.
func New(roots []string, cfg config.WatcherConfig, log logger.Logger, onChange ChangeFunc) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("watch: onChange is required")
	}
	if log == nil {
		log = logger.NewDefaultLogger()
	}
	debounce := time.Duration(cfg.DebounceMs) * time.Millisecond
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		ignore:   cfg.IgnorePatterns,
		debounce: debounce,
		log:      log,
		onChange: onChange,
		pending:  make(map[string]struct{}),
	}
	for _, root := range roots {
		if err := w.addRecursive(root); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// WatchList returns the watched directories.
func (w *Watcher) WatchList() []string {
	list := w.watcher.WatchList()
	sort.Strings(list)
	return list
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.log.Debug("Watching directory", "path", path)
		return nil
	})
}

// ignored reports whether a path matches an ignore pattern or is hidden.
func (w *Watcher) ignored(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") && base != "." && base != ".." {
		return true
	}
	for _, pattern := range w.ignore {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// relevant reports whether a file event can change the generated output.
// Generated files are filtered later, once their content is written.
func (w *Watcher) relevant(path string) bool {
	if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
		return false
	}
	return !w.ignored(path) && !w.ignored(filepath.Dir(path))
}

// Run processes events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(event) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("Watcher error", "error", err)

		case <-timer.C:
			w.flush(ctx)
		}
	}
}

// handleEvent records a change and reports whether the debounce timer must restart.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if w.ignored(event.Name) {
				return false
			}
			if err := w.addRecursive(event.Name); err != nil {
				w.log.Warn("Failed to watch new directory", "path", event.Name, "error", err)
			}
			return false
		}
	}

	if !w.relevant(event.Name) {
		return false
	}
	w.log.Debug("Source changed", "path", event.Name, "op", event.Op.String())
	w.pending[event.Name] = struct{}{}
	return true
}

func (w *Watcher) flush(ctx context.Context) {
	if len(w.pending) == 0 {
		return
	}
	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		if !parser.IsGeneratedFile(path) {
			changed = append(changed, path)
		}
	}
	clear(w.pending)
	if len(changed) == 0 {
		return
	}
	sort.Strings(changed)

	w.log.Info("Regenerating", "changed", len(changed))
	if err := w.onChange(ctx, changed); err != nil {
		w.log.Error("Regeneration failed", "error", err)
	}
}
