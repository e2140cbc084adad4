// Package watch re-runs work when a fixed set of files changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/srcindex/internal/logging"
)

// DefaultDebounce is how long a burst of events must settle before the
// callback runs.
const DefaultDebounce = 200 * time.Millisecond

// ErrNoFiles is returned when Files is given nothing to watch.
var ErrNoFiles = errors.New("no files to watch")

// Options configures Files.
type Options struct {
	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration
}

// Files watches paths until ctx is done, calling onChange with the sorted
// absolute paths that changed after each settled burst of events. The
// parent directories are watched rather than the files themselves so that
// editors which save by renaming a temp file over the original are seen.
// An error from onChange stops the watch and is returned.
func Files(ctx context.Context, paths []string, opts Options, onChange func(ctx context.Context, changed []string) error) error {
	if len(paths) == 0 {
		return ErrNoFiles
	}

	targets := make(map[string]bool, len(paths))
	var dirs []string
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", path, err)
		}
		abs = filepath.Clean(abs)
		targets[abs] = true
		if dir := filepath.Dir(abs); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	logger := logging.FromContext(ctx)
	logger.Debug("Watching files", logging.FieldPath, paths)

	timer := time.NewTimer(time.Hour)
	stopTimer(timer)

	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			name := filepath.Clean(event.Name)
			if !targets[name] || !relevant(event.Op) {
				continue
			}

			if len(pending) > 0 {
				stopTimer(timer)
			}
			pending[name] = true
			timer.Reset(debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}

			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			slices.Sort(changed)
			clear(pending)

			logger.Debug("Files changed", logging.FieldChanged, changed)
			if err := onChange(ctx, changed); err != nil {
				return err
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", watchErr)
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

// stopTimer stops timer and drains a fire that raced with the stop.
func stopTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
