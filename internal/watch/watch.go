// Package watch rebuilds derived artifacts when the content tree changes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for events to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls OnChange after files under Root change.
type Watcher struct {
	Root     string
	Debounce time.Duration
	OnChange func(ctx context.Context) error
	Logger   *slog.Logger
}

// Run blocks until ctx is cancelled. Every directory under Root is watched,
// including ones created later. Bursts of events are coalesced into a single
// OnChange call once Debounce has elapsed without further events. Errors from
// OnChange are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	if w.OnChange == nil {
		return fmt.Errorf("watch: OnChange is required")
	}
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "watch")
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot start file watcher: %w", err)
	}
	defer fw.Close() //nolint:errcheck

	if err := addTree(fw, w.Root); err != nil {
		return err
	}
	logger.Info("watching content", "root", w.Root)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher stopping")
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ignored(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				// New maker or model directories need their own watches.
				if err := addTree(fw, ev.Name); err != nil {
					logger.Debug("cannot watch new path", "path", ev.Name, "error", err)
				}
			}
			logger.Debug("content event", "op", ev.Op.String(), "path", ev.Name)
			pending = true
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Error("fsnotify error", "error", err)

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			if err := w.OnChange(ctx); err != nil {
				logger.Error("rebuild after change failed", "error", err)
			}
		}
	}
}

// addTree watches root and every directory below it. A root that is a file
// is ignored.
func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && ignored(path) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("cannot watch %s: %w", path, err)
		}
		return nil
	})
}

// ignored filters editor swap files and hidden entries.
func ignored(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp")
}
