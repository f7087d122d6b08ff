package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long Watch waits after the last change before it
// reloads.
const DefaultDebounce = 250 * time.Millisecond

// WatchOption configures Watch.
type WatchOption func(*watchConfig)

type watchConfig struct {
	debounce time.Duration
	onReload func(error)
}

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatchOption {
	return func(c *watchConfig) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithReloadHook calls fn after every reload attempt with its result.
func WithReloadHook(fn func(error)) WatchOption {
	return func(c *watchConfig) { c.onReload = fn }
}

// Watch reloads the store whenever a content file under its directory
// changes, until ctx is done. A failed reload is logged and the previous
// snapshot stays in place.
func (s *Store) Watch(ctx context.Context, opts ...WatchOption) error {
	if s.dir == "" {
		return errors.New("content: store has no directory")
	}
	cfg := watchConfig{debounce: DefaultDebounce}
	for _, o := range opts {
		o(&cfg)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := addTree(w, s.dir); err != nil {
		return err
	}
	s.logger.Debug("watching content", zap.String("dir", s.dir))

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				// New subdirectories need their own watch.
				_ = addTree(w, ev.Name)
			}
			if !relevant(ev) {
				continue
			}
			s.logger.Debug("content changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			timer.Reset(cfg.debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("content watcher error", zap.Error(err))

		case <-timer.C:
			err := s.Reload()
			if err != nil {
				s.logger.Warn("content reload failed, keeping previous snapshot", zap.Error(err))
			} else {
				s.logger.Info("content reloaded", summary(s.Snapshot()))
			}
			if cfg.onReload != nil {
				cfg.onReload(err)
			}
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return isContentFile(ev.Name)
}

// addTree watches root and every directory below it. A root that is not a
// directory is ignored.
func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}
