package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tidemark-io/tidelog/pkg/log"
)

// watcherDebounce absorbs the editor write-then-rename burst into one reload.
const watcherDebounce = 250 * time.Millisecond

// Watcher monitors the config file and delivers each freshly layered
// configuration to the reload callback. The watcher only reports changes;
// deciding what to apply, and when, is the caller's job.
type Watcher struct {
	path     string
	logger   log.Logger
	onReload func(Config)
}

// NewWatcher creates a watcher for the config file at path. onReload is
// called with the freshly layered configuration after each change.
func NewWatcher(path string, logger log.Logger, onReload func(Config)) *Watcher {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{path: path, logger: logger, onReload: onReload}
}

// Run watches until the context is cancelled. The parent directory is
// watched rather than the file itself so atomic rename-style saves are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	var debounce *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watcherDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watch error", log.Err(err))
		case <-reload:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	fc, err := LoadFileConfig(w.path)
	if err != nil {
		w.logger.Warn("reload config file", log.String("path", w.path), log.Err(err))
		return
	}
	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, nil); err != nil {
		w.logger.Warn("apply reloaded config", log.Err(err))
		return
	}
	w.logger.Info("configuration reloaded", log.String("path", w.path))
	if w.onReload != nil {
		w.onReload(cfg)
	}
}
