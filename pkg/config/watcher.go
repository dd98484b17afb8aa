package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/user/imagify/pkg/imagify"
	"github.com/user/imagify/pkg/ports"
)

// Watcher keeps the settings loaded from a config file current.
// Readers call Current for every message; a reload swaps the settings
// wholesale and a failed reload keeps the previous ones.
type Watcher struct {
	fs     ports.FileSystem
	path   string
	logger ports.Logger

	settings atomic.Pointer[imagify.Settings]
	config   atomic.Pointer[Config]
	reloads  atomic.Int64
}

// NewWatcher loads path and returns a Watcher holding its settings.
// The initial load must succeed.
func NewWatcher(fs ports.FileSystem, path string, logger ports.Logger) (*Watcher, error) {
	expanded, err := fs.Expand(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:     fs,
		path:   abs,
		logger: logger.WithComponent("config"),
	}
	if err := w.Reload(); err != nil {
		return nil, err
	}
	return w, nil
}

// Current implements imagify.Source.
func (w *Watcher) Current() *imagify.Settings {
	return w.settings.Load()
}

// Config returns the config the current settings were built from.
func (w *Watcher) Config() Config {
	return *w.config.Load()
}

// Reloads returns the number of successful loads, including the first.
func (w *Watcher) Reloads() int64 {
	return w.reloads.Load()
}

// Reload reads and validates the file. On failure the previous settings stay.
func (w *Watcher) Reload() error {
	cfg, err := LoadFromFile(w.fs, w.path)
	if err != nil {
		return fmt.Errorf("load %s: %w", w.path, err)
	}
	settings, err := cfg.Settings()
	if err != nil {
		return fmt.Errorf("load %s: %w", w.path, err)
	}

	w.config.Store(&cfg)
	w.settings.Store(settings)
	w.reloads.Add(1)
	w.logger.Info("Configuration loaded: %s", w.path)
	return nil
}

// Run watches the file until ctx is done. The parent directory is watched
// so that editors that replace the file on save are seen too.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := w.Reload(); err != nil {
				w.logger.Warn("Configuration reload failed, keeping previous settings: %s", err)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Configuration watcher error: %s", err)
		}
	}
}

var _ imagify.Source = (*Watcher)(nil)
