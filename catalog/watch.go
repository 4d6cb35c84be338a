package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 500 * time.Millisecond

// Watch reloads catalog into registry whenever source file changes. Reload
// which fails keeps previous catalog. Watching stops when context is
// cancelled.
func Watch(ctx context.Context, reg *Registry, path string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("catalog-watch")

	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("unable to resolve catalog path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	// directory is watched so editors doing atomic saves (rename over) are
	// noticed
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch catalog directory: %w", err)
	}

	go watchLoop(ctx, watcher, reg, path, log)
	log.Info("Catalog watcher started", zap.String("path", path))
	return nil
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, reg *Registry, path string, log *zap.Logger) {
	defer watcher.Close()

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path || !event.Op.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			log.Debug("Catalog file changed", zap.String("file", event.Name), zap.Stringer("operation", event.Op))
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(reloadDebounce, func() {
				reload(ctx, reg, path, log)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Error("File watcher error", zap.Error(err))

		case <-ctx.Done():
			log.Info("Stopping catalog watcher")
			return
		}
	}
}

func reload(ctx context.Context, reg *Registry, path string, log *zap.Logger) {
	cat, err := load(ctx, path, log)
	if err != nil {
		log.Error("Catalog reload failed, keeping previous catalog", zap.String("path", path), zap.Error(err))
		return
	}
	reg.Swap(cat)
	log.Info("Catalog reloaded", zap.String("path", path),
		zap.Int("layouts", len(cat.layouts)), zap.Int("themes", len(cat.themes)))
}
