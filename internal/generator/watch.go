package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alexisbeaulieu97/fragments/internal/logger"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	// Paths are files or directories whose changes trigger a rebuild.
	Paths    []string
	Debounce time.Duration
	Logger   *logger.Logger
	// Rebuild runs after each settled burst of changes. Its errors are
	// logged and watching continues.
	Rebuild func(ctx context.Context) error
}

// Watch calls Rebuild whenever one of the watched paths changes, until ctx
// is cancelled. Files are watched through their parent directory so
// editors that replace files on save are still seen.
func Watch(ctx context.Context, opts WatchOptions) error {
	if opts.Rebuild == nil {
		return errors.New("watch: rebuild function is required")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	files := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range opts.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		info, err := os.Stat(abs)
		switch {
		case err == nil && info.IsDir():
			dirs[abs] = true
			err = watcher.Add(abs)
		case err == nil || errors.Is(err, os.ErrNotExist):
			files[abs] = true
			err = watcher.Add(filepath.Dir(abs))
		}
		if err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
	}

	relevant := func(name string) bool {
		abs, err := filepath.Abs(name)
		if err != nil {
			return false
		}
		return files[abs] || dirs[filepath.Dir(abs)]
	}

	timer := time.NewTimer(opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	log.WithFields(map[string]any{"paths": opts.Paths}).Info("watching for changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Chmod) || !relevant(event.Name) {
				continue
			}
			log.WithFields(map[string]any{"path": event.Name, "op": event.Op.String()}).Debug("change detected")
			timer.Reset(opts.Debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn(fmt.Sprintf("watcher error: %v", err))
		case <-timer.C:
			if err := opts.Rebuild(ctx); err != nil {
				log.Error(err, "rebuild failed")
				continue
			}
			log.Info("rebuild finished")
		}
	}
}
