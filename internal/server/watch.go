package server

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits after the last change before
// reloading, unless Options.Debounce says otherwise.
const DefaultDebounce = 500 * time.Millisecond

// Watch reloads the site whenever a file under one of dirs changes, until ctx
// is done. Directories created while watching are watched too. A reload that
// fails is logged, and the data already being served is kept.
func (s *Server) Watch(ctx context.Context, dirs ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating file watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watchTree(watcher, dir); err != nil {
			return err
		}
	}

	reload := make(chan struct{}, 1)
	timer := time.AfterFunc(time.Hour, func() {
		select {
		case reload <- struct{}{}:
		default:
		}
	})
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			s.logger.DebugContext(ctx, "file changed", "file", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name); err != nil {
						s.logger.WarnContext(ctx, "error watching new directory", "dir", event.Name, "error", err)
					}
				}
			}
			timer.Reset(s.opts.Debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.WarnContext(ctx, "file watcher error", "error", err)
		case <-reload:
			if err := s.Reload(ctx); err != nil {
				s.logger.ErrorContext(ctx, "error reloading site, still serving the previous version", "error", err)
				continue
			}
			s.logger.InfoContext(ctx, "reloaded site")
		}
	}
}

// watchTree adds dir and every directory under it to watcher, since fsnotify
// doesn't watch recursively.
func watchTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error watching %s: %w", path, err)
		}
		if !entry.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("error watching %s: %w", path, err)
		}
		return nil
	})
}
