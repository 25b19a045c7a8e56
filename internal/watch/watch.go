// Package watch re-runs a callback whenever a watched exchange file
// changes.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ifcstep/ifcstep/internal/ctxlog"
	"github.com/ifcstep/ifcstep/internal/fs"
	"github.com/ifcstep/ifcstep/internal/idl"
)

// Debounce is how long Watch waits for more events before calling back.
const Debounce = 100 * time.Millisecond

// Watch blocks until ctx is done, calling rebuild with the path of each
// exchange file that is written or created under targets. Targets may be
// files or directories; files are watched through their directory.
func Watch(ctx context.Context, targets []string, rebuild func(ctx context.Context, path string) error) error {
	logger := ctxlog.FromContext(ctx)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	files := map[string]bool{}
	dirs := map[string]bool{}
	for _, target := range targets {
		abs, err := filepath.Abs(target)
		if err != nil {
			return err
		}
		stat, err := os.Stat(abs)
		if err != nil {
			return err
		}
		if stat.IsDir() {
			dirs[abs] = true
			continue
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	watched := func(name string) bool {
		abs, err := filepath.Abs(name)
		if err != nil {
			return false
		}
		if files[abs] {
			return true
		}
		return dirs[filepath.Dir(abs)] && fs.KindOf(abs) != idl.FileKindNone
	}

	pending := map[string]bool{}
	timer := time.NewTimer(Debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !watched(event.Name) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(Debounce)
		case <-timer.C:
			for name := range pending {
				logger.Info("file changed", "path", name)
				if err := rebuild(ctx, name); err != nil {
					logger.Error("rebuild failed", "path", name, "error", err)
				}
			}
			pending = map[string]bool{}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
