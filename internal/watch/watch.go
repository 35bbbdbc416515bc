// Package watch notifies the SSE broker when the task document changes
// on disk, so list views reload after out-of-band edits (sync clients,
// text editors). Only the file backend is watchable; the WebDAV backend
// has no change feed.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is how long a burst of write events is allowed to settle
// before a single notification goes out. Atomic replace shows up as
// create+rename, sync clients as several chunked writes.
const debounce = 200 * time.Millisecond

// Changed is called after the document settles following a change.
type Changed func()

// Document watches the file at path until ctx is cancelled, invoking cb
// once per settled change. The parent directory is watched rather than
// the file itself, because atomic rename-replace would otherwise drop
// the watch on every write.
func Document(ctx context.Context, path string, logger *slog.Logger, cb Changed) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("path", path))

	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			schedule()

		case <-timerCh:
			logger.Debug("watcher: document changed", slog.String("path", path))
			if cb != nil {
				cb()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: error", slog.String("error", err.Error()))
		}
	}
}
