// Package watch reports when a file on disk has been rewritten.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultSettle is how long a file must stay quiet before it counts as
// written.
const DefaultSettle = 250 * time.Millisecond

// File blocks until ctx is done, calling fn with path each time the file
// is written, created or replaced and then left alone for settle. The
// parent directory is watched so editors that replace the file by rename
// are still seen.
func File(ctx context.Context, path string, settle time.Duration, log *zap.Logger, fn func(path string)) error {
	if log == nil {
		log = zap.NewNop()
	}
	if settle <= 0 {
		settle = DefaultSettle
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	checkTicker := time.NewTicker(settle / 4)
	defer checkTicker.Stop()

	var lastChange time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				lastChange = time.Now()
			}

		case <-checkTicker.C:
			if lastChange.IsZero() || time.Since(lastChange) < settle {
				continue
			}
			lastChange = time.Time{}
			log.Debug("watched file changed", zap.String("path", path))
			fn(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("file watch error", zap.Error(err))
		}
	}
}
