// Package watch feeds files that appear in the download directory to a
// handler, one at a time.
package watch

import (
	"context"
	"fmt"
	"os"

	"comicsort/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Handler is called with the path of each new or rewritten regular file.
type Handler func(path string)

// Watcher monitors one directory for file changes using fsnotify
type Watcher struct {
	directory string
	fsWatcher *fsnotify.Watcher
}

// New starts watching dir. Events that arrive before Run is called are
// buffered by fsnotify.
func New(dir string) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsWatcher.Add(dir); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}

	log.LogWithFields(log.F("directory", dir)).Info("Watching directory")
	return &Watcher{directory: dir, fsWatcher: fsWatcher}, nil
}

// Directory returns the watched directory.
func (w *Watcher) Directory() string {
	return w.directory
}

// Run delivers file events to handle until ctx is cancelled. Events are
// handled in the calling goroutine; the next event is not read until
// handle returns. The watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			log.Info("Watcher received stop signal")
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}

			// The file may already be gone, for instance sorted on an
			// earlier event.
			info, err := os.Stat(event.Name)
			if err != nil {
				if !os.IsNotExist(err) {
					log.LogWithFields(log.F("file", event.Name)).WithError(err).Error("Error stating file")
				}
				continue
			}
			if !info.Mode().IsRegular() {
				continue
			}

			log.LogWithFields(log.F("file", event.Name), log.F("op", event.Op.String())).Debug("File event")
			handle(event.Name)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			log.LogWithError(err).Error("fsnotify watcher error")
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
