package watcher

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Event represents a change to one of the watched files. Path is the path as
// it was passed to New, not the resolved absolute path.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watcher reports writes to a fixed set of files. It watches their parent
// directories so files replaced by rename (editors, atomic rewrites) are
// still seen.
type Watcher struct {
	fsw    *fsnotify.Watcher
	Events chan Event
	paths  map[string]string
	log    *slog.Logger
}

// New creates a Watcher for the given file paths. Paths whose directory
// cannot be watched are logged and skipped.
func New(paths []string, log *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}

	w := &Watcher{
		fsw:    fsw,
		Events: make(chan Event, 256),
		paths:  make(map[string]string),
		log:    log,
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			log.Warn("watch.skip", "path", p, "err", err)
			continue
		}
		dir := filepath.Dir(abs)
		if !dirs[dir] {
			if err := fsw.Add(dir); err != nil {
				log.Warn("watch.skip", "path", dir, "err", err)
				continue
			}
			dirs[dir] = true
		}
		w.paths[abs] = p
	}

	return w, nil
}

// Start forwards write and create events for watched files. It blocks until
// the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	defer w.fsw.Close()
	defer close(w.Events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			path, ok := w.paths[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			select {
			case w.Events <- Event{Path: path, Op: ev.Op}:
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("watch.error", "err", err)
		}
	}
}

// Len returns the number of files being watched.
func (w *Watcher) Len() int {
	return len(w.paths)
}
