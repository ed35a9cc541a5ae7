package app

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// reloader watches the directory of the active scene file. Editors often
// replace files instead of writing them in place, so the directory is
// watched rather than the file.
type reloader struct {
	watcher *fsnotify.Watcher
	dir     string
	path    string
}

func newReloader() (*reloader, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &reloader{watcher: w}, nil
}

func (r *reloader) follow(path string) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	r.path = path
	if dir == r.dir {
		return nil
	}
	if r.dir != "" {
		if err := r.watcher.Remove(r.dir); err != nil {
			slog.Debug("scene watcher: remove", "dir", r.dir, "err", err)
		}
		r.dir = ""
	}
	if err := r.watcher.Add(dir); err != nil {
		return err
	}
	r.dir = dir
	return nil
}

// changed drains pending events without blocking and reports whether the
// active file was written or recreated.
func (r *reloader) changed() bool {
	hit := false
	for {
		select {
		case ev, ok := <-r.watcher.Events:
			if !ok {
				return hit
			}
			if filepath.Clean(ev.Name) == r.path && (ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				hit = true
			}
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return hit
			}
			slog.Warn("scene watcher", "err", err)
		default:
			return hit
		}
	}
}

func (r *reloader) close() error {
	return r.watcher.Close()
}
