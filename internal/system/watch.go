package system

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/ivlev/scrollscene/internal/core"
)

// FileWatcher reports changes to a single file. The parent directory is
// watched so editors that replace the file on save are still seen.
type FileWatcher struct {
	path    string
	watcher *fsnotify.Watcher
}

func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, errors.Wrapf(err, "watch %s", filepath.Dir(abs))
	}

	return &FileWatcher{path: abs, watcher: w}, nil
}

// Run calls fn after every write, create or rename of the file until ctx is
// done. The watcher is closed on return.
func (fw *FileWatcher) Run(ctx context.Context, fn func(path string)) error {
	defer fw.watcher.Close()

	for {
		select {
		case e, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != fw.path {
				continue
			}
			if e.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				core.LogDebug("%s changed (%s)", fw.path, e.Op)
				fn(fw.path)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			core.LogError("watch %s: %v", fw.path, err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// WatchFile watches path and calls fn on every change until ctx is done
func WatchFile(ctx context.Context, path string, fn func(path string)) error {
	fw, err := NewFileWatcher(path)
	if err != nil {
		return err
	}
	return fw.Run(ctx, fn)
}
