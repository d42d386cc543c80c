package document

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/attrinspect/internal/ctxlog"
)

// LoadFunc loads the document stored at path.
type LoadFunc func(path string) (*Document, error)

// Watcher reloads a document file whenever it changes on disk and makes the
// reloaded document current.
type Watcher struct {
	ctrl    *Controller
	path    string
	load    LoadFunc
	watcher *fsnotify.Watcher
}

// NewWatcher watches path. The parent directory is watched rather than the
// file so that editors which replace the file by renaming are followed.
func NewWatcher(ctrl *Controller, path string, load LoadFunc) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if load == nil {
		load = LoadDOT
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{ctrl: ctrl, path: abs, load: load, watcher: fw}, nil
}

// Path returns the absolute path of the watched document.
func (w *Watcher) Path() string {
	return w.path
}

// Run processes file events until ctx is cancelled or the watcher is
// closed. A document that fails to load is logged and the previous one stays
// current.
func (w *Watcher) Run(ctx context.Context) {
	logger := ctxlog.FromContext(ctx).With("path", w.path)
	logger.Debug("Document watcher started.")
	defer logger.Debug("Document watcher stopped.")

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			doc, err := w.load(w.path)
			if err != nil {
				logger.Warn("Failed to reload document, keeping the previous one.", "error", err)
				continue
			}
			logger.Info("Document changed on disk, reloaded.", "op", event.Op.String())
			w.ctrl.SetCurrent(doc)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("File watcher error", "error", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
