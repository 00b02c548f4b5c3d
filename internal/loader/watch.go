package loader

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bull/qubz-assistant/internal/storage"
)

// DefaultSettle is how long a file must stay quiet before it is parsed.
const DefaultSettle = 250 * time.Millisecond

// Watcher adds documents created or rewritten under a directory tree.
type Watcher struct {
	watcher *fsnotify.Watcher
	loader  *Loader
	root    string
	onDoc   func(storage.Document)
	settle  time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewWatcher creates a watcher that hands every parsed document to onDoc.
func NewWatcher(l *Loader, root string, onDoc func(storage.Document), logger *slog.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		watcher: w,
		loader:  l,
		root:    root,
		onDoc:   onDoc,
		settle:  DefaultSettle,
		logger:  logger,
		pending: make(map[string]*time.Timer),
	}, nil
}

// Run watches until ctx is cancelled. fsnotify is not recursive, so every
// directory is registered, including ones created later.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	if err := w.addTree(w.root); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			w.stopPending()
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		if err := w.addTree(event.Name); err != nil {
			w.logger.Warn("Failed to watch directory", "dir", event.Name, "error", err)
		}
		return
	}
	if !Supported(event.Name) {
		return
	}
	w.schedule(event.Name)
}

// schedule parses path once it has been quiet for the settle interval.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.ingest(path)
	})
}

func (w *Watcher) ingest(path string) {
	identifier, err := Identifier(w.root, path)
	if err != nil {
		w.logger.Warn("Failed to resolve identifier", "path", path, "error", err)
		return
	}
	doc, err := w.loader.ParseFile(path, identifier)
	if err != nil {
		w.logger.Warn("Failed to load document", "path", path, "error", err)
		return
	}
	w.logger.Info("Added watched document", "identifier", identifier)
	w.onDoc(*doc)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

func (w *Watcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}
