package script

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports script files that changed on disk. Rapid saves of one
// file are collapsed into a single notification.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	files       map[string]bool
	pending     map[string]time.Time
	debounceDur time.Duration
	onChange    func(path string)
	log         *zap.Logger
	doneCh      chan struct{}
}

// NewWatcher watches the given script files. Their directories are watched
// so that editors which replace the file on save are still seen.
func NewWatcher(paths []string, onChange func(path string), log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		watcher:     fw,
		files:       make(map[string]bool),
		pending:     make(map[string]time.Time),
		debounceDur: 200 * time.Millisecond,
		onChange:    onChange,
		log:         log,
		doneCh:      make(chan struct{}),
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Run delivers change notifications until ctx is done, then closes the
// underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.doneCh)
	defer w.watcher.Close()

	tick := time.NewTicker(w.debounceDur / 2)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("script watcher error", zap.Error(err))

		case now := <-tick.C:
			w.flush(now)
		}
	}
}

// Done is closed once Run has returned.
func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil || !w.files[abs] {
		return
	}
	w.mu.Lock()
	w.pending[abs] = time.Now()
	w.mu.Unlock()
	w.log.Debug("script changed", zap.String("path", abs), zap.String("op", event.Op.String()))
}

func (w *Watcher) flush(now time.Time) {
	var ready []string
	w.mu.Lock()
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounceDur {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range ready {
		w.onChange(path)
	}
}
