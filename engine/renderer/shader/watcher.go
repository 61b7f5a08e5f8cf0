package shader

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/XingYaoA/manim/common"
	"github.com/fsnotify/fsnotify"
)

// watcherImpl is the implementation of the Watcher interface.
type watcherImpl struct {
	mu      sync.Mutex
	fs      *fsnotify.Watcher
	cache   ProgramCache
	done    chan struct{}
	closed  bool
	onEvict func(path string)
}

// Watcher observes shader source files on disk and evicts cached programs when
// their files change, so the next capture recompiles from the updated source.
// This is a development aid; production use can skip it entirely.
type Watcher interface {
	// Watch registers a file or directory with the watcher. Directories are
	// watched non-recursively and only .wgsl files trigger eviction.
	//
	// Parameters:
	//   - path: the file or directory to observe
	//
	// Returns:
	//   - error: an error if the path could not be registered
	Watch(path string) error

	// Close stops the watcher and releases its OS resources. Closing twice is
	// a no-op.
	//
	// Returns:
	//   - error: an error if the underlying watcher failed to close
	Close() error
}

var _ Watcher = &watcherImpl{}

// WatcherBuilderOption configures a Watcher during construction.
type WatcherBuilderOption func(*watcherImpl)

// WithEvictCallback installs a callback invoked after a path's programs are
// evicted, useful for triggering a re-render.
//
// Parameters:
//   - fn: the callback receiving the changed source path
//
// Returns:
//   - WatcherBuilderOption: the option to apply
func WithEvictCallback(fn func(path string)) WatcherBuilderOption {
	return func(w *watcherImpl) {
		w.onEvict = fn
	}
}

// NewWatcher creates a Watcher bound to a program cache.
//
// Parameters:
//   - cache: the cache whose entries are evicted on file changes
//   - options: variadic list of WatcherBuilderOption functions
//
// Returns:
//   - Watcher: a running watcher
//   - error: an error if the OS watcher could not be created
func NewWatcher(cache ProgramCache, options ...WatcherBuilderOption) (Watcher, error) {
	if cache == nil {
		panic("shader: watcher requires a program cache")
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader watcher: %w", err)
	}
	w := &watcherImpl{
		fs:    fs,
		cache: cache,
		done:  make(chan struct{}),
	}
	for _, opt := range options {
		opt(w)
	}
	go w.run()
	return w, nil
}

func (w *watcherImpl) Watch(path string) error {
	if err := w.fs.Add(path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	return nil
}

func (w *watcherImpl) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	close(w.done)
	return w.fs.Close()
}

func (w *watcherImpl) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".wgsl") {
				continue
			}
			w.cache.EvictPath(event.Name)
			common.Logger().Debug("shader source changed, evicted programs", "path", event.Name)
			if w.onEvict != nil {
				w.onEvict(event.Name)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			common.Logger().Warn("shader watcher error", "error", err)
		}
	}
}
