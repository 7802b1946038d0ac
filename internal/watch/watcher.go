// Package watch reports when the file backing an editor window is changed
// by another program.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"seal-editor/internal/logger"
)

const component = "FileWatcher"

// ChangeCallback receives the watched path. It runs on the watcher's own
// goroutine; GUI callers must hop back with fyne.Do.
type ChangeCallback func(path string)

type Config struct {
	// Context stops the watcher when it is canceled.
	Context            context.Context
	StabilityThreshold time.Duration
	OnChange           ChangeCallback
	Logger             logger.Logger
}

// Watcher follows a single file. The parent directory is watched so that
// editors which save by rename are still seen.
type Watcher struct {
	watcher            *fsnotify.Watcher
	stabilityThreshold time.Duration
	onChange           ChangeCallback
	log                logger.Logger

	mu     sync.Mutex
	target string
	dir    string
	timer  *time.Timer

	done     chan struct{}
	stopOnce sync.Once
}

func New(config Config) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create watcher")
	}

	if config.StabilityThreshold == 0 {
		config.StabilityThreshold = 100 * time.Millisecond
	}
	if config.Logger == nil {
		config.Logger = logger.NoOpLogger{}
	}
	if config.Context == nil {
		config.Context = context.Background()
	}

	w := &Watcher{
		watcher:            fw,
		stabilityThreshold: config.StabilityThreshold,
		onChange:           config.OnChange,
		log:                config.Logger,
		done:               make(chan struct{}),
	}

	go w.eventLoop(config.Context)
	return w, nil
}

// Watch switches the watcher to path.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", path)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if abs == w.target {
		return nil
	}

	if dir != w.dir {
		if w.dir != "" {
			_ = w.watcher.Remove(w.dir)
		}
		if err := w.watcher.Add(dir); err != nil {
			w.dir = ""
			w.target = ""
			return errors.Wrapf(err, "failed to watch %s", dir)
		}
		w.dir = dir
	}
	w.target = abs

	w.log.Debug(component, "watching file", map[string]interface{}{
		"path": abs,
	})
	return nil
}

// Target returns the absolute path being watched, or "".
func (w *Watcher) Target() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.target
}

// Stop ends the event loop and releases the OS watch. It is safe to call twice.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)

		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()

		if cerr := w.watcher.Close(); cerr != nil {
			err = errors.Wrap(cerr, "failed to close watcher")
		}
	})
	return err
}

// Shutdown satisfies shutdown.Shutdownable.
func (w *Watcher) Shutdown() {
	if err := w.Stop(); err != nil {
		w.log.Error(component, err, nil)
	}
}

func (w *Watcher) eventLoop(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error(component, errors.Wrap(err, "watch events"), nil)

		case <-ctx.Done():
			w.log.Debug(component, "context canceled", nil)
			w.Shutdown()
			return

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.target == "" || filepath.Clean(event.Name) != w.target {
		return
	}

	// writers often touch a file several times in a row
	if w.timer != nil {
		w.timer.Stop()
	}
	target := w.target
	w.timer = time.AfterFunc(w.stabilityThreshold, func() {
		select {
		case <-w.done:
			return
		default:
		}
		if w.onChange != nil {
			w.onChange(target)
		}
	})
}
