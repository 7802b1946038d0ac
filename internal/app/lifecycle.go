package app

import (
	"sync"

	"seal-editor/internal/editor"
	"seal-editor/internal/logger"
)

// Lifecycle tracks the open editor windows. Closing one window never
// affects the others; onEmpty runs when the last one is gone.
type Lifecycle struct {
	mu      sync.Mutex
	windows []*editor.Window
	logger  logger.Logger
	onEmpty func()
}

func NewLifecycle(log logger.Logger, onEmpty func()) *Lifecycle {
	return &Lifecycle{
		logger:  log,
		onEmpty: onEmpty,
	}
}

func (l *Lifecycle) Add(w *editor.Window) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.windows = append(l.windows, w)
}

func (l *Lifecycle) Remove(w *editor.Window) {
	l.mu.Lock()
	removed := false
	for i, open := range l.windows {
		if open == w {
			l.windows = append(l.windows[:i], l.windows[i+1:]...)
			removed = true
			break
		}
	}
	remaining := len(l.windows)
	l.mu.Unlock()

	if !removed {
		return
	}
	l.logger.Debug("Lifecycle", "window removed", map[string]interface{}{
		"remaining": remaining,
	})

	if remaining == 0 && l.onEmpty != nil {
		l.onEmpty()
	}
}

func (l *Lifecycle) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
