package editor

import (
	"io"

	"seal-editor/internal/textio"
)

// saveTargets is the store a window's session writes through. The save
// dialog hands back a file it has already created or truncated, so the
// first save to that path goes through the dialog's writer rather than
// opening the file a second time.
type saveTargets struct {
	*textio.Store
	pending map[string]io.WriteCloser
}

func newSaveTargets(store *textio.Store) *saveTargets {
	return &saveTargets{
		Store:   store,
		pending: make(map[string]io.WriteCloser),
	}
}

func (s *saveTargets) hold(path string, w io.WriteCloser) {
	if old, ok := s.pending[path]; ok {
		_ = old.Close()
	}
	s.pending[path] = w
}

func (s *saveTargets) Save(path string, text string) error {
	if w, ok := s.pending[path]; ok {
		delete(s.pending, path)
		return textio.Write(w, text)
	}
	return s.Store.Save(path, text)
}

func (s *saveTargets) release() {
	for path, w := range s.pending {
		_ = w.Close()
		delete(s.pending, path)
	}
}
