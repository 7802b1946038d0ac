// Package session holds the state of one editor window: the backing file,
// the unsaved-changes flag and the view modes. It talks to the GUI only
// through the collaborator interfaces below, so every operation can run
// without a display.
package session

import (
	"errors"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"

	"seal-editor/internal/logger"
	"seal-editor/internal/textio"
	"seal-editor/internal/theme"
)

const (
	component = "Session"
	AppTitle  = "Seal Editor"
)

var (
	ErrSaveCanceled          = errors.New("save canceled")
	ErrFullscreenUnsupported = errors.New("full-screen mode not supported")
)

// Choice is the answer to the unsaved-changes prompt.
type Choice int

const (
	ChoiceCancel Choice = iota
	ChoiceSave
	ChoiceDiscard
)

func (c Choice) String() string {
	switch c {
	case ChoiceSave:
		return "save"
	case ChoiceDiscard:
		return "discard"
	default:
		return "cancel"
	}
}

// Buffer is the editable text of the window.
type Buffer interface {
	Text() string
	SetText(text string)
}

// Store reads and writes whole text files.
type Store interface {
	Load(path string) (string, error)
	Save(path string, text string) error
}

// PathPicker asks the user for a file to save to. ok is false on cancel.
type PathPicker interface {
	PickSavePath(callback func(path string, ok bool))
}

// Surface is the window as a display target.
type Surface interface {
	FullScreenSupported() bool
	Size() fyne.Size
	Resize(size fyne.Size)
	SetFullScreen(fullScreen bool)
}

// Prompter asks how to handle unsaved changes before closing.
type Prompter interface {
	ConfirmClose(callback func(Choice))
}

// Styler applies theme and font size to the window.
type Styler interface {
	ApplyStyle(dark bool, fontSize float32)
}

// Closer disposes of the window.
type Closer interface {
	Close()
}

// Reporter surfaces an error to the user.
type Reporter interface {
	ReportError(title string, err error)
}

// Deps bundles the collaborators of a Session. Styler and Reporter may be nil.
type Deps struct {
	Buffer   Buffer
	Store    Store
	Picker   PathPicker
	Surface  Surface
	Prompter Prompter
	Styler   Styler
	Closer   Closer
	Reporter Reporter
	Logger   logger.Logger
}

// Session is the state of one editor window.
type Session struct {
	path       string
	isNew      bool
	unsaved    bool
	fontSize   float32
	dark       bool
	fullscreen bool
	savedSize  fyne.Size
	syncedAt   time.Time
	loading    bool

	deps      Deps
	log       logger.Logger
	listeners []func()
	now       func() time.Time
}

func New(deps Deps) *Session {
	log := deps.Logger
	if log == nil {
		log = logger.NoOpLogger{}
	}

	return &Session{
		isNew:    true,
		fontSize: theme.DefaultFontSize,
		deps:     deps,
		log:      log,
		now:      time.Now,
	}
}

// OnStateChange registers fn to run after every state change.
func (s *Session) OnStateChange(fn func()) {
	s.listeners = append(s.listeners, fn)
}

func (s *Session) Path() string            { return s.path }
func (s *Session) IsNewFile() bool         { return s.isNew }
func (s *Session) HasUnsavedChanges() bool { return s.unsaved }
func (s *Session) IsDarkTheme() bool       { return s.dark }
func (s *Session) IsFullscreen() bool      { return s.fullscreen }
func (s *Session) FontSize() float32       { return s.fontSize }
func (s *Session) SavedSize() fyne.Size    { return s.savedSize }
func (s *Session) SyncedAt() time.Time     { return s.syncedAt }

// Title is the window title for the current state.
func (s *Session) Title() string {
	name := "Untitled"
	if s.path != "" {
		name = filepath.Base(s.path)
	}
	title := AppTitle + " - " + name
	if s.unsaved {
		title += " *"
	}
	return title
}

// Open replaces the buffer with the contents of path. On failure the buffer
// and state are left untouched.
func (s *Session) Open(path string) error {
	text, err := s.deps.Store.Load(path)
	if err != nil {
		s.report("Open File", err, path)
		return err
	}

	s.loading = true
	s.deps.Buffer.SetText(text)
	s.loading = false

	s.path = path
	s.markSynced()

	s.log.Info(component, "file opened", map[string]interface{}{
		"path":  path,
		"bytes": len(text),
	})
	s.notify()
	return nil
}

// OpenExisting opens path only when it names an existing regular file.
func (s *Session) OpenExisting(path string) (bool, error) {
	if path == "" || !textio.IsRegularFile(path) {
		s.log.Debug(component, "startup path skipped", map[string]interface{}{
			"path": path,
		})
		return false, nil
	}
	if err := s.Open(path); err != nil {
		return false, err
	}
	return true, nil
}

// MarkChanged records a user edit of the buffer.
func (s *Session) MarkChanged() {
	if s.loading || s.unsaved {
		return
	}
	s.unsaved = true
	s.notify()
}

// Save writes the buffer to the current file, asking for a path first when
// the file has never been saved. done, if non-nil, receives nil on success,
// ErrSaveCanceled when the user dismissed the dialog, or the write error.
func (s *Session) Save(done func(error)) {
	finish := func(err error) {
		if done != nil {
			done(err)
		}
	}

	if !s.isNew && s.path != "" {
		finish(s.writeTo(s.path))
		return
	}

	s.deps.Picker.PickSavePath(func(path string, ok bool) {
		if !ok || path == "" {
			s.log.Debug(component, "save canceled", nil)
			finish(ErrSaveCanceled)
			return
		}
		finish(s.writeTo(path))
	})
}

func (s *Session) writeTo(path string) error {
	text := s.deps.Buffer.Text()
	if err := s.deps.Store.Save(path, text); err != nil {
		s.report("Save File", err, path)
		return err
	}

	s.path = path
	s.markSynced()

	s.log.Info(component, "file saved", map[string]interface{}{
		"path":  path,
		"bytes": len(text),
	})
	s.notify()
	return nil
}

func (s *Session) markSynced() {
	s.isNew = false
	s.unsaved = false
	s.syncedAt = s.now()
}

// RequestClose closes the window, first asking what to do with unsaved
// changes. The window stays open on cancel or when the save does not complete.
func (s *Session) RequestClose() {
	if !s.unsaved {
		s.close()
		return
	}

	s.deps.Prompter.ConfirmClose(func(choice Choice) {
		s.log.Debug(component, "close prompt answered", map[string]interface{}{
			"choice": choice.String(),
		})

		switch choice {
		case ChoiceSave:
			s.Save(func(err error) {
				if err == nil {
					s.close()
				}
			})
		case ChoiceDiscard:
			s.close()
		}
	})
}

func (s *Session) close() {
	s.log.Info(component, "window closing", map[string]interface{}{
		"path": s.path,
	})
	s.deps.Closer.Close()
}

// ToggleTheme switches between the light and dark palettes.
func (s *Session) ToggleTheme() {
	s.dark = !s.dark
	s.applyStyle()
	s.notify()
}

// ZoomIn enlarges the text by one step.
func (s *Session) ZoomIn() {
	s.SetFontSize(s.fontSize + theme.FontSizeStep)
}

// ZoomOut shrinks the text by one step.
func (s *Session) ZoomOut() {
	s.SetFontSize(s.fontSize - theme.FontSizeStep)
}

// SetFontSize changes the text size, clamped to the supported range.
func (s *Session) SetFontSize(size float32) {
	size = theme.ClampFontSize(size)
	if size == s.fontSize {
		return
	}
	s.fontSize = size
	s.applyStyle()
	s.notify()
}

func (s *Session) applyStyle() {
	if s.deps.Styler != nil {
		s.deps.Styler.ApplyStyle(s.dark, s.fontSize)
	}
}

// ToggleFullscreen enters or leaves full-screen. The window size is recorded
// on entry and restored on exit. The mode is unchanged when the surface
// cannot go full-screen.
func (s *Session) ToggleFullscreen() error {
	if !s.deps.Surface.FullScreenSupported() {
		s.log.Error(component, ErrFullscreenUnsupported, nil)
		return ErrFullscreenUnsupported
	}

	if !s.fullscreen {
		s.savedSize = s.deps.Surface.Size()
		s.deps.Surface.SetFullScreen(true)
	} else {
		s.deps.Surface.SetFullScreen(false)
		s.deps.Surface.Resize(s.savedSize)
	}
	s.fullscreen = !s.fullscreen

	s.log.Debug(component, "fullscreen toggled", map[string]interface{}{
		"fullscreen": s.fullscreen,
		"width":      s.savedSize.Width,
		"height":     s.savedSize.Height,
	})
	s.notify()
	return nil
}

func (s *Session) report(title string, err error, path string) {
	s.log.Error(component, err, map[string]interface{}{
		"operation": title,
		"path":      path,
	})
	if s.deps.Reporter != nil {
		s.deps.Reporter.ReportError(title, err)
	}
}

func (s *Session) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}
