package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seal-editor/internal/textio"
	"seal-editor/internal/theme"
)

type fakeBuffer struct {
	text    string
	onEdit  func()
	setText int
}

func (b *fakeBuffer) Text() string { return b.text }

// SetText mirrors a fyne entry, which fires its change callback on every update.
func (b *fakeBuffer) SetText(text string) {
	b.text = text
	b.setText++
	if b.onEdit != nil {
		b.onEdit()
	}
}

func (b *fakeBuffer) typeText(s string) {
	b.text += s
	if b.onEdit != nil {
		b.onEdit()
	}
}

type memStore struct {
	files   map[string]string
	loadErr error
	saveErr error
	saves   int
}

func newMemStore() *memStore {
	return &memStore{files: make(map[string]string)}
}

func (m *memStore) Load(path string) (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	text, ok := m.files[path]
	if !ok {
		return "", os.ErrNotExist
	}
	return text, nil
}

func (m *memStore) Save(path string, text string) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.files[path] = text
	return nil
}

type fakePicker struct {
	path  string
	ok    bool
	calls int
}

func (p *fakePicker) PickSavePath(callback func(string, bool)) {
	p.calls++
	callback(p.path, p.ok)
}

type fakeSurface struct {
	supported  bool
	size       fyne.Size
	fullScreen bool
}

func (s *fakeSurface) FullScreenSupported() bool { return s.supported }
func (s *fakeSurface) Size() fyne.Size           { return s.size }
func (s *fakeSurface) Resize(size fyne.Size)     { s.size = size }

func (s *fakeSurface) SetFullScreen(full bool) {
	s.fullScreen = full
	if full {
		s.size = fyne.NewSize(1920, 1080)
	}
}

type fakePrompter struct {
	choice Choice
	asked  int
}

func (p *fakePrompter) ConfirmClose(callback func(Choice)) {
	p.asked++
	callback(p.choice)
}

type fakeStyler struct {
	dark     bool
	fontSize float32
	applied  int
}

func (s *fakeStyler) ApplyStyle(dark bool, fontSize float32) {
	s.dark = dark
	s.fontSize = fontSize
	s.applied++
}

type fakeCloser struct{ closed int }

func (c *fakeCloser) Close() { c.closed++ }

type fakeReporter struct{ errs []error }

func (r *fakeReporter) ReportError(_ string, err error) { r.errs = append(r.errs, err) }

type fixture struct {
	session  *Session
	buffer   *fakeBuffer
	store    *memStore
	picker   *fakePicker
	surface  *fakeSurface
	prompter *fakePrompter
	styler   *fakeStyler
	closer   *fakeCloser
	reporter *fakeReporter
}

func newFixture() *fixture {
	f := &fixture{
		buffer:   &fakeBuffer{},
		store:    newMemStore(),
		picker:   &fakePicker{},
		surface:  &fakeSurface{supported: true, size: fyne.NewSize(800, 600)},
		prompter: &fakePrompter{},
		styler:   &fakeStyler{},
		closer:   &fakeCloser{},
		reporter: &fakeReporter{},
	}
	f.session = New(Deps{
		Buffer:   f.buffer,
		Store:    f.store,
		Picker:   f.picker,
		Surface:  f.surface,
		Prompter: f.prompter,
		Styler:   f.styler,
		Closer:   f.closer,
		Reporter: f.reporter,
	})
	f.buffer.onEdit = f.session.MarkChanged
	return f
}

func TestNewSession(t *testing.T) {
	f := newFixture()
	s := f.session

	assert.True(t, s.IsNewFile())
	assert.False(t, s.HasUnsavedChanges())
	assert.Empty(t, s.Path())
	assert.False(t, s.IsDarkTheme())
	assert.False(t, s.IsFullscreen())
	assert.Equal(t, theme.DefaultFontSize, s.FontSize())
	assert.Equal(t, "Seal Editor - Untitled", s.Title())
}

func TestOpen(t *testing.T) {
	t.Run("replaces buffer and clears flags", func(t *testing.T) {
		f := newFixture()
		f.store.files["/docs/a.txt"] = "hello\n"
		f.buffer.typeText("scratch")
		require.True(t, f.session.HasUnsavedChanges())

		require.NoError(t, f.session.Open("/docs/a.txt"))

		assert.Equal(t, "hello\n", f.buffer.text)
		assert.Equal(t, "/docs/a.txt", f.session.Path())
		assert.False(t, f.session.IsNewFile())
		assert.False(t, f.session.HasUnsavedChanges())
		assert.False(t, f.session.SyncedAt().IsZero())
		assert.Equal(t, "Seal Editor - a.txt", f.session.Title())
	})

	t.Run("failure leaves buffer unchanged", func(t *testing.T) {
		f := newFixture()
		f.buffer.typeText("keep me")

		err := f.session.Open("/missing.txt")

		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Equal(t, "keep me", f.buffer.text)
		assert.Empty(t, f.session.Path())
		assert.True(t, f.session.IsNewFile())
		assert.True(t, f.session.HasUnsavedChanges())
		assert.Len(t, f.reporter.errs, 1)
	})
}

func TestOpenExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\r\nb"), 0o644))

	f := newFixture()
	f.session.deps.Store = textio.NewStore()

	opened, err := f.session.OpenExisting(filepath.Join(dir, "nope.txt"))
	require.NoError(t, err)
	assert.False(t, opened)

	opened, err = f.session.OpenExisting(dir)
	require.NoError(t, err)
	assert.False(t, opened)

	opened, err = f.session.OpenExisting(path)
	require.NoError(t, err)
	assert.True(t, opened)
	assert.Equal(t, "a\nb\n", f.buffer.text)
}

func TestMarkChanged(t *testing.T) {
	f := newFixture()
	changes := 0
	f.session.OnStateChange(func() { changes++ })

	f.buffer.typeText("x")
	assert.True(t, f.session.HasUnsavedChanges())
	assert.Equal(t, "Seal Editor - Untitled *", f.session.Title())
	assert.Equal(t, 1, changes)

	f.buffer.typeText("y")
	assert.Equal(t, 1, changes, "already dirty, no further notification")
}

func TestSave(t *testing.T) {
	t.Run("new file asks for a path", func(t *testing.T) {
		f := newFixture()
		f.picker.path, f.picker.ok = "/docs/new.txt", true
		f.buffer.typeText("draft\r\n")

		var result error = errors.New("not called")
		f.session.Save(func(err error) { result = err })

		require.NoError(t, result)
		assert.Equal(t, 1, f.picker.calls)
		assert.Equal(t, "draft\r\n", f.store.files["/docs/new.txt"], "written verbatim")
		assert.Equal(t, "/docs/new.txt", f.session.Path())
		assert.False(t, f.session.IsNewFile())
		assert.False(t, f.session.HasUnsavedChanges())
	})

	t.Run("known file saves without dialog", func(t *testing.T) {
		f := newFixture()
		f.store.files["/docs/a.txt"] = "one\n"
		require.NoError(t, f.session.Open("/docs/a.txt"))
		f.buffer.typeText("two\n")

		f.session.Save(nil)

		assert.Zero(t, f.picker.calls)
		assert.Equal(t, "one\ntwo\n", f.store.files["/docs/a.txt"])
		assert.False(t, f.session.HasUnsavedChanges())
	})

	t.Run("cancel leaves state unchanged", func(t *testing.T) {
		f := newFixture()
		f.picker.ok = false
		f.buffer.typeText("draft")

		var result error
		f.session.Save(func(err error) { result = err })

		assert.ErrorIs(t, result, ErrSaveCanceled)
		assert.Empty(t, f.session.Path())
		assert.True(t, f.session.IsNewFile())
		assert.True(t, f.session.HasUnsavedChanges())
		assert.Zero(t, f.store.saves)
		assert.Empty(t, f.reporter.errs)
	})

	t.Run("write failure is reported and path not committed", func(t *testing.T) {
		f := newFixture()
		f.picker.path, f.picker.ok = "/readonly/x.txt", true
		f.store.saveErr = errors.New("permission denied")
		f.buffer.typeText("draft")

		var result error
		f.session.Save(func(err error) { result = err })

		require.Error(t, result)
		assert.Empty(t, f.session.Path())
		assert.True(t, f.session.IsNewFile())
		assert.True(t, f.session.HasUnsavedChanges())
		assert.Len(t, f.reporter.errs, 1)
	})
}

func TestSaveRoundTripOnDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lines.txt")
	original := "alpha\nbeta\ngamma\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	f := newFixture()
	f.session.deps.Store = textio.NewStore()

	require.NoError(t, f.session.Open(path))
	f.session.Save(nil)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestRequestClose(t *testing.T) {
	t.Run("clean session closes without prompt", func(t *testing.T) {
		f := newFixture()
		f.session.RequestClose()
		assert.Zero(t, f.prompter.asked)
		assert.Equal(t, 1, f.closer.closed)
	})

	t.Run("cancel keeps window open", func(t *testing.T) {
		f := newFixture()
		f.buffer.typeText("x")
		f.prompter.choice = ChoiceCancel

		f.session.RequestClose()

		assert.Equal(t, 1, f.prompter.asked)
		assert.Zero(t, f.closer.closed)
		assert.True(t, f.session.HasUnsavedChanges())
	})

	t.Run("discard closes without saving", func(t *testing.T) {
		f := newFixture()
		f.buffer.typeText("x")
		f.prompter.choice = ChoiceDiscard

		f.session.RequestClose()

		assert.Equal(t, 1, f.closer.closed)
		assert.Zero(t, f.store.saves)
	})

	t.Run("save then close", func(t *testing.T) {
		f := newFixture()
		f.buffer.typeText("x")
		f.prompter.choice = ChoiceSave
		f.picker.path, f.picker.ok = "/docs/out.txt", true

		f.session.RequestClose()

		assert.Equal(t, "x", f.store.files["/docs/out.txt"])
		assert.Equal(t, 1, f.closer.closed)
	})

	t.Run("canceled save keeps window open", func(t *testing.T) {
		f := newFixture()
		f.buffer.typeText("x")
		f.prompter.choice = ChoiceSave
		f.picker.ok = false

		f.session.RequestClose()

		assert.Zero(t, f.closer.closed)
		assert.True(t, f.session.HasUnsavedChanges())
	})

	t.Run("failed save keeps window open", func(t *testing.T) {
		f := newFixture()
		f.store.files["/docs/a.txt"] = ""
		require.NoError(t, f.session.Open("/docs/a.txt"))
		f.buffer.typeText("x")
		f.prompter.choice = ChoiceSave
		f.store.saveErr = errors.New("disk full")

		f.session.RequestClose()

		assert.Zero(t, f.closer.closed)
	})
}

func TestToggleTheme(t *testing.T) {
	f := newFixture()

	f.session.ToggleTheme()
	assert.True(t, f.session.IsDarkTheme())
	assert.True(t, f.styler.dark)

	f.session.ToggleTheme()
	assert.False(t, f.session.IsDarkTheme())
	assert.False(t, f.styler.dark)
	assert.Equal(t, 2, f.styler.applied)
}

func TestZoom(t *testing.T) {
	f := newFixture()

	f.session.ZoomIn()
	assert.Equal(t, theme.DefaultFontSize+theme.FontSizeStep, f.session.FontSize())
	assert.Equal(t, f.session.FontSize(), f.styler.fontSize)

	for i := 0; i < 100; i++ {
		f.session.ZoomOut()
	}
	assert.Equal(t, theme.MinFontSize, f.session.FontSize())

	for i := 0; i < 100; i++ {
		f.session.ZoomIn()
	}
	assert.Equal(t, theme.MaxFontSize, f.session.FontSize())
}

func TestToggleFullscreen(t *testing.T) {
	t.Run("twice restores size", func(t *testing.T) {
		f := newFixture()
		f.surface.size = fyne.NewSize(1024, 700)

		require.NoError(t, f.session.ToggleFullscreen())
		assert.True(t, f.session.IsFullscreen())
		assert.True(t, f.surface.fullScreen)
		assert.Equal(t, fyne.NewSize(1024, 700), f.session.SavedSize())

		require.NoError(t, f.session.ToggleFullscreen())
		assert.False(t, f.session.IsFullscreen())
		assert.False(t, f.surface.fullScreen)
		assert.Equal(t, fyne.NewSize(1024, 700), f.surface.size)
	})

	t.Run("unsupported surface keeps mode", func(t *testing.T) {
		f := newFixture()
		f.surface.supported = false

		err := f.session.ToggleFullscreen()

		assert.ErrorIs(t, err, ErrFullscreenUnsupported)
		assert.False(t, f.session.IsFullscreen())
		assert.False(t, f.surface.fullScreen)
		assert.Equal(t, fyne.NewSize(800, 600), f.surface.size)
	})
}

func TestSyncedAtUsesClock(t *testing.T) {
	f := newFixture()
	fixed := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	f.session.now = func() time.Time { return fixed }
	f.store.files["/a"] = ""

	require.NoError(t, f.session.Open("/a"))
	assert.Equal(t, fixed, f.session.SyncedAt())
}
