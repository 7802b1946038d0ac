package app

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seal-editor/internal/config"
	"seal-editor/internal/editor"
	"seal-editor/internal/logger"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.WatchFiles = false
	a := newApplication(test.NewTempApp(t), cfg, nil)
	t.Cleanup(a.shutdown.Shutdown)
	return a
}

func TestNewApplicationRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.WindowWidth = 1

	_, err := NewApplication(cfg, logger.NoOpLogger{})
	assert.Error(t, err)
}

func TestNewWindowOpensPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.md")
	require.NoError(t, os.WriteFile(path, []byte("- milk\n"), 0644))

	a := newTestApplication(t)
	w := a.NewWindow(path)

	assert.Equal(t, 1, a.Windows())
	assert.Equal(t, path, w.Session().Path())
	assert.False(t, w.Session().IsNewFile())
}

func TestNewWindowWithoutPathStartsEmpty(t *testing.T) {
	a := newTestApplication(t)
	w := a.NewWindow(filepath.Join(t.TempDir(), "nope.txt"))

	assert.True(t, w.Session().IsNewFile())
	assert.Equal(t, "", w.Session().Path())
}

func TestWindowsCloseIndependently(t *testing.T) {
	a := newTestApplication(t)
	first := a.NewWindow("")
	second := a.NewWindow("")
	require.Equal(t, 2, a.Windows())

	first.Session().RequestClose()
	assert.Equal(t, 1, a.Windows())
	assert.Equal(t, "Seal Editor - Untitled", second.FyneWindow().Title())

	second.Session().RequestClose()
	assert.Equal(t, 0, a.Windows())
}

func TestLifecycleOnEmpty(t *testing.T) {
	emptied := 0
	l := NewLifecycle(logger.NoOpLogger{}, func() { emptied++ })

	a := newTestApplication(t)
	w1 := editor.New(a.fyneApp, editor.Options{Config: a.config})
	w2 := editor.New(a.fyneApp, editor.Options{Config: a.config})
	l.Add(w1)
	l.Add(w2)

	l.Remove(w1)
	assert.Equal(t, 0, emptied)
	l.Remove(w2)
	assert.Equal(t, 1, emptied)
	assert.Equal(t, 0, l.Len())
}

func TestLifecycleRemoveTwice(t *testing.T) {
	emptied := 0
	l := NewLifecycle(logger.NoOpLogger{}, func() { emptied++ })

	a := newTestApplication(t)
	w := editor.New(a.fyneApp, editor.Options{Config: a.config})
	l.Add(w)

	l.Remove(w)
	l.Remove(w)

	assert.Equal(t, 1, emptied)
}

func TestShutdownReleasesWindows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.md")
	require.NoError(t, os.WriteFile(path, []byte("- milk\n"), 0644))

	cfg := config.DefaultConfig()
	a := newApplication(test.NewTempApp(t), cfg, nil)
	first := a.NewWindow(path)
	second := a.NewWindow("")

	first.Session().RequestClose()
	require.Equal(t, 1, a.Windows())

	a.shutdown.Shutdown()

	assert.Error(t, a.shutdown.Context().Err())
	assert.Equal(t, 1, a.Windows())
	assert.NotPanics(t, second.Shutdown)
}
