// Package editor builds the fyne window for one editing session and wires
// its widgets, menus and dialogs to a session.Session.
package editor

import (
	"context"
	"errors"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"

	"seal-editor/internal/config"
	"seal-editor/internal/logger"
	"seal-editor/internal/session"
	"seal-editor/internal/textio"
	"seal-editor/internal/theme"
	"seal-editor/internal/watch"
)

const component = "EditorWindow"

type Options struct {
	Config config.Config
	Logger logger.Logger
	Store  *textio.Store

	// Context stops the file watcher when canceled.
	Context context.Context

	// OnNewWindow is called by the New File action.
	OnNewWindow func()
	// OnClosed is called once the window is gone.
	OnClosed func(*Window)
}

// Window is one editor window and its session.
type Window struct {
	app        fyne.App
	window     fyne.Window
	area       *textArea
	background *canvas.Rectangle
	override   *container.ThemeOverride
	dialogs    fileDialogs

	session *session.Session
	store   *textio.Store
	targets *saveTargets
	watcher *watch.Watcher
	log     logger.Logger
	opts    Options

	// askReload shows the reload question for an external change.
	askReload     func(message string, answer func(reload bool))
	reloadPending bool
	closed        bool
}

func New(a fyne.App, opts Options) *Window {
	if opts.Logger == nil {
		opts.Logger = logger.NoOpLogger{}
	}
	if opts.Store == nil {
		opts.Store = textio.NewStore()
	}

	w := &Window{
		app:     a,
		window:  a.NewWindow(session.AppTitle),
		area:    newTextArea(),
		store:   opts.Store,
		targets: newSaveTargets(opts.Store),
		log:     opts.Logger,
		opts:    opts,
	}
	w.dialogs = fileDialogs{win: w}
	w.askReload = func(message string, answer func(bool)) {
		dialog.ShowConfirm("File Changed", message, answer, w.window)
	}

	w.session = session.New(session.Deps{
		Buffer:   textBuffer{area: w.area},
		Store:    w.targets,
		Picker:   w.dialogs,
		Surface:  windowSurface{app: a, window: w.window},
		Prompter: w.dialogs,
		Styler:   w,
		Closer:   w,
		Reporter: w.dialogs,
		Logger:   w.log,
	})

	w.buildContent()
	w.setupMenus()
	w.setupShortcuts()
	w.setupEvents()
	w.setupWatcher()

	w.session.OnStateChange(w.refresh)
	if opts.Config.FontSize > 0 {
		w.session.SetFontSize(opts.Config.FontSize)
	}
	w.refresh()

	w.window.Resize(fyne.NewSize(opts.Config.WindowWidth, opts.Config.WindowHeight))
	w.window.CenterOnScreen()

	return w
}

func (w *Window) buildContent() {
	editorTheme := theme.NewEditorTheme(false, theme.DefaultFontSize)
	w.background = canvas.NewRectangle(editorTheme.Palette().WindowBackground)
	w.override = container.NewThemeOverride(
		container.NewStack(w.background, container.NewPadded(w.area.scroller)),
		editorTheme,
	)
	w.window.SetContent(w.override)
}

func (w *Window) setupEvents() {
	w.area.OnChanged = func(string) {
		w.session.MarkChanged()
	}
	w.area.modifiers = w.keyModifiers
	w.area.onZoom = func(in bool) {
		if in {
			w.session.ZoomIn()
		} else {
			w.session.ZoomOut()
		}
	}

	w.window.SetCloseIntercept(w.session.RequestClose)
	w.window.SetOnClosed(func() {
		w.closed = true
		w.stopWatcher()
		w.targets.release()
		w.log.Debug(component, "window closed", map[string]interface{}{
			"path": w.session.Path(),
		})
		if w.opts.OnClosed != nil {
			w.opts.OnClosed(w)
		}
	})
}

func (w *Window) setupWatcher() {
	if !w.opts.Config.WatchFiles {
		return
	}
	watcher, err := watch.New(watch.Config{
		Context: w.opts.Context,
		Logger:  w.log,
		OnChange: func(path string) {
			fyne.Do(func() { w.externalChange(path) })
		},
	})
	if err != nil {
		w.log.Error(component, err, map[string]interface{}{
			"feature": "external change detection",
		})
		return
	}
	w.watcher = watcher
}

// Session returns the window's session.
func (w *Window) Session() *session.Session {
	return w.session
}

// FyneWindow returns the underlying fyne window.
func (w *Window) FyneWindow() fyne.Window {
	return w.window
}

func (w *Window) Show() {
	w.window.Show()
	w.window.Canvas().Focus(w.area)
}

// OpenExisting loads path when it names an existing regular file. Errors
// have already been reported to the user when it returns false.
func (w *Window) OpenExisting(path string) bool {
	opened, _ := w.session.OpenExisting(path)
	return opened
}

// Open loads path into this window.
func (w *Window) Open(path string) error {
	return w.session.Open(path)
}

func (w *Window) openFromDialog() {
	w.dialogs.pickOpenPath(func(path string) {
		_ = w.session.Open(path)
	})
}

func (w *Window) save() {
	w.session.Save(nil)
}

func (w *Window) toggleFullscreen() {
	if err := w.session.ToggleFullscreen(); errors.Is(err, session.ErrFullscreenUnsupported) {
		w.dialogs.ReportError("Toggle Fullscreen", err)
	}
}

func (w *Window) keyModifiers() fyne.KeyModifier {
	if d, ok := w.app.Driver().(desktop.Driver); ok {
		return d.CurrentKeyModifiers()
	}
	return 0
}

func (w *Window) newWindow() {
	if w.opts.OnNewWindow != nil {
		w.opts.OnNewWindow()
	}
}

// ApplyStyle implements session.Styler.
func (w *Window) ApplyStyle(dark bool, fontSize float32) {
	editorTheme := theme.NewEditorTheme(dark, fontSize)
	w.override.Theme = editorTheme
	w.override.Refresh()
	w.background.FillColor = editorTheme.Palette().WindowBackground
	w.background.Refresh()
}

// Theme returns the theme currently applied to the window content.
func (w *Window) Theme() *theme.EditorTheme {
	return w.override.Theme.(*theme.EditorTheme)
}

// BackgroundColor is the color painted behind the text area.
func (w *Window) BackgroundColor() color.Color {
	return w.background.FillColor
}

// Close implements session.Closer.
func (w *Window) Close() {
	w.stopWatcher()
	w.window.Close()
}

// Shutdown releases resources without prompting.
func (w *Window) Shutdown() {
	w.stopWatcher()
}

func (w *Window) stopWatcher() {
	if w.watcher != nil {
		w.watcher.Shutdown()
	}
}

func (w *Window) refresh() {
	w.window.SetTitle(w.session.Title())

	if w.watcher == nil || w.closed || w.session.Path() == "" {
		return
	}
	if err := w.watcher.Watch(w.session.Path()); err != nil {
		w.log.Warning(component, "cannot watch file", map[string]interface{}{
			"path":  w.session.Path(),
			"error": err.Error(),
		})
	}
}

// externalChange runs on the UI thread when the open file changed on disk.
func (w *Window) externalChange(path string) {
	if w.closed || w.reloadPending {
		return
	}
	mod, err := w.store.ModTime(path)
	if err != nil || !mod.After(w.session.SyncedAt()) {
		return
	}

	w.log.Info(component, "file changed on disk", map[string]interface{}{
		"path":     path,
		"modified": mod,
	})

	message := "The file has been modified by another program.\nDo you want to reload it?"
	if w.session.HasUnsavedChanges() {
		message += "\nReloading will discard your unsaved changes."
	}

	w.reloadPending = true
	w.askReload(message, func(reload bool) {
		w.reloadPending = false
		if reload {
			_ = w.session.Open(w.session.Path())
		}
	})
}
