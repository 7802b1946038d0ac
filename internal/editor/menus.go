package editor

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

var (
	shortcutNew     = &desktop.CustomShortcut{KeyName: fyne.KeyN, Modifier: fyne.KeyModifierShortcutDefault}
	shortcutOpen    = &desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault}
	shortcutSave    = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}
	shortcutZoomIn  = &desktop.CustomShortcut{KeyName: fyne.KeyEqual, Modifier: fyne.KeyModifierShortcutDefault}
	shortcutZoomOut = &desktop.CustomShortcut{KeyName: fyne.KeyMinus, Modifier: fyne.KeyModifierShortcutDefault}
)

func menuItem(label string, shortcut fyne.Shortcut, action func()) *fyne.MenuItem {
	item := fyne.NewMenuItem(label, action)
	item.Shortcut = shortcut
	return item
}

func (w *Window) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		menuItem("New File", shortcutNew, w.newWindow),
		menuItem("Open File", shortcutOpen, w.openFromDialog),
		menuItem("Save File", shortcutSave, w.save),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Exit", w.session.RequestClose),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Toggle Theme", w.session.ToggleTheme),
		fyne.NewMenuItem("Toggle Fullscreen", w.toggleFullscreen),
		fyne.NewMenuItemSeparator(),
		menuItem("Zoom In", shortcutZoomIn, w.session.ZoomIn),
		menuItem("Zoom Out", shortcutZoomOut, w.session.ZoomOut),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", w.showAbout),
	)

	w.window.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))

	w.area.popup = fyne.NewMenu("",
		fyne.NewMenuItem("Copy", func() { w.clipboardAction(&fyne.ShortcutCopy{}) }),
		fyne.NewMenuItem("Paste", func() { w.clipboardAction(&fyne.ShortcutPaste{}) }),
		fyne.NewMenuItem("Cut", func() { w.clipboardAction(&fyne.ShortcutCut{}) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("New File", w.newWindow),
		fyne.NewMenuItem("Toggle Theme", w.session.ToggleTheme),
		fyne.NewMenuItem("Exit", w.session.RequestClose),
	)
}

func (w *Window) clipboardAction(s fyne.Shortcut) {
	clipboard := w.window.Clipboard()
	switch sc := s.(type) {
	case *fyne.ShortcutCopy:
		sc.Clipboard = clipboard
	case *fyne.ShortcutPaste:
		sc.Clipboard = clipboard
	case *fyne.ShortcutCut:
		sc.Clipboard = clipboard
	}
	w.area.TypedShortcut(s)
}

func (w *Window) setupShortcuts() {
	bindings := []struct {
		shortcut fyne.Shortcut
		action   func()
	}{
		{shortcutNew, w.newWindow},
		{shortcutOpen, w.openFromDialog},
		{shortcutSave, w.save},
		{shortcutZoomIn, w.session.ZoomIn},
		{shortcutZoomOut, w.session.ZoomOut},
	}

	for _, b := range bindings {
		action := b.action
		w.area.bind(b.shortcut, action)
		w.window.Canvas().AddShortcut(b.shortcut, func(fyne.Shortcut) { action() })
	}

	w.area.onFullscreen = w.toggleFullscreen
	w.window.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		if key.Name == fyne.KeyF11 {
			w.toggleFullscreen()
		}
	})
}
