package editor

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// windowSurface implements session.Surface for a fyne window.
//
// fyne does not expose the monitor layout, so support is decided by the
// driver: desktop drivers can always take the window full-screen on the
// monitor it currently occupies, mobile and test drivers cannot.
type windowSurface struct {
	app    fyne.App
	window fyne.Window
}

func (s windowSurface) FullScreenSupported() bool {
	_, ok := s.app.Driver().(desktop.Driver)
	return ok
}

func (s windowSurface) Size() fyne.Size {
	return s.window.Canvas().Size()
}

func (s windowSurface) Resize(size fyne.Size) {
	s.window.Resize(size)
}

func (s windowSurface) SetFullScreen(fullScreen bool) {
	s.window.SetFullScreen(fullScreen)
}
