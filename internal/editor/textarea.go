package editor

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	fynetheme "fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// textArea is a monospace multi-line entry that routes the editor's own
// shortcuts, F11, the mouse wheel and the right-click menu before the entry
// sees them.
//
// The entry's built-in scroller is turned off and the area sits in scroller
// instead. fyne delivers wheel events to the innermost Scrollable under the
// pointer, so this is what lets the area see Ctrl+wheel.
type textArea struct {
	widget.Entry

	shortcuts    map[string]func()
	onFullscreen func()
	onZoom       func(in bool)
	modifiers    func() fyne.KeyModifier
	popup        *fyne.Menu
	scroller     *container.Scroll
}

func newTextArea() *textArea {
	t := &textArea{shortcuts: make(map[string]func())}
	t.MultiLine = true
	t.Wrapping = fyne.TextWrapOff
	t.Scroll = container.ScrollNone
	t.TextStyle = fyne.TextStyle{Monospace: true}
	t.ExtendBaseWidget(t)

	t.scroller = container.NewScroll(t)
	t.OnCursorChanged = t.ensureCursorVisible
	return t
}

func (t *textArea) bind(s fyne.Shortcut, fn func()) {
	t.shortcuts[s.ShortcutName()] = fn
}

func (t *textArea) TypedShortcut(s fyne.Shortcut) {
	if fn, ok := t.shortcuts[s.ShortcutName()]; ok {
		fn()
		return
	}
	t.Entry.TypedShortcut(s)
}

func (t *textArea) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyF11 && t.onFullscreen != nil {
		t.onFullscreen()
		return
	}
	t.Entry.TypedKey(key)
}

// Scrolled zooms while the shortcut modifier is held, wheel up for larger
// text. Otherwise it scrolls the view, horizontally when Shift is held.
func (t *textArea) Scrolled(ev *fyne.ScrollEvent) {
	mods := t.currentModifiers()

	if mods&fyne.KeyModifierShortcutDefault != 0 {
		if t.onZoom != nil && ev.Scrolled.DY != 0 {
			t.onZoom(ev.Scrolled.DY > 0)
		}
		return
	}

	if mods&fyne.KeyModifierShift != 0 && ev.Scrolled.DX == 0 {
		sideways := *ev
		sideways.Scrolled = fyne.NewDelta(ev.Scrolled.DY, 0)
		ev = &sideways
	}
	t.scroller.Scrolled(ev)
}

func (t *textArea) currentModifiers() fyne.KeyModifier {
	if t.modifiers == nil {
		return 0
	}
	return t.modifiers()
}

// ensureCursorVisible moves the scroller so the caret stays on screen.
func (t *textArea) ensureCursorVisible() {
	th := t.Theme()
	textSize := th.Size(fynetheme.SizeNameText)
	pad := th.Size(fynetheme.SizeNameInnerPadding)
	letter := fyne.MeasureText("M", textSize, t.TextStyle)

	var line []rune
	if rows := strings.Split(t.Text, "\n"); t.CursorRow < len(rows) {
		line = []rune(rows[t.CursorRow])
	}
	col := t.CursorColumn
	if col > len(line) {
		col = len(line)
	}

	x := pad + fyne.MeasureText(string(line[:col]), textSize, t.TextStyle).Width
	y := pad + letter.Height*float32(t.CursorRow)

	t.scroller.Refresh()
	offset := t.scroller.Offset
	view := t.scroller.Size()

	if x-letter.Width*2 < offset.X {
		offset.X = x - letter.Width*2
	} else if x+letter.Width*2 > offset.X+view.Width {
		offset.X = x + letter.Width*2 - view.Width
	}
	if y < offset.Y {
		offset.Y = y
	} else if y+letter.Height+pad > offset.Y+view.Height {
		offset.Y = y + letter.Height + pad - view.Height
	}

	t.scroller.ScrollToOffset(fyne.NewPos(fyne.Max(offset.X, 0), fyne.Max(offset.Y, 0)))
}

func (t *textArea) TappedSecondary(pe *fyne.PointEvent) {
	if t.popup == nil {
		t.Entry.TappedSecondary(pe)
		return
	}
	c := fyne.CurrentApp().Driver().CanvasForObject(t)
	if c == nil {
		return
	}
	widget.ShowPopUpMenuAtPosition(t.popup, c, pe.AbsolutePosition)
}

// textBuffer exposes the entry as a session.Buffer.
type textBuffer struct {
	area *textArea
}

func (b textBuffer) Text() string {
	return b.area.Text
}

func (b textBuffer) SetText(text string) {
	b.area.SetText(text)
}
