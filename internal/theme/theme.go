// Package theme holds the editor's light and dark palettes and exposes them
// as a fyne theme that can be applied to a single window.
package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	fynetheme "fyne.io/fyne/v2/theme"
)

const (
	DefaultFontSize float32 = 12
	MinFontSize     float32 = 6
	MaxFontSize     float32 = 72
	FontSizeStep    float32 = 2
)

// Palette is the set of colors the editor changes when switching themes.
type Palette struct {
	WindowBackground color.Color
	AreaBackground   color.Color
	Foreground       color.Color
	Caret            color.Color
}

var (
	black    = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	white    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	darkGray = color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
)

func LightPalette() Palette {
	return Palette{
		WindowBackground: white,
		AreaBackground:   white,
		Foreground:       black,
		Caret:            black,
	}
}

func DarkPalette() Palette {
	return Palette{
		WindowBackground: black,
		AreaBackground:   darkGray,
		Foreground:       white,
		Caret:            white,
	}
}

// PaletteFor returns the dark or light palette.
func PaletteFor(dark bool) Palette {
	if dark {
		return DarkPalette()
	}
	return LightPalette()
}

// ClampFontSize keeps size within [MinFontSize, MaxFontSize].
func ClampFontSize(size float32) float32 {
	if size < MinFontSize {
		return MinFontSize
	}
	if size > MaxFontSize {
		return MaxFontSize
	}
	return size
}

// EditorTheme overlays a Palette and text size on top of the fyne default theme.
type EditorTheme struct {
	base     fyne.Theme
	dark     bool
	palette  Palette
	fontSize float32
}

var _ fyne.Theme = (*EditorTheme)(nil)

func NewEditorTheme(dark bool, fontSize float32) *EditorTheme {
	return &EditorTheme{
		base:     fynetheme.DefaultTheme(),
		dark:     dark,
		palette:  PaletteFor(dark),
		fontSize: ClampFontSize(fontSize),
	}
}

func (t *EditorTheme) Palette() Palette {
	return t.palette
}

func (t *EditorTheme) IsDark() bool {
	return t.dark
}

func (t *EditorTheme) FontSize() float32 {
	return t.fontSize
}

func (t *EditorTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case fynetheme.ColorNameBackground:
		return t.palette.WindowBackground
	case fynetheme.ColorNameInputBackground:
		return t.palette.AreaBackground
	case fynetheme.ColorNameForeground:
		return t.palette.Foreground
	case fynetheme.ColorNamePrimary:
		return t.palette.Caret
	}
	return t.base.Color(name, t.variant())
}

func (t *EditorTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *EditorTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *EditorTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == fynetheme.SizeNameText {
		return t.fontSize
	}
	return t.base.Size(name)
}

func (t *EditorTheme) variant() fyne.ThemeVariant {
	if t.dark {
		return fynetheme.VariantDark
	}
	return fynetheme.VariantLight
}
