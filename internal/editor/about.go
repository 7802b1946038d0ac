package editor

import (
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	fynetheme "fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"seal-editor/internal/config"
	"seal-editor/internal/textio"
)

const projectURL = "https://github.com/Afonso-Morais/Seal-Editor"

func aboutContent() fyne.CanvasObject {
	icon := widget.NewIcon(fynetheme.DocumentIcon())

	title := widget.NewLabelWithStyle(config.AppName+" v"+config.AppVersion,
		fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	author := widget.NewLabelWithStyle("Made by Afonso Morais.", fyne.TextAlignCenter, fyne.TextStyle{})
	types := widget.NewLabelWithStyle("Suggested file types: "+strings.Join(textio.TextExtensions, " "),
		fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	thanks := widget.NewLabelWithStyle("Thank you for using the Seal Editor!", fyne.TextAlignCenter, fyne.TextStyle{})

	items := []fyne.CanvasObject{
		container.NewGridWrap(fyne.NewSize(60, 60), icon),
		title,
		author,
	}
	if u, err := url.Parse(projectURL); err == nil {
		items = append(items, container.NewCenter(widget.NewHyperlink("Report bugs or read the source", u)))
	}
	items = append(items, types, thanks)

	return container.NewVBox(
		container.NewCenter(items[0]),
		container.NewVBox(items[1:]...),
		layout.NewSpacer(),
	)
}

func (w *Window) showAbout() {
	about := w.app.NewWindow("About")
	about.SetContent(aboutContent())
	about.Resize(fyne.NewSize(400, 250))
	about.SetFixedSize(true)
	about.CenterOnScreen()
	about.Show()
}
