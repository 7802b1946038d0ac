package editor

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"seal-editor/internal/session"
)

const untitledFileName = "untitled.txt"

// fileDialogs implements session.PathPicker and session.Prompter on top of
// fyne dialogs, and session.Reporter with an error dialog.
type fileDialogs struct {
	win *Window
}

func (d fileDialogs) PickSavePath(callback func(path string, ok bool)) {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		d.saveChosen(writer, err, callback)
	}, d.win.window)
	save.SetFileName(untitledFileName)
	save.Show()
}

// saveChosen keeps the writer the dialog opened so the session's write
// lands in the same handle.
func (d fileDialogs) saveChosen(writer fyne.URIWriteCloser, err error, callback func(path string, ok bool)) {
	if err != nil {
		d.ReportError("Save File", err)
		callback("", false)
		return
	}
	if writer == nil {
		callback("", false)
		return
	}
	path := writer.URI().Path()
	d.win.targets.hold(path, writer)
	callback(path, true)
}

// pickOpenPath shows the open dialog. No extension filter is set, so every
// file can be chosen.
func (d fileDialogs) pickOpenPath(callback func(path string)) {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			d.ReportError("Open File", err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		callback(path)
	}, d.win.window)
	open.Show()
}

func (d fileDialogs) ConfirmClose(callback func(session.Choice)) {
	message := widget.NewLabel("You have unsaved changes. Do you want to save them before exiting?")

	var confirm *dialog.CustomDialog
	answer := func(choice session.Choice) func() {
		return func() {
			confirm.Hide()
			callback(choice)
		}
	}

	save := widget.NewButton("Save", answer(session.ChoiceSave))
	save.Importance = widget.HighImportance

	confirm = dialog.NewCustomWithoutButtons("Confirm Exit", message, d.win.window)
	confirm.SetButtons([]fyne.CanvasObject{
		widget.NewButton("Cancel", answer(session.ChoiceCancel)),
		widget.NewButton("Don't Save", answer(session.ChoiceDiscard)),
		save,
	})
	confirm.Show()
}

func (d fileDialogs) ReportError(title string, err error) {
	d.win.log.Debug(component, "showing error dialog", map[string]interface{}{
		"title": title,
	})
	dialog.ShowError(err, d.win.window)
}
