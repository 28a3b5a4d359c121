package dialogs

import (
	"clickshapes/internal/app"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// Confirmer returns an app.Confirmer that shows a yes/no dialog on window.
func Confirmer(window fyne.Window) app.Confirmer {
	return func(title, message string, callback func(bool)) {
		dialog.ShowConfirm(title, message, callback, window)
	}
}
