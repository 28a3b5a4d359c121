// Package dialogs provides application dialogs.
package dialogs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// maxCanvasSide bounds each canvas dimension.
const maxCanvasSide = 20000

var errBadSize = errors.New("canvas size must be a positive whole number")

// CanvasSizeDialog edits the drawing area size.
type CanvasSizeDialog struct {
	window fyne.Window

	widthEntry  *widget.Entry
	heightEntry *widget.Entry

	onSave func(width, height int)
}

// NewCanvasSizeDialog creates a dialog prefilled with the current size.
func NewCanvasSizeDialog(width, height int, window fyne.Window, onSave func(width, height int)) *CanvasSizeDialog {
	d := &CanvasSizeDialog{
		window:      window,
		widthEntry:  widget.NewEntry(),
		heightEntry: widget.NewEntry(),
		onSave:      onSave,
	}
	d.widthEntry.SetText(strconv.Itoa(width))
	d.heightEntry.SetText(strconv.Itoa(height))
	d.widthEntry.Validator = validateSide
	d.heightEntry.Validator = validateSide
	return d
}

// Show displays the dialog.
func (d *CanvasSizeDialog) Show() {
	form := dialog.NewForm("Canvas Size", "Apply", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Width", d.widthEntry),
			widget.NewFormItem("Height", d.heightEntry),
		},
		func(apply bool) {
			if !apply {
				return
			}
			w, h, err := ParseSize(d.widthEntry.Text, d.heightEntry.Text)
			if err != nil {
				dialog.ShowError(err, d.window)
				return
			}
			if d.onSave != nil {
				d.onSave(w, h)
			}
		},
		d.window)
	form.Show()
}

// ParseSize parses the width and height fields.
func ParseSize(width, height string) (int, int, error) {
	w, err := parseSide(width)
	if err != nil {
		return 0, 0, fmt.Errorf("width: %w", err)
	}
	h, err := parseSide(height)
	if err != nil {
		return 0, 0, fmt.Errorf("height: %w", err)
	}
	return w, h, nil
}

func parseSide(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 || n > maxCanvasSide {
		return 0, errBadSize
	}
	return n, nil
}

func validateSide(s string) error {
	_, err := parseSide(s)
	return err
}
