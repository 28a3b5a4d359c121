// Package panels provides UI panels for the application.
package panels

import (
	"fmt"
	"path/filepath"

	"clickshapes/internal/app"
	"clickshapes/internal/image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	container *container.AppTabs

	polygonsPanel *PolygonsPanel
	imagePanel    *ImagePanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State) *SidePanel {
	sp := &SidePanel{state: state}

	sp.polygonsPanel = NewPolygonsPanel(state)
	sp.imagePanel = NewImagePanel(state)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Polygons", sp.polygonsPanel.Container()),
		container.NewTabItem("Image", sp.imagePanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// Image returns the background image panel.
func (sp *SidePanel) Image() *ImagePanel {
	return sp.imagePanel
}

// ImagePanel shows the background image and canvas size.
type ImagePanel struct {
	state     *app.State
	container fyne.CanvasObject

	fileLabel   *widget.Label
	sizeLabel   *widget.Label
	loadButton  *widget.Button
	clearButton *widget.Button

	onLoad  func()
	onClear func()
}

// NewImagePanel creates a new image panel.
func NewImagePanel(state *app.State) *ImagePanel {
	ip := &ImagePanel{
		state:     state,
		fileLabel: widget.NewLabel("No image loaded"),
		sizeLabel: widget.NewLabel(""),
	}
	ip.fileLabel.Wrapping = fyne.TextWrapBreak

	ip.loadButton = widget.NewButton("Load Image...", func() {
		if ip.onLoad != nil {
			ip.onLoad()
		}
	})
	ip.clearButton = widget.NewButton("Clear Image", func() {
		if ip.onClear != nil {
			ip.onClear()
		}
	})

	ip.container = container.NewVBox(
		widget.NewLabelWithStyle("Background", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		ip.fileLabel,
		ip.sizeLabel,
		container.NewHBox(ip.loadButton, ip.clearButton),
	)

	state.On(app.EventBackgroundChanged, func(interface{}) { ip.update() })
	state.On(app.EventCanvasResized, func(interface{}) { ip.update() })
	ip.update()

	return ip
}

// OnLoad sets the action behind the Load Image button.
func (ip *ImagePanel) OnLoad(callback func()) {
	ip.onLoad = callback
}

// OnClear sets the action behind the Clear Image button.
func (ip *ImagePanel) OnClear(callback func()) {
	ip.onClear = callback
}

// Container returns the panel container.
func (ip *ImagePanel) Container() fyne.CanvasObject {
	return ip.container
}

func (ip *ImagePanel) update() {
	snap := ip.state.Snapshot()
	ip.fileLabel.SetText(backgroundName(snap.Background))
	ip.sizeLabel.SetText(fmt.Sprintf("Canvas: %d × %d", snap.CanvasWidth, snap.CanvasHeight))
	if snap.Background == nil {
		ip.clearButton.Disable()
	} else {
		ip.clearButton.Enable()
	}
}

func backgroundName(bg *image.Background) string {
	if bg == nil {
		return "No image loaded"
	}
	return fmt.Sprintf("%s (%s)", filepath.Base(bg.Path), bg.Format)
}
