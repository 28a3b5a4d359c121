// Package canvas provides the polygon editing surface with zoom and pointer
// handling.
package canvas

import (
	"image"

	"clickshapes/internal/app"
	"clickshapes/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// EditorCanvas draws the editor state and feeds pointer input back into it.
type EditorCanvas struct {
	widget.BaseWidget

	state *app.State
	style Style

	// Hit radius in screen units
	vertexRadius float64

	raster  *fynecanvas.Raster
	zoom    float64
	scroll  *zoomScroll
	content *drawSurface
	imgSize fyne.Size

	primaryHeld bool

	onZoomChange func(zoom float64)
	onPointer    func(p geometry.Point2D)
}

// zoomScroll is a widget that wraps a scroll container but intercepts wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *EditorCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *EditorCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// drawSurface wraps the raster to receive pointer events. Event positions are
// relative to the surface, so they only need dividing by zoom.
type drawSurface struct {
	widget.BaseWidget
	canvas *EditorCanvas
	raster *fynecanvas.Raster
}

var (
	_ fyne.Tappable     = (*drawSurface)(nil)
	_ fyne.Draggable    = (*drawSurface)(nil)
	_ desktop.Hoverable = (*drawSurface)(nil)
	_ desktop.Mouseable = (*drawSurface)(nil)
)

func newDrawSurface(ec *EditorCanvas, raster *fynecanvas.Raster) *drawSurface {
	ds := &drawSurface{canvas: ec, raster: raster}
	ds.ExtendBaseWidget(ds)
	return ds
}

func (ds *drawSurface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ds.raster)
}

func (ds *drawSurface) MinSize() fyne.Size {
	return ds.raster.MinSize()
}

func (ds *drawSurface) inside(pos fyne.Position) bool {
	size := ds.Size()
	return pos.X >= 0 && pos.Y >= 0 && pos.X <= size.Width && pos.Y <= size.Height
}

// Tapped selects or closes on a vertex hit, otherwise clicks the canvas.
func (ds *drawSurface) Tapped(ev *fyne.PointEvent) {
	if !ds.inside(ev.Position) {
		return
	}
	ds.canvas.click(ds.canvas.CanvasToImage(ev.Position))
}

func (ds *drawSurface) Dragged(ev *fyne.DragEvent) {
	ds.canvas.move(ds.canvas.CanvasToImage(ev.Position), true)
}

func (ds *drawSurface) DragEnd() {
	ds.canvas.primaryHeld = false
}

func (ds *drawSurface) MouseIn(ev *desktop.MouseEvent) {}

func (ds *drawSurface) MouseMoved(ev *desktop.MouseEvent) {
	ds.canvas.move(ds.canvas.CanvasToImage(ev.Position), ds.canvas.primaryHeld)
}

func (ds *drawSurface) MouseOut() {
	ds.canvas.primaryHeld = false
}

func (ds *drawSurface) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonPrimary {
		ds.canvas.primaryHeld = true
	}
}

func (ds *drawSurface) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonPrimary {
		ds.canvas.primaryHeld = false
	}
}

// NewEditorCanvas creates a canvas bound to state. vertexRadius is the
// on-screen hit and handle radius.
func NewEditorCanvas(state *app.State, vertexRadius float64) *EditorCanvas {
	ec := &EditorCanvas{
		state:        state,
		style:        DefaultStyle(vertexRadius),
		vertexRadius: vertexRadius,
		zoom:         1.0,
	}

	ec.raster = fynecanvas.NewRaster(ec.draw)
	ec.raster.ScaleMode = fynecanvas.ImageScalePixels
	ec.content = newDrawSurface(ec, ec.raster)
	ec.scroll = newZoomScroll(ec.content, ec)
	ec.updateContentSize()

	refresh := func(interface{}) { ec.Refresh() }
	for _, ev := range []app.EventType{
		app.EventPolygonsChanged,
		app.EventPolygonOfInterestChanged,
		app.EventVerticesChanged,
		app.EventSelectionChanged,
		app.EventBackgroundChanged,
	} {
		state.On(ev, refresh)
	}
	state.On(app.EventCanvasResized, func(interface{}) { ec.updateContentSize() })

	ec.ExtendBaseWidget(ec)
	return ec
}

// SetStyle replaces the drawing style.
func (ec *EditorCanvas) SetStyle(style Style) {
	ec.style = style
	ec.Refresh()
}

// Container returns the canvas container for embedding in layouts.
func (ec *EditorCanvas) Container() fyne.CanvasObject {
	return ec.scroll
}

func (ec *EditorCanvas) click(p geometry.Point2D) {
	if v := ec.state.HitVertex(p, ec.vertexRadius/ec.zoom); v != nil {
		ec.state.VertexClick(v)
		return
	}
	ec.state.PointerClick(p)
}

func (ec *EditorCanvas) move(p geometry.Point2D, primaryHeld bool) {
	ec.state.PointerMove(p, primaryHeld)
	if ec.onPointer != nil {
		ec.onPointer(p)
	}
}

// SetZoom sets the zoom level.
func (ec *EditorCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	ec.zoom = zoom
	ec.updateContentSize()

	if ec.onZoomChange != nil {
		ec.onZoomChange(zoom)
	}
}

// GetZoom returns the current zoom level.
func (ec *EditorCanvas) GetZoom() float64 {
	return ec.zoom
}

// ZoomIn increases the zoom level.
func (ec *EditorCanvas) ZoomIn() {
	ec.SetZoom(ec.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (ec *EditorCanvas) ZoomOut() {
	ec.SetZoom(ec.zoom / zoomStep)
}

// FitToWindow adjusts zoom to fit the canvas in the visible area.
func (ec *EditorCanvas) FitToWindow() {
	snap := ec.state.Snapshot()
	view := ec.scroll.Size()
	if snap.CanvasWidth == 0 || snap.CanvasHeight == 0 || view.Width <= 0 || view.Height <= 0 {
		return
	}

	zoom := float64(view.Width) / float64(snap.CanvasWidth)
	if zy := float64(view.Height) / float64(snap.CanvasHeight); zy < zoom {
		zoom = zy
	}
	ec.SetZoom(zoom * 0.95)
}

// OnZoomChange sets a callback for zoom changes.
func (ec *EditorCanvas) OnZoomChange(callback func(zoom float64)) {
	ec.onZoomChange = callback
}

// OnPointer sets a callback receiving the pointer position in image coordinates.
func (ec *EditorCanvas) OnPointer(callback func(p geometry.Point2D)) {
	ec.onPointer = callback
}

// CanvasToImage converts a surface position to image coordinates.
func (ec *EditorCanvas) CanvasToImage(pos fyne.Position) geometry.Point2D {
	return geometry.NewPoint2D(float64(pos.X)/ec.zoom, float64(pos.Y)/ec.zoom)
}

// Refresh redraws the canvas.
func (ec *EditorCanvas) Refresh() {
	ec.raster.Refresh()
}

// updateContentSize sizes the drawing surface to the canvas size times zoom.
func (ec *EditorCanvas) updateContentSize() {
	snap := ec.state.Snapshot()
	ec.imgSize = fyne.NewSize(
		float32(float64(snap.CanvasWidth)*ec.zoom),
		float32(float64(snap.CanvasHeight)*ec.zoom),
	)

	ec.raster.SetMinSize(ec.imgSize)
	ec.raster.Resize(ec.imgSize)
	if ec.content != nil {
		ec.content.Resize(ec.imgSize)
		ec.content.Refresh()
	}
	ec.raster.Refresh()
	if ec.scroll != nil {
		ec.scroll.Refresh()
	}
}

// draw is the raster drawing function. w and h are in device pixels, which
// differ from fyne units on scaled displays.
func (ec *EditorCanvas) draw(w, h int) image.Image {
	scale := ec.zoom
	if ec.imgSize.Width > 0 {
		scale = float64(w) / float64(ec.imgSize.Width) * ec.zoom
	}
	return Render(ec.state.Snapshot(), w, h, scale, ec.style)
}

// CreateRenderer implements fyne.Widget.
func (ec *EditorCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ec.scroll)
}
