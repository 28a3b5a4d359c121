package panels

import (
	"fmt"

	"clickshapes/internal/app"
	"clickshapes/pkg/geometry"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"
)

// PolygonsPanel lists the closed polygons and shows the vertices of the
// polygon of interest.
type PolygonsPanel struct {
	state     *app.State
	container fyne.CanvasObject

	list     *widget.List
	names    []string
	vertices binding.String
	summary  binding.String

	newButton    *widget.Button
	deleteButton *widget.Button

	// Set while the list selection is being synced from state
	syncing bool
}

// NewPolygonsPanel creates a new polygons panel.
func NewPolygonsPanel(state *app.State) *PolygonsPanel {
	pp := &PolygonsPanel{
		state:    state,
		vertices: binding.NewString(),
		summary:  binding.NewString(),
	}

	pp.list = widget.NewList(
		func() int { return len(pp.names) },
		func() fyne.CanvasObject { return widget.NewLabel("Polygon000") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(pp.names) {
				obj.(*widget.Label).SetText(pp.names[id])
			}
		},
	)
	pp.list.OnSelected = func(id widget.ListItemID) {
		if pp.syncing {
			return
		}
		state.SelectPolygon(state.PolygonAt(id))
		// An open polygon keeps focus, so resync the highlight.
		pp.syncSelection()
	}

	pp.newButton = widget.NewButton("New Polygon", state.NewPolygon)
	pp.deleteButton = widget.NewButton("Delete Polygon", state.DeletePolygon)

	verticesLabel := widget.NewLabelWithData(pp.vertices)
	verticesLabel.Wrapping = fyne.TextWrapWord

	details := container.NewVBox(
		widget.NewLabelWithStyle("Vertices", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		verticesLabel,
		widget.NewLabelWithData(pp.summary),
	)

	pp.container = container.NewBorder(
		container.NewHBox(pp.newButton, pp.deleteButton),
		details,
		nil,
		nil,
		pp.list,
	)

	refresh := func(interface{}) { pp.Refresh() }
	state.On(app.EventPolygonsChanged, refresh)
	state.On(app.EventPolygonOfInterestChanged, refresh)
	state.On(app.EventVerticesChanged, func(interface{}) { pp.updateDetails() })
	pp.Refresh()

	return pp
}

// Container returns the panel container.
func (pp *PolygonsPanel) Container() fyne.CanvasObject {
	return pp.container
}

// Refresh reloads the list and details from state.
func (pp *PolygonsPanel) Refresh() {
	pp.names = pp.state.PolygonNames()
	pp.list.Refresh()
	pp.syncSelection()
	pp.updateDetails()

	if pp.state.CanDeletePolygon() {
		pp.deleteButton.Enable()
	} else {
		pp.deleteButton.Disable()
	}
}

func (pp *PolygonsPanel) syncSelection() {
	pp.syncing = true
	defer func() { pp.syncing = false }()

	snap := pp.state.Snapshot()
	for i, p := range snap.Polygons {
		if p.Active {
			pp.list.Select(i)
			return
		}
	}
	pp.list.UnselectAll()
}

func (pp *PolygonsPanel) updateDetails() {
	snap := pp.state.Snapshot()
	_ = pp.vertices.Set(snap.Vertices)
	_ = pp.summary.Set(summarize(snap.Active))
}

func summarize(p *app.PolygonView) string {
	if p == nil {
		return "No polygon selected"
	}
	if !p.Closed {
		return fmt.Sprintf("%s: drawing, %d placed", p.Name, len(p.Points)-1)
	}
	return fmt.Sprintf("%s: %d vertices, area %.1f, perimeter %.1f, centroid %s",
		p.Name, len(p.Points), geometry.Area(p.Points), geometry.Perimeter(p.Points), geometry.Centroid(p.Points))
}
