package canvas

import (
	goimage "image"
	"image/color"
	"testing"

	"clickshapes/internal/app"
	"clickshapes/internal/image"
	"clickshapes/pkg/geometry"

	"github.com/stretchr/testify/assert"
)

func square() []geometry.Point2D {
	return []geometry.Point2D{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 50, Y: 50}, {X: 10, Y: 50}}
}

func TestRender_Backdrop(t *testing.T) {
	style := DefaultStyle(4)
	out := Render(app.Snapshot{CanvasWidth: 20, CanvasHeight: 20}, 20, 20, 1, style)
	assert.Equal(t, style.Backdrop, out.RGBAAt(5, 5))
}

func TestRender_ClosedPolygonEdges(t *testing.T) {
	style := DefaultStyle(4)
	snap := app.Snapshot{
		Polygons: []app.PolygonView{{Name: "Polygon0", Points: square(), Closed: true, Selected: -1, Floating: -1}},
	}

	out := Render(snap, 100, 100, 1, style)
	assert.Equal(t, style.Polygon, out.RGBAAt(30, 10), "top edge")
	assert.Equal(t, style.Polygon, out.RGBAAt(10, 30), "closing edge")
	assert.Equal(t, style.Backdrop, out.RGBAAt(30, 30), "interior is not filled")
}

func TestRender_ZoomScalesGeometry(t *testing.T) {
	style := DefaultStyle(4)
	snap := app.Snapshot{
		Polygons: []app.PolygonView{{Points: square(), Closed: true, Selected: -1, Floating: -1}},
	}

	out := Render(snap, 200, 200, 2, style)
	assert.Equal(t, style.Polygon, out.RGBAAt(60, 20))
	assert.Equal(t, style.Backdrop, out.RGBAAt(30, 10))
}

func TestRender_ActivePolygonHandles(t *testing.T) {
	style := DefaultStyle(4)
	active := app.PolygonView{
		Points:   []geometry.Point2D{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 80, Y: 80}},
		Active:   true,
		Selected: 0,
		Floating: 2,
	}
	snap := app.Snapshot{Active: &active}

	out := Render(snap, 100, 100, 1, style)
	assert.Equal(t, style.SelectedVertex, out.RGBAAt(10, 10))
	assert.Equal(t, style.Vertex, out.RGBAAt(50, 10))
	assert.Equal(t, style.FloatingVertex, out.RGBAAt(80, 80))
	assert.Equal(t, style.HandleBorder, out.RGBAAt(50-4, 10))
	assert.Equal(t, style.ActivePolygon, out.RGBAAt(30, 10))
	assert.Equal(t, style.Backdrop, out.RGBAAt(40, 40), "open polygon has no closing edge")
}

func TestRender_Background(t *testing.T) {
	red := color.RGBA{R: 0xFF, A: 0xFF}
	img := goimage.NewRGBA(goimage.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.SetRGBA(x, y, red)
		}
	}
	style := DefaultStyle(4)
	snap := app.Snapshot{Background: &image.Background{Image: img}}

	out := Render(snap, 40, 40, 2, style)
	assert.Equal(t, red, out.RGBAAt(19, 19))
	assert.Equal(t, style.Backdrop, out.RGBAAt(25, 25))
}

func TestDefaultStyle_MinimumRadius(t *testing.T) {
	assert.Equal(t, 2, DefaultStyle(0.5).HandleRadius)
	assert.Equal(t, 5, DefaultStyle(5).HandleRadius)
}

func TestStyle_WithColors(t *testing.T) {
	base := DefaultStyle(4)

	style, err := base.WithColors(Colors{Polygon: "#000000", ActivePolygon: ""})
	assert.NoError(t, err)
	assert.Equal(t, color.RGBA{A: 0xFF}, style.Polygon)
	assert.Equal(t, base.ActivePolygon, style.ActivePolygon)
	assert.Equal(t, base.Polygon, DefaultStyle(4).Polygon, "base is unchanged")

	_, err = base.WithColors(Colors{Backdrop: "grey"})
	assert.Error(t, err)
}
