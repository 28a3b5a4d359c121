package canvas

import (
	"image/color"

	"clickshapes/internal/app"
	"clickshapes/pkg/colorutil"
)

// Style controls how polygons and vertex handles are painted.
type Style struct {
	Backdrop       color.RGBA
	Polygon        color.RGBA
	ActivePolygon  color.RGBA
	Vertex         color.RGBA
	SelectedVertex color.RGBA
	FloatingVertex color.RGBA
	HandleBorder   color.RGBA

	LineThickness int

	// HandleRadius is the half-width of a vertex handle in screen pixels.
	HandleRadius int
}

// DefaultStyle returns the editor colours with the given handle radius.
func DefaultStyle(handleRadius float64) Style {
	r := int(handleRadius + 0.5)
	if r < 2 {
		r = 2
	}
	return Style{
		Backdrop:       rgba(app.ColorCanvasBackdrop),
		Polygon:        rgba(app.ColorPolygon),
		ActivePolygon:  rgba(app.ColorActivePolygon),
		Vertex:         rgba(app.ColorVertex),
		SelectedVertex: rgba(app.ColorSelectedVertex),
		FloatingVertex: rgba(app.ColorFloatingVertex),
		HandleBorder:   colorutil.Black,
		LineThickness:  2,
		HandleRadius:   r,
	}
}

func rgba(c color.NRGBA) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// Colors holds optional "#RRGGBB" overrides. Empty fields keep the default.
type Colors struct {
	Backdrop       string
	Polygon        string
	ActivePolygon  string
	SelectedVertex string
}

// WithColors returns a copy of s with the given overrides applied.
func (s Style) WithColors(c Colors) (Style, error) {
	for _, o := range []struct {
		dst *color.RGBA
		val string
	}{
		{&s.Backdrop, c.Backdrop},
		{&s.Polygon, c.Polygon},
		{&s.ActivePolygon, c.ActivePolygon},
		{&s.SelectedVertex, c.SelectedVertex},
	} {
		if err := colorutil.Override(o.dst, o.val); err != nil {
			return s, err
		}
	}
	return s, nil
}
