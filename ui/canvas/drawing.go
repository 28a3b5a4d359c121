package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"clickshapes/internal/app"
	"clickshapes/pkg/geometry"

	xdraw "golang.org/x/image/draw"
)

// Render paints snap into a w×h image. scale maps image coordinates to
// output pixels.
func Render(snap app.Snapshot, w, h int, scale float64, style Style) *image.RGBA {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(output, output.Bounds(), image.NewUniform(style.Backdrop), image.Point{}, draw.Src)

	if bg := snap.Background; bg != nil && bg.Image != nil {
		drawBackground(output, bg.Image, scale)
	}

	for _, poly := range snap.Polygons {
		if poly.Active {
			continue
		}
		drawPath(output, poly.Points, true, scale, style.Polygon, style.LineThickness)
	}

	if active := snap.Active; active != nil {
		drawPath(output, active.Points, active.Closed, scale, style.ActivePolygon, style.LineThickness)
		for i, p := range active.Points {
			fill := style.Vertex
			switch i {
			case active.Selected:
				fill = style.SelectedVertex
			case active.Floating:
				fill = style.FloatingVertex
			}
			drawHandle(output, scalePoint(p, scale), style.HandleRadius, fill, style.HandleBorder)
		}
	}

	return output
}

// drawBackground scales src onto the output, nearest-neighbour when zoomed
// in so pixels stay crisp.
func drawBackground(output *image.RGBA, src image.Image, scale float64) {
	b := src.Bounds()
	dst := image.Rect(0, 0, int(float64(b.Dx())*scale+0.5), int(float64(b.Dy())*scale+0.5))
	if dst.Empty() {
		return
	}
	var scaler xdraw.Scaler = xdraw.ApproxBiLinear
	if scale >= 1 {
		scaler = xdraw.NearestNeighbor
	}
	scaler.Scale(output, dst, src, b, xdraw.Over, nil)
}

func scalePoint(p geometry.Point2D, scale float64) image.Point {
	s := p.Scale(scale)
	return image.Pt(int(s.X+0.5), int(s.Y+0.5))
}

// drawPath draws the edges through points, joining the last point back to
// the first when closed.
func drawPath(output *image.RGBA, points []geometry.Point2D, closed bool, scale float64, col color.RGBA, thickness int) {
	if len(points) < 2 {
		return
	}
	n := len(points)
	edges := n - 1
	if closed && n > 2 {
		edges = n
	}
	for i := 0; i < edges; i++ {
		a := scalePoint(points[i], scale)
		b := scalePoint(points[(i+1)%n], scale)
		drawLine(output, a.X, a.Y, b.X, b.Y, col, thickness)
	}
}

// drawHandle draws a square vertex handle with a one pixel border.
func drawHandle(output *image.RGBA, c image.Point, radius int, fill, border color.RGBA) {
	outer := image.Rect(c.X-radius, c.Y-radius, c.X+radius+1, c.Y+radius+1)
	fillRect(output, outer, border)
	fillRect(output, outer.Inset(1), fill)
}

func fillRect(output *image.RGBA, r image.Rectangle, col color.RGBA) {
	r = r.Intersect(output.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(output, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// drawLine draws a line between two points using Bresenham's algorithm.
func drawLine(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	bounds := output.Bounds()

	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	half := thickness / 2

	for {
		for t := -half; t <= half; t++ {
			for s := -half; s <= half; s++ {
				px, py := x1+s, y1+t
				if image.Pt(px, py).In(bounds) {
					output.SetRGBA(px, py, col)
				}
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
