package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/peterstace/simplefeatures/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrTooFewVertices is returned when a ring has fewer than three vertices.
	ErrTooFewVertices = errors.New("polygon needs at least 3 vertices")

	// ErrNotSimple is returned when a ring crosses or touches itself.
	ErrNotSimple = errors.New("polygon is not simple")
)

// Area returns the unsigned area of the polygon described by points,
// using the shoelace formula. The ring is implicitly closed.
func Area(points []Point2D) float64 {
	if len(points) < 3 {
		return 0
	}
	var twice float64
	n := len(points)
	for i := 0; i < n; i++ {
		twice += r2.Cross(points[i].Vec(), points[(i+1)%n].Vec())
	}
	return math.Abs(twice) / 2
}

// Perimeter returns the length of the closed ring through points.
func Perimeter(points []Point2D) float64 {
	if len(points) < 2 {
		return 0
	}
	var total float64
	n := len(points)
	for i := 0; i < n; i++ {
		total += points[i].Distance(points[(i+1)%n])
	}
	return total
}

// PointInPolygon tests if a point is inside a polygon using ray casting.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		// Ray from p going right crosses edge pi-pj
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}

	return inside
}

// Nearest returns the index of the point closest to p that lies within
// radius, or -1 if none does. Ties resolve to the lowest index.
func Nearest(points []Point2D, p Point2D, radius float64) int {
	best := -1
	bestDist := radius
	for i, q := range points {
		d := q.Distance(p)
		if d <= bestDist && (best < 0 || d < bestDist) {
			best = i
			bestDist = d
		}
	}
	return best
}

// ToPolygon builds a simplefeatures polygon from an implicitly closed ring.
// The returned polygon is not validated.
func ToPolygon(points []Point2D) (geom.Polygon, error) {
	if len(points) < 3 {
		return geom.Polygon{}, fmt.Errorf("%w: got %d", ErrTooFewVertices, len(points))
	}

	flat := make([]float64, 0, (len(points)+1)*2)
	for _, p := range points {
		flat = append(flat, p.X, p.Y)
	}
	flat = append(flat, points[0].X, points[0].Y)

	ring, err := geom.NewLineString(geom.NewSequence(flat, geom.DimXY), geom.DisableAllValidations)
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("failed to build ring: %w", err)
	}
	poly, err := geom.NewPolygon([]geom.LineString{ring}, geom.DisableAllValidations)
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("failed to build polygon: %w", err)
	}
	return poly, nil
}

// Validate reports whether points describe a valid simple polygon.
func Validate(points []Point2D) error {
	poly, err := ToPolygon(points)
	if err != nil {
		return err
	}
	if _, err := geom.NewPolygon([]geom.LineString{poly.ExteriorRing()}); err != nil {
		return fmt.Errorf("%w: %v", ErrNotSimple, err)
	}
	return nil
}

// WKT renders points as a well-known-text POLYGON.
func WKT(points []Point2D) (string, error) {
	poly, err := ToPolygon(points)
	if err != nil {
		return "", err
	}
	return poly.AsText(), nil
}
