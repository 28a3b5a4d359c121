package geometry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() []Point2D {
	return []Point2D{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
}

func TestArea(t *testing.T) {
	tests := []struct {
		name   string
		points []Point2D
		want   float64
	}{
		{"square", square(), 100},
		{"triangle", []Point2D{{0, 0}, {10, 0}, {10, 10}}, 50},
		{"clockwise square", []Point2D{{0, 0}, {0, 10}, {10, 10}, {10, 0}}, 100},
		{"two points", []Point2D{{0, 0}, {10, 0}}, 0},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Area(tt.points), 1e-9)
		})
	}
}

func TestPerimeter(t *testing.T) {
	assert.InDelta(t, 40, Perimeter(square()), 1e-9)
	assert.Equal(t, 0.0, Perimeter([]Point2D{{1, 1}}))
}

func TestPointInPolygon(t *testing.T) {
	assert.True(t, PointInPolygon(Point2D{5, 5}, square()))
	assert.False(t, PointInPolygon(Point2D{15, 5}, square()))
	assert.False(t, PointInPolygon(Point2D{5, 5}, square()[:2]))
}

func TestNearest(t *testing.T) {
	pts := []Point2D{{0, 0}, {10, 0}, {10, 10}}

	assert.Equal(t, 1, Nearest(pts, Point2D{11, 1}, 5))
	assert.Equal(t, -1, Nearest(pts, Point2D{5, 5}, 2))
	assert.Equal(t, 0, Nearest(pts, Point2D{0, 0}, 0))
	assert.Equal(t, -1, Nearest(nil, Point2D{0, 0}, 10))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(square()))

	err := Validate([]Point2D{{0, 0}, {10, 0}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooFewVertices)

	bowtie := []Point2D{{0, 0}, {10, 10}, {10, 0}, {0, 10}}
	err = Validate(bowtie)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotSimple)
}

func TestWKT(t *testing.T) {
	wkt, err := WKT([]Point2D{{0, 0}, {10, 0}, {10, 10}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(wkt, "POLYGON"))
	assert.Contains(t, wkt, "10 10")

	_, err = WKT(nil)
	assert.ErrorIs(t, err, ErrTooFewVertices)

	// Invalid rings still render so they can be exported and inspected.
	bowtie, err := WKT([]Point2D{{0, 0}, {10, 10}, {10, 0}, {0, 10}})
	require.NoError(t, err)
	assert.Equal(t, "POLYGON((0 0,10 10,10 0,0 10,0 0))", bowtie)
}

func TestCentroidAndBoundingBox(t *testing.T) {
	assert.Equal(t, Point2D{5, 5}, Centroid(square()))
	assert.Equal(t, Point2D{}, Centroid(nil))
	assert.Equal(t, NewRect(0, 0, 10, 10), BoundingBox(square()))
	assert.True(t, BoundingBox(square()).Contains(Point2D{10, 10}))
}

func TestPointString(t *testing.T) {
	assert.Equal(t, "1.5,-2", Point2D{1.5, -2}.String())
	assert.InDelta(t, 5.0, Point2D{0, 0}.Distance(Point2D{3, 4}), 1e-12)
}
