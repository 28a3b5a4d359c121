package panels

import (
	"testing"

	"clickshapes/internal/app"
	"clickshapes/pkg/geometry"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	assert.Equal(t, "No polygon selected", summarize(nil))

	open := &app.PolygonView{Name: "Polygon0", Points: []geometry.Point2D{{X: 1, Y: 1}, {X: 2, Y: 2}}}
	assert.Equal(t, "Polygon0: drawing, 1 placed", summarize(open))

	closed := &app.PolygonView{
		Name:   "Polygon1",
		Closed: true,
		Points: []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
	}
	assert.Equal(t, "Polygon1: 4 vertices, area 100.0, perimeter 40.0, centroid 5,5", summarize(closed))
}
