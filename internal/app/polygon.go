package app

import (
	"strings"

	"clickshapes/pkg/geometry"
)

// Vertex is a single point on a polygon boundary.
type Vertex struct {
	Point    geometry.Point2D
	Selected bool

	// Floating is true while the vertex still tracks the pointer.
	Floating bool
}

// NewVertex creates a floating vertex at p.
func NewVertex(p geometry.Point2D) *Vertex {
	return &Vertex{Point: p, Floating: true}
}

func (v *Vertex) String() string {
	return v.Point.String()
}

// Polygon is an ordered ring of vertices, open while it is being drawn.
type Polygon struct {
	Name     string
	Vertices []*Vertex
	Closed   bool

	// SelectedVertex is nil or one of Vertices.
	SelectedVertex *Vertex

	// Selected is true while this is the polygon of interest.
	Selected bool
}

// VerticesString lists the vertices as "x,y x,y ...".
func (p *Polygon) VerticesString() string {
	parts := make([]string, len(p.Vertices))
	for i, v := range p.Vertices {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

// Points returns the vertex coordinates in drawing order.
func (p *Polygon) Points() []geometry.Point2D {
	pts := make([]geometry.Point2D, len(p.Vertices))
	for i, v := range p.Vertices {
		pts[i] = v.Point
	}
	return pts
}

// IndexOf returns the position of v in the polygon, or -1.
func (p *Polygon) IndexOf(v *Vertex) int {
	for i, w := range p.Vertices {
		if w == v {
			return i
		}
	}
	return -1
}

// Placed returns the vertices that no longer track the pointer.
func (p *Polygon) Placed() []*Vertex {
	placed := make([]*Vertex, 0, len(p.Vertices))
	for _, v := range p.Vertices {
		if !v.Floating {
			placed = append(placed, v)
		}
	}
	return placed
}

func (p *Polygon) String() string {
	return p.Name
}

func (p *Polygon) last() *Vertex {
	if len(p.Vertices) == 0 {
		return nil
	}
	return p.Vertices[len(p.Vertices)-1]
}

func (p *Polygon) removeAt(i int) {
	p.Vertices = append(p.Vertices[:i], p.Vertices[i+1:]...)
}

func (p *Polygon) deselect() {
	if p.SelectedVertex != nil {
		p.SelectedVertex.Selected = false
		p.SelectedVertex = nil
	}
}
