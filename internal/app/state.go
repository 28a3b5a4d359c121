// Package app holds the polygon editor state and its event listeners.
package app

import (
	"fmt"
	"sync"

	"clickshapes/internal/image"
	"clickshapes/pkg/geometry"

	"github.com/rs/zerolog"
)

// Default canvas size used until a background image is loaded.
const (
	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 600
)

// State holds the editor state: the closed polygons, the polygon being drawn
// or edited, and the background image.
type State struct {
	mu sync.RWMutex

	// Closed polygons in creation order
	Polygons []*Polygon

	// The polygon being drawn or edited, nil when none
	PolygonOfInterest *Polygon

	// Mirrors PolygonOfInterest.SelectedVertex
	SelectedVertex *Vertex

	Background   *image.Background
	CanvasWidth  int
	CanvasHeight int

	nextID    int
	confirm   Confirmer
	log       zerolog.Logger
	listeners map[EventType][]EventListener
}

// Confirmer asks the user a yes/no question and reports the answer through
// callback. The callback may run after Confirmer returns.
type Confirmer func(title, message string, callback func(bool))

// EventType identifies different editor events.
type EventType int

const (
	EventPolygonsChanged EventType = iota
	EventPolygonOfInterestChanged
	EventVerticesChanged
	EventSelectionChanged
	EventPolygonClosed
	EventBackgroundChanged
	EventCanvasResized
	EventDiagnostic
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Diagnostic reports a problem with a closed polygon. It never blocks editing.
type Diagnostic struct {
	Polygon string
	Err     error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %v", d.Polygon, d.Err)
}

type event struct {
	kind EventType
	data interface{}
}

// NewState creates an empty editor with the default canvas size.
func NewState() *State {
	return &State{
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
		log:          zerolog.Nop(),
		listeners:    make(map[EventType][]EventListener),
	}
}

// SetLogger sets the logger used for operation tracing.
func (s *State) SetLogger(l zerolog.Logger) {
	s.mu.Lock()
	s.log = l
	s.mu.Unlock()
}

// SetConfirmer installs the prompt used before destructive operations.
// With no confirmer every prompt is declined.
func (s *State) SetConfirmer(c Confirmer) {
	s.mu.Lock()
	s.confirm = c
	s.mu.Unlock()
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

func (s *State) emitAll(events []event) {
	for _, e := range events {
		s.Emit(e.kind, e.data)
	}
}

func (s *State) ask(title, message string, yes func()) {
	s.mu.RLock()
	confirm := s.confirm
	log := s.log
	s.mu.RUnlock()

	if confirm == nil {
		log.Debug().Str("prompt", title).Msg("No confirmer, declined")
		return
	}
	confirm(title, message, func(ok bool) {
		if ok {
			yes()
		}
	})
}

func (s *State) newPolygonLocked() *Polygon {
	p := &Polygon{
		Name:     fmt.Sprintf("Polygon%d", s.nextID),
		Vertices: []*Vertex{NewVertex(geometry.Point2D{})},
	}
	s.nextID++
	return p
}

// setPolygonOfInterestLocked swaps the polygon of interest, clearing any
// vertex selection on the previous one.
func (s *State) setPolygonOfInterestLocked(p *Polygon) []event {
	old := s.PolygonOfInterest
	if old == p {
		return nil
	}

	var events []event
	if old != nil {
		old.Selected = false
		if old.SelectedVertex != nil {
			old.deselect()
			events = append(events, event{EventSelectionChanged, (*Vertex)(nil)})
		}
	}
	s.SelectedVertex = nil
	s.PolygonOfInterest = p
	if p != nil {
		p.Selected = true
	}
	return append(events, event{EventPolygonOfInterestChanged, p})
}

func (s *State) deselectLocked() []event {
	if s.SelectedVertex == nil {
		return nil
	}
	if s.PolygonOfInterest != nil {
		s.PolygonOfInterest.deselect()
	}
	s.SelectedVertex.Selected = false
	s.SelectedVertex = nil
	return []event{{EventSelectionChanged, (*Vertex)(nil)}}
}

// PointerClick handles a click on empty canvas at p.
func (s *State) PointerClick(p geometry.Point2D) {
	s.mu.Lock()
	s.log.Debug().Stringer("at", p).Msg("Canvas clicked")

	var events []event
	poi := s.PolygonOfInterest
	switch {
	case poi == nil:
	case !poi.Closed:
		// Set down the tracking vertex where the click landed and start a new one.
		last := poi.last()
		last.Point = p
		last.Floating = false
		poi.Vertices = append(poi.Vertices, NewVertex(p))
		events = append(events, event{EventVerticesChanged, poi})
	case s.SelectedVertex != nil:
		events = s.deselectLocked()
	default:
		events = s.setPolygonOfInterestLocked(nil)
	}
	s.mu.Unlock()

	s.emitAll(events)
}

// PointerMove handles pointer motion to p. primaryHeld reports whether the
// primary button is down, which drags the selected vertex.
func (s *State) PointerMove(p geometry.Point2D, primaryHeld bool) {
	s.mu.Lock()
	var events []event
	poi := s.PolygonOfInterest
	switch {
	case poi == nil:
	case !poi.Closed:
		if last := poi.last(); last != nil {
			last.Point = p
			events = append(events, event{EventVerticesChanged, poi})
		}
	case s.SelectedVertex != nil && primaryHeld:
		s.SelectedVertex.Point = p
		events = append(events, event{EventVerticesChanged, poi})
	}
	s.mu.Unlock()

	s.emitAll(events)
}

// DeleteKey removes the selected vertex, the last placed vertex of an open
// polygon, or (after confirmation) the polygon of interest.
func (s *State) DeleteKey() {
	s.mu.Lock()
	s.log.Debug().Msg("Backspace")

	var events []event
	poi := s.PolygonOfInterest
	switch {
	case poi == nil:
	case poi.Closed && s.SelectedVertex != nil:
		if i := poi.IndexOf(s.SelectedVertex); i >= 0 {
			poi.removeAt(i)
		}
		events = append(s.deselectLocked(), event{EventVerticesChanged, poi})
	case poi.Closed:
		s.mu.Unlock()
		s.DeletePolygon()
		return
	case len(poi.Vertices) >= 2:
		poi.removeAt(len(poi.Vertices) - 2)
		events = append(events, event{EventVerticesChanged, poi})
	}
	s.mu.Unlock()

	s.emitAll(events)
}

// EscapeKey clears the vertex selection of a closed polygon.
func (s *State) EscapeKey() {
	s.mu.Lock()
	s.log.Debug().Msg("Escape")

	var events []event
	if poi := s.PolygonOfInterest; poi != nil && poi.Closed {
		events = s.deselectLocked()
	}
	s.mu.Unlock()

	s.emitAll(events)
}

// VertexClick handles a click on vertex v. On an open polygon, clicking the
// placed first vertex closes it. On a closed polygon it selects v.
func (s *State) VertexClick(v *Vertex) {
	if v == nil {
		return
	}

	s.mu.Lock()
	s.log.Debug().Stringer("vertex", v).Msg("Vertex clicked")

	var events []event
	poi := s.PolygonOfInterest
	switch {
	case poi == nil:
	case !poi.Closed:
		if len(poi.Vertices) < 2 || poi.Vertices[0] != v || v.Floating {
			break
		}
		poi.Vertices = poi.Vertices[:len(poi.Vertices)-1]
		poi.Closed = true
		s.Polygons = append(s.Polygons, poi)
		events = append(events,
			event{EventPolygonClosed, poi},
			event{EventPolygonsChanged, len(s.Polygons)})
		if err := geometry.Validate(poi.Points()); err != nil {
			s.log.Warn().Err(err).Str("polygon", poi.Name).Msg("Closed polygon is not valid")
			events = append(events, event{EventDiagnostic, Diagnostic{Polygon: poi.Name, Err: err}})
		}
		events = append(events, s.setPolygonOfInterestLocked(nil)...)
	default:
		if poi.IndexOf(v) < 0 {
			break
		}
		if s.SelectedVertex != nil {
			s.SelectedVertex.Selected = false
		}
		v.Selected = true
		poi.SelectedVertex = v
		s.SelectedVertex = v
		events = append(events, event{EventSelectionChanged, v})
	}
	s.mu.Unlock()

	s.emitAll(events)
}

// NewPolygon starts drawing a new polygon. An unsaved open polygon is only
// discarded after confirmation.
func (s *State) NewPolygon() {
	s.mu.Lock()
	poi := s.PolygonOfInterest
	if poi != nil && !poi.Closed {
		s.mu.Unlock()
		s.ask("Discard Unsaved Polygon", "Do you wish to discard the current polygon?", func() {
			s.replaceOpenPolygon(poi)
		})
		return
	}
	events := s.setPolygonOfInterestLocked(s.newPolygonLocked())
	s.mu.Unlock()

	s.emitAll(events)
}

func (s *State) replaceOpenPolygon(expected *Polygon) {
	s.mu.Lock()
	if s.PolygonOfInterest != expected {
		s.mu.Unlock()
		return
	}
	s.log.Debug().Str("polygon", expected.Name).Msg("Discarded unsaved polygon")
	events := s.setPolygonOfInterestLocked(s.newPolygonLocked())
	s.mu.Unlock()

	s.emitAll(events)
}

// SelectPolygon makes p the polygon of interest unless a polygon is being drawn.
func (s *State) SelectPolygon(p *Polygon) {
	s.mu.Lock()
	var events []event
	poi := s.PolygonOfInterest
	if p != nil && s.indexLocked(p) >= 0 && (poi == nil || poi.Closed) {
		events = append(s.deselectLocked(), s.setPolygonOfInterestLocked(p)...)
	}
	s.mu.Unlock()

	s.emitAll(events)
}

// CanDeletePolygon reports whether there is a polygon of interest.
func (s *State) CanDeletePolygon() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.PolygonOfInterest != nil
}

// DeletePolygon removes the polygon of interest after confirmation.
func (s *State) DeletePolygon() {
	s.mu.RLock()
	poi := s.PolygonOfInterest
	s.mu.RUnlock()
	if poi == nil {
		return
	}

	s.ask("Delete Polygon", "Do you wish to delete the current polygon?", func() {
		s.mu.Lock()
		if s.PolygonOfInterest != poi {
			s.mu.Unlock()
			return
		}
		var events []event
		if i := s.indexLocked(poi); i >= 0 {
			s.Polygons = append(s.Polygons[:i], s.Polygons[i+1:]...)
			events = append(events, event{EventPolygonsChanged, len(s.Polygons)})
		}
		events = append(events, s.setPolygonOfInterestLocked(nil)...)
		s.log.Debug().Str("polygon", poi.Name).Msg("Deleted polygon")
		s.mu.Unlock()

		s.emitAll(events)
	})
}

func (s *State) indexLocked(p *Polygon) int {
	for i, q := range s.Polygons {
		if q == p {
			return i
		}
	}
	return -1
}

// SetBackground sets the background image and resizes the canvas to it.
// A nil background keeps the current canvas size.
func (s *State) SetBackground(bg *image.Background) {
	s.mu.Lock()
	s.Background = bg
	events := []event{{EventBackgroundChanged, bg}}
	if bg != nil {
		events = append(events, s.resizeLocked(bg.Width(), bg.Height())...)
	}
	s.mu.Unlock()

	s.emitAll(events)
}

// SetCanvasSize resizes the drawing area.
func (s *State) SetCanvasSize(width, height int) {
	s.mu.Lock()
	events := s.resizeLocked(width, height)
	s.mu.Unlock()

	s.emitAll(events)
}

func (s *State) resizeLocked(width, height int) []event {
	if width <= 0 || height <= 0 || (width == s.CanvasWidth && height == s.CanvasHeight) {
		return nil
	}
	s.CanvasWidth = width
	s.CanvasHeight = height
	return []event{{EventCanvasResized, [2]int{width, height}}}
}

// ExportData returns the coordinates of every closed polygon.
func (s *State) ExportData() [][]geometry.Point2D {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := make([][]geometry.Point2D, len(s.Polygons))
	for i, p := range s.Polygons {
		data[i] = p.Points()
	}
	return data
}

// ReplacePolygons swaps the closed polygons for ones built from data. A
// non-empty collection is only replaced after confirmation.
func (s *State) ReplacePolygons(data [][]geometry.Point2D) {
	s.mu.RLock()
	empty := len(s.Polygons) == 0
	s.mu.RUnlock()

	if empty {
		s.replacePolygons(data)
		return
	}
	s.ask("Replace Polygons", "Do you wish to replace the current polygons?", func() {
		s.replacePolygons(data)
	})
}

func (s *State) replacePolygons(data [][]geometry.Point2D) {
	s.mu.Lock()
	polygons := make([]*Polygon, 0, len(data))
	var events []event
	for _, points := range data {
		p := &Polygon{
			Name:     fmt.Sprintf("Polygon%d", s.nextID),
			Closed:   true,
			Vertices: make([]*Vertex, len(points)),
		}
		s.nextID++
		for i, pt := range points {
			p.Vertices[i] = &Vertex{Point: pt}
		}
		if err := geometry.Validate(points); err != nil {
			events = append(events, event{EventDiagnostic, Diagnostic{Polygon: p.Name, Err: err}})
		}
		polygons = append(polygons, p)
	}
	s.Polygons = polygons
	events = append([]event{{EventPolygonsChanged, len(polygons)}}, events...)

	if poi := s.PolygonOfInterest; poi != nil && poi.Closed {
		events = append(events, s.setPolygonOfInterestLocked(nil)...)
	}
	s.log.Debug().Int("count", len(polygons)).Msg("Replaced polygons")
	s.mu.Unlock()

	s.emitAll(events)
}

// HitVertex returns the placed vertex of the polygon of interest nearest to
// p within radius, or nil.
func (s *State) HitVertex(p geometry.Point2D, radius float64) *Vertex {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.PolygonOfInterest == nil {
		return nil
	}
	placed := s.PolygonOfInterest.Placed()
	pts := make([]geometry.Point2D, len(placed))
	for i, v := range placed {
		pts[i] = v.Point
	}
	if i := geometry.Nearest(pts, p, radius); i >= 0 {
		return placed[i]
	}
	return nil
}

// PolygonUnder returns the most recently added closed polygon containing p,
// or nil.
func (s *State) PolygonUnder(p geometry.Point2D) *Polygon {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.Polygons) - 1; i >= 0; i-- {
		pts := s.Polygons[i].Points()
		if geometry.BoundingBox(pts).Contains(p) && geometry.PointInPolygon(p, pts) {
			return s.Polygons[i]
		}
	}
	return nil
}

// PolygonView is a read-only copy of a polygon for rendering.
type PolygonView struct {
	Name     string
	Points   []geometry.Point2D
	Closed   bool
	Active   bool
	Selected int // index of the selected vertex, -1 if none
	Floating int // index of the floating vertex, -1 if none
}

// Snapshot is a read-only copy of everything the canvas draws.
type Snapshot struct {
	Polygons     []PolygonView
	Active       *PolygonView
	Background   *image.Background
	CanvasWidth  int
	CanvasHeight int
	Vertices     string
}

// Snapshot copies the drawable state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Polygons:     make([]PolygonView, 0, len(s.Polygons)),
		Background:   s.Background,
		CanvasWidth:  s.CanvasWidth,
		CanvasHeight: s.CanvasHeight,
	}
	for _, p := range s.Polygons {
		snap.Polygons = append(snap.Polygons, viewOf(p))
	}
	if s.PolygonOfInterest != nil {
		v := viewOf(s.PolygonOfInterest)
		snap.Active = &v
		snap.Vertices = s.PolygonOfInterest.VerticesString()
	}
	return snap
}

func viewOf(p *Polygon) PolygonView {
	v := PolygonView{
		Name:     p.Name,
		Points:   p.Points(),
		Closed:   p.Closed,
		Active:   p.Selected,
		Selected: -1,
		Floating: -1,
	}
	for i, vx := range p.Vertices {
		if vx == p.SelectedVertex {
			v.Selected = i
		}
		if vx.Floating {
			v.Floating = i
		}
	}
	return v
}

// PolygonNames lists the closed polygons by name, in order.
func (s *State) PolygonNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.Polygons))
	for i, p := range s.Polygons {
		names[i] = p.Name
	}
	return names
}

// PolygonAt returns the i-th closed polygon, or nil.
func (s *State) PolygonAt(i int) *Polygon {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i < 0 || i >= len(s.Polygons) {
		return nil
	}
	return s.Polygons[i]
}
