package shape

import (
	"fmt"

	"github.com/chazu/kerf/pkg/geom"
)

// Edge is one straight segment of a resolved shape's outline. Edges are
// ephemeral: they are recomputed from resolved geometry on demand and
// never persisted. Only their identity keys are stored (by the joinery
// record map).
type Edge struct {
	A, B      geom.Vec2
	ShapeID   string
	PathIndex int
	Index     int
	Closed    bool
}

// Key returns the canonical identity key "{shapeId}:{pathIndex}:{index}".
// Edges without a shape id fall back to the legacy form.
func (e Edge) Key() string {
	if e.ShapeID == "" {
		return e.LegacyKey()
	}
	return fmt.Sprintf("%s:%d:%d", e.ShapeID, e.PathIndex, e.Index)
}

// LegacyKey returns the pre-shapeId key "{pathIndex}:{index}". Files saved
// before shape ids were included in joinery keys still use this form.
func (e Edge) LegacyKey() string {
	return fmt.Sprintf("%d:%d", e.PathIndex, e.Index)
}

// Length returns the euclidean length of the edge.
func (e Edge) Length() float64 {
	return e.B.Sub(e.A).Length()
}

// Midpoint returns the midpoint of the edge.
func (e Edge) Midpoint() geom.Vec2 {
	return e.A.Add(e.B).Scale(0.5)
}

// Edges extracts every straight segment from a shape's outline. For a
// closed path of n points this yields n edges (the last wraps around); an
// open path yields n-1.
func Edges(s Shape) []Edge {
	var edges []Edge
	for pi, path := range s.Outline() {
		n := len(path.Points)
		if n < 2 {
			continue
		}
		segs := n - 1
		if path.Closed {
			segs = n
		}
		for i := 0; i < segs; i++ {
			edges = append(edges, Edge{
				A:         path.Points[i],
				B:         path.Points[(i+1)%n],
				ShapeID:   s.ID(),
				PathIndex: pi,
				Index:     i,
				Closed:    path.Closed,
			})
		}
	}
	return edges
}
