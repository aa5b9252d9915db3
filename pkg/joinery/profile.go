package joinery

import (
	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/shape"
)

// Profile expands an edge and its teeth into a world-space polyline from
// edge start to edge end. With no teeth the result is just the two
// endpoints. Every consumer of joinery geometry (SVG preview, DXF export,
// 3D assembly) draws this polyline, so tooth placement can never differ
// between them.
func Profile(e shape.Edge, teeth []Tooth) []geom.Vec2 {
	pts := []geom.Vec2{e.A}
	length := e.Length()
	if length >= degenerateLength && len(teeth) > 0 {
		u := e.B.Sub(e.A).Scale(1 / length)
		n := u.Perp()
		for _, t := range teeth {
			b0 := e.A.Add(u.Scale(t.StartDistance))
			b1 := e.A.Add(u.Scale(t.StartDistance + t.Width))
			off := n.Scale(t.OutwardOffset)
			// Dovetail outward corners flare by the taper along ±u;
			// finger-joint teeth have zero taper and stay rectangular.
			o0 := b0.Add(off).Sub(u.Scale(t.TaperLeft))
			o1 := b1.Add(off).Add(u.Scale(t.TaperRight))
			pts = append(pts, b0, o0, o1, b1)
		}
	}
	return append(pts, e.B)
}

// JointedOutline returns a shape's outline with every jointed edge
// replaced by its tooth profile. Edges without a record, and edges whose
// record produces no teeth, stay straight.
func JointedOutline(s shape.Shape, store *Store) []shape.Path {
	bounds := shape.Bounds(s)
	outline := s.Outline()
	result := make([]shape.Path, 0, len(outline))

	edges := shape.Edges(s)
	byPath := make(map[int][]shape.Edge)
	for _, e := range edges {
		byPath[e.PathIndex] = append(byPath[e.PathIndex], e)
	}

	for pi, path := range outline {
		out := shape.Path{Closed: path.Closed}
		for _, e := range byPath[pi] {
			var teeth []Tooth
			if store != nil {
				if rec, ok := store.Get(e); ok {
					teeth = Synthesize(e, rec, bounds)
				}
			}
			seg := Profile(e, teeth)
			// Drop the segment's end point; it is the next segment's start
			// (or, on a closed path, the first point again).
			out.Points = append(out.Points, seg[:len(seg)-1]...)
		}
		if !path.Closed && len(byPath[pi]) > 0 {
			last := byPath[pi][len(byPath[pi])-1]
			out.Points = append(out.Points, last.B)
		}
		result = append(result, out)
	}
	return result
}
