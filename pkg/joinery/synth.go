package joinery

import (
	"math"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/shape"
)

// degenerateLength is the minimum edge length that can carry teeth.
const degenerateLength = 0.001

// Tooth is one interlocking protrusion, expressed in the edge-local (u, n)
// frame: u is the unit direction from edge start to edge end, n the left
// normal (-u.y, u.x). OutwardOffset is signed along n so that teeth always
// point away from the owning shape's interior.
type Tooth struct {
	StartDistance float64 `json:"startDistance"`
	Width         float64 `json:"width"`
	Depth         float64 `json:"depth"`
	OutwardOffset float64 `json:"outwardOffset"`
	TaperLeft     float64 `json:"taperLeft,omitempty"`
	TaperRight    float64 `json:"taperRight,omitempty"`
}

// Synthesize produces the ordered tooth list for an edge. It is a pure
// function of the edge endpoints, the record and the owning shape's
// bounds, and it never fails: degenerate edges and malformed records
// simply produce no teeth, which callers draw as a plain edge.
func Synthesize(e shape.Edge, rec Record, bounds geom.Rect) []Tooth {
	length := e.Length()
	if length < degenerateLength {
		return nil
	}
	if rec.Kind != FingerJoint && rec.Kind != Dovetail {
		return nil
	}

	u := e.B.Sub(e.A).Scale(1 / length)
	n := u.Perp()

	// Outward side: the normal pointing away from the bounds center at the
	// edge midpoint. For strongly concave outlines the bounds center only
	// approximates the interior.
	outward := 1.0
	if n.Dot(e.Midpoint().Sub(bounds.Center())) < 0 {
		outward = -1.0
	}

	depth := clamp(rec.ThicknessMM, 0.5, length*0.45)
	if rec.Kind == Dovetail {
		// Dovetail pins read better when visibly deeper than the material.
		depth = math.Min(depth*1.6, length*0.6)
	}

	count := rec.FingerCount
	if count < 2 {
		// Auto-size so tooth width tracks material thickness.
		count = int(math.Floor(length / math.Max(2*depth, 4)))
		if count < 2 {
			count = 2
		}
	}
	toothWidth := length / float64(count)

	start := 0
	if rec.Align == AlignRight {
		start = 1
	}

	var taper float64
	if rec.Kind == Dovetail {
		taper = math.Min(depth*0.2, toothWidth*0.2)
	}

	var teeth []Tooth
	for i := start; i < count; i += 2 {
		teeth = append(teeth, Tooth{
			StartDistance: float64(i) * toothWidth,
			Width:         toothWidth,
			Depth:         depth,
			OutwardOffset: outward * depth,
			TaperLeft:     taper,
			TaperRight:    taper,
		})
	}
	return teeth
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
