package joinery

import (
	"math"
	"testing"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/shape"
)

// horizontalEdge returns a straight edge of the given length along +X at
// y=0. Paired with boundsBelow the outward normal points up (+Y).
func horizontalEdge(length float64) shape.Edge {
	return shape.Edge{
		A:       geom.Vec2{X: 0, Y: 0},
		B:       geom.Vec2{X: length, Y: 0},
		ShapeID: "s1", PathIndex: 0, Index: 0, Closed: true,
	}
}

// boundsBelow places the shape interior below the edge.
var boundsBelow = geom.Rect{X: 0, Y: -50, Width: 100, Height: 50}

func TestFingerJointLeftAlignment(t *testing.T) {
	e := horizontalEdge(100)
	rec := Record{Kind: FingerJoint, ThicknessMM: 10, FingerCount: 5, Align: AlignLeft}

	teeth := Synthesize(e, rec, boundsBelow)
	if len(teeth) != 3 {
		t.Fatalf("tooth count = %d, want 3 (indices 0,2,4)", len(teeth))
	}
	for i, want := range []float64{0, 40, 80} {
		if teeth[i].StartDistance != want {
			t.Errorf("tooth %d start = %g, want %g", i, teeth[i].StartDistance, want)
		}
		if teeth[i].Width != 20 {
			t.Errorf("tooth %d width = %g, want 20", i, teeth[i].Width)
		}
		if teeth[i].Depth != 10 {
			t.Errorf("tooth %d depth = %g, want 10", i, teeth[i].Depth)
		}
		if teeth[i].TaperLeft != 0 || teeth[i].TaperRight != 0 {
			t.Errorf("finger tooth %d has taper", i)
		}
	}
}

func TestFingerJointRightAlignment(t *testing.T) {
	e := horizontalEdge(100)
	rec := Record{Kind: FingerJoint, ThicknessMM: 10, FingerCount: 5, Align: AlignRight}

	teeth := Synthesize(e, rec, boundsBelow)
	if len(teeth) != 2 {
		t.Fatalf("tooth count = %d, want 2 (indices 1,3)", len(teeth))
	}
	for i, want := range []float64{20, 60} {
		if teeth[i].StartDistance != want {
			t.Errorf("tooth %d start = %g, want %g", i, teeth[i].StartDistance, want)
		}
	}
}

// TestAlignmentsComplement verifies the load-bearing interlock convention:
// left and right alignments together tile the edge exactly once.
func TestAlignmentsComplement(t *testing.T) {
	e := horizontalEdge(100)
	left := Synthesize(e, Record{Kind: FingerJoint, ThicknessMM: 10, FingerCount: 5, Align: AlignLeft}, boundsBelow)
	right := Synthesize(e, Record{Kind: FingerJoint, ThicknessMM: 10, FingerCount: 5, Align: AlignRight}, boundsBelow)

	covered := make(map[float64]bool)
	for _, tooth := range append(left, right...) {
		if covered[tooth.StartDistance] {
			t.Errorf("overlapping tooth at %g", tooth.StartDistance)
		}
		covered[tooth.StartDistance] = true
	}
	if len(covered) != 5 {
		t.Errorf("left+right cover %d slots, want 5", len(covered))
	}
}

func TestDegenerateEdgeYieldsNoTeeth(t *testing.T) {
	e := shape.Edge{
		A: geom.Vec2{X: 0, Y: 0},
		B: geom.Vec2{X: 0.0005, Y: 0},
	}
	rec := Record{Kind: FingerJoint, ThicknessMM: 10, FingerCount: 5, Align: AlignLeft}
	if teeth := Synthesize(e, rec, boundsBelow); teeth != nil {
		t.Errorf("degenerate edge produced %d teeth", len(teeth))
	}
}

func TestUnknownKindYieldsNoTeeth(t *testing.T) {
	e := horizontalEdge(100)
	if teeth := Synthesize(e, Record{Kind: "mortise"}, boundsBelow); teeth != nil {
		t.Errorf("unknown kind produced %d teeth", len(teeth))
	}
	if teeth := Synthesize(e, Record{}, boundsBelow); teeth != nil {
		t.Errorf("zero record produced %d teeth", len(teeth))
	}
}

func TestDepthClamping(t *testing.T) {
	e := horizontalEdge(100)

	// Thickness below the floor clamps up to 0.5.
	thin := Synthesize(e, Record{Kind: FingerJoint, ThicknessMM: 0.1, FingerCount: 2}, boundsBelow)
	if thin[0].Depth != 0.5 {
		t.Errorf("thin depth = %g, want 0.5", thin[0].Depth)
	}

	// Thickness above 45% of the edge length clamps down.
	thick := Synthesize(e, Record{Kind: FingerJoint, ThicknessMM: 80, FingerCount: 2}, boundsBelow)
	if thick[0].Depth != 45 {
		t.Errorf("thick depth = %g, want 45", thick[0].Depth)
	}
}

func TestAutoFingerCount(t *testing.T) {
	e := horizontalEdge(100)

	// No explicit count: floor(100 / max(2*10, 4)) = 5 teeth slots,
	// left parity emits indices 0,2,4.
	teeth := Synthesize(e, Record{Kind: FingerJoint, ThicknessMM: 10, Align: AlignLeft}, boundsBelow)
	if len(teeth) != 3 {
		t.Fatalf("auto-count teeth = %d, want 3", len(teeth))
	}
	if teeth[0].Width != 20 {
		t.Errorf("auto tooth width = %g, want 20", teeth[0].Width)
	}

	// Counts below 2 (including negatives) fall back to auto-sizing.
	if got := Synthesize(e, Record{Kind: FingerJoint, ThicknessMM: 10, FingerCount: 1}, boundsBelow); len(got) != 3 {
		t.Errorf("count=1 teeth = %d, want 3", len(got))
	}

	// A very short edge still gets the minimum of 2 slots.
	short := shape.Edge{A: geom.Vec2{}, B: geom.Vec2{X: 5}}
	got := Synthesize(short, Record{Kind: FingerJoint, ThicknessMM: 10, Align: AlignLeft}, boundsBelow)
	if len(got) != 1 {
		t.Fatalf("short edge teeth = %d, want 1", len(got))
	}
	if got[0].Width != 2.5 {
		t.Errorf("short edge width = %g, want 2.5", got[0].Width)
	}
}

func TestDovetailDepthAndTaper(t *testing.T) {
	e := horizontalEdge(100)
	finger := Synthesize(e, Record{Kind: FingerJoint, ThicknessMM: 10, FingerCount: 5, Align: AlignLeft}, boundsBelow)
	dove := Synthesize(e, Record{Kind: Dovetail, ThicknessMM: 10, FingerCount: 5, Align: AlignLeft}, boundsBelow)

	if len(dove) != len(finger) {
		t.Fatalf("dovetail teeth = %d, finger teeth = %d", len(dove), len(finger))
	}
	for i := range dove {
		// Dovetail pins are always at least as deep as the finger joint
		// computed from the same inputs.
		if dove[i].Depth < finger[i].Depth {
			t.Errorf("tooth %d: dovetail depth %g < finger depth %g", i, dove[i].Depth, finger[i].Depth)
		}
		// depth = min(10*1.6, 60) = 16; taper = min(16*0.2, 20*0.2) = 3.2
		if dove[i].Depth != 16 {
			t.Errorf("tooth %d depth = %g, want 16", i, dove[i].Depth)
		}
		limit := math.Min(dove[i].Depth*0.2, dove[i].Width*0.2)
		if dove[i].TaperLeft > limit || dove[i].TaperRight > limit {
			t.Errorf("tooth %d taper (%g,%g) exceeds %g", i, dove[i].TaperLeft, dove[i].TaperRight, limit)
		}
		if dove[i].TaperLeft <= 0 {
			t.Errorf("tooth %d has no taper", i)
		}
	}
}

func TestDovetailDepthCappedByEdgeLength(t *testing.T) {
	e := horizontalEdge(20)
	// finger depth = clamp(10, 0.5, 9) = 9; dovetail = min(9*1.6, 12) = 12.
	dove := Synthesize(e, Record{Kind: Dovetail, ThicknessMM: 10, FingerCount: 2}, boundsBelow)
	if len(dove) != 1 {
		t.Fatalf("teeth = %d, want 1", len(dove))
	}
	if dove[0].Depth != 12 {
		t.Errorf("depth = %g, want 12", dove[0].Depth)
	}
}

// TestOutwardNormal checks that teeth point away from the shape interior
// regardless of which side of the edge the interior is on.
func TestOutwardNormal(t *testing.T) {
	e := horizontalEdge(100)
	rec := Record{Kind: FingerJoint, ThicknessMM: 10, FingerCount: 5, Align: AlignLeft}

	// Interior below the edge: the bounds center is at (50,-25), the
	// midpoint at (50,0), so outward is the left normal (0,1) and the
	// offset is positive.
	up := Synthesize(e, rec, boundsBelow)
	if up[0].OutwardOffset <= 0 {
		t.Errorf("offset = %g, want positive (teeth point up)", up[0].OutwardOffset)
	}

	// Interior above the edge: offset flips sign.
	boundsAbove := geom.Rect{X: 0, Y: 0, Width: 100, Height: 50}
	down := Synthesize(e, rec, boundsAbove)
	if down[0].OutwardOffset >= 0 {
		t.Errorf("offset = %g, want negative (teeth point down)", down[0].OutwardOffset)
	}
	if math.Abs(up[0].OutwardOffset) != math.Abs(down[0].OutwardOffset) {
		t.Errorf("offset magnitudes differ: %g vs %g", up[0].OutwardOffset, down[0].OutwardOffset)
	}
}

// TestSynthesizePure verifies the synthesizer is a pure function of its
// inputs: same edge, record and bounds always produce identical teeth.
func TestSynthesizePure(t *testing.T) {
	e := horizontalEdge(100)
	rec := Record{Kind: Dovetail, ThicknessMM: 8, FingerCount: 7, Align: AlignRight}

	first := Synthesize(e, rec, boundsBelow)
	for i := 0; i < 5; i++ {
		again := Synthesize(e, rec, boundsBelow)
		if len(again) != len(first) {
			t.Fatalf("run %d: tooth count changed", i)
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("run %d tooth %d: %+v != %+v", i, j, again[j], first[j])
			}
		}
	}
}
