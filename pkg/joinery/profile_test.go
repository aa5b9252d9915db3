package joinery

import (
	"math"
	"testing"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/shape"
)

func TestProfileWithoutTeeth(t *testing.T) {
	e := horizontalEdge(100)
	pts := Profile(e, nil)
	if len(pts) != 2 {
		t.Fatalf("point count = %d, want 2", len(pts))
	}
	if pts[0] != e.A || pts[1] != e.B {
		t.Errorf("profile = %v", pts)
	}
}

func TestProfileFingerTeeth(t *testing.T) {
	e := horizontalEdge(100)
	rec := Record{Kind: FingerJoint, ThicknessMM: 10, FingerCount: 5, Align: AlignLeft}
	teeth := Synthesize(e, rec, boundsBelow)

	pts := Profile(e, teeth)
	// Each tooth adds 4 points to the 2 endpoints.
	want := 2 + 4*len(teeth)
	if len(pts) != want {
		t.Fatalf("point count = %d, want %d", len(pts), want)
	}
	if pts[0] != e.A || pts[len(pts)-1] != e.B {
		t.Error("profile does not run from edge start to edge end")
	}

	// First tooth: base corners at x=0 and x=20, outward corners at y=10.
	if pts[1] != (geom.Vec2{X: 0, Y: 0}) {
		t.Errorf("first base corner = %v", pts[1])
	}
	if pts[2] != (geom.Vec2{X: 0, Y: 10}) {
		t.Errorf("first outer corner = %v", pts[2])
	}
	if pts[3] != (geom.Vec2{X: 20, Y: 10}) {
		t.Errorf("second outer corner = %v", pts[3])
	}
	if pts[4] != (geom.Vec2{X: 20, Y: 0}) {
		t.Errorf("second base corner = %v", pts[4])
	}
}

func TestProfileDovetailFlare(t *testing.T) {
	e := horizontalEdge(100)
	rec := Record{Kind: Dovetail, ThicknessMM: 10, FingerCount: 5, Align: AlignLeft}
	teeth := Synthesize(e, rec, boundsBelow)

	pts := Profile(e, teeth)
	// First tooth outer corners flare beyond the base corners along the
	// edge direction: left outer corner sits left of the left base corner.
	base0, outer0, outer1, base1 := pts[1], pts[2], pts[3], pts[4]
	if outer0.X >= base0.X {
		t.Errorf("left outer corner %v does not flare past base %v", outer0, base0)
	}
	if outer1.X <= base1.X {
		t.Errorf("right outer corner %v does not flare past base %v", outer1, base1)
	}
	taper := teeth[0].TaperLeft
	if math.Abs(base0.X-outer0.X-taper) > 1e-9 {
		t.Errorf("flare = %g, want %g", base0.X-outer0.X, taper)
	}
}

func TestJointedOutlineStraightWithoutRecords(t *testing.T) {
	r := shape.NewRect(0, 0, 100, 50)
	paths := JointedOutline(r, NewStore())
	if len(paths) != 1 {
		t.Fatalf("path count = %d, want 1", len(paths))
	}
	if len(paths[0].Points) != 4 {
		t.Errorf("point count = %d, want 4 (plain rectangle)", len(paths[0].Points))
	}
	if !paths[0].Closed {
		t.Error("rectangle outline should stay closed")
	}
}

func TestJointedOutlineNilStore(t *testing.T) {
	r := shape.NewRect(0, 0, 100, 50)
	paths := JointedOutline(r, nil)
	if len(paths) != 1 || len(paths[0].Points) != 4 {
		t.Errorf("nil store should render a plain outline")
	}
}

func TestJointedOutlineWithRecord(t *testing.T) {
	r := shape.NewRect(0, 0, 100, 50)
	store := NewStore()

	edges := shape.Edges(r)
	rec := Record{Kind: FingerJoint, ThicknessMM: 10, FingerCount: 5, Align: AlignLeft}
	store.Set(edges[0], rec)

	paths := JointedOutline(r, store)
	if len(paths) != 1 {
		t.Fatalf("path count = %d, want 1", len(paths))
	}
	// The jointed edge contributes 1 start point + 4 points per tooth;
	// the other three edges contribute one point each.
	teeth := Synthesize(edges[0], rec, shape.Bounds(r))
	want := 4 + 4*len(teeth)
	if len(paths[0].Points) != want {
		t.Errorf("point count = %d, want %d", len(paths[0].Points), want)
	}
}

// TestRendererConsistency is the contract both previews rely on: the
// profile is derived deterministically from Synthesize output, so any two
// consumers drawing the same edge get identical polylines.
func TestRendererConsistency(t *testing.T) {
	r := shape.NewRect(0, 0, 100, 50)
	store := NewStore()
	for _, e := range shape.Edges(r) {
		store.Set(e, Record{Kind: Dovetail, ThicknessMM: 8, FingerCount: 4, Align: AlignLeft})
	}

	first := JointedOutline(r, store)
	second := JointedOutline(r, store)
	if len(first) != len(second) {
		t.Fatal("path counts differ")
	}
	for i := range first {
		if len(first[i].Points) != len(second[i].Points) {
			t.Fatalf("path %d point counts differ", i)
		}
		for j := range first[i].Points {
			if first[i].Points[j] != second[i].Points[j] {
				t.Fatalf("path %d point %d differs", i, j)
			}
		}
	}
}
