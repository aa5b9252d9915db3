// Package kernel defines the abstract geometry kernel used to turn
// resolved 2D outlines into 3D solids for the assembly preview. The
// abstraction allows swapping the SDF backend without changing the
// assembler.
package kernel

import "github.com/chazu/kerf/pkg/geom"

// Solid is an opaque handle to a kernel solid. Implementations wrap their
// internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Extrude lifts a closed 2D outline (a simple polygon in mm) into a
	// solid of the given thickness along +Z.
	Extrude(outline []geom.Vec2, thickness float64) (Solid, error)

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid

	// Translate moves a solid by (x, y, z).
	Translate(s Solid, x, y, z float64) Solid

	// ToMesh converts a solid to a triangle mesh for rendering.
	ToMesh(s Solid) (*Mesh, error)
}
