// Package assemble turns resolved shapes into 3D preview meshes: each
// shape's jointed outline is extruded to its material thickness by the
// geometry kernel. One mesh is produced per shape. The assembler never
// computes tooth geometry itself; it draws exactly what the joinery
// synthesizer emitted, the same polylines the 2D preview draws.
package assemble

import (
	"fmt"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/joinery"
	"github.com/chazu/kerf/pkg/kernel"
	"github.com/chazu/kerf/pkg/shape"
)

// DefaultThickness is the extrusion thickness in mm for shapes whose
// edges carry no joinery record.
const DefaultThickness = 6.0

// Options configures an assembly pass.
type Options struct {
	// Thickness overrides DefaultThickness when > 0.
	Thickness float64
}

// thicknessFor picks the extrusion thickness for a shape: the material
// thickness of its first jointed edge, so mating parts preview at the
// thickness they will be cut from, falling back to the configured default.
func thicknessFor(s shape.Shape, joints *joinery.Store, opts Options) float64 {
	if joints != nil {
		for _, e := range shape.Edges(s) {
			if rec, ok := joints.Get(e); ok && rec.ThicknessMM > 0 {
				return rec.ThicknessMM
			}
		}
	}
	if opts.Thickness > 0 {
		return opts.Thickness
	}
	return DefaultThickness
}

// Assemble produces one mesh per resolved shape. Shapes whose outline is
// too degenerate to extrude are skipped rather than failing the whole
// preview; a fabrication-blocking problem belongs in validation, not here.
func Assemble(shapes []shape.Shape, joints *joinery.Store, k kernel.Kernel, opts Options) ([]*kernel.Mesh, error) {
	var meshes []*kernel.Mesh
	for _, s := range shapes {
		mesh, err := assembleShape(s, joints, k, opts)
		if err != nil {
			return nil, fmt.Errorf("assemble: shape %s: %w", s.ID(), err)
		}
		if mesh != nil {
			meshes = append(meshes, mesh)
		}
	}
	return meshes, nil
}

// assembleShape extrudes a single shape's jointed outline. Multi-path
// outlines are unioned into one solid.
func assembleShape(s shape.Shape, joints *joinery.Store, k kernel.Kernel, opts Options) (*kernel.Mesh, error) {
	thickness := thicknessFor(s, joints, opts)

	var solid kernel.Solid
	for _, path := range joinery.JointedOutline(s, joints) {
		if !path.Closed {
			continue
		}
		pts := dedupe(path.Points)
		if len(pts) < 3 {
			continue
		}
		part, err := k.Extrude(pts, thickness)
		if err != nil {
			// Degenerate sub-path; skip it.
			continue
		}
		if solid == nil {
			solid = part
		} else {
			solid = k.Union(solid, part)
		}
	}
	if solid == nil {
		return nil, nil
	}

	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, err
	}
	mesh.ShapeID = s.ID()
	return mesh, nil
}

// dedupe removes consecutive duplicate points, including the closing
// wraparound. A tooth that starts exactly at an edge endpoint produces
// coincident points in the profile; polygon SDF construction rejects them.
func dedupe(pts []geom.Vec2) []geom.Vec2 {
	out := make([]geom.Vec2, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && p == out[len(out)-1] {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}
