// Package dxf exports jointed shape outlines as DXF line entities for
// laser and CNC toolchains. Each shape gets its own layer named after its
// type and id so CAM software can assign per-part cut settings.
package dxf

import (
	"fmt"

	"github.com/chazu/kerf/pkg/joinery"
	"github.com/chazu/kerf/pkg/shape"
	dxflib "github.com/yofu/dxf"
)

// Export writes the jointed outlines of the given resolved shapes to a
// DXF file at path. Coordinates are emitted in mm, matching the editor's
// units.
func Export(path string, shapes []shape.Shape, joints *joinery.Store) error {
	d := dxflib.NewDrawing()

	for _, s := range shapes {
		layer := layerName(s)
		if _, err := d.AddLayer(layer, dxflib.DefaultColor, dxflib.DefaultLineType, true); err != nil {
			return fmt.Errorf("dxf: layer %s: %w", layer, err)
		}
		for _, p := range joinery.JointedOutline(s, joints) {
			n := len(p.Points)
			if n < 2 {
				continue
			}
			segs := n - 1
			if p.Closed {
				segs = n
			}
			for i := 0; i < segs; i++ {
				a := p.Points[i]
				b := p.Points[(i+1)%n]
				if _, err := d.Line(a.X, a.Y, 0, b.X, b.Y, 0); err != nil {
					return fmt.Errorf("dxf: shape %s: %w", s.ID(), err)
				}
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("dxf: save %s: %w", path, err)
	}
	return nil
}

// layerName builds a short per-shape layer name. DXF layer names must
// avoid some punctuation, so only the id's first 8 characters are used.
func layerName(s shape.Shape) string {
	id := s.ID()
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s_%s", s.Type(), id)
}
