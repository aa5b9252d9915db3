// Package svg renders resolved shapes as an SVG document for the 2D
// preview. Jointed edges are drawn from the joinery synthesizer's profile
// output, so the 2D preview and the 3D assembly always show the same
// tooth geometry.
package svg

import (
	"io"
	"math"

	svgo "github.com/ajstarks/svgo"
	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/joinery"
	"github.com/chazu/kerf/pkg/shape"
)

// Options configures rendering.
type Options struct {
	Width, Height int     // canvas size in px; defaults to 800x600
	Scale         float64 // px per mm; defaults to 1
	Style         string  // SVG style applied to every outline
}

// DefaultStyle is the stroke style used when Options.Style is empty.
const DefaultStyle = "fill:none;stroke:black;stroke-width:1"

// Render writes an SVG document containing the jointed outline of every
// shape. Shapes must already be resolved; rendering reads concrete
// property values only.
func Render(w io.Writer, shapes []shape.Shape, joints *joinery.Store, opts Options) {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 600
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	style := opts.Style
	if style == "" {
		style = DefaultStyle
	}

	canvas := svgo.New(w)
	canvas.Start(width, height)
	for _, s := range shapes {
		for _, path := range joinery.JointedOutline(s, joints) {
			if len(path.Points) < 2 {
				continue
			}
			xs, ys := coords(path.Points, scale)
			if path.Closed {
				canvas.Polygon(xs, ys, style)
			} else {
				canvas.Polyline(xs, ys, style)
			}
		}
	}
	canvas.End()
}

// coords converts mm points into scaled integer pixel coordinates.
func coords(pts []geom.Vec2, scale float64) ([]int, []int) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i] = int(math.Round(p.X * scale))
		ys[i] = int(math.Round(p.Y * scale))
	}
	return xs, ys
}
