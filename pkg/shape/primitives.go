package shape

import (
	"fmt"
	"math"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/google/uuid"
)

// circleSegments is the polygonization resolution for circles.
const circleSegments = 32

func vec(x, y float64) geom.Vec2 { return geom.Vec2{X: x, Y: y} }

// unknownProperty is the shared error for a bad property name.
func unknownProperty(shapeType, name string) error {
	return fmt.Errorf("%s has no property %q", shapeType, name)
}

// ---------------------------------------------------------------------------
// Rect
// ---------------------------------------------------------------------------

// Rect is an axis-anchored rectangle, optionally rotated about its center.
type Rect struct {
	Base
	X, Y          float64 // minimum corner before rotation
	Width, Height float64
	Rotation      float64 // degrees, counter-clockwise about the center
}

// NewRect creates a rectangle with a fresh id.
func NewRect(x, y, w, h float64) *Rect {
	return &Rect{Base: Base{ShapeID: uuid.NewString()}, X: x, Y: y, Width: w, Height: h}
}

func (r *Rect) Type() string { return "rect" }

func (r *Rect) BindableProperties() []string {
	return []string{"x", "y", "width", "height", "rotation"}
}

func (r *Rect) Property(name string) (float64, bool) {
	switch name {
	case "x":
		return r.X, true
	case "y":
		return r.Y, true
	case "width":
		return r.Width, true
	case "height":
		return r.Height, true
	case "rotation":
		return r.Rotation, true
	}
	return 0, false
}

func (r *Rect) SetProperty(name string, v float64) error {
	switch name {
	case "x":
		r.X = v
	case "y":
		r.Y = v
	case "width":
		r.Width = v
	case "height":
		r.Height = v
	case "rotation":
		r.Rotation = v
	default:
		return unknownProperty("rect", name)
	}
	return nil
}

func (r *Rect) Clone() Shape {
	c := *r
	c.Base = r.cloneBase()
	return &c
}

func (r *Rect) Outline() []Path {
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	corners := []struct{ x, y float64 }{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X + r.Width, r.Y + r.Height},
		{r.X, r.Y + r.Height},
	}
	p := Path{Closed: true}
	sin, cos := math.Sincos(r.Rotation * math.Pi / 180)
	for _, c := range corners {
		dx, dy := c.x-cx, c.y-cy
		p.Points = append(p.Points, vec(cx+dx*cos-dy*sin, cy+dx*sin+dy*cos))
	}
	return []Path{p}
}

// ---------------------------------------------------------------------------
// Circle
// ---------------------------------------------------------------------------

// Circle is a circle polygonized at a fixed resolution.
type Circle struct {
	Base
	X, Y   float64 // center
	Radius float64
}

// NewCircle creates a circle with a fresh id.
func NewCircle(x, y, radius float64) *Circle {
	return &Circle{Base: Base{ShapeID: uuid.NewString()}, X: x, Y: y, Radius: radius}
}

func (c *Circle) Type() string { return "circle" }

func (c *Circle) BindableProperties() []string {
	return []string{"x", "y", "radius"}
}

func (c *Circle) Property(name string) (float64, bool) {
	switch name {
	case "x":
		return c.X, true
	case "y":
		return c.Y, true
	case "radius":
		return c.Radius, true
	}
	return 0, false
}

func (c *Circle) SetProperty(name string, v float64) error {
	switch name {
	case "x":
		c.X = v
	case "y":
		c.Y = v
	case "radius":
		c.Radius = v
	default:
		return unknownProperty("circle", name)
	}
	return nil
}

func (c *Circle) Clone() Shape {
	cc := *c
	cc.Base = c.cloneBase()
	return &cc
}

func (c *Circle) Outline() []Path {
	p := Path{Closed: true}
	for i := 0; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		p.Points = append(p.Points, vec(c.X+c.Radius*math.Cos(a), c.Y+c.Radius*math.Sin(a)))
	}
	return []Path{p}
}

// ---------------------------------------------------------------------------
// Polygon
// ---------------------------------------------------------------------------

// Polygon is a regular n-gon. Sides is stored as a float so it can be
// parameter-driven; it is rounded and clamped to >= 3 when the outline is
// generated.
type Polygon struct {
	Base
	X, Y   float64 // center
	Radius float64
	Sides  float64
}

// NewPolygon creates a regular polygon with a fresh id.
func NewPolygon(x, y, radius float64, sides int) *Polygon {
	return &Polygon{Base: Base{ShapeID: uuid.NewString()}, X: x, Y: y, Radius: radius, Sides: float64(sides)}
}

func (p *Polygon) Type() string { return "polygon" }

func (p *Polygon) BindableProperties() []string {
	return []string{"x", "y", "radius", "sides"}
}

func (p *Polygon) Property(name string) (float64, bool) {
	switch name {
	case "x":
		return p.X, true
	case "y":
		return p.Y, true
	case "radius":
		return p.Radius, true
	case "sides":
		return p.Sides, true
	}
	return 0, false
}

func (p *Polygon) SetProperty(name string, v float64) error {
	switch name {
	case "x":
		p.X = v
	case "y":
		p.Y = v
	case "radius":
		p.Radius = v
	case "sides":
		p.Sides = v
	default:
		return unknownProperty("polygon", name)
	}
	return nil
}

func (p *Polygon) Clone() Shape {
	c := *p
	c.Base = p.cloneBase()
	return &c
}

func (p *Polygon) Outline() []Path {
	n := int(math.Round(p.Sides))
	if n < 3 {
		n = 3
	}
	path := Path{Closed: true}
	for i := 0; i < n; i++ {
		a := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		path.Points = append(path.Points, vec(p.X+p.Radius*math.Cos(a), p.Y+p.Radius*math.Sin(a)))
	}
	return []Path{path}
}

// ---------------------------------------------------------------------------
// Star
// ---------------------------------------------------------------------------

// Star alternates between an outer and inner radius. Points is float for
// the same reason as Polygon.Sides.
type Star struct {
	Base
	X, Y        float64 // center
	OuterRadius float64
	InnerRadius float64
	Points      float64
}

// NewStar creates a star with a fresh id.
func NewStar(x, y, outer, inner float64, points int) *Star {
	return &Star{
		Base: Base{ShapeID: uuid.NewString()},
		X:    x, Y: y,
		OuterRadius: outer, InnerRadius: inner,
		Points: float64(points),
	}
}

func (s *Star) Type() string { return "star" }

func (s *Star) BindableProperties() []string {
	return []string{"x", "y", "outerRadius", "innerRadius", "points"}
}

func (s *Star) Property(name string) (float64, bool) {
	switch name {
	case "x":
		return s.X, true
	case "y":
		return s.Y, true
	case "outerRadius":
		return s.OuterRadius, true
	case "innerRadius":
		return s.InnerRadius, true
	case "points":
		return s.Points, true
	}
	return 0, false
}

func (s *Star) SetProperty(name string, v float64) error {
	switch name {
	case "x":
		s.X = v
	case "y":
		s.Y = v
	case "outerRadius":
		s.OuterRadius = v
	case "innerRadius":
		s.InnerRadius = v
	case "points":
		s.Points = v
	default:
		return unknownProperty("star", name)
	}
	return nil
}

func (s *Star) Clone() Shape {
	c := *s
	c.Base = s.cloneBase()
	return &c
}

func (s *Star) Outline() []Path {
	n := int(math.Round(s.Points))
	if n < 3 {
		n = 3
	}
	path := Path{Closed: true}
	for i := 0; i < n*2; i++ {
		r := s.OuterRadius
		if i%2 == 1 {
			r = s.InnerRadius
		}
		a := math.Pi*float64(i)/float64(n) - math.Pi/2
		path.Points = append(path.Points, vec(s.X+r*math.Cos(a), s.Y+r*math.Sin(a)))
	}
	return []Path{path}
}
