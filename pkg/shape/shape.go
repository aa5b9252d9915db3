// Package shape defines the resolution facet of editor shapes: the set of
// bindable properties, the template-method Resolve that produces a
// geometrically concrete clone, and outline/edge extraction for joinery.
package shape

import (
	"fmt"

	"github.com/chazu/kerf/pkg/binding"
	"github.com/chazu/kerf/pkg/expr"
	"github.com/chazu/kerf/pkg/geom"
)

// Path is one sub-path of a shape outline.
type Path struct {
	Points []geom.Vec2
	Closed bool
}

// Shape is the resolution-facing contract every primitive implements.
// Geometry formulas live on the concrete types; this package only cares
// that a shape can enumerate its bindable properties, get/set them by
// name, clone itself, and emit its outline.
type Shape interface {
	ID() string
	Type() string

	// BindableProperties lists the property names that may carry bindings.
	BindableProperties() []string
	Binding(name string) (binding.Binding, bool)
	SetBinding(name string, b binding.Binding)
	RemoveBinding(name string)

	Property(name string) (float64, bool)
	SetProperty(name string, v float64) error

	// Clone returns an independent copy. Resolution never mutates the
	// original shape.
	Clone() Shape

	// Outline returns the shape's boundary as one or more sub-paths,
	// computed from the current (concrete) property values.
	Outline() []Path
}

// Base carries the identity and binding map shared by all shape types.
// Concrete shapes embed it.
type Base struct {
	ShapeID string
	Binds   map[string]binding.Binding
}

// ID returns the shape's stable identifier.
func (b *Base) ID() string { return b.ShapeID }

// Binding returns the binding attached to a property, if any.
func (b *Base) Binding(name string) (binding.Binding, bool) {
	bd, ok := b.Binds[name]
	return bd, ok
}

// SetBinding attaches a binding to a property, replacing any existing one.
func (b *Base) SetBinding(name string, bd binding.Binding) {
	if b.Binds == nil {
		b.Binds = make(map[string]binding.Binding)
	}
	b.Binds[name] = bd
}

// RemoveBinding detaches the binding from a property; the property falls
// back to its literal field value.
func (b *Base) RemoveBinding(name string) {
	delete(b.Binds, name)
}

// cloneBase copies the base. The binding map is copied; binding values are
// shared because edits replace bindings wholesale rather than mutating
// them in place.
func (b *Base) cloneBase() Base {
	c := Base{ShapeID: b.ShapeID}
	if len(b.Binds) > 0 {
		c.Binds = make(map[string]binding.Binding, len(b.Binds))
		for k, v := range b.Binds {
			c.Binds[k] = v
		}
	}
	return c
}

// Resolve produces a concrete clone of s: every bound property on the
// clone is overwritten with its binding's resolved value; unbound
// properties keep their literal field values. The original is never
// mutated, and resolving twice under unchanged parameters yields
// value-equal results.
func Resolve(s Shape, r *binding.Resolver) (Shape, []expr.Warning, error) {
	clone := s.Clone()
	var warnings []expr.Warning
	for _, name := range s.BindableProperties() {
		b, ok := s.Binding(name)
		if !ok {
			continue
		}
		v, warns, err := r.ResolveValue(b)
		warnings = append(warnings, warns...)
		if err != nil {
			return nil, warnings, fmt.Errorf("shape %s property %q: %w", s.ID(), name, err)
		}
		if err := clone.SetProperty(name, v); err != nil {
			return nil, warnings, err
		}
	}
	return clone, warnings, nil
}

// ResolveAll resolves a batch of shapes, accumulating warnings across the
// whole batch. The first hard failure aborts.
func ResolveAll(shapes []Shape, r *binding.Resolver) ([]Shape, []expr.Warning, error) {
	resolved := make([]Shape, 0, len(shapes))
	var warnings []expr.Warning
	for _, s := range shapes {
		c, warns, err := Resolve(s, r)
		warnings = append(warnings, warns...)
		if err != nil {
			return nil, warnings, err
		}
		resolved = append(resolved, c)
	}
	return resolved, warnings, nil
}

// Bounds returns the bounding rectangle of a shape's outline.
func Bounds(s Shape) geom.Rect {
	paths := s.Outline()
	var r geom.Rect
	first := true
	for _, p := range paths {
		if len(p.Points) == 0 {
			continue
		}
		b := geom.BoundsOf(p.Points)
		if first {
			r = b
			first = false
		} else {
			r = r.Union(b)
		}
	}
	return r
}
