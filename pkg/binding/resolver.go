package binding

import "github.com/chazu/kerf/pkg/expr"

// Resolver is the facade that turns bindings into numbers. It bundles the
// two collaborators every resolution needs so callers pass one value
// around instead of two. Shape-level and batch resolution build on this in
// the shape package.
type Resolver struct {
	Store  ParamSource
	Engine *expr.Engine
}

// NewResolver returns a resolver over the given store with a fresh
// expression engine.
func NewResolver(store ParamSource) *Resolver {
	return &Resolver{Store: store, Engine: expr.NewEngine()}
}

// ResolveValue resolves a single binding.
func (r *Resolver) ResolveValue(b Binding) (float64, []expr.Warning, error) {
	return b.Resolve(r.Store, r.Engine)
}
