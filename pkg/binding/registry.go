package binding

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Factory constructs a binding from its serialized JSON form.
type Factory func(data json.RawMessage) (Binding, error)

// Registry maps serialized type tags to binding factories. The three
// built-in kinds are seeded by NewRegistry; Register is the extension
// point for externally defined kinds.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a registry seeded with the literal, parameter and
// expression factories.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}

	r.Register(KindLiteral, func(data json.RawMessage) (Binding, error) {
		var raw struct {
			Value float64 `json:"value"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("literal binding: %w", err)
		}
		return &Literal{Value: raw.Value}, nil
	})

	r.Register(KindParameter, func(data json.RawMessage) (Binding, error) {
		var raw struct {
			ParameterID string `json:"parameterId"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parameter binding: %w", err)
		}
		return &ParamRef{ParameterID: raw.ParameterID}, nil
	})

	r.Register(KindExpression, func(data json.RawMessage) (Binding, error) {
		var raw struct {
			Expression string `json:"expression"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("expression binding: %w", err)
		}
		return &Expression{Source: raw.Expression}, nil
	})

	return r
}

// Register adds a factory for a type tag, replacing any existing one.
func (r *Registry) Register(tag string, f Factory) {
	r.factories[tag] = f
}

// Kinds returns the sorted list of registered type tags.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// FromJSON deserializes a binding by dispatching on its "type" tag.
func (r *Registry) FromJSON(data []byte) (Binding, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("binding: %w", err)
	}
	f, ok := r.factories[head.Type]
	if !ok {
		return nil, &UnknownTypeError{Tag: head.Type, Known: r.Kinds()}
	}
	return f(data)
}
