// Package binding implements symbolic value sources for shape properties.
// A binding is a literal number, a reference to a named parameter, or an
// arithmetic expression; it yields a concrete number only when resolved
// against the parameter store and the expression engine.
package binding

import (
	"encoding/json"
	"fmt"

	"github.com/chazu/kerf/pkg/expr"
	"github.com/chazu/kerf/pkg/param"
)

// Binding kind tags as they appear in serialized form.
const (
	KindLiteral    = "literal"
	KindParameter  = "parameter"
	KindExpression = "expression"
)

// ParamSource is the read-only view of the parameter store that bindings
// need. *param.Store satisfies it.
type ParamSource interface {
	Get(id string) (*param.Parameter, bool)
	GetAll() []param.Parameter
}

// Binding is a symbolic value source for a single shape property.
type Binding interface {
	// Kind returns the serialized type tag.
	Kind() string
	// Resolve produces the concrete value. Recoverable conditions (a
	// deleted parameter, a renamed parameter inside an expression) yield
	// 0 plus warnings; structural failures (bad expression syntax,
	// division by zero, missing collaborators) return an error.
	Resolve(src ParamSource, eng *expr.Engine) (float64, []expr.Warning, error)

	json.Marshaler
}

// Literal is a plain number stored directly on the binding.
type Literal struct {
	Value float64
}

func (b *Literal) Kind() string { return KindLiteral }

func (b *Literal) Resolve(ParamSource, *expr.Engine) (float64, []expr.Warning, error) {
	return b.Value, nil, nil
}

func (b *Literal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string  `json:"type"`
		Value float64 `json:"value"`
	}{KindLiteral, b.Value})
}

// ParamRef resolves to the current value of a parameter looked up by id.
type ParamRef struct {
	ParameterID string
}

func (b *ParamRef) Kind() string { return KindParameter }

// Resolve looks the parameter up in the store. A missing parameter is a
// transient editing state, not corruption: it resolves to 0 with a warning.
func (b *ParamRef) Resolve(src ParamSource, _ *expr.Engine) (float64, []expr.Warning, error) {
	if src == nil {
		return 0, nil, &MissingResolverError{What: "parameter store"}
	}
	p, ok := src.Get(b.ParameterID)
	if !ok {
		return 0, []expr.Warning{{
			Parameter: b.ParameterID,
			Message:   fmt.Sprintf("parameter %q no longer exists; using 0", b.ParameterID),
		}}, nil
	}
	return p.Value, nil, nil
}

func (b *ParamRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string `json:"type"`
		ParameterID string `json:"parameterId"`
	}{KindParameter, b.ParameterID})
}

// Expression resolves by evaluating an arithmetic expression over the
// current parameter values, keyed by parameter name. The compiled AST is
// cached after the first resolve; rebuilding it redundantly is harmless.
type Expression struct {
	Source string
	ast    expr.Node
}

func (b *Expression) Kind() string { return KindExpression }

func (b *Expression) Resolve(src ParamSource, eng *expr.Engine) (float64, []expr.Warning, error) {
	if src == nil {
		return 0, nil, &MissingResolverError{What: "parameter store"}
	}
	if eng == nil {
		return 0, nil, &MissingResolverError{What: "expression engine"}
	}
	if b.ast == nil {
		ast, err := eng.Parse(b.Source)
		if err != nil {
			return 0, nil, err
		}
		b.ast = ast
	}
	ctx := make(map[string]float64)
	for _, p := range src.GetAll() {
		ctx[p.Name] = p.Value
	}
	return eng.Evaluate(b.ast, ctx)
}

func (b *Expression) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string `json:"type"`
		Expression string `json:"expression"`
	}{KindExpression, b.Source})
}
