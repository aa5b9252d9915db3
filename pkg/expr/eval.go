package expr

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// function describes a whitelisted callable. maxArity of -1 means variadic.
type function struct {
	minArity int
	maxArity int
	apply    func(args []float64) (float64, error)
}

// functions is the full whitelist. Expressions feed fabrication geometry,
// so the set is deliberately small and total except for explicit domain
// errors.
var functions = map[string]function{
	"sin": {1, 1, func(a []float64) (float64, error) { return math.Sin(a[0]), nil }},
	"cos": {1, 1, func(a []float64) (float64, error) { return math.Cos(a[0]), nil }},
	"abs": {1, 1, func(a []float64) (float64, error) { return math.Abs(a[0]), nil }},
	"sqrt": {1, 1, func(a []float64) (float64, error) {
		if a[0] < 0 {
			return 0, &EvalError{Kind: ErrMathDomain, Message: fmt.Sprintf("sqrt of negative value %g", a[0])}
		}
		return math.Sqrt(a[0]), nil
	}},
	"min": {1, -1, func(a []float64) (float64, error) {
		m := a[0]
		for _, v := range a[1:] {
			m = math.Min(m, v)
		}
		return m, nil
	}},
	"max": {1, -1, func(a []float64) (float64, error) {
		m := a[0]
		for _, v := range a[1:] {
			m = math.Max(m, v)
		}
		return m, nil
	}},
}

// FunctionNames returns the sorted whitelist, used in diagnostics.
func FunctionNames() []string {
	names := make([]string, 0, len(functions))
	for n := range functions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Evaluate computes the numeric value of an AST against a name->value
// context. A parameter name absent from the context contributes 0 and a
// Warning rather than an error; renames and deletions are common during
// interactive editing and must degrade gracefully instead of making the
// whole shape disappear. Division by zero, unknown functions, wrong arity
// and domain errors fail hard with an *EvalError.
func Evaluate(n Node, ctx map[string]float64) (float64, []Warning, error) {
	if n == nil {
		return 0, nil, &EvalError{Kind: ErrNilAST, Message: "evaluate: no AST supplied"}
	}
	e := &evaluator{ctx: ctx}
	v, err := e.eval(n)
	if err != nil {
		return 0, e.warnings, err
	}
	return v, e.warnings, nil
}

// evaluator accumulates warnings across a single evaluation.
type evaluator struct {
	ctx      map[string]float64
	warnings []Warning
}

func (e *evaluator) eval(n Node) (float64, error) {
	switch node := n.(type) {
	case Number:
		return node.Value, nil

	case ParamRef:
		v, ok := e.ctx[node.Name]
		if !ok {
			e.warnings = append(e.warnings, Warning{
				Parameter: node.Name,
				Message:   fmt.Sprintf("parameter %q is not defined; using 0", node.Name),
			})
			return 0, nil
		}
		return v, nil

	case BinaryOp:
		left, err := e.eval(node.Left)
		if err != nil {
			return 0, err
		}
		right, err := e.eval(node.Right)
		if err != nil {
			return 0, err
		}
		switch node.Op {
		case '+':
			return left + right, nil
		case '-':
			return left - right, nil
		case '*':
			return left * right, nil
		case '/':
			if right == 0 {
				return 0, &EvalError{Kind: ErrDivisionByZero, Message: "division by zero"}
			}
			return left / right, nil
		}
		return 0, &EvalError{Kind: ErrNilAST, Message: fmt.Sprintf("invalid operator %q", node.Op)}

	case Call:
		fn, ok := functions[node.Name]
		if !ok {
			return 0, &EvalError{
				Kind: ErrUnknownFunction,
				Message: fmt.Sprintf("unknown function %q; supported functions are %s",
					node.Name, strings.Join(FunctionNames(), ", ")),
			}
		}
		if len(node.Args) < fn.minArity || (fn.maxArity >= 0 && len(node.Args) > fn.maxArity) {
			return 0, &EvalError{
				Kind:    ErrBadArity,
				Message: fmt.Sprintf("function %q called with %d arguments", node.Name, len(node.Args)),
			}
		}
		args := make([]float64, len(node.Args))
		for i, argNode := range node.Args {
			v, err := e.eval(argNode)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		return fn.apply(args)
	}

	return 0, &EvalError{Kind: ErrNilAST, Message: fmt.Sprintf("unknown node type %T", n)}
}

// Engine bundles Parse and Evaluate behind a value so collaborators can be
// passed explicitly (bindings fail with a missing-resolver error when the
// engine is absent). The engine itself is stateless; compiled ASTs are
// cached by their owning bindings.
type Engine struct{}

// NewEngine returns an expression engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Parse compiles source into an AST.
func (e *Engine) Parse(source string) (Node, error) {
	return Parse(source)
}

// Evaluate evaluates a compiled AST against a context.
func (e *Engine) Evaluate(n Node, ctx map[string]float64) (float64, []Warning, error) {
	return Evaluate(n, ctx)
}
