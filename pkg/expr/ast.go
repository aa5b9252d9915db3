// Package expr implements the tiny expression language used by expression
// bindings: infix arithmetic over named parameters with a whitelisted set
// of math functions. Parsing produces an immutable AST that can be
// evaluated many times against different parameter contexts.
package expr

// Node is the interface for AST nodes. The node set is a closed sum;
// the unexported marker method restricts implementations to this package.
type Node interface {
	exprNode()
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

func (Number) exprNode() {}

// ParamRef is a bare identifier referencing a parameter by name.
type ParamRef struct {
	Name string
}

func (ParamRef) exprNode() {}

// BinaryOp is an infix arithmetic operation. Op is one of + - * /.
// Unary negation is desugared by the parser into (-1 * x), so no separate
// unary node type exists.
type BinaryOp struct {
	Op    byte
	Left  Node
	Right Node
}

func (BinaryOp) exprNode() {}

// Call is an invocation of a whitelisted function.
type Call struct {
	Name string
	Args []Node
}

func (Call) exprNode() {}
