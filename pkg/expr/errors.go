package expr

import "fmt"

// ParseError describes a syntax error in expression source text. It is
// always surfaced to the editing UI, never swallowed.
type ParseError struct {
	Pos     int // byte offset into the source
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Message)
}

// EvalErrorKind classifies evaluation failures.
type EvalErrorKind int

const (
	ErrNilAST          EvalErrorKind = iota // evaluate called without an AST
	ErrDivisionByZero                       // x / 0
	ErrUnknownFunction                      // call to a name outside the whitelist
	ErrBadArity                             // wrong number of arguments
	ErrMathDomain                           // e.g. sqrt of a negative
)

func (k EvalErrorKind) String() string {
	switch k {
	case ErrNilAST:
		return "nil ast"
	case ErrDivisionByZero:
		return "division by zero"
	case ErrUnknownFunction:
		return "unknown function"
	case ErrBadArity:
		return "bad arity"
	case ErrMathDomain:
		return "math domain"
	default:
		return fmt.Sprintf("EvalErrorKind(%d)", int(k))
	}
}

// EvalError describes a hard evaluation failure. Missing parameters are
// NOT evaluation errors; they degrade to 0 with a Warning.
type EvalError struct {
	Kind    EvalErrorKind
	Message string
}

func (e *EvalError) Error() string {
	return e.Message
}

// Warning is a recoverable condition noticed during evaluation, such as a
// parameter name absent from the context. Warnings never abort evaluation.
type Warning struct {
	Parameter string `json:"parameter,omitempty"`
	Message   string `json:"message"`
}
