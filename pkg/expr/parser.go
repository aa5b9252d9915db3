package expr

import (
	"fmt"
	"strconv"
)

// parser holds the full parse state: the source text and a cursor. Each
// grammar production is a method so there is no hidden state shared
// between recursive calls beyond this struct.
type parser struct {
	src string
	pos int
}

// Parse compiles expression source text into an AST. It fails with a
// *ParseError on empty input, unmatched parentheses, unexpected characters,
// or trailing garbage after a complete expression.
func Parse(source string) (Node, error) {
	p := &parser{src: source}
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, &ParseError{Pos: p.pos, Message: "empty expression"}
	}
	n, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, &ParseError{
			Pos:     p.pos,
			Message: fmt.Sprintf("unexpected %q after expression", p.src[p.pos]),
		}
	}
	return n, nil
}

// parseSum handles the lowest precedence tier: addition and subtraction.
func (p *parser) parseSum() (Node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		op, ok := p.peek()
		if !ok || (op != '+' && op != '-') {
			return left, nil
		}
		p.pos++
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = BinaryOp{Op: op, Left: left, Right: right}
	}
}

// parseProduct handles multiplication and division.
func (p *parser) parseProduct() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		op, ok := p.peek()
		if !ok || (op != '*' && op != '/') {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = BinaryOp{Op: op, Left: left, Right: right}
	}
}

// parseUnary handles prefix minus, desugared to multiplication by -1 so
// the node set stays minimal.
func (p *parser) parseUnary() (Node, error) {
	p.skipSpace()
	if c, ok := p.peek(); ok && c == '-' {
		p.pos++
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return BinaryOp{Op: '*', Left: Number{Value: -1}, Right: inner}, nil
	}
	return p.parsePrimary()
}

// parsePrimary handles parenthesized expressions, number literals,
// parameter references, and function calls. An identifier immediately
// followed by '(' is a call; otherwise it is a parameter reference.
func (p *parser) parsePrimary() (Node, error) {
	p.skipSpace()
	c, ok := p.peek()
	if !ok {
		return nil, &ParseError{Pos: p.pos, Message: "unexpected end of expression"}
	}

	if c == '(' {
		p.pos++
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if c, ok := p.peek(); !ok || c != ')' {
			return nil, &ParseError{Pos: p.pos, Message: "expected ')'"}
		}
		p.pos++
		return inner, nil
	}

	if isDigit(c) || c == '.' {
		return p.parseNumber()
	}

	if isIdentStart(c) {
		name := p.readIdent()
		p.skipSpace()
		if c, ok := p.peek(); ok && c == '(' {
			return p.parseCallArgs(name)
		}
		return ParamRef{Name: name}, nil
	}

	return nil, &ParseError{Pos: p.pos, Message: fmt.Sprintf("unexpected character %q", c)}
}

// parseCallArgs parses the parenthesized argument list of a function call.
// The cursor sits on the opening '('.
func (p *parser) parseCallArgs(name string) (Node, error) {
	p.pos++ // consume '('
	var args []Node
	p.skipSpace()
	if c, ok := p.peek(); ok && c == ')' {
		p.pos++
		return Call{Name: name, Args: args}, nil
	}
	for {
		arg, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipSpace()
		c, ok := p.peek()
		if !ok {
			return nil, &ParseError{Pos: p.pos, Message: "expected ')' in argument list"}
		}
		if c == ',' {
			p.pos++
			continue
		}
		if c == ')' {
			p.pos++
			return Call{Name: name, Args: args}, nil
		}
		return nil, &ParseError{
			Pos:     p.pos,
			Message: fmt.Sprintf("unexpected %q in argument list", c),
		}
	}
}

// parseNumber reads a decimal literal. A bare '.' with no digits is an
// error.
func (p *parser) parseNumber() (Node, error) {
	start := p.pos
	sawDigit := false
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isDigit(c) {
			sawDigit = true
			p.pos++
			continue
		}
		if c == '.' {
			p.pos++
			continue
		}
		break
	}
	if !sawDigit {
		return nil, &ParseError{Pos: start, Message: "malformed number"}
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return nil, &ParseError{Pos: start, Message: fmt.Sprintf("malformed number %q", p.src[start:p.pos])}
	}
	return Number{Value: v}, nil
}

// readIdent consumes an identifier: letter or underscore, then letters,
// digits and underscores.
func (p *parser) readIdent() string {
	start := p.pos
	for p.pos < len(p.src) && isIdentChar(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
