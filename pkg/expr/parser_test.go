package expr

import (
	"errors"
	"testing"
)

func TestParseNumber(t *testing.T) {
	n, err := Parse("42.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	num, ok := n.(Number)
	if !ok {
		t.Fatalf("expected Number, got %T", n)
	}
	if num.Value != 42.5 {
		t.Errorf("value = %g, want 42.5", num.Value)
	}
}

func TestParseParamRef(t *testing.T) {
	n, err := Parse("shelf_width")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ref, ok := n.(ParamRef)
	if !ok {
		t.Fatalf("expected ParamRef, got %T", n)
	}
	if ref.Name != "shelf_width" {
		t.Errorf("name = %q, want shelf_width", ref.Name)
	}
}

func TestParsePrecedence(t *testing.T) {
	// 2 + 3 * 4 must parse as 2 + (3 * 4).
	n, err := Parse("2 + 3 * 4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	add, ok := n.(BinaryOp)
	if !ok || add.Op != '+' {
		t.Fatalf("expected top-level +, got %#v", n)
	}
	mul, ok := add.Right.(BinaryOp)
	if !ok || mul.Op != '*' {
		t.Fatalf("expected * on the right of +, got %#v", add.Right)
	}
}

func TestParseParensOverridePrecedence(t *testing.T) {
	n, err := Parse("(2 + 3) * 4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mul, ok := n.(BinaryOp)
	if !ok || mul.Op != '*' {
		t.Fatalf("expected top-level *, got %#v", n)
	}
	if _, ok := mul.Left.(BinaryOp); !ok {
		t.Fatalf("expected parenthesized + on the left, got %#v", mul.Left)
	}
}

func TestParseUnaryMinusDesugars(t *testing.T) {
	n, err := Parse("-x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mul, ok := n.(BinaryOp)
	if !ok || mul.Op != '*' {
		t.Fatalf("expected -x to desugar to multiplication, got %#v", n)
	}
	lit, ok := mul.Left.(Number)
	if !ok || lit.Value != -1 {
		t.Errorf("expected -1 literal on the left, got %#v", mul.Left)
	}
}

func TestParseCall(t *testing.T) {
	n, err := Parse("min(3, 1, 2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call, ok := n.(Call)
	if !ok {
		t.Fatalf("expected Call, got %T", n)
	}
	if call.Name != "min" || len(call.Args) != 3 {
		t.Errorf("call = %s/%d args, want min/3", call.Name, len(call.Args))
	}
}

func TestParseCallNoArgs(t *testing.T) {
	n, err := Parse("max()")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call, ok := n.(Call)
	if !ok || len(call.Args) != 0 {
		t.Fatalf("expected zero-arg call, got %#v", n)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"unmatched open paren", "(1 + 2"},
		{"unmatched close paren", "1 + 2)"},
		{"trailing garbage", "1 + 2 zzz 3"},
		{"unexpected character", "1 + $"},
		{"bare dot", "."},
		{"dangling operator", "1 +"},
		{"unterminated args", "min(1, 2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.source)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tc.source)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("Parse(%q) error type = %T, want *ParseError", tc.source, err)
			}
		})
	}
}

func TestParseWhitespaceTolerance(t *testing.T) {
	a, err := Parse("1+2*3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Parse("  1 +\t2 *\n3  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	va, _, _ := Evaluate(a, nil)
	vb, _, _ := Evaluate(b, nil)
	if va != vb {
		t.Errorf("whitespace changed value: %g vs %g", va, vb)
	}
}
