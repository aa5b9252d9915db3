package script

import (
	"fmt"

	"github.com/chazu/kerf/pkg/param"
	zygo "github.com/glycerine/zygomys/zygo"
)

// registerBuiltins installs the parameter-script vocabulary into a fresh
// sandbox. Scripts define parameters with (param "name" value); defining
// the same name twice keeps the last value, matching Store.Define.
func registerBuiltins(env *zygo.Zlisp, store *param.Store) {
	env.AddFunction("param", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("param: expected (param \"name\" value), got %d args", len(args))
		}
		pname, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("param: name: %w", err)
		}
		value, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("param %q: value: %w", pname, err)
		}
		p := store.Define(pname, value)
		return &zygo.SexpFloat{Val: p.Value}, nil
	})
}

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}
