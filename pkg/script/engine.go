// Package script evaluates parameter scripts: small Lisp programs that
// populate the parameter store, so a design can carry derived parameter
// setups ("(param \"width\" 120)") alongside its shapes. It wraps zygomys
// in a sandboxed environment; user code cannot touch the filesystem or
// spawn processes.
package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/chazu/kerf/pkg/param"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error in user script code, such as a
// parse error or a runtime error.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine evaluates parameter scripts. It is safe for concurrent use; each
// Run creates a fresh sandbox so evaluation is deterministic.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a script engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Run evaluates a parameter script and returns the parameter store it
// built.
//
// Return semantics:
//   - On success: store + nil errors + nil error
//   - On parse/eval failure in user code: nil store + eval errors + nil error
//   - On fatal failure (timeout, panic): nil + nil + error
func (e *Engine) Run(source string) (*param.Store, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan runResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- runResult{err: fmt.Errorf("panic during script evaluation: %v", r)}
			}
		}()

		store, evalErrs, err := e.run(source)
		ch <- runResult{store: store, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// run performs the actual evaluation in a fresh zygomys sandbox.
func (e *Engine) run(source string) (*param.Store, []EvalError, error) {
	store := param.NewStore()

	// An empty script is a valid program producing no parameters.
	if strings.TrimSpace(source) == "" {
		return store, nil, nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, store)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygoError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygoError(err), nil
	}

	return store, nil, nil
}

// linePattern matches zygomys messages of the form "Error on line N: ...".
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches the simpler "line N: ..." form.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygoError converts a zygomys error into EvalError values, pulling
// line numbers out of the message where possible.
func parseZygoError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}

// preprocessSource converts traditional Lisp ';' line comments into the
// '//' form zygomys expects, respecting string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source))
	b := []byte(source)
	i := 0
	for i < len(b) {
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ';' {
			result = append(result, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}
