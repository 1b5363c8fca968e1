// Package formula compiles arithmetic expressions over named float
// variables once and evaluates them many times.
package formula

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env binds variable names to values during evaluation.
type Env map[string]float64

// A Formula is a compiled arithmetic expression.
type Formula struct {
	source    string
	variables []string
	program   *vm.Program
	constant  float64
}

// Compile parses the source and checks that it only refers to the given
// variables. Both `^` and `**` denote exponentiation.
func Compile(source string, variables ...string) (*Formula, error) {
	env := make(map[string]any, len(variables))
	for _, v := range variables {
		env[v] = 0.0
	}

	program, err := expr.Compile(source, expr.Env(env), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("cannot compile formula %q: %w", source, err)
	}

	return &Formula{
		source:    source,
		variables: variables,
		program:   program,
	}, nil
}

// MustCompile is like Compile but panics on error. It is used for built-in
// formulas.
func MustCompile(source string, variables ...string) *Formula {
	f, err := Compile(source, variables...)
	if err != nil {
		panic(err)
	}

	return f
}

// Constant creates a formula that always evaluates to v.
func Constant(v float64) *Formula {
	return &Formula{
		source:   fmt.Sprintf("%g", v),
		constant: v,
	}
}

// Source returns the text the formula was compiled from.
func (f *Formula) Source() string {
	return f.source
}

// IsConstant tells if the formula does not depend on any variable.
func (f *Formula) IsConstant() bool {
	return f.program == nil
}

// Eval evaluates the formula. Variables missing from the environment
// evaluate to 0.
func (f *Formula) Eval(env Env) (float64, error) {
	if f.program == nil {
		return f.constant, nil
	}

	vars := make(map[string]any, len(f.variables))
	for _, v := range f.variables {
		vars[v] = env[v]
	}

	out, err := expr.Run(f.program, vars)
	if err != nil {
		return 0, fmt.Errorf("cannot evaluate formula %q: %w", f.source, err)
	}

	value, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("formula %q evaluated to %T", f.source, out)
	}

	if math.IsNaN(value) {
		return 0, fmt.Errorf("formula %q evaluated to NaN", f.source)
	}

	return value, nil
}

// MarshalYAML writes the formula as its source text.
func (f *Formula) MarshalYAML() (any, error) {
	if f.IsConstant() {
		return f.constant, nil
	}

	return f.source, nil
}
