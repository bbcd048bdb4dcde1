// Package filter selects decoded osu! records with expr expressions such as
//
//	PP > 300 && hasMod(EnabledMods, "HD")
//
// Record fields are addressed by their Go names. Enum fields compare against
// the mode, approval, genre and language helpers.
package filter

import (
	"errors"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled expression over records of type T.
type Filter[T any] struct {
	program *vm.Program
	expr    string
}

// Compile compiles expression against the fields and methods of T. The
// expression must evaluate to a boolean.
func Compile[T any](expression string) (*Filter[T], error) {
	if strings.TrimSpace(expression) == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression", Position: -1}
	}

	var env T
	opts := append([]expr.Option{expr.Env(env), expr.AsBool()}, functions()...)
	program, err := expr.Compile(expression, opts...)
	if err != nil {
		cerr := &CompilationError{Expression: expression, Reason: err.Error(), Position: -1, Err: err}
		var ferr *file.Error
		if errors.As(err, &ferr) {
			cerr.Reason = ferr.Message
			cerr.Position = ferr.Column
		}
		return nil, cerr
	}

	return &Filter[T]{program: program, expr: expression}, nil
}

// MustCompile is like Compile but panics on error. Use it for expressions
// fixed at build time.
func MustCompile[T any](expression string) *Filter[T] {
	f, err := Compile[T](expression)
	if err != nil {
		panic(err)
	}
	return f
}

// Match evaluates the filter against item.
func (f *Filter[T]) Match(item T) (bool, error) {
	out, err := expr.Run(f.program, item)
	if err != nil {
		return false, &EvaluationError{Expression: f.expr, Reason: err.Error(), Err: err}
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, &EvaluationError{Expression: f.expr, Reason: "expression did not return a boolean"}
	}
	return ok, nil
}

// Apply returns the items matching the filter, in order. The first
// evaluation error aborts the scan.
func (f *Filter[T]) Apply(items []T) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, item := range items {
		ok, err := f.Match(item)
		if err != nil {
			var eerr *EvaluationError
			if errors.As(err, &eerr) {
				eerr.Index = i
			}
			return nil, err
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// String returns the expression the filter was compiled from.
func (f *Filter[T]) String() string {
	return f.expr
}
