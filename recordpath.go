// Package recordpath is the host-facing API for the Record Path engine: an
// XPath-inspired language for navigating, filtering, and mutating values
// inside a host's own record types.
package recordpath

import (
	"iter"

	"github.com/flowforge/recordpath/ast"
	"github.com/flowforge/recordpath/eval"
	"github.com/flowforge/recordpath/parser"
	"github.com/flowforge/recordpath/record"
	"github.com/flowforge/recordpath/token"
)

// FieldValue is a single value reached while evaluating a path, plus
// enough context to describe its place in the tree and, where the value
// came from a mutable container, write a replacement back.
type FieldValue = eval.FieldValue

// CompileError reports every problem found while compiling a path
// expression. Its Error() renders the first one plus a count of the rest.
type CompileError struct {
	Errors token.ErrorList
}

func (e *CompileError) Error() string { return e.Errors.Error() }

// Unwrap lets errors.Is/errors.As see through to the individual *token.Error
// entries via e.Errors.
func (e *CompileError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// CompiledPath is a parsed, validated Record Path expression ready to be
// evaluated against one or more host records.
type CompiledPath struct {
	source string
	tree   *ast.Path
}

// Compile parses and validates source, reporting every lexical, syntax,
// predicate-placement, and arity problem it finds. The returned
// *CompiledPath is reusable across any number of Evaluate calls and hosts.
func Compile(source string) (*CompiledPath, error) {
	tree, errs := parser.ParsePath("", source)
	if len(errs) > 0 {
		return nil, &CompileError{Errors: errs}
	}
	return &CompiledPath{source: source, tree: tree}, nil
}

// String returns the original path expression text.
func (p *CompiledPath) String() string { return p.source }

// Result is the lazily-evaluated outcome of running a CompiledPath against
// a root record.
type Result struct {
	state *eval.State
	seq   iter.Seq[FieldValue]
}

// SelectedFields returns the lazy sequence of matching field values. A
// consumer may range over it and stop at any point (e.g. via break)
// without the engine having done any more work than necessary to produce
// the values already seen.
func (r *Result) SelectedFields() iter.Seq[FieldValue] {
	return r.seq
}

// Err returns the first runtime error encountered while producing
// SelectedFields, if the sequence has been drained far enough to reach it.
// It is nil until then, and the engine never surfaces a runtime error any
// other way (SelectedFields keeps iterating past an error-free prefix, but
// stops once an error is recorded).
func (r *Result) Err() error {
	if r.state.Err() == nil {
		return nil
	}
	return r.state.Err()
}

// Evaluate runs p against root. relativeTo, if given, is the field value a
// relative path (one not starting with '/' or '//') evaluates from instead
// of the record root; it is typically used when re-running a path that was
// itself discovered as a predicate's current-context value.
func (p *CompiledPath) Evaluate(root record.Record, relativeTo ...FieldValue) (*Result, error) {
	rootFV := eval.Root(root)
	current := rootFV
	if len(relativeTo) > 0 {
		current = relativeTo[0]
	}

	st := &eval.State{}
	ctx := eval.Context{Root: rootFV}
	seq := eval.EvalPath(st, ctx, p.tree, current)

	return &Result{state: st, seq: seq}, nil
}
