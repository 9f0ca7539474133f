package eval

import (
	"iter"

	"github.com/flowforge/recordpath/ast"
)

// EvalPath evaluates path against current (the "." context a relative
// path or predicate starts from) and ctx.Root (the root an absolute path
// starts from). It returns a lazy sequence; runtime errors are reported
// through st, which the caller should check after consuming (or partially
// consuming) the sequence.
func EvalPath(st *State, ctx Context, path *ast.Path, current FieldValue) iter.Seq[FieldValue] {
	start := current
	if path.Absolute {
		start = ctx.Root
	}

	seq := single(start)
	for _, seg := range path.Segments {
		seq = stepSegment(st, ctx, seg, seq)
		for _, pred := range seg.Predicates {
			seq = applyPredicate(st, ctx, pred, seq)
		}
	}
	return seq
}

// firstValue drains seq for its first element, returning its Value() (or
// nil if the sequence is empty). Used wherever a nested path is evaluated
// as an operand rather than as a selection in its own right.
func firstValue(seq iter.Seq[FieldValue]) (any, bool) {
	for fv := range seq {
		return fv.Value(), true
	}
	return nil, false
}

// firstFieldValue is like firstValue but keeps the FieldValue itself, for
// callers (fieldName) that need its field-descriptor/name rather than its
// plain value.
func firstFieldValue(seq iter.Seq[FieldValue]) (FieldValue, bool) {
	for fv := range seq {
		return fv, true
	}
	return FieldValue{}, false
}
