package eval

import (
	"iter"

	"github.com/flowforge/recordpath/ast"
	"github.com/flowforge/recordpath/record"
)

// stepSegment applies one path segment to every FieldValue in in,
// expanding through all descendants first when seg.Descendant is set.
func stepSegment(st *State, ctx Context, seg *ast.SegmentNode, in iter.Seq[FieldValue]) iter.Seq[FieldValue] {
	return func(yield func(FieldValue) bool) {
		for fv := range in {
			if st.Err() != nil {
				return
			}

			var candidates iter.Seq[FieldValue]
			if seg.Descendant {
				candidates = descendantOrSelf(fv)
			} else {
				candidates = single(fv)
			}

			for cand := range candidates {
				for out := range applySingleStep(st, ctx, seg.Base, cand) {
					if !yield(out) {
						return
					}
				}
				if st.Err() != nil {
					return
				}
			}
		}
	}
}

// applySingleStep resolves base against one candidate FieldValue,
// without descendant expansion (that's handled by stepSegment).
func applySingleStep(st *State, ctx Context, base ast.Segment, fv FieldValue) iter.Seq[FieldValue] {
	switch b := base.(type) {
	case *ast.SelfSegment:
		return single(fv)

	case *ast.ParentSegment:
		if parent, ok := fv.Parent(); ok {
			return single(parent)
		}
		return empty

	case *ast.WildcardSegment:
		return children(fv)

	case *ast.NameSegment:
		return nameStep(fv, b.Name)

	case *ast.FunctionSegment:
		return func(yield func(FieldValue) bool) {
			result, err := evalCallExpr(st, ctx, fv, b.Call)
			if err != nil {
				st.fail(err)
				return
			}
			yield(noWriteback(fv, result))
		}

	default:
		return empty
	}
}

func nameStep(fv FieldValue, name string) iter.Seq[FieldValue] {
	return func(yield func(FieldValue) bool) {
		switch v := fv.value.(type) {
		case record.Record:
			f, ok := v.Schema().Field(name)
			if !ok {
				return
			}
			val, ok := v.GetValue(name)
			if !ok {
				return
			}
			yield(childOfRecord(fv, v, f, val))

		case record.Map:
			val, ok := v.Get(name)
			if !ok {
				return
			}
			yield(childOfMap(fv, v, name, val))
		}
	}
}
