package eval

import (
	"iter"

	"github.com/flowforge/recordpath/ast"
	"github.com/flowforge/recordpath/record"
)

// applyPredicate narrows or re-shapes in according to one bracketed
// predicate: an index selection, a range, a wildcard, a list of map keys,
// or a filter expression.
func applyPredicate(st *State, ctx Context, pred ast.Predicate, in iter.Seq[FieldValue]) iter.Seq[FieldValue] {
	switch p := pred.(type) {
	case *ast.ArrayIndexPredicate:
		return arrayIndexPredicate(p, in)
	case *ast.WildcardPredicate:
		return wildcardPredicate(in)
	case *ast.NameListPredicate:
		return nameListPredicate(p, in)
	case *ast.FilterPredicate:
		return filterPredicate(st, ctx, p, in)
	default:
		return empty
	}
}

func arrayIndexPredicate(p *ast.ArrayIndexPredicate, in iter.Seq[FieldValue]) iter.Seq[FieldValue] {
	return func(yield func(FieldValue) bool) {
		for fv := range in {
			arr, ok := record.AsArray(fv.value)
			if !ok {
				continue
			}
			n := arr.Len()
			for _, item := range p.Items {
				if item.IsRange {
					from, fromOK := normalizeIndex(item.From, n)
					to, toOK := normalizeIndex(item.To, n)
					if !fromOK || !toOK {
						continue
					}
					for i := from; i <= to; i++ {
						val, ok := arr.Get(i)
						if !ok {
							continue
						}
						if !yield(childOfArray(fv, arr, i, val)) {
							return
						}
					}
					continue
				}

				i, ok := normalizeIndex(item.Index, n)
				if !ok {
					continue
				}
				val, ok := arr.Get(i)
				if !ok {
					continue
				}
				if !yield(childOfArray(fv, arr, i, val)) {
					return
				}
			}
		}
	}
}

// normalizeIndex resolves a (possibly negative, Python-style) index
// against a collection of length n. -1 is the last element.
func normalizeIndex(idx, n int) (int, bool) {
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}

func wildcardPredicate(in iter.Seq[FieldValue]) iter.Seq[FieldValue] {
	return func(yield func(FieldValue) bool) {
		for fv := range in {
			for child := range children(fv) {
				if !yield(child) {
					return
				}
			}
		}
	}
}

func nameListPredicate(p *ast.NameListPredicate, in iter.Seq[FieldValue]) iter.Seq[FieldValue] {
	return func(yield func(FieldValue) bool) {
		for fv := range in {
			m, ok := record.AsMap(fv.value)
			if !ok {
				continue
			}
			for _, key := range p.Keys {
				val, ok := m.Get(key)
				if !ok {
					continue
				}
				if !yield(childOfMap(fv, m, key, val)) {
					return
				}
			}
		}
	}
}

// filterPredicate narrows fv's to those for which Expr is truthy. When fv
// wraps a collection (an array or a map), the predicate is evaluated once
// per element/entry, with that element as the "." context — this is what
// lets /accounts[./state != 'NY'] test each account rather than the
// accounts array as a whole. A non-collection fv is tested directly.
func filterPredicate(st *State, ctx Context, p *ast.FilterPredicate, in iter.Seq[FieldValue]) iter.Seq[FieldValue] {
	return func(yield func(FieldValue) bool) {
		for fv := range in {
			var candidates iter.Seq[FieldValue]
			switch fv.value.(type) {
			case record.Array, record.Map:
				candidates = children(fv)
			default:
				candidates = single(fv)
			}

			for cand := range candidates {
				ok, err := predicateTruthy(st, ctx, cand, p.Expr)
				if err != nil {
					st.fail(err)
					return
				}
				if ok && !yield(cand) {
					return
				}
			}
			if st.Err() != nil {
				return
			}
		}
	}
}
