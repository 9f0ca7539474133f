package eval

import (
	"iter"

	"github.com/flowforge/recordpath/record"
)

// children yields the direct children of fv: a record's fields in schema
// order, a map's entries in the order its Keys method returns, or an
// array's elements in index order. A scalar fv has no children and yields
// nothing.
func children(fv FieldValue) iter.Seq[FieldValue] {
	return func(yield func(FieldValue) bool) {
		switch v := fv.value.(type) {
		case record.Record:
			for _, f := range v.Schema().Fields() {
				val, ok := v.GetValue(f.Name.Value)
				if !ok {
					continue
				}
				if !yield(childOfRecord(fv, v, f, val)) {
					return
				}
			}
		case record.Map:
			for _, k := range v.Keys() {
				val, ok := v.Get(k)
				if !ok {
					continue
				}
				if !yield(childOfMap(fv, v, k, val)) {
					return
				}
			}
		case record.Array:
			for i := 0; i < v.Len(); i++ {
				val, ok := v.Get(i)
				if !ok {
					continue
				}
				if !yield(childOfArray(fv, v, i, val)) {
					return
				}
			}
		}
	}
}

// descendantOrSelf yields fv followed by every descendant reachable from
// it, in pre-order. It assumes the host data forms a tree (no back
// references), consistent with "structured records" rather than general
// object graphs.
func descendantOrSelf(fv FieldValue) iter.Seq[FieldValue] {
	return func(yield func(FieldValue) bool) {
		var walk func(FieldValue) bool
		walk = func(cur FieldValue) bool {
			if !yield(cur) {
				return false
			}
			for child := range children(cur) {
				if !walk(child) {
					return false
				}
			}
			return true
		}
		walk(fv)
	}
}
