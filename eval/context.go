package eval

import "iter"

// Context carries the parts of evaluation state that stay constant across
// an entire path evaluation: the absolute root, consulted whenever a
// nested path expression (inside a predicate or function argument) starts
// with '/' or '//'.
type Context struct {
	Root FieldValue
}

// State accumulates the first runtime error hit while lazily evaluating a
// path, the way a single shared "did anything go wrong yet" flag lets a
// lazy iter.Seq stop cleanly without needing per-element (value, error)
// pairs.
type State struct {
	err error
}

// Err returns the first runtime error encountered so far. It is only
// meaningful once the caller has either fully drained the sequence, or
// deliberately wants to check after partial consumption.
func (s *State) Err() error { return s.err }

func (s *State) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func single(fv FieldValue) iter.Seq[FieldValue] {
	return func(yield func(FieldValue) bool) {
		yield(fv)
	}
}

func empty(yield func(FieldValue) bool) {}
