// Package function implements the Record Path function library: the fixed
// set of named functions callable from a path expression, plus the
// compile-time metadata (arity, filter-safety) the parser consults while
// validating predicate placement.
package function

import "fmt"

// Arity describes how many arguments a function accepts. Max of -1 means
// unbounded.
type Arity struct {
	Min, Max int
}

// Accepts reports whether n arguments satisfies the arity.
func (a Arity) Accepts(n int) bool {
	if n < a.Min {
		return false
	}
	if a.Max >= 0 && n > a.Max {
		return false
	}
	return true
}

// String renders the arity the way a compile error should describe it.
func (a Arity) String() string {
	switch {
	case a.Max < 0:
		return fmt.Sprintf("at least %d argument(s)", a.Min)
	case a.Min == a.Max:
		return fmt.Sprintf("exactly %d argument(s)", a.Min)
	default:
		return fmt.Sprintf("between %d and %d argument(s)", a.Min, a.Max)
	}
}

// Meta is the compile-time description of one function, consulted by the
// parser (arity, filter-safety) and by the evaluator (Eval).
type Meta struct {
	Name string
	Arity

	// FilterSafe marks functions whose return value is meaningful as a
	// bare predicate, e.g. [isEmpty(.)] rather than [isEmpty(.) = true].
	// A non-filter-safe function used as a bare predicate is a
	// predicate-placement compile error.
	FilterSafe bool

	// SpecialForm marks a function whose arguments can't be evaluated to
	// plain Go values before the call runs (count and fieldName need the
	// surrounding field-value/path context instead). Eval is nil for
	// these; the evaluator package implements their behavior directly.
	SpecialForm bool

	// Eval implements the function. args have already been evaluated to
	// Go values (string, int64, float64, bool, time.Time, []byte, nil,
	// or a record/map/array capability) by the caller. Eval is nil when
	// SpecialForm is set.
	Eval func(args []any) (any, error)

	// ArgCountOK, when set, is a stricter compile-time check applied in
	// addition to Arity — e.g. mapOf's key/value pairing needs an even
	// count, which Arity{2,-1} alone can't express. A count Arity accepts
	// but ArgCountOK rejects is still a parse-time KindArity error, not an
	// evaluation-time failure.
	ArgCountOK func(n int) bool
}

// registry is populated once at init() and never mutated afterwards, so
// concurrent Lookup calls need no locking.
var registry = map[string]*Meta{}

func register(m *Meta) {
	if _, exists := registry[m.Name]; exists {
		panic("function: duplicate registration for " + m.Name)
	}
	registry[m.Name] = m
}

// Lookup returns the Meta for name, or nil if name isn't a known function.
func Lookup(name string) *Meta {
	return registry[name]
}

// Names returns every registered function name, for diagnostics.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
