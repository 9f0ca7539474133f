// Package record defines the capability interfaces a host's data types must
// satisfy for the engine to navigate and mutate them. The engine never
// assumes a concrete representation; it only ever calls these interfaces.
package record

import "github.com/flowforge/recordpath/schema"

// Record is a host-provided object that carries a Schema and field values
// addressable by name.
type Record interface {
	// Schema returns the record's field declarations, in the order they
	// should be visited by a bare wildcard segment.
	Schema() *schema.Schema

	// GetValue returns the value stored for name and whether the field is
	// present. A present field with a nil value is not the same as an
	// absent field: GetValue reports ok=true, value=nil for an explicit
	// null.
	GetValue(name string) (value any, ok bool)

	// SetValue writes v into the field named name. Implementations should
	// reject a value whose Go type doesn't fit the field's declared
	// schema.Type.
	SetValue(name string, v any) error
}

// Map is a host-provided string-keyed collection with no declared schema
// (every entry can carry an independent value).
type Map interface {
	// Keys returns the map's keys in iteration order.
	Keys() []string

	// Get returns the value for key and whether it is present.
	Get(key string) (value any, ok bool)

	// Set writes v for key, creating the entry if it didn't already exist.
	Set(key string, v any) error
}

// Array is a host-provided ordered, index-addressable collection.
type Array interface {
	// Len returns the number of elements.
	Len() int

	// Get returns the element at index i (0-based).
	Get(i int) (value any, ok bool)

	// Set overwrites the element at index i.
	Set(i int, v any) error
}

// AsRecord type-asserts v to Record, returning ok=false for anything else
// (including nil).
func AsRecord(v any) (Record, bool) {
	r, ok := v.(Record)
	return r, ok
}

// AsMap type-asserts v to Map.
func AsMap(v any) (Map, bool) {
	m, ok := v.(Map)
	return m, ok
}

// AsArray type-asserts v to Array.
func AsArray(v any) (Array, bool) {
	a, ok := v.(Array)
	return a, ok
}
