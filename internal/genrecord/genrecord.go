// Package genrecord provides reference implementations of the record
// capability interfaces, backed by plain Go maps and slices. It exists so
// tests and the CLI demo have something concrete to evaluate paths
// against; hosts embedding the engine are expected to adapt their own
// record types instead.
package genrecord

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/mitchellh/mapstructure"

	"github.com/flowforge/recordpath/record"
	"github.com/flowforge/recordpath/schema"
)

// Record is a schema.Schema-backed record.Record over a map of field
// values.
type Record struct {
	schema *schema.Schema
	values map[string]any
}

// New builds a Record from an explicit schema and a matching value map.
func New(s *schema.Schema, values map[string]any) *Record {
	return &Record{schema: s, values: values}
}

// Infer builds a Record whose schema.Schema is derived from the runtime
// types found in values: useful for ad hoc records (as produced by
// mapOf(), or read from JSON) that carry no declared schema of their own.
func Infer(values map[string]any) *Record {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]schema.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, schema.Field{
			Name:     schema.Name{Value: k},
			Type:     inferType(values[k]),
			Nullable: values[k] == nil,
		})
	}
	return &Record{schema: schema.New(fields), values: values}
}

// FromStruct decodes an arbitrary Go struct (tagged with "mapstructure"
// field names, same as any other mapstructure consumer) into a Record.
// It lets a host that already has typed domain objects - say, an order
// struct loaded from its own ORM - hand it to the engine without writing
// a bespoke record.Record adapter first. Nested structs decode into Maps,
// and a slice-of-struct field of v decodes into an Array of Maps, the same
// way a JSON document would; slice fields inside nested structs keep their
// typed Go slice value.
func FromStruct(v any) (*Record, error) {
	var raw map[string]any
	if err := mapstructure.Decode(v, &raw); err != nil {
		return nil, fmt.Errorf("genrecord: decoding struct: %w", err)
	}
	for k, val := range raw {
		rv := reflect.ValueOf(val)
		if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() != reflect.Struct {
			continue
		}
		items := make([]any, rv.Len())
		for i := range items {
			var m map[string]any
			if err := mapstructure.Decode(rv.Index(i).Interface(), &m); err != nil {
				return nil, fmt.Errorf("genrecord: decoding struct: %w", err)
			}
			items[i] = m
		}
		raw[k] = items
	}
	return Infer(raw), nil
}

func inferType(v any) schema.Type {
	switch x := v.(type) {
	case nil:
		return schema.Null
	case bool:
		return schema.Boolean
	case string:
		return schema.String
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return schema.Long
	case float32, float64:
		return schema.Double
	case map[string]any:
		return schema.Map
	case []any:
		return schema.Array
	case record.Record:
		return schema.Record
	case record.Map:
		return schema.Map
	case record.Array:
		return schema.Array
	default:
		_ = x
		return schema.Unknown
	}
}

func (r *Record) Schema() *schema.Schema { return r.schema }

func (r *Record) GetValue(name string) (any, bool) {
	v, ok := r.values[name]
	if !ok {
		return nil, false
	}
	return wrap(v), true
}

func (r *Record) SetValue(name string, v any) error {
	if _, ok := r.schema.Field(name); !ok {
		return fmt.Errorf("genrecord: field %q is not declared in this record's schema", name)
	}
	r.values[name] = unwrap(v)
	return nil
}

// Map is a record.Map over a plain Go map, with keys iterated in a stable
// sorted order so evaluation is deterministic.
type Map struct {
	values map[string]any
}

// NewMap wraps an existing map[string]any as a record.Map.
func NewMap(values map[string]any) *Map { return &Map{values: values} }

func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *Map) Get(key string) (any, bool) {
	v, ok := m.values[key]
	if !ok {
		return nil, false
	}
	return wrap(v), true
}

func (m *Map) Set(key string, v any) error {
	m.values[key] = unwrap(v)
	return nil
}

// Array is a record.Array over a plain Go slice.
type Array struct {
	values []any
}

// NewArray wraps an existing []any as a record.Array.
func NewArray(values []any) *Array { return &Array{values: values} }

func (a *Array) Len() int { return len(a.values) }

func (a *Array) Get(i int) (any, bool) {
	if i < 0 || i >= len(a.values) {
		return nil, false
	}
	return wrap(a.values[i]), true
}

func (a *Array) Set(i int, v any) error {
	if i < 0 || i >= len(a.values) {
		return fmt.Errorf("genrecord: index %d out of range (len %d)", i, len(a.values))
	}
	a.values[i] = unwrap(v)
	return nil
}

// wrap lifts a raw map[string]any/[]any value (as produced by JSON
// decoding, or by the mapOf() function) into the record.Map/record.Array
// capability the evaluator expects.
func wrap(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return NewMap(x)
	case []any:
		return NewArray(x)
	default:
		return v
	}
}

// unwrap is wrap's inverse, applied when a value is written back so the
// backing Go value stays in its original representation rather than
// accumulating nested genrecord wrappers.
func unwrap(v any) any {
	switch x := v.(type) {
	case *Map:
		return x.values
	case *Array:
		return x.values
	default:
		return v
	}
}

var (
	_ record.Record = (*Record)(nil)
	_ record.Map    = (*Map)(nil)
	_ record.Array  = (*Array)(nil)
)
