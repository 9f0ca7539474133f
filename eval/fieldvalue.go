// Package eval implements the Record Path evaluator: walking a compiled
// *ast.Path over a host record.Record and producing the matching field
// values lazily, using Go 1.23's iter.Seq so a consumer can stop early
// without the engine ever spinning up a goroutine.
package eval

import (
	"github.com/flowforge/recordpath/record"
	"github.com/flowforge/recordpath/schema"
	"github.com/flowforge/recordpath/token"
)

// Writeback classifies how a FieldValue can be written back to its host
// container, per the three writeback shapes in the value model.
type Writeback int

const (
	// WritebackNone marks a FieldValue with no writeback target: the
	// path root itself, or a value synthesized by a function call.
	WritebackNone Writeback = iota
	WritebackRecord
	WritebackMap
	WritebackArray
)

// FieldValue is one selected value plus everything needed to describe its
// place in the tree and, where applicable, write a new value back.
type FieldValue struct {
	value any

	field    schema.Field
	hasField bool
	name     string // field/key name, meaningful for Record and Map writeback

	parent *FieldValue

	writeback    Writeback
	parentRecord record.Record
	parentMap    record.Map
	parentArray  record.Array
	arrayIndex   int
}

// Root constructs the FieldValue seeding evaluation of an absolute path:
// the host's root record, with no parent and no writeback.
func Root(root record.Record) FieldValue {
	return FieldValue{value: root, writeback: WritebackNone}
}

// Value returns the selected value.
func (fv FieldValue) Value() any { return fv.value }

// FieldDescriptor returns the schema.Field describing this value, when the
// value came from a Record field (ok is false for map entries, array
// elements, and the synthetic root/function-result values).
func (fv FieldValue) FieldDescriptor() (schema.Field, bool) { return fv.field, fv.hasField }

// Name returns the field or map-key name this value was reached through,
// or "" for array elements and the root.
func (fv FieldValue) Name() string { return fv.name }

// Parent returns the FieldValue this one was navigated from, and true,
// unless this is the path root (false).
func (fv FieldValue) Parent() (FieldValue, bool) {
	if fv.parent == nil {
		return FieldValue{}, false
	}
	return *fv.parent, true
}

// ParentRecord returns the Record this value is a field of, when its
// writeback shape is WritebackRecord.
func (fv FieldValue) ParentRecord() (record.Record, bool) {
	if fv.writeback != WritebackRecord {
		return nil, false
	}
	return fv.parentRecord, true
}

// ArrayIndex returns the index this value occupies in its parent array,
// when its writeback shape is WritebackArray.
func (fv FieldValue) ArrayIndex() (int, bool) {
	if fv.writeback != WritebackArray {
		return 0, false
	}
	return fv.arrayIndex, true
}

// UpdateValue writes v back into the field value's host container. It
// fails with token.KindNoWriteback for a value with no writeback target
// (the root, or a function-call result).
func (fv FieldValue) UpdateValue(v any) error {
	switch fv.writeback {
	case WritebackRecord:
		return fv.parentRecord.SetValue(fv.name, v)
	case WritebackMap:
		return fv.parentMap.Set(fv.name, v)
	case WritebackArray:
		return fv.parentArray.Set(fv.arrayIndex, v)
	default:
		return &token.Error{
			Kind:    token.KindNoWriteback,
			Message: "this field value has no host container to write back to",
		}
	}
}

func childOfRecord(parent FieldValue, r record.Record, f schema.Field, value any) FieldValue {
	return FieldValue{
		value: value, field: f, hasField: true, name: f.Name.Value,
		parent: &parent, writeback: WritebackRecord, parentRecord: r,
	}
}

func childOfMap(parent FieldValue, m record.Map, key string, value any) FieldValue {
	return FieldValue{
		value: value, name: key,
		parent: &parent, writeback: WritebackMap, parentMap: m,
	}
}

func childOfArray(parent FieldValue, a record.Array, index int, value any) FieldValue {
	return FieldValue{
		value: value,
		parent: &parent, writeback: WritebackArray, parentArray: a, arrayIndex: index,
	}
}

func noWriteback(parent FieldValue, value any) FieldValue {
	return FieldValue{value: value, parent: &parent, writeback: WritebackNone}
}
