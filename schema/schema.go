// Package schema describes the field types a host record can carry. The
// engine consults a Schema to know a record's field order and declared
// types. Schemas come from the host, or from genrecord.Infer for records
// built from decoded JSON (jsonrecord.Decode, unescapeJson).
package schema

import "fmt"

// Type is one of the field types the Record Path value model understands.
type Type int

const (
	Unknown Type = iota
	Boolean
	Byte
	Short
	Int
	Long
	Float
	Double
	Decimal
	String
	Date
	Time
	Timestamp
	UUID
	Char
	Array
	Map
	Record
	Choice
	Null
)

var typeNames = [...]string{
	Unknown:   "unknown",
	Boolean:   "boolean",
	Byte:      "byte",
	Short:     "short",
	Int:       "int",
	Long:      "long",
	Float:     "float",
	Double:    "double",
	Decimal:   "decimal",
	String:    "string",
	Date:      "date",
	Time:      "time",
	Timestamp: "timestamp",
	UUID:      "uuid",
	Char:      "char",
	Array:     "array",
	Map:       "map",
	Record:    "record",
	Choice:    "choice",
	Null:      "null",
}

func (t Type) String() string {
	if int(t) < 0 || int(t) >= len(typeNames) || typeNames[t] == "" {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// IsNumeric reports whether t is one of the numeric field types. The
// evaluator's comparison widening (internal/coerce) classifies values by
// their Go type and does not call it.
func (t Type) IsNumeric() bool {
	switch t {
	case Byte, Short, Int, Long, Float, Double, Decimal:
		return true
	}
	return false
}

// Field describes one named slot of a Schema.
type Field struct {
	Name Name
	Type Type

	// Nullable reports whether the field's value may legitimately be nil.
	// The evaluator does not consult it: an existence test treats a nil
	// value as absent either way.
	Nullable bool

	// ElementType is the declared type of an Array field's elements, or of
	// a Map field's values. It is Unknown for every other Type.
	ElementType Type

	// ChoiceTypes lists the possible concrete types of a Choice field.
	ChoiceTypes []Type
}

// Name is a field's declared name plus any aliases a host schema chooses
// to expose (record schemas commonly support alternate/legacy names).
type Name struct {
	Value   string
	Aliases []string
}

// Matches reports whether candidate equals the field's canonical name or
// one of its aliases.
func (n Name) Matches(candidate string) bool {
	if n.Value == candidate {
		return true
	}
	for _, alias := range n.Aliases {
		if alias == candidate {
			return true
		}
	}
	return false
}

// Schema is an ordered list of fields, looked up either by position (for
// deterministic iteration, e.g. a bare '*' wildcard segment) or by name
// (for a NameSegment).
type Schema struct {
	fields  []Field
	byName  map[string]int
}

// New builds a Schema from an ordered field list. Field order is preserved
// for wildcard iteration.
func New(fields []Field) *Schema {
	s := &Schema{fields: fields, byName: make(map[string]int, len(fields))}
	for i, f := range fields {
		s.byName[f.Name.Value] = i
		for _, alias := range f.Name.Aliases {
			if _, exists := s.byName[alias]; !exists {
				s.byName[alias] = i
			}
		}
	}
	return s
}

// Fields returns every field in declaration order.
func (s *Schema) Fields() []Field {
	return s.fields
}

// Field returns the field named name (canonical or alias) and true, or the
// zero Field and false if name isn't declared.
func (s *Schema) Field(name string) (Field, bool) {
	idx, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[idx], true
}

// Len returns the number of declared fields.
func (s *Schema) Len() int { return len(s.fields) }
