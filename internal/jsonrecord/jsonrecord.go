// Package jsonrecord adapts JSON documents to the record capability
// interfaces using github.com/json-iterator/go, and logs the decode step
// with go-kit/log the way the rest of the ambient stack does.
package jsonrecord

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	jsoniter "github.com/json-iterator/go"

	"github.com/flowforge/recordpath/internal/genrecord"
	"github.com/flowforge/recordpath/record"
)

// Decode parses a JSON document into a record.Record whose schema is
// inferred from the decoded value's runtime shape.
func Decode(logger log.Logger, data []byte) (record.Record, error) {
	var v any
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("jsonrecord: decode: %w", err)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("jsonrecord: top-level JSON value must be an object, got %T", v)
	}

	level.Debug(logger).Log("msg", "decoded json record", "fields", len(obj))
	return genrecord.Infer(obj), nil
}

// Encode serializes a record.Record (or any decoded value reachable from
// one) back to JSON, for the CLI demo's --set output.
func Encode(logger log.Logger, v any) ([]byte, error) {
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(toPlain(v), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("jsonrecord: encode: %w", err)
	}
	level.Debug(logger).Log("msg", "encoded json record", "bytes", len(out))
	return out, nil
}

// toPlain strips the genrecord wrappers back to plain Go maps/slices so
// the JSON encoder sees something it natively knows how to marshal.
func toPlain(v any) any {
	switch x := v.(type) {
	case record.Record:
		out := make(map[string]any)
		for _, f := range x.Schema().Fields() {
			if val, ok := x.GetValue(f.Name.Value); ok {
				out[f.Name.Value] = toPlain(val)
			}
		}
		return out
	case record.Map:
		out := make(map[string]any)
		for _, k := range x.Keys() {
			if val, ok := x.Get(k); ok {
				out[k] = toPlain(val)
			}
		}
		return out
	case record.Array:
		out := make([]any, x.Len())
		for i := range out {
			val, _ := x.Get(i)
			out[i] = toPlain(val)
		}
		return out
	default:
		return v
	}
}
