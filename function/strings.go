package function

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/flowforge/recordpath/internal/coerce"
	"github.com/flowforge/recordpath/internal/genrecord"
	"github.com/flowforge/recordpath/internal/regexcache"
	"github.com/flowforge/recordpath/record"
	"github.com/flowforge/recordpath/token"
)

func init() {
	register(&Meta{Name: "substring", Arity: Arity{2, 3}, Eval: evalSubstring})
	register(&Meta{Name: "substringBefore", Arity: Arity{2, 2}, Eval: evalSubstringBefore})
	register(&Meta{Name: "substringBeforeLast", Arity: Arity{2, 2}, Eval: evalSubstringBeforeLast})
	register(&Meta{Name: "substringAfter", Arity: Arity{2, 2}, Eval: evalSubstringAfter})
	register(&Meta{Name: "substringAfterLast", Arity: Arity{2, 2}, Eval: evalSubstringAfterLast})

	register(&Meta{Name: "contains", Arity: Arity{2, 2}, FilterSafe: true, Eval: evalContains})
	register(&Meta{Name: "startsWith", Arity: Arity{2, 2}, FilterSafe: true, Eval: evalStartsWith})
	register(&Meta{Name: "endsWith", Arity: Arity{2, 2}, FilterSafe: true, Eval: evalEndsWith})
	register(&Meta{Name: "containsRegex", Arity: Arity{2, 2}, FilterSafe: true, Eval: evalContainsRegex})
	register(&Meta{Name: "matchesRegex", Arity: Arity{2, 2}, FilterSafe: true, Eval: evalMatchesRegex})

	register(&Meta{Name: "replace", Arity: Arity{3, 3}, Eval: evalReplace})
	register(&Meta{Name: "replaceRegex", Arity: Arity{3, 3}, Eval: evalReplaceRegex})
	register(&Meta{Name: "replaceNull", Arity: Arity{2, 2}, Eval: evalReplaceNull})

	register(&Meta{Name: "toUpperCase", Arity: Arity{1, 1}, Eval: evalToUpperCase})
	register(&Meta{Name: "toLowerCase", Arity: Arity{1, 1}, Eval: evalToLowerCase})
	register(&Meta{Name: "trim", Arity: Arity{1, 1}, Eval: evalTrim})

	register(&Meta{Name: "isEmpty", Arity: Arity{1, 1}, FilterSafe: true, Eval: evalIsEmpty})
	register(&Meta{Name: "isBlank", Arity: Arity{1, 1}, FilterSafe: true, Eval: evalIsBlank})

	register(&Meta{Name: "padLeft", Arity: Arity{2, 3}, Eval: evalPadLeft})
	register(&Meta{Name: "padRight", Arity: Arity{2, 3}, Eval: evalPadRight})

	register(&Meta{Name: "concat", Arity: Arity{1, -1}, Eval: evalConcat})

	register(&Meta{Name: "escapeJson", Arity: Arity{1, 1}, Eval: evalEscapeJSON})
	register(&Meta{Name: "unescapeJson", Arity: Arity{1, 2}, Eval: evalUnescapeJSON})
}

func str(v any) string { return coerce.ToString(v) }

func evalSubstring(args []any) (any, error) {
	s := []rune(str(args[0]))
	start, err := coerce.ToLong(args[1])
	if err != nil {
		return nil, err
	}
	end := int64(len(s))
	if len(args) == 3 && args[2] != nil {
		end, err = coerce.ToLong(args[2])
		if err != nil {
			return nil, err
		}
	}
	start = clamp(start, 0, int64(len(s)))
	end = clamp(end, start, int64(len(s)))
	return string(s[start:end]), nil
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func evalSubstringBefore(args []any) (any, error) {
	s, sep := str(args[0]), str(args[1])
	if sep == "" {
		return s, nil
	}
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i], nil
	}
	return s, nil
}

func evalSubstringBeforeLast(args []any) (any, error) {
	s, sep := str(args[0]), str(args[1])
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], nil
	}
	return s, nil
}

func evalSubstringAfter(args []any) (any, error) {
	s, sep := str(args[0]), str(args[1])
	if i := strings.Index(s, sep); i >= 0 {
		return s[i+len(sep):], nil
	}
	return s, nil
}

func evalSubstringAfterLast(args []any) (any, error) {
	s, sep := str(args[0]), str(args[1])
	if sep == "" {
		return s, nil
	}
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[i+len(sep):], nil
	}
	return s, nil
}

func evalContains(args []any) (any, error) {
	return strings.Contains(str(args[0]), str(args[1])), nil
}

func evalStartsWith(args []any) (any, error) {
	return strings.HasPrefix(str(args[0]), str(args[1])), nil
}

func evalEndsWith(args []any) (any, error) {
	return strings.HasSuffix(str(args[0]), str(args[1])), nil
}

func evalContainsRegex(args []any) (any, error) {
	re, err := regexcache.Compile(str(args[1]))
	if err != nil {
		return nil, err
	}
	return re.FindStringIndex(str(args[0])) != nil, nil
}

func evalMatchesRegex(args []any) (any, error) {
	re, err := regexcache.Compile(str(args[1]))
	if err != nil {
		return nil, err
	}
	loc := re.FindStringIndex(str(args[0]))
	return loc != nil && loc[0] == 0 && loc[1] == len(str(args[0])), nil
}

func evalReplace(args []any) (any, error) {
	return strings.ReplaceAll(str(args[0]), str(args[1]), str(args[2])), nil
}

func evalReplaceRegex(args []any) (any, error) {
	re, err := regexcache.Compile(str(args[1]))
	if err != nil {
		return nil, err
	}
	return re.ReplaceAllString(str(args[0]), str(args[2])), nil
}

func evalReplaceNull(args []any) (any, error) {
	if args[0] == nil {
		return args[1], nil
	}
	return args[0], nil
}

func evalToUpperCase(args []any) (any, error) { return strings.ToUpper(str(args[0])), nil }
func evalToLowerCase(args []any) (any, error) { return strings.ToLower(str(args[0])), nil }
func evalTrim(args []any) (any, error)        { return strings.TrimSpace(str(args[0])), nil }

func evalIsEmpty(args []any) (any, error) {
	return args[0] == nil || str(args[0]) == "", nil
}

func evalIsBlank(args []any) (any, error) {
	return args[0] == nil || strings.TrimSpace(str(args[0])) == "", nil
}

func evalPadLeft(args []any) (any, error) { return pad(args, true) }

func evalPadRight(args []any) (any, error) { return pad(args, false) }

func pad(args []any, left bool) (any, error) {
	if args[0] == nil {
		return nil, nil
	}
	s := str(args[0])
	width, err := coerce.ToLong(args[1])
	if err != nil {
		return nil, err
	}
	padChar := "_"
	if len(args) == 3 && args[2] != nil {
		padChar = str(args[2])
	}
	if padChar == "" {
		padChar = "_"
	}
	need := int(width) - len([]rune(s))
	if need <= 0 {
		return s, nil
	}
	var b strings.Builder
	for b.Len() < need*len([]byte(padChar)) {
		b.WriteString(padChar)
	}
	padding := []rune(b.String())[:need]
	if left {
		return string(padding) + s, nil
	}
	return s + string(padding), nil
}

func evalConcat(args []any) (any, error) {
	var b strings.Builder
	for _, a := range args {
		b.WriteString(str(a))
	}
	return b.String(), nil
}

// evalEscapeJSON renders args[0] as JSON text: records and maps become
// JSON objects, arrays become JSON arrays, and a bare string/number/bool
// value comes back as its escaped fragment (the surrounding quotes
// Marshal adds for a plain string are stripped, so the result can be
// dropped directly into a larger JSON document or string literal).
func evalEscapeJSON(args []any) (any, error) {
	encoded, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(toPlainJSON(args[0]))
	if err != nil {
		return nil, &token.Error{Kind: token.KindParseFailed, Message: fmt.Sprintf("escapeJson: %v", err)}
	}
	s := string(encoded)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1], nil
	}
	return s, nil
}

// evalUnescapeJSON parses args[0] as JSON text, the inverse of
// evalEscapeJSON: a standalone object/array/number/bool/null parses
// directly, while a bare escaped-string fragment (no enclosing quotes)
// parses as a JSON string. The optional second argument, recordsFromMaps,
// selects whether a decoded JSON object becomes a schema-inferring
// genrecord.Record (true) or a plain genrecord.Map (the default). Either
// way, wildcard iteration visits the object's keys in sorted order:
// genrecord.Infer orders the inferred schema's fields by key.
func evalUnescapeJSON(args []any) (any, error) {
	raw := str(args[0])

	recordsFromMaps := false
	if len(args) == 2 && args[1] != nil {
		b, err := coerce.ToBoolean(args[1])
		if err != nil {
			return nil, err
		}
		recordsFromMaps = b
	}

	var v any
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(raw, &v); err == nil {
		return wrapDecodedJSON(v, recordsFromMaps), nil
	}

	var s string
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(`"`+raw+`"`, &s); err != nil {
		return nil, &token.Error{Kind: token.KindParseFailed, Message: fmt.Sprintf("unescapeJson: %v", err)}
	}
	return s, nil
}

// toPlainJSON strips the record/map/array capability wrappers back to
// plain Go maps/slices so the JSON encoder can marshal them natively.
func toPlainJSON(v any) any {
	switch x := v.(type) {
	case record.Record:
		out := make(map[string]any, x.Schema().Len())
		for _, f := range x.Schema().Fields() {
			if val, ok := x.GetValue(f.Name.Value); ok {
				out[f.Name.Value] = toPlainJSON(val)
			}
		}
		return out
	case record.Map:
		out := make(map[string]any)
		for _, k := range x.Keys() {
			if val, ok := x.Get(k); ok {
				out[k] = toPlainJSON(val)
			}
		}
		return out
	case record.Array:
		out := make([]any, x.Len())
		for i := range out {
			val, _ := x.Get(i)
			out[i] = toPlainJSON(val)
		}
		return out
	default:
		return v
	}
}

// wrapDecodedJSON lifts a freshly jsoniter-decoded map[string]any/[]any
// tree into the genrecord capability types, recursively, so the result
// can be navigated further by a path step the way any other container
// field value can (e.g. `unescapeJson(.)/accounts[0]`).
func wrapDecodedJSON(v any, recordsFromMaps bool) any {
	switch x := v.(type) {
	case map[string]any:
		wrapped := make(map[string]any, len(x))
		for k, val := range x {
			wrapped[k] = wrapDecodedJSON(val, recordsFromMaps)
		}
		if recordsFromMaps {
			return genrecord.Infer(wrapped)
		}
		return genrecord.NewMap(wrapped)
	case []any:
		wrapped := make([]any, len(x))
		for i, val := range x {
			wrapped[i] = wrapDecodedJSON(val, recordsFromMaps)
		}
		return genrecord.NewArray(wrapped)
	default:
		return x
	}
}
