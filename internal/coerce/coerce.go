// Package coerce implements the value conversions shared by the evaluator's
// comparison semantics and the function library's to_* functions, in the
// style of the numeric common-type widening found in
// github.com/grafana/agent/pkg/river/vm/internal/value's ops.go.
package coerce

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// numberKind classifies a Go value as either an integral or a floating
// kind for the purposes of picking a common comparison type.
type numberKind int

const (
	notNumber numberKind = iota
	kindInt
	kindFloat
)

func classify(v any) numberKind {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return kindInt
	case float32, float64:
		return kindFloat
	default:
		return notNumber
	}
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	}
	return 0
}

func asFloat64(v any) float64 {
	switch n := v.(type) {
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		return float64(asInt64(v))
	}
}

// Compare orders left against right, returning -1, 0, or 1. When both
// operands are numeric, they are widened to a common type (int64 unless
// either side is floating, per fitNumberTypes-style promotion) before
// comparing. When either side is a string (or both), both sides are
// rendered via ToString and compared lexically. Any other combination
// compares by rendering both sides to string, which keeps comparisons
// total instead of partial.
func Compare(left, right any) int {
	lk, rk := classify(left), classify(right)
	if lk != notNumber && rk != notNumber {
		if lk == kindFloat || rk == kindFloat {
			lf, rf := asFloat64(left), asFloat64(right)
			switch {
			case lf < rf:
				return -1
			case lf > rf:
				return 1
			default:
				return 0
			}
		}
		li, ri := asInt64(left), asInt64(right)
		switch {
		case li < ri:
			return -1
		case li > ri:
			return 1
		default:
			return 0
		}
	}

	ls, rs := ToString(left), ToString(right)
	return strings.Compare(ls, rs)
}

// Equal reports whether left and right represent the same value under the
// same widening rules Compare uses.
func Equal(left, right any) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	return Compare(left, right) == 0
}

// ToString renders any value the way the to_string() function does: nil
// becomes "", booleans/numbers use their natural decimal form, and
// time.Time values use RFC3339.
func ToString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case []byte:
		return string(x)
	case float32, float64:
		return strconv.FormatFloat(asFloat64(x), 'f', -1, 64)
	default:
		if classify(v) != notNumber {
			return strconv.FormatInt(asInt64(v), 10)
		}
		return fmt.Sprintf("%v", x)
	}
}

// ToLong parses v as an integer the way to_long() does.
func ToLong(v any) (int64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to a number", x)
		}
		return n, nil
	default:
		if classify(v) == kindFloat {
			return int64(asFloat64(v)), nil
		}
		if classify(v) == kindInt {
			return asInt64(v), nil
		}
		return 0, fmt.Errorf("cannot convert %T to a number", v)
	}
}

// ToDouble parses v as a float the way to_double() does.
func ToDouble(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to a number", x)
		}
		return f, nil
	default:
		if classify(v) != notNumber {
			return asFloat64(v), nil
		}
		return 0, fmt.Errorf("cannot convert %T to a number", v)
	}
}

// ToBoolean parses v the way to_boolean() does: the strings "true"/"false"
// (case-insensitive) convert directly; a zero/non-zero number converts by
// its truthiness; anything else is an error.
func ToBoolean(v any) (bool, error) {
	switch x := v.(type) {
	case nil:
		return false, nil
	case bool:
		return x, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return false, fmt.Errorf("cannot convert %q to a boolean", x)
		}
	default:
		if classify(v) != notNumber {
			return asFloat64(v) != 0, nil
		}
		return false, fmt.Errorf("cannot convert %T to a boolean", v)
	}
}

// layouts tried by ToDate, in order, covering the common record formats
// (date-only, RFC3339 timestamp, and a couple of widely used fallbacks).
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ToDate parses v as a time.Time the way to_date() does, optionally with an
// explicit layout (Go reference-time form) supplied by the caller.
func ToDate(v any, layout string) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		if layout != "" {
			return time.Parse(layout, x)
		}
		var lastErr error
		for _, l := range layouts {
			if t, err := time.Parse(l, x); err == nil {
				return t, nil
			} else {
				lastErr = err
			}
		}
		return time.Time{}, lastErr
	default:
		return time.Time{}, fmt.Errorf("cannot convert %T to a date", v)
	}
}

// ToByteArray renders v to its UTF-8 byte representation the way
// to_byte_array() does.
func ToByteArray(v any) ([]byte, error) {
	if b, ok := v.([]byte); ok {
		return b, nil
	}
	return []byte(ToString(v)), nil
}
