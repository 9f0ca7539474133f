package function

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flowforge/recordpath/internal/coerce"
	"github.com/flowforge/recordpath/token"
)

func init() {
	register(&Meta{Name: "count", Arity: Arity{1, 1}, SpecialForm: true})
	register(&Meta{Name: "fieldName", Arity: Arity{0, 1}, SpecialForm: true})

	register(&Meta{Name: "coalesce", Arity: Arity{1, -1}, Eval: evalCoalesce})
	register(&Meta{Name: "not", Arity: Arity{1, 1}, FilterSafe: true, Eval: evalNot})

	register(&Meta{Name: "hash", Arity: Arity{2, 2}, Eval: evalHash})
	register(&Meta{Name: "uuid5", Arity: Arity{1, 2}, Eval: evalUUID5})

	register(&Meta{Name: "base64Encode", Arity: Arity{1, 1}, Eval: evalBase64Encode})
	register(&Meta{Name: "base64Decode", Arity: Arity{1, 1}, Eval: evalBase64Decode})

	register(&Meta{Name: "toString", Arity: Arity{1, 2}, Eval: evalToString})
	register(&Meta{Name: "toBytes", Arity: Arity{1, 2}, Eval: evalToBytes})

	register(&Meta{Name: "toDate", Arity: Arity{1, 2}, Eval: evalToDate})
	register(&Meta{Name: "format", Arity: Arity{2, 3}, Eval: evalFormat})

	register(&Meta{
		Name: "mapOf", Arity: Arity{2, -1}, Eval: evalMapOf,
		ArgCountOK: func(n int) bool { return n%2 == 0 },
	})
}

// supportedCharset reports whether charset (case-insensitive, "" meaning
// the default) names one of the UTF-8 encodings this build actually
// supports; see DESIGN.md for why non-UTF-8 charsets were never wired.
func supportedCharset(charset string) bool {
	switch strings.ToUpper(strings.TrimSpace(charset)) {
	case "", "UTF-8", "UTF8":
		return true
	}
	return false
}

func evalCoalesce(args []any) (any, error) {
	for _, a := range args {
		if a != nil {
			return a, nil
		}
	}
	return nil, nil
}

func evalNot(args []any) (any, error) {
	b, err := coerce.ToBoolean(args[0])
	if err != nil {
		return nil, err
	}
	return !b, nil
}

func evalHash(args []any) (any, error) {
	data := []byte(coerce.ToString(args[0]))
	switch strings.ToLower(coerce.ToString(args[1])) {
	case "md5":
		sum := md5.Sum(data)
		return hex.EncodeToString(sum[:]), nil
	case "sha1":
		sum := sha1.Sum(data)
		return hex.EncodeToString(sum[:]), nil
	case "sha256":
		sum := sha256.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	default:
		return nil, &token.Error{
			Kind:    token.KindAlgorithm,
			Message: fmt.Sprintf("hash: unsupported algorithm %q (want md5, sha1, or sha256)", coerce.ToString(args[1])),
		}
	}
}

// evalUUID5 implements uuid5(name [, namespace]): name is hashed into a
// version-5 UUID under namespace, which defaults to the nil UUID when the
// caller doesn't supply one.
func evalUUID5(args []any) (any, error) {
	ns := uuid.Nil
	if len(args) == 2 && args[1] != nil {
		parsed, err := uuid.Parse(coerce.ToString(args[1]))
		if err != nil {
			return nil, fmt.Errorf("uuid5: invalid namespace: %w", err)
		}
		ns = parsed
	}
	return uuid.NewSHA1(ns, []byte(coerce.ToString(args[0]))).String(), nil
}

func evalBase64Encode(args []any) (any, error) {
	b, err := coerce.ToByteArray(args[0])
	if err != nil {
		return nil, err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func evalBase64Decode(args []any) (any, error) {
	b, err := base64.StdEncoding.DecodeString(coerce.ToString(args[0]))
	if err != nil {
		return nil, fmt.Errorf("base64Decode: %w", err)
	}
	return b, nil
}

// evalToString implements toString(bytes [, charset]): decodes a []byte
// using charset (defaulting to UTF-8) and otherwise stringifies args[0]
// the same way every other coercion site does.
func evalToString(args []any) (any, error) {
	charset := ""
	if len(args) == 2 && args[1] != nil {
		charset = coerce.ToString(args[1])
	}
	if !supportedCharset(charset) {
		return nil, &token.Error{
			Kind:    token.KindCharset,
			Message: fmt.Sprintf("toString: unsupported charset %q (only UTF-8 is supported)", charset),
		}
	}
	return coerce.ToString(args[0]), nil
}

func evalToBytes(args []any) (any, error) {
	charset := ""
	if len(args) == 2 && args[1] != nil {
		charset = coerce.ToString(args[1])
	}
	if !supportedCharset(charset) {
		return nil, &token.Error{
			Kind:    token.KindCharset,
			Message: fmt.Sprintf("toBytes: unsupported charset %q (only UTF-8 is supported)", charset),
		}
	}
	return coerce.ToByteArray(args[0])
}

// evalToDate never raises: an unparseable or non-string/non-date value is
// returned unchanged, per spec.
func evalToDate(args []any) (any, error) {
	layout := ""
	if len(args) == 2 && args[1] != nil {
		layout = coerce.ToString(args[1])
	}
	t, err := coerce.ToDate(args[0], layout)
	if err != nil {
		return args[0], nil
	}
	return t, nil
}

// evalFormat never raises: an integer argument is taken as epoch
// milliseconds, and any other non-date input is returned unchanged. The
// optional third argument names a timezone to render the formatted time
// in; an unrecognized zone is likewise treated as "leave it unchanged"
// rather than a hard failure.
func evalFormat(args []any) (any, error) {
	in := args[0]
	switch n := in.(type) {
	case int, int32, int64:
		ms, _ := coerce.ToLong(n)
		in = time.UnixMilli(ms)
	}
	t, err := coerce.ToDate(in, "")
	if err != nil {
		return args[0], nil
	}
	if len(args) == 3 && args[2] != nil {
		if loc, err := time.LoadLocation(coerce.ToString(args[2])); err == nil {
			t = t.In(loc)
		}
	}
	return t.Format(coerce.ToString(args[1])), nil
}

func evalMapOf(args []any) (any, error) {
	m := make(map[string]any, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		m[coerce.ToString(args[i])] = args[i+1]
	}
	return m, nil
}
