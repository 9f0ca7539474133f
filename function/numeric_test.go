package function_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/flowforge/recordpath/function"
	"github.com/flowforge/recordpath/token"
)

func TestCoalesce(t *testing.T) {
	require.Equal(t, "b", call(t, "coalesce", nil, "b", "c"))
	require.Nil(t, call(t, "coalesce", nil, nil))
}

func TestNot(t *testing.T) {
	require.Equal(t, false, call(t, "not", true))
	require.Equal(t, true, call(t, "not", false))
}

func TestHash(t *testing.T) {
	require.Equal(t, "5d41402abc4b2a76b9719d911017c592", call(t, "hash", "hello", "md5"))
	require.Equal(t, "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d", call(t, "hash", "hello", "sha1"))
}

func TestHash_UnknownAlgorithmReportsKindAlgorithm(t *testing.T) {
	meta := function.Lookup("hash")
	_, err := meta.Eval([]any{"hello", "crc32"})
	require.Error(t, err)
	var te *token.Error
	require.ErrorAs(t, err, &te)
	require.Equal(t, token.KindAlgorithm, te.Kind)
}

func TestUUID5(t *testing.T) {
	// name first, namespace defaults to uuid.Nil when omitted.
	got := call(t, "uuid5", "example.com")
	require.Len(t, got.(string), 36)

	withNamespace := call(t, "uuid5", "example.com", "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	require.Len(t, withNamespace.(string), 36)
	require.NotEqual(t, got, withNamespace)
}

func TestBase64RoundTrip(t *testing.T) {
	encoded := call(t, "base64Encode", "hello")
	require.Equal(t, "aGVsbG8=", encoded)
	decoded := call(t, "base64Decode", encoded)
	require.Equal(t, []byte("hello"), decoded)
}

func TestToStringAndToBytes(t *testing.T) {
	require.Equal(t, "42", call(t, "toString", int64(42)))
	require.Equal(t, []byte("hi"), call(t, "toBytes", "hi"))
	require.Equal(t, "hi", call(t, "toString", "hi", "UTF-8"))
}

func TestToStringAndToBytes_UnsupportedCharsetReportsKindCharset(t *testing.T) {
	meta := function.Lookup("toString")
	_, err := meta.Eval([]any{"hi", "latin1"})
	require.Error(t, err)
	var te *token.Error
	require.ErrorAs(t, err, &te)
	require.Equal(t, token.KindCharset, te.Kind)

	meta = function.Lookup("toBytes")
	_, err = meta.Eval([]any{"hi", "latin1"})
	require.Error(t, err)
	require.ErrorAs(t, err, &te)
	require.Equal(t, token.KindCharset, te.Kind)
}

func TestToDateAndFormat(t *testing.T) {
	got := call(t, "toDate", "2024-01-15", "2006-01-02")
	d, ok := got.(time.Time)
	require.True(t, ok)
	require.Equal(t, 2024, d.Year())

	formatted := call(t, "format", d, "2006/01/02")
	require.Equal(t, "2024/01/15", formatted)
}

func TestToDateAndFormat_NonDateInputReturnedUnchanged(t *testing.T) {
	require.Equal(t, "not a date", call(t, "toDate", "not a date"))
	require.Equal(t, true, call(t, "format", true, "2006/01/02"))
}

func TestFormat_OptionalTimezone(t *testing.T) {
	d := call(t, "toDate", "2024-01-15T00:00:00Z")
	formatted := call(t, "format", d, "2006-01-02T15:04:05Z07:00", "UTC")
	require.Equal(t, "2024-01-15T00:00:00Z", formatted)
}

func TestMapOf(t *testing.T) {
	got := call(t, "mapOf", "a", int64(1), "b", int64(2))
	m, ok := got.(map[string]any)
	require.True(t, ok)
	require.Equal(t, int64(1), m["a"])
	require.Equal(t, int64(2), m["b"])
}
