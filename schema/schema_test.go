package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowforge/recordpath/schema"
)

func TestType_String(t *testing.T) {
	require.Equal(t, "string", schema.String.String())
	require.Equal(t, "record", schema.Record.String())
	require.Contains(t, schema.Type(999).String(), "Type(999)")
}

func TestType_IsNumeric(t *testing.T) {
	require.True(t, schema.Long.IsNumeric())
	require.True(t, schema.Double.IsNumeric())
	require.False(t, schema.String.IsNumeric())
	require.False(t, schema.Array.IsNumeric())
}

func TestName_Matches(t *testing.T) {
	n := schema.Name{Value: "state", Aliases: []string{"province", "region"}}
	require.True(t, n.Matches("state"))
	require.True(t, n.Matches("province"))
	require.True(t, n.Matches("region"))
	require.False(t, n.Matches("zip"))
}

func TestSchema_FieldLookupAndOrder(t *testing.T) {
	s := schema.New([]schema.Field{
		{Name: schema.Name{Value: "id"}, Type: schema.Long},
		{Name: schema.Name{Value: "state", Aliases: []string{"province"}}, Type: schema.String},
	})

	require.Equal(t, 2, s.Len())

	f, ok := s.Field("state")
	require.True(t, ok)
	require.Equal(t, schema.String, f.Type)

	f, ok = s.Field("province")
	require.True(t, ok)
	require.Equal(t, "state", f.Name.Value)

	_, ok = s.Field("missing")
	require.False(t, ok)

	require.Equal(t, "id", s.Fields()[0].Name.Value)
}

func TestSchema_AliasDoesNotShadowExistingField(t *testing.T) {
	s := schema.New([]schema.Field{
		{Name: schema.Name{Value: "a"}, Type: schema.String},
		{Name: schema.Name{Value: "b", Aliases: []string{"a"}}, Type: schema.Long},
	})

	f, ok := s.Field("a")
	require.True(t, ok)
	require.Equal(t, "a", f.Name.Value)
	require.Equal(t, schema.String, f.Type)
}
