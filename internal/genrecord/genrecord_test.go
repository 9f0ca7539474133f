package genrecord_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowforge/recordpath/internal/genrecord"
	"github.com/flowforge/recordpath/record"
)

type address struct {
	City string `mapstructure:"city"`
	Zip  string `mapstructure:"zip"`
}

type customer struct {
	Name      string    `mapstructure:"name"`
	Age       int       `mapstructure:"age"`
	Address   address   `mapstructure:"address"`
	Addresses []address `mapstructure:"addresses"`
}

func TestFromStruct_DecodesNestedStructsAndSlices(t *testing.T) {
	c := customer{
		Name: "Jane Doe",
		Age:  41,
		Address: address{
			City: "Springfield",
			Zip:  "00000",
		},
		Addresses: []address{
			{City: "Springfield", Zip: "00000"},
			{City: "Shelbyville", Zip: "11111"},
		},
	}

	rec, err := genrecord.FromStruct(c)
	require.NoError(t, err)

	name, ok := rec.GetValue("name")
	require.True(t, ok)
	require.Equal(t, "Jane Doe", name)

	addrVal, ok := rec.GetValue("address")
	require.True(t, ok)
	addrMap, ok := record.AsMap(addrVal)
	require.True(t, ok)
	city, ok := addrMap.Get("city")
	require.True(t, ok)
	require.Equal(t, "Springfield", city)

	addressesVal, ok := rec.GetValue("addresses")
	require.True(t, ok)
	addressesArr, ok := record.AsArray(addressesVal)
	require.True(t, ok)
	require.Equal(t, 2, addressesArr.Len())
}

func TestFromStruct_RejectsNonStruct(t *testing.T) {
	_, err := genrecord.FromStruct(42)
	require.Error(t, err)
}
