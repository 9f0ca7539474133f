package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowforge/recordpath/eval"
	"github.com/flowforge/recordpath/internal/genrecord"
	"github.com/flowforge/recordpath/parser"
	"github.com/flowforge/recordpath/record"
	"github.com/flowforge/recordpath/schema"
)

func values(t *testing.T, root record.Record, expr string) []any {
	t.Helper()
	tree, errs := parser.ParsePath("", expr)
	require.Empty(t, errs, "unexpected parse errors for %q", expr)

	st := &eval.State{}
	rootFV := eval.Root(root)
	ctx := eval.Context{Root: rootFV}

	var out []any
	for fv := range eval.EvalPath(st, ctx, tree, rootFV) {
		out = append(out, fv.Value())
	}
	require.NoError(t, st.Err())
	return out
}

func fieldValues(t *testing.T, root record.Record, expr string) []eval.FieldValue {
	t.Helper()
	tree, errs := parser.ParsePath("", expr)
	require.Empty(t, errs, "unexpected parse errors for %q", expr)

	st := &eval.State{}
	rootFV := eval.Root(root)
	ctx := eval.Context{Root: rootFV}

	var out []eval.FieldValue
	for fv := range eval.EvalPath(st, ctx, tree, rootFV) {
		out = append(out, fv)
	}
	require.NoError(t, st.Err())
	return out
}

func accountSchema() *schema.Schema {
	return schema.New([]schema.Field{
		{Name: schema.Name{Value: "id"}, Type: schema.String},
		{Name: schema.Name{Value: "mainAccount"}, Type: schema.Record},
		{Name: schema.Name{Value: "numbers"}, Type: schema.Array, ElementType: schema.Long},
		{Name: schema.Name{Value: "attrs"}, Type: schema.Map, ElementType: schema.String},
		{Name: schema.Name{Value: "accounts"}, Type: schema.Array, ElementType: schema.Record},
	})
}

func balanceSchema() *schema.Schema {
	return schema.New([]schema.Field{
		{Name: schema.Name{Value: "balance"}, Type: schema.Double},
	})
}

func newRoot() *genrecord.Record {
	mainAccount := genrecord.New(balanceSchema(), map[string]any{"balance": 125.50})

	acc1 := genrecord.New(schema.New([]schema.Field{
		{Name: schema.Name{Value: "state"}, Type: schema.String},
	}), map[string]any{"state": "NY"})
	acc2 := genrecord.New(schema.New([]schema.Field{
		{Name: schema.Name{Value: "state"}, Type: schema.String},
	}), map[string]any{"state": "NJ"})

	return genrecord.New(accountSchema(), map[string]any{
		"id":          "abc-123",
		"mainAccount": mainAccount,
		"numbers":     []any{0, 1, 2, 3, 4, 5, 6},
		"attrs":       map[string]any{"city": "New York", "state": "NY"},
		"accounts":    []any{acc1, acc2},
	})
}

func TestEval_NameNavigation(t *testing.T) {
	got := values(t, newRoot(), "/mainAccount/balance")
	require.Equal(t, []any{125.50}, got)
}

func TestEval_ArrayIndexAndNegative(t *testing.T) {
	got := values(t, newRoot(), "/numbers[3,6,-1,-2]")
	require.Equal(t, []any{3, 6, 6, 5}, got)
}

func TestEval_ArrayRange(t *testing.T) {
	got := values(t, newRoot(), "/numbers[0..-1]")
	require.Equal(t, []any{0, 1, 2, 3, 4, 5, 6}, got)
}

func TestEval_MapKeyList(t *testing.T) {
	got := values(t, newRoot(), "/attrs['city','state']")
	require.Equal(t, []any{"New York", "NY"}, got)
}

func TestEval_MapWildcard(t *testing.T) {
	got := values(t, newRoot(), "/attrs[*]")
	require.ElementsMatch(t, []any{"New York", "NY"}, got)
}

func TestEval_WildcardSegmentOverRecord(t *testing.T) {
	got := values(t, newRoot(), "/mainAccount/*")
	require.Equal(t, []any{125.50}, got)
}

func TestEval_Descendant(t *testing.T) {
	got := values(t, newRoot(), "//balance")
	require.Equal(t, []any{125.50}, got)
}

func TestEval_PredicateComparison(t *testing.T) {
	got := values(t, newRoot(), `/accounts[./state != 'NY']`)
	require.Len(t, got, 1)
}

func TestEval_PredicateBareExistence(t *testing.T) {
	got := values(t, newRoot(), `/accounts[./state]`)
	require.Len(t, got, 2)
}

func TestEval_PredicateFilterSafeFunction(t *testing.T) {
	got := values(t, newRoot(), `/accounts[startsWith(./state,'N')]`)
	require.Len(t, got, 2)
}

func TestEval_Writeback_Record(t *testing.T) {
	root := newRoot()
	fvs := fieldValues(t, root, "/mainAccount/balance")
	require.Len(t, fvs, 1)
	require.NoError(t, fvs[0].UpdateValue(200.0))

	got := values(t, root, "/mainAccount/balance")
	require.Equal(t, []any{200.0}, got)
}

func TestEval_Writeback_Array(t *testing.T) {
	root := newRoot()
	fvs := fieldValues(t, root, "/numbers[0]")
	require.Len(t, fvs, 1)
	require.NoError(t, fvs[0].UpdateValue(99))

	got := values(t, root, "/numbers[0]")
	require.Equal(t, []any{99}, got)
}

func TestEval_Writeback_Map(t *testing.T) {
	root := newRoot()
	fvs := fieldValues(t, root, "/attrs['city']")
	require.Len(t, fvs, 1)
	require.NoError(t, fvs[0].UpdateValue("Boston"))

	got := values(t, root, "/attrs['city']")
	require.Equal(t, []any{"Boston"}, got)
}

func TestEval_Writeback_RootHasNone(t *testing.T) {
	root := newRoot()
	fvs := fieldValues(t, root, "/")
	require.Len(t, fvs, 1)
	require.Error(t, fvs[0].UpdateValue("anything"))
}

func TestEval_CountFunction(t *testing.T) {
	got := values(t, newRoot(), "count(/accounts/*)")
	require.Equal(t, []any{int64(2)}, got)
}

func TestEval_FieldNameFunction(t *testing.T) {
	got := values(t, newRoot(), "fieldName(/mainAccount)")
	require.Equal(t, []any{"mainAccount"}, got)
}

func TestEval_CoalesceFunctionSegment(t *testing.T) {
	got := values(t, newRoot(), "coalesce(/missing,/id)")
	require.Equal(t, []any{"abc-123"}, got)
}
