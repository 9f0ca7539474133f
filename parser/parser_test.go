package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowforge/recordpath/ast"
	"github.com/flowforge/recordpath/parser"
	"github.com/flowforge/recordpath/token"
)

func TestParsePath_Simple(t *testing.T) {
	path, errs := parser.ParsePath("", "/mainAccount/balance")
	require.Empty(t, errs)
	require.True(t, path.Absolute)
	require.Len(t, path.Segments, 2)

	seg0, ok := path.Segments[0].Base.(*ast.NameSegment)
	require.True(t, ok)
	require.Equal(t, "mainAccount", seg0.Name)

	seg1, ok := path.Segments[1].Base.(*ast.NameSegment)
	require.True(t, ok)
	require.Equal(t, "balance", seg1.Name)
}

func TestParsePath_Descendant(t *testing.T) {
	path, errs := parser.ParsePath("", "//id")
	require.Empty(t, errs)
	require.True(t, path.RootDescendant)
	require.True(t, path.Segments[0].Descendant)
}

func TestParsePath_ArrayIndexAndRange(t *testing.T) {
	path, errs := parser.ParsePath("", "/numbers[3,6,-1,-2]")
	require.Empty(t, errs)
	pred := path.Segments[1].Predicates[0].(*ast.ArrayIndexPredicate)
	require.Len(t, pred.Items, 4)
	require.Equal(t, -1, pred.Items[2].Index)

	path, errs = parser.ParsePath("", "/numbers[0..-1]")
	require.Empty(t, errs)
	pred = path.Segments[1].Predicates[0].(*ast.ArrayIndexPredicate)
	require.Len(t, pred.Items, 1)
	require.True(t, pred.Items[0].IsRange)
	require.Equal(t, 0, pred.Items[0].From)
	require.Equal(t, -1, pred.Items[0].To)
}

func TestParsePath_NameList(t *testing.T) {
	path, errs := parser.ParsePath("", "/attrs['city','state']")
	require.Empty(t, errs)
	pred := path.Segments[1].Predicates[0].(*ast.NameListPredicate)
	require.Equal(t, []string{"city", "state"}, pred.Keys)
}

func TestParsePath_FilterComparison(t *testing.T) {
	path, errs := parser.ParsePath("", `/accounts[./state != "NY"]`)
	require.Empty(t, errs)
	pred := path.Segments[1].Predicates[0].(*ast.FilterPredicate)
	cmp, ok := pred.Expr.(*ast.ComparisonExpr)
	require.True(t, ok)
	require.Equal(t, token.NEQ, cmp.Op)
}

func TestParsePath_PredicatePlacementRejectsNonFilterSafeCall(t *testing.T) {
	_, errs := parser.ParsePath("", `/name[substring(.,0,4)]`)
	require.NotEmpty(t, errs)
	require.Equal(t, token.KindPredicatePlacement, errs[0].Kind)
}

func TestParsePath_PredicatePlacementAllowsFilterSafeCall(t *testing.T) {
	_, errs := parser.ParsePath("", `/name[isEmpty(.)]`)
	require.Empty(t, errs)
}

func TestParsePath_ArityError(t *testing.T) {
	_, errs := parser.ParsePath("", `/x[mapOf('a')]`)
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if e.Kind == token.KindArity {
			found = true
		}
	}
	require.True(t, found)
}

func TestParsePath_MapOfOddArgCountIsArityError(t *testing.T) {
	// 3 args satisfies mapOf's Arity{2,-1} but not its even-count rule, so
	// this must fail to compile rather than fail at evaluation time.
	_, errs := parser.ParseExpr("", `mapOf('a', /x, 'b')`)
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if e.Kind == token.KindArity {
			found = true
		}
	}
	require.True(t, found)
}

func TestParsePath_UUID5SingleArgIsValid(t *testing.T) {
	_, errs := parser.ParseExpr("", `uuid5('example.com')`)
	require.Empty(t, errs)
}

func TestParsePath_BareRoot(t *testing.T) {
	path, errs := parser.ParsePath("", "/")
	require.Empty(t, errs)
	require.True(t, path.Absolute)
	require.Empty(t, path.Segments)
}
