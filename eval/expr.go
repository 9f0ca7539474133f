package eval

import (
	"fmt"
	"strconv"

	"github.com/flowforge/recordpath/ast"
	"github.com/flowforge/recordpath/function"
	"github.com/flowforge/recordpath/internal/coerce"
	"github.com/flowforge/recordpath/token"
)

// evalExpr evaluates expr to a plain Go value, with current serving as the
// "." a relative PathExpr operand resolves against.
func evalExpr(st *State, ctx Context, current FieldValue, expr ast.Expr) (any, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		if e.Kind == token.NUMBER {
			if n, err := strconv.ParseInt(e.Value, 10, 64); err == nil {
				return n, nil
			}
			f, err := strconv.ParseFloat(e.Value, 64)
			if err != nil {
				return nil, &token.Error{Kind: token.KindType, Message: fmt.Sprintf("invalid numeric literal %q", e.Value)}
			}
			return f, nil
		}
		return e.Value, nil

	case *ast.PathExpr:
		val, _ := firstValue(EvalPath(st, ctx, e.Path, current))
		return val, st.Err()

	case *ast.CallExpr:
		return evalCallExpr(st, ctx, current, e)

	case *ast.ComparisonExpr:
		ok, err := evalComparison(st, ctx, current, e)
		return ok, err

	default:
		return nil, &token.Error{Kind: token.KindAlgorithm, Message: fmt.Sprintf("unsupported expression type %T", expr)}
	}
}

func evalComparison(st *State, ctx Context, current FieldValue, e *ast.ComparisonExpr) (bool, error) {
	// found is false when a path operand selects nothing (e.g. a field the candidate lacks).
	operand := func(x ast.Expr) (val any, found bool, err error) {
		if pe, ok := x.(*ast.PathExpr); ok {
			val, found = firstValue(EvalPath(st, ctx, pe.Path, current))
			return val, found, st.Err()
		}
		val, err = evalExpr(st, ctx, current, x)
		return val, true, err
	}
	left, leftFound, err := operand(e.Left)
	if err != nil {
		return false, err
	}
	right, rightFound, err := operand(e.Right)
	if err != nil {
		return false, err
	}
	if !leftFound || !rightFound {
		return false, nil
	}

	switch e.Op {
	case token.ASSIGN:
		return coerce.Equal(left, right), nil
	case token.NEQ:
		return !coerce.Equal(left, right), nil
	case token.LT:
		return left != nil && right != nil && coerce.Compare(left, right) < 0, nil
	case token.LTE:
		return left != nil && right != nil && coerce.Compare(left, right) <= 0, nil
	case token.GT:
		return left != nil && right != nil && coerce.Compare(left, right) > 0, nil
	case token.GTE:
		return left != nil && right != nil && coerce.Compare(left, right) >= 0, nil
	default:
		return false, &token.Error{Kind: token.KindAlgorithm, Message: fmt.Sprintf("unsupported comparison operator %s", e.Op)}
	}
}

// predicateTruthy implements the predicate truthiness rules: a
// comparison's boolean result, a filter-safe function call's boolean
// result, or a bare path's existence (at least one non-null match).
func predicateTruthy(st *State, ctx Context, current FieldValue, expr ast.Expr) (bool, error) {
	switch e := expr.(type) {
	case *ast.ComparisonExpr:
		return evalComparison(st, ctx, current, e)

	case *ast.CallExpr:
		v, err := evalCallExpr(st, ctx, current, e)
		if err != nil {
			return false, err
		}
		return coerce.ToBoolean(v)

	case *ast.PathExpr:
		exists := false
		for fv := range EvalPath(st, ctx, e.Path, current) {
			if fv.Value() != nil {
				exists = true
				break
			}
		}
		if err := st.Err(); err != nil {
			return false, err
		}
		return exists, nil

	default:
		v, err := evalExpr(st, ctx, current, expr)
		if err != nil {
			return false, err
		}
		return coerce.ToBoolean(v)
	}
}

// evalCallExpr evaluates a function call, dispatching count and fieldName
// (which need access to FieldValue/path context rather than plain
// argument values) before falling through to the generic function
// registry.
func evalCallExpr(st *State, ctx Context, current FieldValue, call *ast.CallExpr) (any, error) {
	meta := function.Lookup(call.Name)
	if meta == nil {
		return nil, &token.Error{Kind: token.KindParse, Message: fmt.Sprintf("unknown function %q", call.Name)}
	}

	if meta.SpecialForm {
		switch call.Name {
		case "count":
			return evalCount(st, ctx, current, call)
		case "fieldName":
			return evalFieldName(st, ctx, current, call)
		}
	}

	args := make([]any, len(call.Args))
	for i, a := range call.Args {
		v, err := evalExpr(st, ctx, current, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return meta.Eval(args)
}

func evalCount(st *State, ctx Context, current FieldValue, call *ast.CallExpr) (any, error) {
	pe, ok := call.Args[0].(*ast.PathExpr)
	if !ok {
		v, err := evalExpr(st, ctx, current, call.Args[0])
		if err != nil {
			return nil, err
		}
		if v == nil {
			return int64(0), nil
		}
		return int64(1), nil
	}

	var n int64
	for range EvalPath(st, ctx, pe.Path, current) {
		n++
	}
	if err := st.Err(); err != nil {
		return nil, err
	}
	return n, nil
}

func evalFieldName(st *State, ctx Context, current FieldValue, call *ast.CallExpr) (any, error) {
	if len(call.Args) == 0 {
		return current.Name(), nil
	}
	pe, ok := call.Args[0].(*ast.PathExpr)
	if !ok {
		return "", &token.Error{Kind: token.KindType, Message: "fieldName() argument must be a path"}
	}
	fv, found := firstFieldValue(EvalPath(st, ctx, pe.Path, current))
	if err := st.Err(); err != nil {
		return nil, err
	}
	if !found {
		return "", nil
	}
	return fv.Name(), nil
}
