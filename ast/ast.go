// Package ast defines the path tree produced by the parser: a sequence of
// segments, each optionally carrying predicates, plus the small expression
// language used inside predicates and function arguments.
package ast

import (
	"fmt"

	"github.com/flowforge/recordpath/token"
)

// Node is an overall node in the path tree.
type Node interface {
	astNode()
}

// Segment is the base selector of one step of a path: a name, a wildcard,
// a relative reference, or a function call.
type Segment interface {
	Node
	astSegment()
}

// Predicate is a bracketed modifier attached to a Segment: an index list,
// a range, a wildcard, a list of map keys, or a filter expression.
type Predicate interface {
	Node
	astPredicate()
}

// Expr is an expression usable inside a filter predicate or as a function
// argument.
type Expr interface {
	Node
	astExpr()
}

// Path is a compiled Record Path: an optional absolute root plus a chain of
// segments, each carrying zero or more predicates.
type Path struct {
	Absolute       bool // path begins with '/' or '//'
	RootDescendant bool // path begins with '//' specifically

	Segments []*SegmentNode

	Pos token.Pos
}

func (n *Path) astNode() {}

// SegmentNode is one step of a path: a base Segment plus the predicates
// chained onto it, e.g. name[3][./state != 'NY'].
type SegmentNode struct {
	// Descendant is true when this step was reached via '//' rather than
	// '/'. The first segment of a relative path is Descendant only when it
	// follows a leading './/'.
	Descendant bool

	Base       Segment
	Predicates []Predicate

	SepPos token.Pos // position of the preceding '/' or '//', if any
}

func (n *SegmentNode) astNode() {}

// --- Segment kinds ---------------------------------------------------------

// SelfSegment is '.': stay at the current field value.
type SelfSegment struct {
	DotPos token.Pos
}

// ParentSegment is '..': move to the parent field value.
type ParentSegment struct {
	DotPos token.Pos
}

// NameSegment selects a named child field (identifier or quoted-name).
type NameSegment struct {
	Name    string
	NamePos token.Pos
}

// WildcardSegment is a bare '*': every field of a record, every entry of a
// map, or every element of an array, depending on the incoming value.
type WildcardSegment struct {
	StarPos token.Pos
}

// FunctionSegment is a function call used as a path step, e.g. a segment
// consisting only of coalesce(./a, ./b).
type FunctionSegment struct {
	Call *CallExpr
}

func (n *SelfSegment) astNode()     {}
func (n *ParentSegment) astNode()   {}
func (n *NameSegment) astNode()     {}
func (n *WildcardSegment) astNode() {}
func (n *FunctionSegment) astNode() {}

func (n *SelfSegment) astSegment()     {}
func (n *ParentSegment) astSegment()   {}
func (n *NameSegment) astSegment()     {}
func (n *WildcardSegment) astSegment() {}
func (n *FunctionSegment) astSegment() {}

// --- Predicate kinds --------------------------------------------------------

// IndexItem is one element of an ArrayIndexPredicate: either a single
// (possibly negative) index, or a from..to range.
type IndexItem struct {
	IsRange  bool
	Index    int // valid when !IsRange
	From, To int // valid when IsRange
}

// ArrayIndexPredicate selects one or more array elements by index or range,
// e.g. [3], [3,6,-1,-2], [0..-1].
type ArrayIndexPredicate struct {
	Items []IndexItem

	LBracket, RBracket token.Pos
}

// WildcardPredicate is '[*]': every entry of a map, or every element of an
// array (equivalent to [0..-1]), depending on the incoming value.
type WildcardPredicate struct {
	LBracket, RBracket token.Pos
}

// NameListPredicate selects one or more map entries by key, e.g.
// ['city'], ['city','state'].
type NameListPredicate struct {
	Keys []string

	LBracket, RBracket token.Pos
}

// FilterPredicate narrows a sequence of field values to those for which
// Expr is truthy, per the predicate truthiness rules.
type FilterPredicate struct {
	Expr Expr

	LBracket, RBracket token.Pos
}

func (n *ArrayIndexPredicate) astNode() {}
func (n *WildcardPredicate) astNode()   {}
func (n *NameListPredicate) astNode()   {}
func (n *FilterPredicate) astNode()     {}

func (n *ArrayIndexPredicate) astPredicate() {}
func (n *WildcardPredicate) astPredicate()   {}
func (n *NameListPredicate) astPredicate()   {}
func (n *FilterPredicate) astPredicate()     {}

// --- Expression kinds --------------------------------------------------------

// Literal is a constant value: a number or a string. A bare identifier
// such as true is not a Literal; it parses as a relative path.
type Literal struct {
	Kind     token.Token // token.NUMBER or token.STRING
	Value    string
	ValuePos token.Pos
}

// PathExpr is a nested path used as an expression: a relative reference
// like ./state, an absolute reference like /name, or the bare '.' current
// value reference (a relative Path with zero segments).
type PathExpr struct {
	Path *Path
}

// CallExpr invokes a named function with a list of argument expressions.
type CallExpr struct {
	Name    string
	NamePos token.Pos
	Args    []Expr

	LParen, RParen token.Pos
}

// ComparisonExpr compares Left and Right using one of the comparison
// operators (=, !=, <, <=, >, >=).
type ComparisonExpr struct {
	Left  Expr
	Op    token.Token
	OpPos token.Pos
	Right Expr
}

func (n *Literal) astNode()        {}
func (n *PathExpr) astNode()       {}
func (n *CallExpr) astNode()       {}
func (n *ComparisonExpr) astNode() {}

func (n *Literal) astExpr()        {}
func (n *PathExpr) astExpr()       {}
func (n *CallExpr) astExpr()       {}
func (n *ComparisonExpr) astExpr() {}

// Type checks.
var (
	_ Node = (*Path)(nil)
	_ Node = (*SegmentNode)(nil)

	_ Segment = (*SelfSegment)(nil)
	_ Segment = (*ParentSegment)(nil)
	_ Segment = (*NameSegment)(nil)
	_ Segment = (*WildcardSegment)(nil)
	_ Segment = (*FunctionSegment)(nil)

	_ Predicate = (*ArrayIndexPredicate)(nil)
	_ Predicate = (*WildcardPredicate)(nil)
	_ Predicate = (*NameListPredicate)(nil)
	_ Predicate = (*FilterPredicate)(nil)

	_ Expr = (*Literal)(nil)
	_ Expr = (*PathExpr)(nil)
	_ Expr = (*CallExpr)(nil)
	_ Expr = (*ComparisonExpr)(nil)
)

// StartPos returns the position of the first character belonging to n.
func StartPos(n Node) token.Pos {
	if n == nil {
		return token.NoPos
	}
	switch n := n.(type) {
	case *Path:
		return n.Pos
	case *SegmentNode:
		return StartPos(n.Base)
	case *SelfSegment:
		return n.DotPos
	case *ParentSegment:
		return n.DotPos
	case *NameSegment:
		return n.NamePos
	case *WildcardSegment:
		return n.StarPos
	case *FunctionSegment:
		return StartPos(n.Call)
	case *ArrayIndexPredicate:
		return n.LBracket
	case *WildcardPredicate:
		return n.LBracket
	case *NameListPredicate:
		return n.LBracket
	case *FilterPredicate:
		return n.LBracket
	case *Literal:
		return n.ValuePos
	case *PathExpr:
		return StartPos(n.Path)
	case *CallExpr:
		return n.NamePos
	case *ComparisonExpr:
		return StartPos(n.Left)
	default:
		panic(fmt.Sprintf("ast: unrecognized node type %T", n))
	}
}

// EndPos returns the position of the first character immediately following n.
func EndPos(n Node) token.Pos {
	if n == nil {
		return token.NoPos
	}
	switch n := n.(type) {
	case *Path:
		if len(n.Segments) == 0 {
			return n.Pos
		}
		return EndPos(n.Segments[len(n.Segments)-1])
	case *SegmentNode:
		if len(n.Predicates) == 0 {
			return EndPos(n.Base)
		}
		return EndPos(n.Predicates[len(n.Predicates)-1])
	case *SelfSegment:
		return n.DotPos + 1
	case *ParentSegment:
		return n.DotPos + 2
	case *NameSegment:
		return n.NamePos + token.Pos(len(n.Name))
	case *WildcardSegment:
		return n.StarPos + 1
	case *FunctionSegment:
		return EndPos(n.Call)
	case *ArrayIndexPredicate:
		return n.RBracket + 1
	case *WildcardPredicate:
		return n.RBracket + 1
	case *NameListPredicate:
		return n.RBracket + 1
	case *FilterPredicate:
		return n.RBracket + 1
	case *Literal:
		return n.ValuePos + token.Pos(len(n.Value))
	case *PathExpr:
		return EndPos(n.Path)
	case *CallExpr:
		return n.RParen + 1
	case *ComparisonExpr:
		return EndPos(n.Right)
	default:
		panic(fmt.Sprintf("ast: unrecognized node type %T", n))
	}
}
