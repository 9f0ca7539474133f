// Package parser turns a token stream from the lexer into an *ast.Path,
// validating predicate placement and function arity as it goes, in the
// style of github.com/grafana/agent/pkg/river/parser.
package parser

import (
	"fmt"
	"strconv"

	"github.com/flowforge/recordpath/ast"
	"github.com/flowforge/recordpath/function"
	"github.com/flowforge/recordpath/lexer"
	"github.com/flowforge/recordpath/token"
)

// parser implements the Record Path parser. It continues past errors so
// that ParsePath can report more than just the first problem; callers must
// discard the returned *ast.Path if errors were produced.
type parser struct {
	file   *token.File
	errors token.ErrorList
	lex    *lexer.Lexer

	pos token.Pos
	tok token.Token
	lit string
}

// ParsePath parses source as a Record Path expression. On success it
// returns the compiled tree and a nil error list; on failure the returned
// tree should be discarded and errs is non-empty.
func ParsePath(filename, src string) (*ast.Path, token.ErrorList) {
	p := newParser(filename, []byte(src))
	path := p.parsePath()
	return path, p.errors
}

// ParseExpr parses source as a standalone expression (used by callers that
// embed a path inside a larger context, and by tests).
func ParseExpr(filename, src string) (ast.Expr, token.ErrorList) {
	p := newParser(filename, []byte(src))
	expr := p.parseExpr()
	p.expectEOF()
	return expr, p.errors
}

func newParser(filename string, src []byte) *parser {
	file := token.NewFile(filename, len(src))
	p := &parser{file: file}
	p.lex = lexer.New(file, src, func(pos token.Pos, msg string) {
		p.errors.Add(&token.Error{Kind: token.KindLex, Position: file.PositionFor(pos), Message: msg})
	})
	p.next()
	return p
}

func (p *parser) next() { p.pos, p.tok, p.lit = p.lex.Scan() }

func (p *parser) addErrorf(kind token.ErrorKind, format string, args ...any) {
	p.errors.Add(&token.Error{Kind: kind, Position: p.file.PositionFor(p.pos), Message: fmt.Sprintf(format, args...)})
}

func (p *parser) expect(t token.Token) (pos token.Pos, lit string) {
	pos, lit = p.pos, p.lit
	if p.tok != t {
		p.addErrorf(token.KindParse, "expected %s, got %s", t, p.tok)
	}
	p.next()
	return
}

func (p *parser) expectEOF() {
	if p.tok != token.EOF {
		p.addErrorf(token.KindParse, "expected end of expression, got %s", p.tok)
	}
}

// parsePath parses:
//
//	Path := [ '/' | '//' ] Segment { SegSep Segment } | Segment { SegSep Segment }
//	SegSep := '/' | '//'
func (p *parser) parsePath() *ast.Path {
	path := &ast.Path{Pos: p.pos}

	firstDescendant := false
	switch p.tok {
	case token.SLASH:
		path.Absolute = true
		p.next()
	case token.DSLASH:
		path.Absolute = true
		path.RootDescendant = true
		firstDescendant = true
		p.next()
	}

	if !p.atSegmentStart() {
		if path.Absolute {
			// A bare "/" or "//" is a valid path selecting the root itself.
			return path
		}
		p.addErrorf(token.KindParse, "expected a path segment, got %s", p.tok)
		return path
	}

	path.Segments = append(path.Segments, p.parseSegment(firstDescendant))

	for p.tok == token.SLASH || p.tok == token.DSLASH {
		descendant := p.tok == token.DSLASH
		sepPos := p.pos
		p.next()
		seg := p.parseSegment(descendant)
		seg.SepPos = sepPos
		path.Segments = append(path.Segments, seg)
	}

	return path
}

func (p *parser) atSegmentStart() bool {
	switch p.tok {
	case token.DOT, token.DOTDOT, token.IDENT, token.QUOTEDNAME, token.STAR:
		return true
	}
	return false
}

// parseSegment parses:
//
//	Segment := ( '.' | '..' | Name | '*' | FunctionCall ) { Predicate }
func (p *parser) parseSegment(descendant bool) *ast.SegmentNode {
	seg := &ast.SegmentNode{Descendant: descendant}

	switch p.tok {
	case token.DOT:
		seg.Base = &ast.SelfSegment{DotPos: p.pos}
		p.next()

	case token.DOTDOT:
		seg.Base = &ast.ParentSegment{DotPos: p.pos}
		p.next()

	case token.STAR:
		seg.Base = &ast.WildcardSegment{StarPos: p.pos}
		p.next()

	case token.IDENT, token.QUOTEDNAME:
		name, namePos := p.lit, p.pos
		if p.tok == token.QUOTEDNAME {
			name = unquote(name)
		}
		p.next()
		if p.tok == token.LPAREN {
			seg.Base = &ast.FunctionSegment{Call: p.parseCallArgs(name, namePos)}
		} else {
			seg.Base = &ast.NameSegment{Name: name, NamePos: namePos}
		}

	default:
		p.addErrorf(token.KindParse, "expected a path segment, got %s", p.tok)
		p.next()
		return seg
	}

	for p.tok == token.LBRACKET {
		seg.Predicates = append(seg.Predicates, p.parsePredicate())
	}

	return seg
}

// parsePredicate parses the bracketed body of a segment:
//
//	Predicate := '[' PredicateBody ']'
//	PredicateBody := IndexList | Range | '*' | NameList | FilterExpr
func (p *parser) parsePredicate() ast.Predicate {
	lbracket, _ := p.expect(token.LBRACKET)

	switch p.tok {
	case token.STAR:
		p.next()
		rbracket, _ := p.expect(token.RBRACKET)
		return &ast.WildcardPredicate{LBracket: lbracket, RBracket: rbracket}

	case token.QUOTEDNAME, token.STRING:
		keys := []string{unquote(p.lit)}
		p.next()
		for p.tok == token.COMMA {
			p.next()
			if p.tok != token.QUOTEDNAME && p.tok != token.STRING {
				p.addErrorf(token.KindParse, "expected a quoted key, got %s", p.tok)
				break
			}
			keys = append(keys, unquote(p.lit))
			p.next()
		}
		rbracket, _ := p.expect(token.RBRACKET)
		return &ast.NameListPredicate{Keys: keys, LBracket: lbracket, RBracket: rbracket}

	case token.NUMBER:
		items := []ast.IndexItem{p.parseIndexItem()}
		for p.tok == token.COMMA {
			p.next()
			items = append(items, p.parseIndexItem())
		}
		rbracket, _ := p.expect(token.RBRACKET)
		return &ast.ArrayIndexPredicate{Items: items, LBracket: lbracket, RBracket: rbracket}

	default:
		expr := p.parseExpr()
		p.checkPredicatePlacement(expr)
		rbracket, _ := p.expect(token.RBRACKET)
		return &ast.FilterPredicate{Expr: expr, LBracket: lbracket, RBracket: rbracket}
	}
}

// parseIndexItem parses one element of an IndexList/Range:
//
//	IntOrRange := int | int '..' int
func (p *parser) parseIndexItem() ast.IndexItem {
	from := p.parseInt()
	if p.tok == token.DOTDOT {
		p.next()
		to := p.parseInt()
		return ast.IndexItem{IsRange: true, From: from, To: to}
	}
	return ast.IndexItem{Index: from}
}

func (p *parser) parseInt() int {
	lit := p.lit
	if p.tok != token.NUMBER {
		p.addErrorf(token.KindParse, "expected an integer, got %s", p.tok)
		p.next()
		return 0
	}
	p.next()
	n, err := strconv.Atoi(lit)
	if err != nil {
		p.addErrorf(token.KindParse, "invalid integer literal %q", lit)
		return 0
	}
	return n
}

// checkPredicatePlacement enforces the compile-time rule that a bare
// function call used as a whole predicate must be filter-safe.
func (p *parser) checkPredicatePlacement(expr ast.Expr) {
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		return
	}
	meta := function.Lookup(call.Name)
	if meta == nil {
		// Unknown-function is already reported by parseCallArgs; avoid a
		// duplicate error here.
		return
	}
	if !meta.FilterSafe {
		p.errors.Add(&token.Error{
			Kind:     token.KindPredicatePlacement,
			Position: p.file.PositionFor(ast.StartPos(call)),
			Message:  fmt.Sprintf("function %q does not return a boolean and cannot be used as a bare predicate; compare its result instead", call.Name),
		})
	}
}

// parseExpr parses:
//
//	Expr := ComparisonExpr | CallExpr | PathExpr
//	ComparisonExpr := Operand cmp_op Operand
func (p *parser) parseExpr() ast.Expr {
	lhs := p.parseOperand()

	if p.tok.IsComparisonOp() {
		op, opPos := p.tok, p.pos
		p.next()
		rhs := p.parseOperand()
		return &ast.ComparisonExpr{Left: lhs, Op: op, OpPos: opPos, Right: rhs}
	}

	return lhs
}

// parseOperand parses a single operand of an expression: a literal, a
// function call, or a (possibly relative) path.
func (p *parser) parseOperand() ast.Expr {
	switch p.tok {
	case token.NUMBER:
		lit := &ast.Literal{Kind: token.NUMBER, Value: p.lit, ValuePos: p.pos}
		p.next()
		return lit

	case token.STRING, token.QUOTEDNAME:
		lit := &ast.Literal{Kind: token.STRING, Value: unquote(p.lit), ValuePos: p.pos}
		p.next()
		return lit

	case token.IDENT:
		name, namePos := p.lit, p.pos
		p.next()
		if p.tok == token.LPAREN {
			call := p.parseCallArgs(name, namePos)
			return call
		}
		// A bare identifier that isn't a call is the start of a relative
		// path (e.g. the NameList-shaped existence test `[city]`).
		return p.parsePathExprFrom(&ast.NameSegment{Name: name, NamePos: namePos})

	case token.DOT:
		dotPos := p.pos
		p.next()
		if p.tok != token.SLASH && p.tok != token.DSLASH {
			// Bare '.' reference to the current value.
			return &ast.PathExpr{Path: &ast.Path{Pos: dotPos}}
		}
		return p.parseRelativePath(dotPos)

	case token.SLASH, token.DSLASH:
		return &ast.PathExpr{Path: p.parsePath()}

	default:
		p.addErrorf(token.KindParse, "expected an expression, got %s", p.tok)
		p.next()
		return &ast.Literal{Kind: token.STRING, ValuePos: p.pos}
	}
}

// parseRelativePath parses the continuation of a "./..." relative path
// after the leading dot has already been consumed.
func (p *parser) parseRelativePath(dotPos token.Pos) ast.Expr {
	path := &ast.Path{Pos: dotPos}
	for p.tok == token.SLASH || p.tok == token.DSLASH {
		descendant := p.tok == token.DSLASH
		sepPos := p.pos
		p.next()
		seg := p.parseSegment(descendant)
		seg.SepPos = sepPos
		path.Segments = append(path.Segments, seg)
	}
	return &ast.PathExpr{Path: path}
}

// parsePathExprFrom builds a relative path expression whose first segment
// has already been parsed as a bare name (the common case for a
// NameSegment-shaped existence test used as a predicate, e.g. [city]).
func (p *parser) parsePathExprFrom(first ast.Segment) ast.Expr {
	path := &ast.Path{Pos: ast.StartPos(first)}
	firstSeg := &ast.SegmentNode{Base: first}
	for p.tok == token.LBRACKET {
		firstSeg.Predicates = append(firstSeg.Predicates, p.parsePredicate())
	}
	path.Segments = append(path.Segments, firstSeg)

	for p.tok == token.SLASH || p.tok == token.DSLASH {
		descendant := p.tok == token.DSLASH
		sepPos := p.pos
		p.next()
		seg := p.parseSegment(descendant)
		seg.SepPos = sepPos
		path.Segments = append(path.Segments, seg)
	}

	return &ast.PathExpr{Path: path}
}

// parseCallArgs parses the "(" ExprList ")" tail of a function call and
// validates its arity against the function registry.
func (p *parser) parseCallArgs(name string, namePos token.Pos) *ast.CallExpr {
	call := &ast.CallExpr{Name: name, NamePos: namePos}
	call.LParen, _ = p.expect(token.LPAREN)

	for p.tok != token.RPAREN && p.tok != token.EOF {
		call.Args = append(call.Args, p.parseExpr())
		if p.tok == token.RPAREN {
			break
		}
		if p.tok != token.COMMA {
			p.addErrorf(token.KindParse, "missing ',' in argument list")
			break
		}
		p.next()
	}

	call.RParen, _ = p.expect(token.RPAREN)

	meta := function.Lookup(name)
	switch {
	case meta == nil:
		p.errors.Add(&token.Error{
			Kind:     token.KindParse,
			Position: p.file.PositionFor(namePos),
			Message:  fmt.Sprintf("unknown function %q", name),
		})
	case !meta.Accepts(len(call.Args)):
		p.errors.Add(&token.Error{
			Kind:     token.KindArity,
			Position: p.file.PositionFor(namePos),
			Message:  fmt.Sprintf("function %q expects %s, got %d", name, meta.Arity, len(call.Args)),
		})
	case meta.ArgCountOK != nil && !meta.ArgCountOK(len(call.Args)):
		p.errors.Add(&token.Error{
			Kind:     token.KindArity,
			Position: p.file.PositionFor(namePos),
			Message:  fmt.Sprintf("function %q was called with an invalid argument count (%d)", name, len(call.Args)),
		})
	}

	return call
}

// unquote strips the surrounding quote characters and applies the §6.4
// escape table to a QUOTEDNAME or STRING literal's raw text.
func unquote(lit string) string {
	if len(lit) < 2 {
		return lit
	}
	inner := lit[1 : len(lit)-1]

	out := make([]byte, 0, len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] != '\\' || i+1 >= len(inner) {
			out = append(out, inner[i])
			continue
		}
		i++
		switch inner[i] {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case '\\':
			out = append(out, '\\')
		case '\'':
			out = append(out, '\'')
		case '"':
			out = append(out, '"')
		default:
			out = append(out, '\\', inner[i])
		}
	}
	return string(out)
}
