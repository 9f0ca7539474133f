package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowforge/recordpath/lexer"
	"github.com/flowforge/recordpath/token"
)

func scanAll(t *testing.T, src string) ([]token.Token, []string) {
	t.Helper()

	file := token.NewFile("test", len(src))
	var errs token.ErrorList
	l := lexer.New(file, []byte(src), func(pos token.Pos, msg string) {
		errs.Add(&token.Error{Kind: token.KindLex, Position: file.PositionFor(pos), Message: msg})
	})

	var toks []token.Token
	var lits []string
	for {
		_, tok, lit := l.Scan()
		toks = append(toks, tok)
		lits = append(lits, lit)
		if tok == token.EOF {
			break
		}
	}
	require.Empty(t, errs, "unexpected lex errors")
	return toks, lits
}

func TestLexer_Segments(t *testing.T) {
	toks, lits := scanAll(t, `/mainAccount/balance`)
	require.Equal(t, []token.Token{token.SLASH, token.IDENT, token.SLASH, token.IDENT, token.EOF}, toks)
	require.Equal(t, []string{"", "mainAccount", "", "balance", ""}, lits)
}

func TestLexer_Descendant(t *testing.T) {
	toks, _ := scanAll(t, `//id`)
	require.Equal(t, []token.Token{token.DSLASH, token.IDENT, token.EOF}, toks)
}

func TestLexer_NegativeIndexAndRange(t *testing.T) {
	toks, lits := scanAll(t, `[3,6,-1,-2]`)
	require.Equal(t, []token.Token{
		token.LBRACKET, token.NUMBER, token.COMMA, token.NUMBER, token.COMMA,
		token.NUMBER, token.COMMA, token.NUMBER, token.RBRACKET, token.EOF,
	}, toks)
	require.Equal(t, []string{"", "3", "", "6", "", "-1", "", "-2", "", ""}, lits)
}

func TestLexer_Range(t *testing.T) {
	toks, _ := scanAll(t, `[0..-1]`)
	require.Equal(t, []token.Token{
		token.LBRACKET, token.NUMBER, token.DOTDOT, token.NUMBER, token.RBRACKET, token.EOF,
	}, toks)
}

func TestLexer_QuotedNameAndString(t *testing.T) {
	toks, lits := scanAll(t, `['city','state'] = "New York"`)
	require.Equal(t, token.QUOTEDNAME, toks[1])
	require.Equal(t, `'city'`, lits[1])
	require.Contains(t, toks, token.STRING)
	for i, tok := range toks {
		if tok == token.STRING {
			require.Equal(t, `"New York"`, lits[i])
		}
	}
}

func TestLexer_ComparisonOperators(t *testing.T) {
	toks, _ := scanAll(t, `= != < <= > >=`)
	require.Equal(t, []token.Token{
		token.ASSIGN, token.NEQ, token.LT, token.LTE, token.GT, token.GTE, token.EOF,
	}, toks)
}

func TestLexer_IllegalCharacter(t *testing.T) {
	file := token.NewFile("test", 1)
	var gotErr bool
	l := lexer.New(file, []byte("@"), func(pos token.Pos, msg string) {
		gotErr = true
	})
	_, tok, _ := l.Scan()
	require.Equal(t, token.ILLEGAL, tok)
	require.True(t, gotErr)
}

func TestLexer_UnterminatedString(t *testing.T) {
	file := token.NewFile("test", 6)
	var gotErr bool
	l := lexer.New(file, []byte(`"abcde`), func(pos token.Pos, msg string) {
		gotErr = true
	})
	l.Scan()
	require.True(t, gotErr)
}
