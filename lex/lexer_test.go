package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func allTokens(t *testing.T, lx interface {
	Token(any) (Token, error)
	Empty() bool
}) []Token {
	t.Helper()

	var toks []Token
	for {
		tok, err := lx.Token(nil)
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Symbol == SymEnd {
			break
		}
	}
	return toks
}

func Test_Lexer_Token_basic(t *testing.T) {
	assert := assert.New(t)

	lx := NewLexer(DefaultSpecs)
	lx.Input(`x = 1 + 2`)

	toks := allTokens(t, lx)

	var syms []string
	for _, tok := range toks {
		syms = append(syms, tok.Symbol)
	}

	assert.Equal([]string{"NAME", "ASSIGN", "INT", "PLUS", "INT", "END"}, syms)
}

func Test_Lexer_Token_comment_skipped(t *testing.T) {
	assert := assert.New(t)

	lx := NewLexer(DefaultSpecs)
	lx.Input("x = 1 # this is a comment\n")

	toks := allTokens(t, lx)

	var syms []string
	for _, tok := range toks {
		syms = append(syms, tok.Symbol)
	}

	assert.Equal([]string{"NAME", "ASSIGN", "INT", "NEWLINE", "END"}, syms)
}

func Test_Lexer_Token_keyword_before_name(t *testing.T) {
	assert := assert.New(t)

	lx := NewLexer(DefaultSpecs)
	lx.Input(`return returner`)

	toks := allTokens(t, lx)

	assert.Equal("KW_RETURN", toks[0].Symbol)
	assert.Equal("NAME", toks[1].Symbol)
	assert.Equal("returner", toks[1].Value)
}

func Test_Lexer_Token_unmatched_input_is_LexError(t *testing.T) {
	assert := assert.New(t)

	lx := NewLexer(DefaultSpecs)
	lx.Input(`$$$`)

	_, err := lx.Token(nil)
	assert.Error(err)
}

func Test_Lexer_Token_line_col_tracking(t *testing.T) {
	assert := assert.New(t)

	lx := NewLexer(DefaultSpecs)
	lx.Input("x\ny")

	toks := allTokens(t, lx)

	assert.Equal(1, toks[0].Line)
	assert.Equal(1, toks[0].Col)

	// toks[1] is NEWLINE, toks[2] is "y" on line 2
	assert.Equal(2, toks[2].Line)
	assert.Equal(1, toks[2].Col)
}

func Test_IndentLexer_single_indent_and_dedent(t *testing.T) {
	assert := assert.New(t)

	src := "func f():\n    return 1\nx = 2\n"

	lx := NewIndentLexer(NewLexer(DefaultSpecs))
	lx.Input(src)

	toks := allTokens(t, lx)

	var syms []string
	for _, tok := range toks {
		syms = append(syms, tok.Symbol)
	}

	assert.Equal([]string{
		"KW_FUNC", "NAME", "LPAREN", "RPAREN", "COLON", "NEWLINE",
		"INDENT", "KW_RETURN", "INT", "NEWLINE",
		"DEDENT", "NAME", "ASSIGN", "INT", "NEWLINE",
		"END",
	}, syms)

	indents, dedents := 0, 0
	for _, s := range syms {
		if s == SymIndent {
			indents++
		}
		if s == SymDedent {
			dedents++
		}
	}
	assert.Equal(indents, dedents, "INDENT/DEDENT count must balance by END")
}

func Test_IndentLexer_multi_level_dedent(t *testing.T) {
	assert := assert.New(t)

	src := "if x:\n    if y:\n        return 1\nreturn 2\n"

	lx := NewIndentLexer(NewLexer(DefaultSpecs))
	lx.Input(src)

	toks := allTokens(t, lx)

	dedents := 0
	for i, tok := range toks {
		if tok.Symbol == SymDedent {
			dedents++
		}
		// the two DEDENTs closing both nested blocks must appear
		// consecutively, immediately before the final "return 2"
		if tok.Symbol == "KW_RETURN" && i > 0 && toks[i-1].Symbol != SymDedent {
			// only the first KW_RETURN (return 1) is allowed to not be
			// preceded by a DEDENT
			assert.Equal(0, dedents, "return not preceded by DEDENT should be the first one")
		}
	}

	assert.Equal(2, dedents)
}

func Test_IndentLexer_mismatched_outdent_is_IndentationError(t *testing.T) {
	assert := assert.New(t)

	src := "if x:\n    return 1\n  return 2\n"

	lx := NewIndentLexer(NewLexer(DefaultSpecs))
	lx.Input(src)

	var lastErr error
	for {
		tok, err := lx.Token(nil)
		if err != nil {
			lastErr = err
			break
		}
		if tok.Symbol == SymEnd {
			break
		}
	}

	assert.Error(lastErr)
}
