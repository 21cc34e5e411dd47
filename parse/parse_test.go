package parse

import (
	"testing"

	"github.com/dekarrin/langc/grammar"
	"github.com/stretchr/testify/assert"
)

// fakeToken and fakeLexer let these tests drive Parse directly from a
// fixed token slice without depending on the lex package.
type fakeToken struct {
	sym       string
	line, col int
}

func (f fakeToken) Sym() string          { return f.sym }
func (f fakeToken) Position() (int, int) { return f.line, f.col }
func (f fakeToken) Lexeme() string       { return f.sym }

type fakeLexer struct {
	toks []fakeToken
	i    int
}

func (f *fakeLexer) Token(_ any) (TokenLike, error) {
	if f.i >= len(f.toks) {
		t := fakeToken{sym: "END"}
		return t, nil
	}
	t := f.toks[f.i]
	f.i++
	return t, nil
}

// sumGrammar is "E -> E PLUS T | T", "T -> ID", summing ID values so the
// callback path is exercised.
func sumGrammar() *grammar.Grammar {
	rules := []grammar.Rule{
		grammar.NewRule("E", []string{"E", "PLUS", "T"}, func(children []any, _ any) any {
			return children[0].(int) + children[2].(int)
		}),
		grammar.NewRule("E", []string{"T"}, func(children []any, _ any) any {
			return children[0]
		}),
		grammar.NewRule("T", []string{"ID"}, func(children []any, _ any) any {
			return 1
		}),
	}
	return grammar.New("E", []string{"PLUS", "ID"}, rules, nil)
}

func Test_Parse_accepts_simple_sum(t *testing.T) {
	assert := assert.New(t)

	g := sumGrammar()
	table := CompileSLR(g)

	lx := &fakeLexer{toks: []fakeToken{
		{sym: "ID"}, {sym: "PLUS"}, {sym: "ID"}, {sym: "PLUS"}, {sym: "ID"},
	}}

	result, derr := Parse(table, lx, nil)
	assert.Nil(derr)
	if assert.NotNil(result) {
		assert.Equal(3, result.Node.(int))
	}
}

func Test_Parse_rejects_bad_token(t *testing.T) {
	assert := assert.New(t)

	g := sumGrammar()
	table := CompileSLR(g)

	lx := &fakeLexer{toks: []fakeToken{{sym: "PLUS"}}}

	_, derr := Parse(table, lx, nil)
	assert.NotNil(derr)
}

func Test_CompileLR1_accepts_same_language(t *testing.T) {
	assert := assert.New(t)

	g := sumGrammar()
	table := CompileLR1(g)

	lx := &fakeLexer{toks: []fakeToken{{sym: "ID"}, {sym: "PLUS"}, {sym: "ID"}}}

	result, derr := Parse(table, lx, nil)
	assert.Nil(derr)
	if assert.NotNil(result) {
		assert.Equal(2, result.Node.(int))
	}
}
