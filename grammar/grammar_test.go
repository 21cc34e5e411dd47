package grammar

import (
	"testing"

	"github.com/dekarrin/langc/diag"
	"github.com/stretchr/testify/assert"
)

func simpleExprGrammar() *Grammar {
	rules := []Rule{
		NewRule("E", []string{"E", "PLUS", "T"}, nil),
		NewRule("E", []string{"T"}, nil),
		NewRule("T", []string{"T", "STAR", "F"}, nil),
		NewRule("T", []string{"F"}, nil),
		NewRule("F", []string{"LPAREN", "E", "RPAREN"}, nil),
		NewRule("F", []string{"ID"}, nil),
	}
	prec := []PrecedenceLevel{
		{Assoc: LeftAssoc, Terminals: []string{"PLUS"}},
		{Assoc: LeftAssoc, Terminals: []string{"STAR"}},
	}
	return New("E", []string{"PLUS", "STAR", "LPAREN", "RPAREN", "ID"}, rules, prec)
}

func Test_Grammar_New_augments_with_prime_rule(t *testing.T) {
	assert := assert.New(t)

	g := simpleExprGrammar()

	assert.Equal("E'", g.Start)
	assert.Equal("E'", g.Rule(0).LHS)
	assert.Equal([]string{"E"}, g.Rule(0).RHS)
}

func Test_Grammar_NewRule_strips_overrider(t *testing.T) {
	assert := assert.New(t)

	r := NewRule("E", []string{"MINUS", "E", "%UMINUS"}, nil)

	assert.Equal([]string{"MINUS", "E"}, r.RHS)
	assert.Equal("UMINUS", r.Overload)
}

func Test_Grammar_FIRST_of_terminal_is_itself(t *testing.T) {
	assert := assert.New(t)

	g := simpleExprGrammar()
	first := g.FIRST("PLUS")

	assert.True(first.Has("PLUS"))
	assert.Equal(1, first.Len())
}

func Test_Grammar_FIRST_of_nonterminal(t *testing.T) {
	assert := assert.New(t)

	g := simpleExprGrammar()
	first := g.FIRST("F")

	assert.True(first.Has("LPAREN"))
	assert.True(first.Has("ID"))
	assert.Equal(2, first.Len())
}

func Test_Grammar_FOLLOW_of_start_contains_END(t *testing.T) {
	assert := assert.New(t)

	g := simpleExprGrammar()
	follow := g.FOLLOW(g.Start)

	assert.True(follow.Has(SymEnd))
}

func Test_Grammar_FOLLOW_of_E(t *testing.T) {
	assert := assert.New(t)

	g := simpleExprGrammar()
	follow := g.FOLLOW("E")

	assert.True(follow.Has("PLUS"))
	assert.True(follow.Has("RPAREN"))
	assert.True(follow.Has(SymEnd))
}

func Test_Grammar_Validate_reports_undeclared_symbol(t *testing.T) {
	assert := assert.New(t)

	rules := []Rule{
		NewRule("E", []string{"BOGUS"}, nil),
	}
	g := New("E", []string{}, rules, nil)

	diags := g.Validate()
	assert.NotEmpty(diags)
}

func Test_Grammar_Validate_reports_unreachable_nonterminal(t *testing.T) {
	assert := assert.New(t)

	rules := []Rule{
		NewRule("E", []string{"ID"}, nil),
		NewRule("Dead", []string{"ID"}, nil),
	}
	g := New("E", []string{"ID"}, rules, nil)

	diags := g.Validate()

	found := false
	for _, d := range diags {
		if d.Severity() == diag.Warning {
			found = true
		}
	}
	assert.True(found, "expected a warning-severity diagnostic for the unreachable nonterminal")
}
