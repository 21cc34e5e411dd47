package automaton

import (
	"testing"

	"github.com/dekarrin/langc/grammar"
	"github.com/stretchr/testify/assert"
)

func simpleExprGrammar() *grammar.Grammar {
	rules := []grammar.Rule{
		grammar.NewRule("E", []string{"E", "PLUS", "T"}, nil),
		grammar.NewRule("E", []string{"T"}, nil),
		grammar.NewRule("T", []string{"ID"}, nil),
	}
	return grammar.New("E", []string{"PLUS", "ID"}, rules, nil)
}

func Test_Build_start_state_contains_prime_item(t *testing.T) {
	assert := assert.New(t)

	g := simpleExprGrammar()
	dfa := Build(g)

	assert.GreaterOrEqual(len(dfa.States), 1)
	start := dfa.States[0]

	found := false
	for _, it := range start.Items() {
		if it.Rule == 0 && it.Dot == 0 {
			found = true
		}
	}
	assert.True(found, "start state must contain the prime item S' -> .S")
}

func Test_Build_reaches_accepting_state_via_E(t *testing.T) {
	assert := assert.New(t)

	g := simpleExprGrammar()
	dfa := Build(g)

	next, ok := dfa.Goto(0, "E")
	assert.True(ok)
	assert.NotEqual(0, next)
}

func Test_Closure_is_idempotent(t *testing.T) {
	assert := assert.New(t)

	g := simpleExprGrammar()
	start := newItemSet()
	start.Add(grammar.LR0Item{Rule: 0, Dot: 0})

	c1 := Closure(g, start)
	c2 := Closure(g, c1)

	assert.True(c1.Equal(c2))
}

func Test_Build1_start_state_lookahead_is_END(t *testing.T) {
	assert := assert.New(t)

	g := simpleExprGrammar()
	dfa := Build1(g)

	start := dfa.States[0]
	found := false
	for _, it := range start.Items() {
		if it.Rule == 0 && it.Dot == 0 && it.Lookahead == grammar.SymEnd {
			found = true
		}
	}
	assert.True(found)
}
