package langgrammar

import (
	"testing"

	"github.com/dekarrin/langc/diag"
	"github.com/stretchr/testify/assert"
)

func Test_Build_validates_without_fatal_diagnostics(t *testing.T) {
	assert := assert.New(t)

	g := Build()
	for _, d := range g.Validate() {
		assert.NotEqual(diag.Error, d.Severity(), "unexpected fatal diagnostic: %s", d.Error())
	}
}

func Test_Build_declares_every_listed_terminal(t *testing.T) {
	assert := assert.New(t)

	g := Build()
	for _, term := range Terminals {
		assert.True(g.IsTerminal(term), "expected %q to be declared", term)
	}
}

func Test_Build_defines_stmt_list_and_expr_nonterminals(t *testing.T) {
	assert := assert.New(t)

	g := Build()
	assert.True(g.IsNonTerminal("STMT_LIST"))
	assert.True(g.IsNonTerminal("EXPR"))
}
