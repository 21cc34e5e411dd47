package replshell

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/langc/langgrammar"
	"github.com/dekarrin/langc/parse"
)

// newTestREPL builds a REPL without going through readline, since New
// requires a real terminal; the dispatch logic under test (tokens/parse)
// never touches r.rl.
func newTestREPL(out *bytes.Buffer) *REPL {
	table := parse.CompileSLR(langgrammar.Build())
	return &REPL{table: table, out: out}
}

func Test_tokens_prints_a_line_per_token_ending_in_END(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	r := newTestREPL(&buf)
	r.handleLine(":tokens x + y")

	out := buf.String()
	assert.Contains(out, "NAME")
	assert.Contains(out, "PLUS")
	assert.Contains(out, "END@")
}

func Test_parse_dumps_the_ast_for_a_bare_line(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	r := newTestREPL(&buf)
	r.handleLine("x + y")

	assert.Contains(buf.String(), "BinExpr")
}

func Test_parse_reports_a_diagnostic_on_bad_input(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	r := newTestREPL(&buf)
	r.handleLine(":parse )")

	assert.NotEmpty(buf.String())
}
