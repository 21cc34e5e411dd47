// Package replshell implements `langc repl`, the interactive line-oriented
// lexer/parser session from §4.8. Each line is fed either through the
// lexer alone (":tokens <line>") or through a full parse (":parse
// <line>"), printing the resulting token stream or L AST dump; history
// lives only in the readline session, nothing is persisted to disk.
//
// Grounded on the reference codebase's internal/input package
// (InteractiveCommandReader: github.com/chzyer/readline.NewEx with a
// fixed prompt, Readline()-in-a-loop, blank lines skipped), generalized
// from reading whole game commands to reading either a `:tokens`/`:parse`
// directive or a bare line treated as `:parse`.
package replshell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/dekarrin/langc/ast"
	"github.com/dekarrin/langc/lex"
	"github.com/dekarrin/langc/parse"
)

// REPL holds the readline session and the compiled parse table it checks
// input against. A REPL is single-use: construct one per `langc repl`
// invocation and Close it on exit.
type REPL struct {
	rl    *readline.Instance
	table *parse.Table
	out   io.Writer
}

// New builds a REPL over table, reading from stdin via readline and
// writing to out.
func New(table *parse.Table, out io.Writer) (*REPL, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "lang> ",
	})
	if err != nil {
		return nil, fmt.Errorf("replshell: could not start readline: %w", err)
	}
	return &REPL{rl: rl, table: table, out: out}, nil
}

// Close releases readline resources.
func (r *REPL) Close() error {
	return r.rl.Close()
}

// Run reads lines until EOF or a ":quit"/":exit" directive, dispatching
// each to handleLine.
func (r *REPL) Run() error {
	for {
		line, err := r.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":quit" || line == ":exit" {
			return nil
		}

		r.handleLine(line)
	}
}

func (r *REPL) handleLine(line string) {
	switch {
	case strings.HasPrefix(line, ":tokens "):
		r.tokens(strings.TrimPrefix(line, ":tokens "))
	case strings.HasPrefix(line, ":parse "):
		r.parse(strings.TrimPrefix(line, ":parse "))
	default:
		r.parse(line)
	}
}

func (r *REPL) tokens(code string) {
	base := lex.NewLexer(lex.DefaultSpecs)
	base.Input(code + "\n")
	shaped := lex.NewIndentLexer(base)

	for {
		t, err := shaped.Token(nil)
		if err != nil {
			fmt.Fprintf(r.out, "lex error: %s\n", err)
			return
		}
		fmt.Fprintln(r.out, t.String())
		if t.Symbol == lex.SymEnd {
			return
		}
	}
}

func (r *REPL) parse(code string) {
	base := lex.NewLexer(lex.DefaultSpecs)
	base.Input(code + "\n")
	shaped := lex.NewIndentLexer(base)

	result, diag := parse.Parse(r.table, parse.NewLexAdapter(shaped), nil)
	if diag != nil {
		fmt.Fprintln(r.out, diag.Report())
		return
	}

	if n, ok := result.Node.(ast.Node); ok {
		fmt.Fprintln(r.out, n.String())
		return
	}
	fmt.Fprintf(r.out, "%v\n", result.Node)
}
