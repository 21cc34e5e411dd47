// Package compiler wires the lexer, grammar, parser, lowering visitor,
// and C++ pretty-printer into the single Compile entry point the CLI and
// debug server both call through — grounded on the reference codebase's
// own top-level Interpreter/Engine façade (internal/tunascript/engine.go
// style "own every stage, expose one Run/Compile method"), generalized
// from an interpreter loop to a one-shot source-to-AST-to-target pass.
package compiler

import (
	"strings"

	"github.com/dekarrin/langc/ast"
	"github.com/dekarrin/langc/cache"
	"github.com/dekarrin/langc/cpp"
	"github.com/dekarrin/langc/diag"
	"github.com/dekarrin/langc/grammar"
	"github.com/dekarrin/langc/langgrammar"
	"github.com/dekarrin/langc/lex"
	"github.com/dekarrin/langc/lower"
	"github.com/dekarrin/langc/parse"
)

// TableMode selects which construction algorithm builds the action/goto
// table, per §3A/§9's SLR(1)-default-with-LR(1)-override decision.
type TableMode int

const (
	SLR1 TableMode = iota
	LR1
)

// Options configures a Compiler. The zero value is the built-in grammar,
// SLR(1) construction, and no grammar cache.
type Options struct {
	Mode    TableMode
	Grammar *grammar.Grammar // nil uses langgrammar.Build()
	Cache   cache.Store      // nil disables the grammar cache
}

// Compiler owns one compiled parse table, built once at construction and
// reused across every Compile call — the costly part of this pipeline is
// table construction, not parsing, so a Compiler is meant to be built
// once per process and reused. Compile never mutates the Compiler or its
// Table and builds fresh scope/visitor state per call, so Compile calls on
// one constructed *Compiler share no mutable state.
type Compiler struct {
	grammar *grammar.Grammar
	table   *parse.Table

	// CacheHit reports whether the most recent construction found its
	// fingerprint already present in the configured cache. Exposed for
	// the CLI's informational logging and for debugserver's /cache
	// endpoint.
	CacheHit bool
}

// New builds a Compiler: resolves the grammar (built-in or caller-
// supplied), consults the cache for a fingerprint match, and constructs
// the action/goto table via the requested algorithm.
func New(opts Options) *Compiler {
	g := opts.Grammar
	if g == nil {
		g = langgrammar.Build()
	}

	c := &Compiler{grammar: g}

	fp := cache.Fingerprint(ruleText(g))
	if opts.Cache != nil {
		if _, ok, err := opts.Cache.Get(fp); err == nil && ok {
			c.CacheHit = true
		}
	}

	switch opts.Mode {
	case LR1:
		c.table = parse.CompileLR1(g)
	default:
		c.table = parse.CompileSLR(g)
	}

	if opts.Cache != nil && !c.CacheHit {
		// the cache stores a presence marker, not the table itself: Table
		// carries an unexported action map and a debug-dump closure
		// neither encoding/gob nor rezi can walk by reflection, and table
		// construction over this grammar's handful of states is cheap
		// enough that re-running it on every process start costs nothing
		// worth avoiding. The cache's value is cross-process "have we
		// seen this exact grammar before" bookkeeping, reported by the
		// CLI's informational log line and debugserver's /cache endpoint,
		// not avoiding reconstruction.
		_ = opts.Cache.Put(fp, []byte{1})
	}

	return c
}

// Grammar returns the grammar this Compiler was built from.
func (c *Compiler) Grammar() *grammar.Grammar { return c.grammar }

// Table returns the compiled action/goto table, for debugserver's
// /grammar and /conflicts endpoints.
func (c *Compiler) Table() *parse.Table { return c.table }

// ruleText renders every rule in declaration order into the text the
// cache fingerprints, per §3A: any textual change to the rule set
// invalidates every prior fingerprint.
func ruleText(g *grammar.Grammar) string {
	var sb strings.Builder
	for _, r := range g.Rules() {
		sb.WriteString(r.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Compile lexes, parses, and lowers source into a C++ AST. Diagnostics
// from a rejected parse or an unsupported construct come back as the
// returned error (always a diag.Diagnostic); a successful compile's
// second return value is always nil.
func (c *Compiler) Compile(source string) (mod *cpp.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			// types.Scope.Exit panics if called on the global frame — an
			// internal invariant violation in the lowering visitor, per
			// §4.5/§7, never a condition the caller can act on. Converted
			// here so Compile never lets a raw panic escape.
			err = diag.New(diag.KindToolchainError, diag.Error, nil,
				"internal compiler error: %v", r)
			mod = nil
		}
	}()

	base := lex.NewLexer(lex.DefaultSpecs)
	base.Input(source)
	indented := lex.NewIndentLexer(base)

	result, parseDiag := parse.Parse(c.table, parse.NewLexAdapter(indented), nil)
	if parseDiag != nil {
		return nil, parseDiag
	}

	module, ok := result.Node.(*ast.Module)
	if !ok {
		return nil, diag.New(diag.KindToolchainError, diag.Error, nil,
			"compiler: parse accepted a non-Module root node %T", result.Node)
	}

	cppMod, lowerErr := lower.Lower(module)
	if lowerErr != nil {
		return nil, lowerErr
	}
	return cppMod, nil
}
