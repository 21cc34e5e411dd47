// Package grammar models context-free grammars for language L: rules,
// productions, precedence-overrider pseudo-tokens, and the validation
// pass run before automaton construction. It is grounded on the reference
// codebase's tunascript grammar package (Rule/Production/Grammar shape,
// FIRST/FOLLOW-by-recursion-guard idiom), generalized from an LL(1)-prep
// grammar to one that feeds an LR(0)/LR(1) automaton directly.
package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/langc/diag"
	"github.com/dekarrin/langc/internal/util"
)

// EPSILON is the reserved empty-production nonterminal, per §3.
const EPSILON = "EPSILON"

// Callback builds a semantic node from a rule's matched children and
// caller-supplied user data at reduction time.
type Callback func(children []any, userData any) any

// Rule is a single production `lhs -> rhs`, per §3's ParseRule. A
// trailing RHS element beginning with "%" is a precedence-overrider
// pseudo-token: Overload holds it (sans the "%"), and RHS never includes
// it. Overload is "" when the rule has no overrider.
type Rule struct {
	LHS      string
	RHS      []string
	Overload string
	Callback Callback
}

// effectiveRHS is RHS with no further stripping needed — the overrider,
// if any, has already been pulled into Overload at construction time (see
// New). It exists as a named accessor so callers never have to reason
// about whether a "%" token might still be present.
func (r Rule) effectiveRHS() []string {
	return r.RHS
}

// precedenceKey returns the terminal whose precedence level governs
// conflict arbitration for a Reduce by this rule: the overrider if
// present, else the rightmost *terminal* in RHS, per §4.2. Nonterminals
// trailing the rightmost terminal (e.g. the final EXPR in
// `EXPR -> EXPR op EXPR`) are skipped since they carry no precedence of
// their own.
func (r Rule) precedenceKey(g *Grammar) string {
	if r.Overload != "" {
		return r.Overload
	}
	for i := len(r.RHS) - 1; i >= 0; i-- {
		if g.IsTerminal(r.RHS[i]) {
			return r.RHS[i]
		}
	}
	return ""
}

func (r Rule) String() string {
	rhs := strings.Join(r.RHS, " ")
	if rhs == "" {
		rhs = "ε"
	}
	if r.Overload != "" {
		return fmt.Sprintf("%s -> %s %%%s", r.LHS, rhs, r.Overload)
	}
	return fmt.Sprintf("%s -> %s", r.LHS, rhs)
}

// NewRule splits a trailing "%name" overrider token out of rhs, if
// present, and returns the constructed Rule.
func NewRule(lhs string, rhs []string, cb Callback) Rule {
	r := Rule{LHS: lhs, RHS: rhs, Callback: cb}
	if n := len(rhs); n > 0 && strings.HasPrefix(rhs[n-1], "%") {
		r.Overload = strings.TrimPrefix(rhs[n-1], "%")
		r.RHS = rhs[:n-1]
	}
	return r
}

// Assoc is shift/reduce associativity, used by the precedence list.
type Assoc int

const (
	LeftAssoc Assoc = iota
	RightAssoc
)

// PrecedenceLevel is one entry of the precedence list: an associativity
// and the set of terminals sharing that level. Levels are ordered lowest
// to highest in Grammar.Precedence.
type PrecedenceLevel struct {
	Assoc     Assoc
	Terminals []string
}

// precedenceEntry is the compiled per-terminal view: level (higher binds
// tighter) plus associativity.
type precedenceEntry struct {
	level int
	assoc Assoc
}

// Grammar is the full rule set for language L, augmented at construction
// time with the prime rule S' -> S (§4.2).
type Grammar struct {
	Start      string
	Terminals  util.StringSet
	rules      []Rule
	precedence []PrecedenceLevel
	precByTerm map[string]precedenceEntry

	ff *firstFollow
}

// New builds a Grammar over the given rules with start symbol start and
// terminal set terminals. The prime rule S' -> S is prepended
// automatically; its callback is identity on its single child.
func New(start string, terminals []string, rules []Rule, precedence []PrecedenceLevel) *Grammar {
	g := &Grammar{
		Start:     PrimeSymbol(start),
		Terminals: util.NewStringSet(),
	}
	for _, t := range terminals {
		g.Terminals.Add(t)
	}

	prime := Rule{
		LHS: g.Start,
		RHS: []string{start},
		Callback: func(children []any, _ any) any {
			return children[0]
		},
	}
	g.rules = append([]Rule{prime}, rules...)
	g.precedence = precedence
	g.compilePrecedence()
	g.ff = newFirstFollow(g)
	return g
}

// FIRST returns FIRST(sym), memoized. See firstFollow.FIRST for the
// algorithm.
func (g *Grammar) FIRST(sym string) util.StringSet {
	return g.ff.FIRST(sym)
}

// FOLLOW returns FOLLOW(sym), memoized. See firstFollow.FOLLOW for the
// algorithm.
func (g *Grammar) FOLLOW(sym string) util.StringSet {
	return g.ff.FOLLOW(sym)
}

// PrimeSymbol gives the augmented start symbol's name for a grammar whose
// original start symbol is start.
func PrimeSymbol(start string) string {
	return start + "'"
}

func (g *Grammar) compilePrecedence() {
	g.precByTerm = map[string]precedenceEntry{}
	for level, entry := range g.precedence {
		for _, term := range entry.Terminals {
			g.precByTerm[term] = precedenceEntry{level: level, assoc: entry.Assoc}
		}
	}
}

// Rules returns the augmented rule list (prime rule first), in
// declaration order. Rule indices into this slice are stable and are what
// LRItem.Rule refers to.
func (g *Grammar) Rules() []Rule {
	return g.rules
}

// Rule returns the rule at index i.
func (g *Grammar) Rule(i int) Rule {
	return g.rules[i]
}

// RuleCount returns the number of rules, including the prime rule.
func (g *Grammar) RuleCount() int {
	return len(g.rules)
}

// IsTerminal reports whether sym is a declared terminal.
func (g *Grammar) IsTerminal(sym string) bool {
	return g.Terminals.Has(sym)
}

// IsNonTerminal reports whether sym is the LHS of some rule.
func (g *Grammar) IsNonTerminal(sym string) bool {
	for _, r := range g.rules {
		if r.LHS == sym {
			return true
		}
	}
	return false
}

// NonTerminals returns the distinct LHS symbols, in first-declaration
// order.
func (g *Grammar) NonTerminals() []string {
	seen := util.NewOrderedStringSet()
	for _, r := range g.rules {
		seen.Add(r.LHS)
	}
	return seen.Elements()
}

// RulesFor returns every rule whose LHS is nonterminal, in declaration
// order.
func (g *Grammar) RulesFor(nonterminal string) []Rule {
	var out []Rule
	for _, r := range g.rules {
		if r.LHS == nonterminal {
			out = append(out, r)
		}
	}
	return out
}

// PrecedenceOf looks up the compiled (level, associativity) for a
// terminal. ok is false if the terminal has no declared precedence.
func (g *Grammar) PrecedenceOf(terminal string) (level int, assoc Assoc, ok bool) {
	e, ok := g.precByTerm[terminal]
	return e.level, e.assoc, ok
}

// PrecedenceOfRule returns the precedence governing a Reduce by rule,
// keyed on its overrider or rightmost RHS terminal, per §4.2.
func (g *Grammar) PrecedenceOfRule(r Rule) (level int, assoc Assoc, ok bool) {
	return g.PrecedenceOf(r.precedenceKey(g))
}

// Validate checks the ParseRule invariant from §3 — every RHS symbol
// must be a declared terminal, an LHS nonterminal, or EPSILON — and
// returns fatal diagnostics for violations plus non-fatal warnings for
// unreachable and unproductive nonterminals. Grounded on the reference
// Grammar.Validate/HasUnreachableNonTerminals pair, generalized from its
// LL(1)-specific checks (left recursion, left factoring — irrelevant to
// an LR grammar) down to reachability/productivity alone.
func (g *Grammar) Validate() []diag.Diagnostic {
	var diags []diag.Diagnostic

	nonTerms := util.NewStringSet()
	for _, nt := range g.NonTerminals() {
		nonTerms.Add(nt)
	}

	for _, r := range g.rules {
		for _, sym := range r.RHS {
			if sym == EPSILON || g.IsTerminal(sym) || nonTerms.Has(sym) {
				continue
			}
			diags = append(diags, diag.New(diag.KindGrammarConflict, diag.Error, nil,
				"rule %s references undeclared symbol %q", r, sym))
		}
	}

	for _, nt := range g.unreachableNonTerminals() {
		diags = append(diags, diag.New(diag.KindGrammarConflict, diag.Warning, nil,
			"nonterminal %q is unreachable from %q", nt, g.Start))
	}

	for _, nt := range g.unproductiveNonTerminals() {
		diags = append(diags, diag.New(diag.KindGrammarConflict, diag.Warning, nil,
			"nonterminal %q can never derive a string of terminals", nt))
	}

	return diags
}

// unreachableNonTerminals returns nonterminals never mentioned starting
// from a forward closure over the start symbol's RHS symbols.
func (g *Grammar) unreachableNonTerminals() []string {
	reached := util.NewStringSet()
	work := []string{g.Start}
	reached.Add(g.Start)

	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]

		for _, r := range g.RulesFor(cur) {
			for _, sym := range r.RHS {
				if g.IsTerminal(sym) || sym == EPSILON {
					continue
				}
				if !reached.Has(sym) {
					reached.Add(sym)
					work = append(work, sym)
				}
			}
		}
	}

	var out []string
	for _, nt := range g.NonTerminals() {
		if !reached.Has(nt) {
			out = append(out, nt)
		}
	}
	return out
}

// unproductiveNonTerminals returns nonterminals that can never derive a
// string of terminals: fixed-point over "produces a production whose
// every symbol is either a terminal or already known productive".
func (g *Grammar) unproductiveNonTerminals() []string {
	productive := util.NewStringSet()

	changed := true
	for changed {
		changed = false
		for _, nt := range g.NonTerminals() {
			if productive.Has(nt) {
				continue
			}
			for _, r := range g.RulesFor(nt) {
				ok := true
				for _, sym := range r.RHS {
					if sym == EPSILON || g.IsTerminal(sym) {
						continue
					}
					if !productive.Has(sym) {
						ok = false
						break
					}
				}
				if ok {
					productive.Add(nt)
					changed = true
					break
				}
			}
		}
	}

	var out []string
	for _, nt := range g.NonTerminals() {
		if !productive.Has(nt) {
			out = append(out, nt)
		}
	}
	return out
}
