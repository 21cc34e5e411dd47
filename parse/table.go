// Package parse constructs the action/goto table from a grammar's
// automaton, arbitrates shift/reduce and reduce/reduce conflicts using
// the precedence list, and drives a shift-reduce parser over a token
// stream. Grounded on the reference tunascript parser package's
// LRAction/LRParseTable/ConstructSimpleLRParseTable/
// ConstructCanonicalLR1ParseTable/LRParse, generalized to language L's
// grammar and to a parse tree made of caller-supplied semantic nodes
// rather than a fixed AST type.
package parse

import (
	"fmt"
	"strings"

	"github.com/dekarrin/langc/automaton"
	"github.com/dekarrin/langc/diag"
	"github.com/dekarrin/langc/grammar"
)

// ActionType distinguishes the four action kinds a table cell may hold.
type ActionType int

const (
	ActionError ActionType = iota
	ActionShift
	ActionReduce
	ActionGoto
	ActionAccept
)

// Action is one cell of the action/goto table: ACTION[state, symbol].
type Action struct {
	Type  ActionType
	State int // target state, for Shift and Goto
	Rule  int // rule to reduce by, for Reduce
}

func (a Action) String() string {
	switch a.Type {
	case ActionShift:
		return fmt.Sprintf("shift %d", a.State)
	case ActionReduce:
		return fmt.Sprintf("reduce %d", a.Rule)
	case ActionGoto:
		return fmt.Sprintf("goto %d", a.State)
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}

// Table is a state x symbol -> Action map, plus the grammar and DFA it
// was built from (needed by the driver for rule RHS lengths, and by
// debug dumps for item-set rendering).
type Table struct {
	Grammar *grammar.Grammar
	cells   map[int]map[string]Action
	dump    func(state int) string

	Conflicts []diag.Diagnostic

	// numStates is the DFA state count, used by NumStates and Dump for
	// the CLI's dump-grammar subcommand and debugserver's /grammar
	// endpoint, per §4.8.
	numStates int
}

// ItemSetString returns the rendered item set for state, used by
// diag.Parse's debug dump on a ParseError.
func (t *Table) ItemSetString(state int) string {
	if t.dump == nil {
		return ""
	}
	return t.dump(state)
}

// NumStates returns the number of states in the DFA this table was built
// from.
func (t *Table) NumStates() int {
	return t.numStates
}

// Dump renders every state's item set, in state order, for the CLI's
// dump-grammar subcommand and debugserver's /grammar endpoint.
func (t *Table) Dump() string {
	var sb strings.Builder
	for i := 0; i < t.numStates; i++ {
		fmt.Fprintf(&sb, "state %d:\n", i)
		for _, line := range strings.Split(strings.TrimRight(t.ItemSetString(i), "\n"), "\n") {
			sb.WriteString("  ")
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (t *Table) set(state int, sym string, a Action) {
	if t.cells[state] == nil {
		t.cells[state] = map[string]Action{}
	}

	existing, ok := t.cells[state][sym]
	if !ok {
		t.cells[state][sym] = a
		return
	}
	if existing == a {
		return
	}

	kept := t.arbitrate(existing, a, sym, state)
	t.cells[state][sym] = kept
}

// Action returns ACTION[state, sym], or the zero Action (Type
// ActionError) if no cell is populated.
func (t *Table) Action(state int, sym string) Action {
	if row, ok := t.cells[state]; ok {
		if a, ok := row[sym]; ok {
			return a
		}
	}
	return Action{Type: ActionError}
}

// arbitrate resolves a collision between an existing action and a new
// one at the same (state, lookahead), per §4.2's conflict arbitration
// rules, and returns the winner. A collision that precedence level or
// associativity settles is resolved silently; one they cannot settle (an
// action without a precedence, or two Reduces at equal level) is recorded
// as a non-fatal GrammarConflict diagnostic and the existing action kept.
func (t *Table) arbitrate(existing, next Action, lookahead string, state int) Action {
	existingLevel, existingAssoc, existingOK := t.levelOf(existing, lookahead)
	nextLevel, nextAssoc, nextOK := t.levelOf(next, lookahead)

	if !existingOK || !nextOK {
		t.recordConflict(existing, next, lookahead, state)
		return existing
	}

	if existingLevel > nextLevel {
		return existing
	}
	if nextLevel > existingLevel {
		return next
	}

	// equal levels: if one is a Shift, associativity decides.
	if existing.Type == ActionShift && next.Type == ActionReduce {
		if existingAssoc == grammar.LeftAssoc {
			return next
		}
		return existing
	}
	if existing.Type == ActionReduce && next.Type == ActionShift {
		if nextAssoc == grammar.LeftAssoc {
			return existing
		}
		return next
	}

	// both Reduce at equal precedence: keep the earlier one.
	t.recordConflict(next, existing, lookahead, state)
	return existing
}

func (t *Table) levelOf(a Action, lookahead string) (int, grammar.Assoc, bool) {
	switch a.Type {
	case ActionShift:
		return t.Grammar.PrecedenceOf(lookahead)
	case ActionReduce:
		return t.Grammar.PrecedenceOfRule(t.Grammar.Rule(a.Rule))
	}
	return 0, grammar.LeftAssoc, false
}

func (t *Table) recordConflict(discarded, kept Action, lookahead string, state int) {
	t.Conflicts = append(t.Conflicts, diag.GrammarConflict(state, lookahead, kept.String(), discarded.String()))
}

// CompileSLR builds the action/goto table using the LR(0) automaton and
// FOLLOW-set reduce lookaheads, per §4.2.
func CompileSLR(g *grammar.Grammar) *Table {
	dfa := automaton.Build(g)

	t := &Table{
		Grammar:   g,
		cells:     map[int]map[string]Action{},
		dump:      func(state int) string { return dfa.States[state].String(g) },
		numStates: len(dfa.States),
	}

	for i, state := range dfa.States {
		for _, it := range state.Items() {
			sym, ok := it.NextSymbol(g)
			if ok {
				if g.IsTerminal(sym) {
					if target, ok := dfa.Goto(i, sym); ok {
						t.set(i, sym, Action{Type: ActionShift, State: target})
					}
				} else {
					if target, ok := dfa.Goto(i, sym); ok {
						t.set(i, sym, Action{Type: ActionGoto, State: target})
					}
				}
				continue
			}

			if it.Rule == 0 {
				t.set(i, grammar.SymEnd, Action{Type: ActionAccept})
				continue
			}

			r := g.Rule(it.Rule)
			for _, b := range g.FOLLOW(r.LHS).Elements() {
				t.set(i, b, Action{Type: ActionReduce, Rule: it.Rule})
			}
		}
	}

	return t
}

// CompileLR1 builds the action/goto table using the canonical LR(1)
// automaton, taking each item's own lookahead as the reduce lookahead
// rather than consulting FOLLOW, per §4.2.
func CompileLR1(g *grammar.Grammar) *Table {
	dfa := automaton.Build1(g)

	t := &Table{
		Grammar:   g,
		cells:     map[int]map[string]Action{},
		dump:      func(state int) string { return dfa.States[state].String(g) },
		numStates: len(dfa.States),
	}

	for i, state := range dfa.States {
		for _, it := range state.Items() {
			sym, ok := it.NextSymbol(g)
			if ok {
				if g.IsTerminal(sym) {
					if target, ok := dfa.Goto(i, sym); ok {
						t.set(i, sym, Action{Type: ActionShift, State: target})
					}
				} else {
					if target, ok := dfa.Goto(i, sym); ok {
						t.set(i, sym, Action{Type: ActionGoto, State: target})
					}
				}
				continue
			}

			if it.Rule == 0 {
				t.set(i, grammar.SymEnd, Action{Type: ActionAccept})
				continue
			}

			t.set(i, it.Lookahead, Action{Type: ActionReduce, Rule: it.Rule})
		}
	}

	return t
}
