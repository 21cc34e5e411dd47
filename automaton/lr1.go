package automaton

import (
	"fmt"
	"strings"

	"github.com/dekarrin/langc/grammar"
	"github.com/dekarrin/langc/internal/util"
)

// ItemSet1 is the LR(1) analog of ItemSet: an ordered, deduplicated
// sequence of LR1Items (item plus lookahead terminal).
type ItemSet1 struct {
	items *util.OrderedStringSet
	byKey map[string]grammar.LR1Item
}

func newItemSet1() *ItemSet1 {
	return &ItemSet1{items: util.NewOrderedStringSet(), byKey: map[string]grammar.LR1Item{}}
}

func item1Key(it grammar.LR1Item) string {
	return fmt.Sprintf("%d.%d,%s", it.Rule, it.Dot, it.Lookahead)
}

// Add inserts it if not already present. Returns true if newly added.
func (s *ItemSet1) Add(it grammar.LR1Item) bool {
	k := item1Key(it)
	if s.items.Has(k) {
		return false
	}
	s.items.Add(k)
	s.byKey[k] = it
	return true
}

// Items returns the set's members in insertion order.
func (s *ItemSet1) Items() []grammar.LR1Item {
	out := make([]grammar.LR1Item, 0, s.items.Len())
	for _, k := range s.items.Elements() {
		out = append(out, s.byKey[k])
	}
	return out
}

// Len returns the number of items in the set.
func (s *ItemSet1) Len() int {
	return s.items.Len()
}

// Equal reports whether s and o contain the same items, regardless of
// order.
func (s *ItemSet1) Equal(o *ItemSet1) bool {
	return s.items.Equal(o.items)
}

// Core returns the LR(0) core of the set (items with lookaheads
// stripped, deduplicated) — used when a caller needs to compare LR(1)
// states ignoring lookahead, e.g. for a future LALR merge pass.
func (s *ItemSet1) Core() *ItemSet {
	core := newItemSet()
	for _, it := range s.Items() {
		core.Add(it.LR0Item)
	}
	return core
}

func (s *ItemSet1) String(g *grammar.Grammar) string {
	var sb strings.Builder
	for _, it := range s.Items() {
		sb.WriteString(it.String(g))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Closure1 computes the LR(1) closure: for every item [A -> a.Bb, l] and
// every rule B -> y, add [B -> .y, b'] for every b' in FIRST(b·l) (FIRST
// of the suffix beta followed by the outer lookahead), per the standard
// canonical-LR(1) construction referenced by §4.2.
func Closure1(g *grammar.Grammar, in *ItemSet1) *ItemSet1 {
	out := newItemSet1()
	for _, it := range in.Items() {
		out.Add(it)
	}

	changed := true
	for changed {
		changed = false
		for _, it := range out.Items() {
			sym, ok := it.NextSymbol(g)
			if !ok || !g.IsNonTerminal(sym) {
				continue
			}

			beta := g.Rule(it.Rule).RHS[it.Dot+1:]
			lookaheads := firstOfSequenceWithTrailing(g, beta, it.Lookahead)

			for i, r := range g.Rules() {
				if r.LHS != sym {
					continue
				}
				for _, la := range lookaheads {
					newItem := grammar.LR1Item{LR0Item: grammar.LR0Item{Rule: i, Dot: 0}, Lookahead: la}
					if out.Add(newItem) {
						changed = true
					}
				}
			}
		}
	}

	return out
}

// firstOfSequenceWithTrailing computes FIRST(beta) \ {EPSILON}, adding
// trailing if EPSILON in FIRST(beta) (or beta is empty).
func firstOfSequenceWithTrailing(g *grammar.Grammar, beta []string, trailing string) []string {
	result := util.NewStringSet()
	allEpsilon := true
	for _, sym := range beta {
		f := g.FIRST(sym)
		for _, s := range f.Elements() {
			if s != grammar.EPSILON {
				result.Add(s)
			}
		}
		if !f.Has(grammar.EPSILON) {
			allEpsilon = false
			break
		}
	}
	if allEpsilon {
		result.Add(trailing)
	}
	return result.Elements()
}

// Goto1 computes the LR(1) goto: closure({[A -> aX.b, l] | [A -> a.Xb, l]
// in I}).
func Goto1(g *grammar.Grammar, in *ItemSet1, sym string) *ItemSet1 {
	moved := newItemSet1()
	for _, it := range in.Items() {
		next, ok := it.NextSymbol(g)
		if !ok || next != sym {
			continue
		}
		moved.Add(it.Advance())
	}
	return Closure1(g, moved)
}

func symbolsAfterDot1(g *grammar.Grammar, in *ItemSet1) []string {
	seen := util.NewOrderedStringSet()
	for _, it := range in.Items() {
		if sym, ok := it.NextSymbol(g); ok {
			seen.Add(sym)
		}
	}
	return seen.Elements()
}

// DFA1 is the canonical LR(1) collection of item sets and their goto
// transitions.
type DFA1 struct {
	States      []*ItemSet1
	Transitions []map[string]int
}

// Build1 runs the same worklist construction as Build, over LR(1) item
// sets: start state is closure({[S' -> .S, END]}).
func Build1(g *grammar.Grammar) *DFA1 {
	start := newItemSet1()
	start.Add(grammar.LR1Item{LR0Item: grammar.LR0Item{Rule: 0, Dot: 0}, Lookahead: grammar.SymEnd})
	startState := Closure1(g, start)

	dfa := &DFA1{
		States:      []*ItemSet1{startState},
		Transitions: []map[string]int{{}},
	}

	work := []int{0}
	for len(work) > 0 {
		i := work[0]
		work = work[1:]

		for _, sym := range symbolsAfterDot1(g, dfa.States[i]) {
			next := Goto1(g, dfa.States[i], sym)
			if next.Len() == 0 {
				continue
			}

			target := dfa.find(next)
			if target == -1 {
				dfa.States = append(dfa.States, next)
				dfa.Transitions = append(dfa.Transitions, map[string]int{})
				target = len(dfa.States) - 1
				work = append(work, target)
			}
			dfa.Transitions[i][sym] = target
		}
	}

	return dfa
}

func (dfa *DFA1) find(s *ItemSet1) int {
	for i, existing := range dfa.States {
		if existing.Equal(s) {
			return i
		}
	}
	return -1
}

// Goto returns the state reached from state i on symbol sym, and whether
// a transition exists.
func (dfa *DFA1) Goto(i int, sym string) (int, bool) {
	j, ok := dfa.Transitions[i][sym]
	return j, ok
}

func (dfa *DFA1) String(g *grammar.Grammar) string {
	var sb strings.Builder
	for i, s := range dfa.States {
		fmt.Fprintf(&sb, "state %d:\n", i)
		for _, line := range strings.Split(strings.TrimRight(s.String(g), "\n"), "\n") {
			sb.WriteString("  ")
			sb.WriteString(line)
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
