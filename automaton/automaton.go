// Package automaton builds the LR(0)/LR(1) item-set DFA that underlies
// both SLR(1) and canonical LR(1) table construction, per §4.2. It is
// grounded on the reference tunascript automaton package's NFA/DFA/ToDFA
// shape (worklist-driven subset construction), generalized from a
// regular-language automaton over characters to an LR viable-prefix
// automaton over grammar symbols.
package automaton

import (
	"fmt"
	"strings"

	"github.com/dekarrin/langc/grammar"
	"github.com/dekarrin/langc/internal/util"
)

// ItemSet is an ordered, deduplicated sequence of LR0Items, per §3 —
// order preserved for deterministic debug dumps, membership maintained
// for O(1) checks.
type ItemSet struct {
	items *util.OrderedStringSet
	byKey map[string]grammar.LR0Item
}

func newItemSet() *ItemSet {
	return &ItemSet{items: util.NewOrderedStringSet(), byKey: map[string]grammar.LR0Item{}}
}

func itemKey(it grammar.LR0Item) string {
	return fmt.Sprintf("%d.%d", it.Rule, it.Dot)
}

// Add inserts it if not already present. Returns true if newly added.
func (s *ItemSet) Add(it grammar.LR0Item) bool {
	k := itemKey(it)
	if s.items.Has(k) {
		return false
	}
	s.items.Add(k)
	s.byKey[k] = it
	return true
}

// Items returns the set's members in insertion order.
func (s *ItemSet) Items() []grammar.LR0Item {
	out := make([]grammar.LR0Item, 0, s.items.Len())
	for _, k := range s.items.Elements() {
		out = append(out, s.byKey[k])
	}
	return out
}

// Len returns the number of items in the set.
func (s *ItemSet) Len() int {
	return s.items.Len()
}

// Equal reports whether s and o contain the same items, regardless of
// order.
func (s *ItemSet) Equal(o *ItemSet) bool {
	return s.items.Equal(o.items)
}

// String renders one LRItem per line, in insertion order, per §4.3's
// debug-dump requirement.
func (s *ItemSet) String(g *grammar.Grammar) string {
	var sb strings.Builder
	for _, it := range s.Items() {
		sb.WriteString(it.String(g))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Closure computes closure(I): for every item A -> a.Bb in I and every
// rule B -> y, add B -> .y, repeated to a fixed point. Insertion order is
// preserved.
func Closure(g *grammar.Grammar, in *ItemSet) *ItemSet {
	out := newItemSet()
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
			for i, r := range g.Rules() {
				if r.LHS != sym {
					continue
				}
				newItem := grammar.LR0Item{Rule: i, Dot: 0}
				if out.Add(newItem) {
					changed = true
				}
			}
		}
	}

	return out
}

// Goto computes goto(I, X) = closure({A -> aX.b | A -> a.Xb in I}).
func Goto(g *grammar.Grammar, in *ItemSet, sym string) *ItemSet {
	moved := newItemSet()
	for _, it := range in.Items() {
		next, ok := it.NextSymbol(g)
		if !ok || next != sym {
			continue
		}
		moved.Add(it.Advance())
	}
	return Closure(g, moved)
}

// symbolsAfterDot returns the distinct symbols appearing immediately
// after a dot anywhere in I, in first-seen order.
func symbolsAfterDot(g *grammar.Grammar, in *ItemSet) []string {
	seen := util.NewOrderedStringSet()
	for _, it := range in.Items() {
		if sym, ok := it.NextSymbol(g); ok {
			seen.Add(sym)
		}
	}
	return seen.Elements()
}

// DFA is the canonical collection of LR(0) item sets together with their
// goto transitions, indexed by insertion order (state 0 is always the
// start state).
type DFA struct {
	States      []*ItemSet
	Transitions []map[string]int
}

// Build runs the worklist subset construction from §4.2: start state is
// closure({S' -> .S}); repeatedly compute goto for every state and every
// symbol following a dot, appending new states as they are discovered.
func Build(g *grammar.Grammar) *DFA {
	start := newItemSet()
	start.Add(grammar.LR0Item{Rule: 0, Dot: 0})
	startState := Closure(g, start)

	dfa := &DFA{
		States:      []*ItemSet{startState},
		Transitions: []map[string]int{{}},
	}

	work := []int{0}
	for len(work) > 0 {
		i := work[0]
		work = work[1:]

		for _, sym := range symbolsAfterDot(g, dfa.States[i]) {
			next := Goto(g, dfa.States[i], sym)
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

// find returns the index of an existing state equal to s, or -1.
func (dfa *DFA) find(s *ItemSet) int {
	for i, existing := range dfa.States {
		if existing.Equal(s) {
			return i
		}
	}
	return -1
}

// Goto returns the state reached from state i on symbol sym, and whether
// a transition exists.
func (dfa *DFA) Goto(i int, sym string) (int, bool) {
	j, ok := dfa.Transitions[i][sym]
	return j, ok
}

func (dfa *DFA) String(g *grammar.Grammar) string {
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
