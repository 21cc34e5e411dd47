package grammar

import "github.com/dekarrin/langc/internal/util"

// firstFollow memoizes FIRST/FOLLOW computation for a Grammar, with a
// recursion guard so cyclic grammars (mutually-recursive nonterminals)
// terminate by returning the empty set on reentry rather than looping
// forever, per §4.2.
type firstFollow struct {
	g *Grammar

	firstMemo  map[string]util.StringSet
	followMemo map[string]util.StringSet

	firstInProgress  util.StringSet
	followInProgress util.StringSet
}

func newFirstFollow(g *Grammar) *firstFollow {
	return &firstFollow{
		g:                g,
		firstMemo:        map[string]util.StringSet{},
		followMemo:       map[string]util.StringSet{},
		firstInProgress:  util.NewStringSet(),
		followInProgress: util.NewStringSet(),
	}
}

// FIRST returns FIRST(sym): {sym} if sym is a terminal or EPSILON, else
// the union over sym's productions of FIRST of their RHS sequence.
func (ff *firstFollow) FIRST(sym string) util.StringSet {
	if sym == EPSILON {
		return util.NewStringSet(map[string]bool{EPSILON: true})
	}
	if ff.g.IsTerminal(sym) {
		return util.NewStringSet(map[string]bool{sym: true})
	}

	if memo, ok := ff.firstMemo[sym]; ok {
		return memo
	}
	if ff.firstInProgress.Has(sym) {
		return util.NewStringSet()
	}

	ff.firstInProgress.Add(sym)
	result := util.NewStringSet()
	for _, r := range ff.g.RulesFor(sym) {
		result.AddAll(ff.firstOfSequence(r.RHS))
	}
	ff.firstInProgress.Remove(sym)

	ff.firstMemo[sym] = result
	return result
}

// firstOfSequence computes FIRST of a symbol sequence: FIRST(gamma) for
// gamma = X1 X2 ... Xn threads through EPSILON in the standard way —
// FIRST(X1) minus EPSILON, plus FIRST(X2) if EPSILON in FIRST(X1), and so
// on; if every Xi can derive EPSILON, EPSILON itself is in the result.
func (ff *firstFollow) firstOfSequence(seq []string) util.StringSet {
	result := util.NewStringSet()
	if len(seq) == 0 {
		result.Add(EPSILON)
		return result
	}

	allEpsilon := true
	for _, sym := range seq {
		f := ff.FIRST(sym)
		for _, s := range f.Elements() {
			if s != EPSILON {
				result.Add(s)
			}
		}
		if !f.Has(EPSILON) {
			allEpsilon = false
			break
		}
	}
	if allEpsilon {
		result.Add(EPSILON)
	}
	return result
}

// FOLLOW returns FOLLOW(sym) for a nonterminal sym. FOLLOW(start) always
// contains END.
func (ff *firstFollow) FOLLOW(sym string) util.StringSet {
	if memo, ok := ff.followMemo[sym]; ok {
		return memo
	}
	if ff.followInProgress.Has(sym) {
		return util.NewStringSet()
	}

	ff.followInProgress.Add(sym)
	result := util.NewStringSet()
	if sym == ff.g.Start {
		result.Add(SymEnd)
	}

	for _, r := range ff.g.Rules() {
		for i, s := range r.RHS {
			if s != sym {
				continue
			}
			beta := r.RHS[i+1:]
			firstBeta := ff.firstOfSequence(beta)
			for _, b := range firstBeta.Elements() {
				if b != EPSILON {
					result.Add(b)
				}
			}
			if firstBeta.Has(EPSILON) || len(beta) == 0 {
				result.AddAll(ff.FOLLOW(r.LHS))
			}
		}
	}
	ff.followInProgress.Remove(sym)

	ff.followMemo[sym] = result
	return result
}

// SymEnd is the reserved end-of-input terminal FOLLOW(start) always
// contains. Matches lex.SymEnd's value without importing lex (grammar
// must not depend on the lexer package).
const SymEnd = "END"
