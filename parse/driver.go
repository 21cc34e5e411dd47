package parse

import (
	"github.com/dekarrin/langc/diag"
	"github.com/dekarrin/langc/internal/util"
)

// TokenLike is the minimal shape the driver needs from a token: a symbol
// to drive the table and a position for diagnostics. lex.Token is adapted
// to it by lexTokenAdapter (lexadapter.go); the driver itself (this file)
// does not import lex.
type TokenLike interface {
	Sym() string
	Position() (line, col int)
	Lexeme() string
}

// Lexer is the minimal token source the driver pulls from.
type Lexer interface {
	Token(userData any) (TokenLike, error)
}

// node is an entry on the semantic-node stack: either a raw token (for a
// shifted terminal) or whatever a rule's Callback returned (for a reduced
// nonterminal).
type node = any

// Result is the accepted parse: the single semantic node the start
// symbol reduced to.
type Result struct {
	Node node
}

// Parse drives table over toks, per §4.3's three-parallel-stack
// algorithm: symbols and semantic nodes always have equal length, and
// states holds one more entry than either (the initial state 0). userData
// is threaded to every rule Callback.
func Parse(table *Table, toks Lexer, userData any) (*Result, diag.Diagnostic) {
	var states util.Stack[int]
	var symbols util.Stack[string]
	var nodes util.Stack[node]

	states.Push(0)

	lookahead, err := toks.Token(userData)
	if err != nil {
		if d, ok := err.(diag.Diagnostic); ok {
			return nil, d
		}
		return nil, diag.New(diag.KindParseError, diag.Error, nil, "%s", err.Error())
	}

	for {
		top := states.Peek()
		action := table.Action(top, lookahead.Sym())

		switch action.Type {
		case ActionShift:
			states.Push(action.State)
			symbols.Push(lookahead.Sym())
			nodes.Push(lookahead)

			lookahead, err = toks.Token(userData)
			if err != nil {
				if d, ok := err.(diag.Diagnostic); ok {
					return nil, d
				}
				return nil, diag.New(diag.KindParseError, diag.Error, nil, "%s", err.Error())
			}

		case ActionReduce:
			rule := table.Grammar.Rule(action.Rule)
			n := len(rule.RHS)

			var children []node
			if n > 0 {
				children = nodes.PopN(n)
				states.PopN(n)
				symbols.PopN(n)
			}

			var result node
			if rule.Callback != nil {
				result = rule.Callback(children, userData)
			} else if len(children) > 0 {
				result = children[0]
			}

			newTop := states.Peek()
			gotoAction := table.Action(newTop, rule.LHS)
			if gotoAction.Type != ActionGoto {
				line, col := lookahead.Position()
				return nil, diag.Parse(diag.Position{Line: line, Col: col}, newTop, lookahead.Sym(),
					table.ItemSetString(newTop))
			}

			symbols.Push(rule.LHS)
			nodes.Push(result)
			states.Push(gotoAction.State)

		case ActionAccept:
			if nodes.Len() != 1 {
				return nil, diag.New(diag.KindParseError, diag.Error, nil,
					"parse accepted with %d nodes on the stack, expected 1", nodes.Len())
			}
			return &Result{Node: nodes.Peek()}, nil

		default:
			line, col := lookahead.Position()
			return nil, diag.Parse(diag.Position{Line: line, Col: col}, top, lookahead.Sym(),
				table.ItemSetString(top))
		}
	}
}
