package lex

import (
	"io"

	"github.com/dekarrin/langc/diag"
	"github.com/dekarrin/langc/internal/util"
)

// IndentLexer wraps a base Lexer and synthesizes INDENT/DEDENT tokens from
// changes in a logical line's leading column, per §4.1. It holds an
// indentation stack seeded with level 1 (the column of a line with no
// leading whitespace) and a small queue of synthetic tokens waiting to be
// drained ahead of the next real token.
type IndentLexer struct {
	base *Lexer

	levels util.Stack[int]

	queue []Token

	lastWasNewline bool
	sawFirstToken  bool
}

// NewIndentLexer wraps base with indentation shaping.
func NewIndentLexer(base *Lexer) *IndentLexer {
	lx := &IndentLexer{base: base}
	lx.levels.Push(1)
	return lx
}

// Input forwards to the base lexer.
func (lx *IndentLexer) Input(code string) { lx.base.Input(code) }

// InputReader forwards to the base lexer.
func (lx *IndentLexer) InputReader(r io.Reader) error {
	return lx.base.InputReader(r)
}

// Empty reports whether the base lexer and the shaping queue are both
// exhausted.
func (lx *IndentLexer) Empty() bool {
	return lx.base.Empty() && len(lx.queue) == 0
}

// Token returns the next shaped token. Queued INDENT/DEDENT tokens are
// drained before any new base token is requested, so that a run of
// synthetic tokens for a multi-level outdent is returned one per call, in
// stack-popping order, per §4.1.
func (lx *IndentLexer) Token(userData any) (Token, error) {
	if len(lx.queue) > 0 {
		t := lx.queue[0]
		lx.queue = lx.queue[1:]
		lx.lastWasNewline = false
		return t, nil
	}

	t, err := lx.base.Token(userData)
	if err != nil {
		return Token{}, err
	}

	if t.Symbol == SymEnd {
		lx.lastWasNewline = false
		// unwind any still-open indentation levels so that the stream
		// balances #INDENT == #DEDENT by the time END is reached.
		for lx.levels.Len() > 1 {
			lx.levels.Pop()
			lx.queue = append(lx.queue, Token{Symbol: SymDedent, Pos: t.Pos, Line: t.Line, Col: t.Col})
		}
		lx.queue = append(lx.queue, t)
		first := lx.queue[0]
		lx.queue = lx.queue[1:]
		return first, nil
	}

	startsLine := !lx.sawFirstToken || lx.lastWasNewline
	lx.sawFirstToken = true

	if startsLine {
		if err := lx.shape(t); err != nil {
			return Token{}, err
		}
	}

	lx.lastWasNewline = t.Symbol == SymNewline

	if len(lx.queue) > 0 {
		next := lx.queue[0]
		lx.queue = lx.queue[1:]
		lx.queue = append(lx.queue, t)
		return next, nil
	}

	return t, nil
}

// shape compares t's column against the indentation stack and queues
// INDENT or a run of DEDENT tokens, per §4.1 rule 3. t itself is enqueued
// by the caller after any synthetic tokens, so it is returned only once
// the shaping tokens for the line it starts have been drained.
func (lx *IndentLexer) shape(t Token) error {
	c := t.Col
	top := lx.levels.Peek()

	switch {
	case c > top:
		lx.levels.Push(c)
		lx.queue = append(lx.queue, Token{Symbol: SymIndent, Pos: t.Pos, Line: t.Line, Col: c})
	case c < top:
		for lx.levels.Len() > 1 && lx.levels.Peek() > c {
			lx.levels.Pop()
			lx.queue = append(lx.queue, Token{Symbol: SymDedent, Pos: t.Pos, Line: t.Line, Col: c})
		}
		if lx.levels.Peek() != c {
			return diag.Indentation(t.Line, c)
		}
	}

	return nil
}
