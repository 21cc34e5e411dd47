// Package lex implements the base regex-table lexer and the indentation
// shaping layer that turns it into a token stream suitable for an LR
// parser, per §4.1. It is grounded on the regex-table-plus-callbacks shape
// of ictiobus's lexer and the lexeme/pos/line/col token shape of the
// teacher's own tunascript lexer, generalized to a whitespace-insensitive-
// except-for-indentation language.
package lex

import (
	"bytes"
	"io"
	"strings"

	"github.com/dekarrin/langc/diag"
)

// Lexer is the base, non-indentation-aware scanner. It holds an internal
// buffer and a cursor of (byte offset, line, column); callers pull tokens
// one at a time with Token.
type Lexer struct {
	specs []TokenSpec

	buf        []byte
	readOffset int

	pos  int
	line int
	col  int
}

// NewLexer builds a Lexer using the given token table. Use DefaultSpecs for
// language L's standard table.
func NewLexer(specs []TokenSpec) *Lexer {
	return &Lexer{specs: specs, line: 1, col: 1}
}

// Input appends code to the lexer's buffer. It may be called multiple
// times before or during tokenization, e.g. to stream a large file in
// chunks.
func (lx *Lexer) Input(code string) {
	lx.buf = append(lx.buf, code...)
}

// InputReader drains r and appends its full contents to the buffer. Regex
// matching needs random access within a logical line, so the contents are
// still fully buffered internally; this seam exists so callers (and tests)
// can feed an io.Reader — a file, a strings.Reader, a bytes.Buffer — without
// doing their own io.ReadAll first, mirroring ictiobus/lex's Lex(io.Reader)
// entry point.
func (lx *Lexer) InputReader(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	lx.buf = append(lx.buf, data...)
	return nil
}

// Empty reports whether the buffer has been fully consumed.
func (lx *Lexer) Empty() bool {
	return lx.readOffset >= len(lx.buf)
}

// remaining returns the unconsumed suffix of the buffer.
func (lx *Lexer) remaining() []byte {
	return lx.buf[lx.readOffset:]
}

// advance moves the cursor past n bytes of matched text, updating
// line/col by counting newlines and trailing non-newline bytes.
func (lx *Lexer) advance(match []byte) {
	nl := bytes.Count(match, []byte{'\n'})
	if nl > 0 {
		lx.line += nl
		last := bytes.LastIndexByte(match, '\n')
		lx.col = len(match) - last
	} else {
		lx.col += len(match)
	}
	lx.pos += len(match)
	lx.readOffset += len(match)
}

// skipWhitespace consumes a single run of non-newline whitespace at the
// cursor, if any is present, and reports whether it consumed anything.
// Newlines are never silently skipped here — they are meaningful tokens
// (NEWLINE is in the token table) and indentation shaping depends on them.
func (lx *Lexer) skipWhitespace() bool {
	rem := lx.remaining()
	n := 0
	for n < len(rem) && (rem[n] == ' ' || rem[n] == '\t' || rem[n] == '\r') {
		n++
	}
	if n == 0 {
		return false
	}
	lx.advance(rem[:n])
	return true
}

// Token returns the next token from the stream. Once the buffer is
// exhausted it returns the synthetic END token on every subsequent call.
// userData is threaded through to any TokenSpec.Callback invoked for the
// matched symbol.
func (lx *Lexer) Token(userData any) (Token, error) {
	for {
		if lx.Empty() {
			return endToken(lx.line, lx.col, lx.pos), nil
		}

		rem := lx.remaining()

		// COMMENT is consumed and never surfaced as a token, per §4.1.
		if loc := findSpec(lx.specs, "COMMENT", rem); loc != nil {
			lx.advance(rem[:loc[1]])
			continue
		}

		if t, ok := lx.tryMatch(rem, userData); ok {
			return t, nil
		}

		if lx.skipWhitespace() {
			continue
		}

		pos := diag.Position{Line: lx.line, Col: lx.col}
		return Token{}, diag.Lex(pos, unmatchedPrefix(rem))
	}
}

// tryMatch tries every spec (other than COMMENT, handled separately) in
// table order against rem, anchored at its start, and returns the first
// match.
func (lx *Lexer) tryMatch(rem []byte, userData any) (Token, bool) {
	for _, spec := range lx.specs {
		if spec.Symbol == "COMMENT" {
			continue
		}
		loc := spec.Pattern.FindIndex(rem)
		if loc == nil || loc[0] != 0 {
			continue
		}

		value := string(rem[:loc[1]])
		t := Token{
			Symbol: spec.Symbol,
			Value:  value,
			Pos:    lx.pos,
			Line:   lx.line,
			Col:    lx.col,
		}
		lx.advance(rem[:loc[1]])

		if spec.Callback != nil {
			spec.Callback(&t, userData)
		}
		return t, true
	}
	return Token{}, false
}

// findSpec locates spec by symbol and matches it against rem, anchored at
// its start, returning the match bounds or nil.
func findSpec(specs []TokenSpec, symbol string, rem []byte) []int {
	for _, s := range specs {
		if s.Symbol != symbol {
			continue
		}
		loc := s.Pattern.FindIndex(rem)
		if loc != nil && loc[0] == 0 {
			return loc
		}
		return nil
	}
	return nil
}

// unmatchedPrefix trims rem to a short, printable prefix for error
// messages.
func unmatchedPrefix(rem []byte) string {
	s := string(rem)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return s
}
