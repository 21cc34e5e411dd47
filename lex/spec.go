package lex

import "regexp"

// Callback is invoked after a TokenSpec's pattern successfully matches. It
// may inspect or rewrite the produced Token and mutate userData, mirroring
// the Action hooks of ictiobus's regex-table lexer.
type Callback func(t *Token, userData any)

// TokenSpec binds a token symbol to the regular expression that recognizes
// it and an optional per-match callback. Specs are tried in table order, so
// earlier entries take priority on ties (e.g. keywords must precede the
// general identifier pattern).
type TokenSpec struct {
	Symbol   string
	Pattern  *regexp.Regexp
	Callback Callback
}

// MustSpec compiles pattern (anchored at the start of the match by virtue
// of how the lexer slices its buffer) and panics on a malformed regex. It
// is meant for package-level table literals built at init time, where a
// malformed pattern is a programmer error, not a runtime condition.
func MustSpec(symbol, pattern string) TokenSpec {
	return TokenSpec{Symbol: symbol, Pattern: regexp.MustCompile("^(?:" + pattern + ")")}
}

// MustSpecFunc is MustSpec with an attached Callback.
func MustSpecFunc(symbol, pattern string, cb Callback) TokenSpec {
	s := MustSpec(symbol, pattern)
	s.Callback = cb
	return s
}

// DefaultSpecs is the token table for language L: keywords before the
// general NAME pattern, operators ordered longest-first so that e.g. "=="
// is tried before "=".
var DefaultSpecs = []TokenSpec{
	MustSpec("COMMENT", `#[^\n]*`),

	MustSpec("KW_FUNC", `func\b`),
	MustSpec("KW_RETURN", `return\b`),
	MustSpec("KW_IF", `if\b`),
	MustSpec("KW_ELIF", `elif\b`),
	MustSpec("KW_ELSE", `else\b`),
	MustSpec("KW_FOR", `for\b`),
	MustSpec("KW_IN", `in\b`),
	MustSpec("KW_VAR", `var\b`),
	MustSpec("KW_TRUE", `true\b`),
	MustSpec("KW_FALSE", `false\b`),

	MustSpec("OP_EQ", `==`),
	MustSpec("OP_NEQ", `!=`),
	MustSpec("OP_LEQ", `<=`),
	MustSpec("OP_GEQ", `>=`),
	MustSpec("OP_ARROW", `->`),
	MustSpec("OP_AND", `and\b`),
	MustSpec("OP_OR", `or\b`),
	MustSpec("OP_NOT", `not\b`),

	MustSpec("LPAREN", `\(`),
	MustSpec("RPAREN", `\)`),
	MustSpec("COMMA", `,`),
	MustSpec("COLON", `:`),
	MustSpec("DOT", `\.`),
	MustSpec("ASSIGN", `=`),
	MustSpec("PLUS", `\+`),
	MustSpec("MINUS", `-`),
	MustSpec("STAR", `\*`),
	MustSpec("SLASH", `/`),
	MustSpec("LT", `<`),
	MustSpec("GT", `>`),

	MustSpec("STRING", `"(?:[^"\\]|\\.)*"`),
	MustSpec("FLOAT", `[0-9]+\.[0-9]+`),
	MustSpec("INT", `[0-9]+`),
	MustSpec("NAME", `[A-Za-z_][A-Za-z0-9_]*`),

	MustSpec("NEWLINE", `\n`),
}
