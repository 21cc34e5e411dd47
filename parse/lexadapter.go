package parse

import "github.com/dekarrin/langc/lex"

// lexTokenAdapter adapts lex.Token to the driver's minimal TokenLike
// shape.
type lexTokenAdapter struct {
	lex.Token
}

func (a lexTokenAdapter) Sym() string { return a.Symbol }

func (a lexTokenAdapter) Position() (line, col int) { return a.Line, a.Col }

func (a lexTokenAdapter) Lexeme() string { return a.Value }

// shapedLexer is the minimal shape shared by lex.Lexer and
// lex.IndentLexer.
type shapedLexer interface {
	Token(userData any) (lex.Token, error)
}

// lexAdapter adapts a lex.Lexer or lex.IndentLexer to the driver's Lexer
// interface.
type lexAdapter struct {
	inner shapedLexer
}

// NewLexAdapter wraps inner (typically an *lex.IndentLexer) so it can be
// passed directly to Parse.
func NewLexAdapter(inner shapedLexer) Lexer {
	return lexAdapter{inner: inner}
}

func (a lexAdapter) Token(userData any) (TokenLike, error) {
	t, err := a.inner.Token(userData)
	if err != nil {
		return nil, err
	}
	return lexTokenAdapter{t}, nil
}
