// Package diag defines the structured diagnostic types raised by every
// stage of the compiler pipeline: the lexer, the indentation shaper, the
// grammar, the parser driver, the scope/type environment, and the lowering
// visitor.
//
// Every diagnostic implements the Diagnostic interface, which splits a
// terse Error() string (suitable for logs) from a human-readable Report()
// (source line, caret, and a longer explanation, wrapped for a terminal),
// following the message/human-message split used by tqerrors.Interpreter
// in the teacher codebase this package is modeled on.
package diag

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
)

// Kind identifies which of the error taxonomy rows in the specification a
// Diagnostic belongs to.
type Kind string

const (
	KindLexError           Kind = "LexError"
	KindIndentationError   Kind = "IndentationError"
	KindParseError         Kind = "ParseError"
	KindNameError          Kind = "NameError"
	KindFeatureUnsupported Kind = "FeatureUnsupported"
	KindGrammarConflict    Kind = "GrammarConflict"
	KindToolchainError     Kind = "ToolchainError"
)

// ExitCode returns the process exit code the CLI should use for a
// diagnostic of this kind. GrammarConflict is non-fatal and has no exit
// code of its own; callers should not call ExitCode for it.
func (k Kind) ExitCode() int {
	switch k {
	case KindLexError:
		return 2
	case KindIndentationError:
		return 3
	case KindParseError:
		return 4
	case KindNameError:
		return 5
	case KindFeatureUnsupported:
		return 6
	case KindToolchainError:
		return 7
	default:
		return 1
	}
}

// Position is a 1-indexed line/column location in source text.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Severity distinguishes a fatal Diagnostic from one that is recorded but
// does not abort compilation (the GrammarConflict constructor always
// builds a Warning; grammar.Validate also reports undeclared symbols under
// KindGrammarConflict at Error severity).
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "WARN"
	}
	return "ERROR"
}

// Diagnostic is the common interface implemented by every error kind this
// compiler raises. It is deliberately small: Kind/Severity for programmatic
// handling (e.g. picking an exit code), Error() for logs, Report() for a
// human reading a terminal.
type Diagnostic interface {
	error

	// Kind identifies which row of the error taxonomy this diagnostic is.
	Kind() Kind

	// Severity reports whether this diagnostic is fatal.
	Severity() Severity

	// Report renders a human-facing explanation: the message, plus a
	// source excerpt and caret when a Position and source line are known.
	Report() string

	// Unwrap gives the wrapped cause, if any.
	Unwrap() error
}

// diagnostic is the concrete implementation shared by every Kind.
type diagnostic struct {
	kind     Kind
	severity Severity
	message  string
	pos      *Position
	sourceLn string
	wrap     error
}

func (d *diagnostic) Error() string { return fmt.Sprintf("%s: %s", d.kind, d.message) }
func (d *diagnostic) Kind() Kind     { return d.kind }
func (d *diagnostic) Severity() Severity { return d.severity }
func (d *diagnostic) Unwrap() error  { return d.wrap }

func (d *diagnostic) Report() string {
	report := rosed.Edit(d.message).Wrap(78).String()

	if d.pos != nil {
		report = fmt.Sprintf("%s: %s", d.pos, report)
	}

	if d.sourceLn != "" && d.pos != nil {
		pad := strings.Repeat(" ", d.pos.Col-1)
		report = rosed.Edit(fmt.Sprintf("%s\n%s\n%s^", report, d.sourceLn, pad)).String()
	}

	return report
}

// New builds a Diagnostic of the given kind and severity.
func New(kind Kind, severity Severity, pos *Position, format string, args ...interface{}) Diagnostic {
	return &diagnostic{
		kind:     kind,
		severity: severity,
		message:  fmt.Sprintf(format, args...),
		pos:      pos,
	}
}

// WithSource attaches the full text of the offending source line, used by
// Report to render a caret.
func WithSource(d Diagnostic, sourceLine string) Diagnostic {
	concrete, ok := d.(*diagnostic)
	if !ok {
		return d
	}
	cp := *concrete
	cp.sourceLn = sourceLine
	return &cp
}

// Wrap builds a Diagnostic that wraps an underlying error, preserving it
// for errors.Unwrap/errors.Is/errors.As chains.
func Wrap(kind Kind, severity Severity, pos *Position, cause error, format string, args ...interface{}) Diagnostic {
	return &diagnostic{
		kind:     kind,
		severity: severity,
		message:  fmt.Sprintf(format, args...),
		pos:      pos,
		wrap:     cause,
	}
}

// Lex builds a LexError citing the first ten characters of unmatched
// buffer, per §4.1.
func Lex(pos Position, unmatchedPrefix string) Diagnostic {
	prefix := unmatchedPrefix
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return New(KindLexError, Error, &pos, "no token matches input starting at %q", prefix)
}

// Indentation builds an IndentationError for an outdent that does not
// match any level on the indentation stack, per §4.1.
func Indentation(line int, col int) Diagnostic {
	pos := Position{Line: line, Col: col}
	return New(KindIndentationError, Error, &pos, "unindent does not match any outer indentation level")
}

// Parse builds a ParseError carrying the offending state and lookahead,
// per §4.3. stateDump is the rendered item set for the offending state.
func Parse(pos Position, state int, lookahead string, stateDump string) Diagnostic {
	d := New(KindParseError, Error, &pos, "unexpected token %q in state %d", lookahead, state)
	concrete := d.(*diagnostic)
	concrete.sourceLn = stateDump
	return concrete
}

// Name builds a NameError for a reference to an unbound identifier, per
// §4.5/§4.6.
func Name(line int, name string) Diagnostic {
	pos := Position{Line: line}
	return New(KindNameError, Error, &pos, "name %q is not defined", name)
}

// FeatureUnsupported builds a FeatureUnsupported diagnostic for a
// syntactically valid but semantically unhandled construct, per §4.6.
func FeatureUnsupported(feature string) Diagnostic {
	return New(KindFeatureUnsupported, Error, nil, "%s is not yet supported", feature)
}

// GrammarConflict builds a non-fatal diagnostic recording a shift/reduce
// or reduce/reduce conflict that arbitration could not resolve from the
// precedence table, per §4.2/§7.
func GrammarConflict(state int, lookahead string, kept, discarded string) Diagnostic {
	return New(KindGrammarConflict, Warning, nil,
		"conflict in state %d on lookahead %q: kept %s over %s", state, lookahead, kept, discarded)
}

// Toolchain wraps a downstream C++ compiler failure with its captured
// stderr, per §6/§7.
func Toolchain(exitCode int, stderr string) Diagnostic {
	return Wrap(KindToolchainError, Error, nil, fmt.Errorf("exit status %d", exitCode),
		"C++ toolchain failed:\n%s", stderr)
}
