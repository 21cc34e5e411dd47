// Package langgrammar is the concrete, built-in grammar.Grammar for
// language L: the production set and reduction callbacks that turn a
// parse into an ast.Module, plus the default precedence table. It is the
// glue between the generic lex/grammar/automaton/parse machinery and the
// concrete ast package — grounded on the reference tunascript package's
// own hand-built grammar.go (one NewRule call per production, callbacks
// constructing that package's AST nodes directly from matched children),
// generalized from tunascript's flag-expression grammar to language L's
// statement/expression grammar.
package langgrammar

import (
	"strconv"

	"github.com/dekarrin/langc/ast"
	"github.com/dekarrin/langc/grammar"
	"github.com/dekarrin/langc/parse"
)

// Start is the grammar's start symbol.
const Start = "MODULE"

// Terminals is every terminal symbol the grammar's rules reference: the
// lex.DefaultSpecs symbols except KW_TRUE, KW_FALSE, OP_AND, OP_OR, OP_NOT
// and FLOAT (lexed but not declared), plus the indent shaper's synthetic
// symbols.
var Terminals = []string{
	"KW_FUNC", "KW_RETURN", "KW_IF", "KW_ELIF", "KW_ELSE", "KW_FOR", "KW_IN", "KW_VAR",
	"OP_EQ", "OP_NEQ", "OP_LEQ", "OP_GEQ", "OP_ARROW",
	"LPAREN", "RPAREN", "COMMA", "COLON", "DOT", "ASSIGN",
	"PLUS", "MINUS", "STAR", "SLASH", "LT", "GT",
	"STRING", "INT", "NAME",
	"NEWLINE", "INDENT", "DEDENT",
}

func tok(children []any, i int) parse.TokenLike {
	return children[i].(parse.TokenLike)
}

func lexeme(children []any, i int) string {
	return tok(children, i).Lexeme()
}

func node(children []any, i int) ast.Node {
	return children[i].(ast.Node)
}

func stmts(children []any, i int) []ast.Node {
	return children[i].([]ast.Node)
}

// unquote strips the surrounding quotes from a STRING token's lexeme and
// resolves its backslash escapes. lex's STRING pattern accepts the same
// escape shape strconv.Unquote understands, so a failure here would mean
// the lexer matched text its own grammar doesn't allow — fall back to the
// raw interior rather than panic.
func unquote(raw string) string {
	s, err := strconv.Unquote(raw)
	if err != nil {
		if len(raw) >= 2 {
			return raw[1 : len(raw)-1]
		}
		return raw
	}
	return s
}

func binOpRule(opSym string, op ast.BinOp) grammar.Rule {
	return grammar.NewRule("EXPR", []string{"EXPR", opSym, "EXPR"}, func(children []any, _ any) any {
		return &ast.BinExpr{Lhs: node(children, 0), Op: op, Rhs: node(children, 2)}
	})
}

// DefaultPrecedence is the built-in precedence list for language L:
// comparisons lowest, then additive, then multiplicative, then unary
// minus overridden above all of them via the %UMINUS pseudo-token, per
// scenario 5 and scenario 6 of the testable-properties section.
func DefaultPrecedence() []grammar.PrecedenceLevel {
	return []grammar.PrecedenceLevel{
		{Assoc: grammar.LeftAssoc, Terminals: []string{"OP_EQ", "OP_NEQ", "LT", "GT", "OP_LEQ", "OP_GEQ"}},
		{Assoc: grammar.LeftAssoc, Terminals: []string{"PLUS", "MINUS"}},
		{Assoc: grammar.LeftAssoc, Terminals: []string{"STAR", "SLASH"}},
		{Assoc: grammar.RightAssoc, Terminals: []string{"UMINUS"}},
	}
}

// Build constructs the built-in grammar for language L using
// DefaultPrecedence.
func Build() *grammar.Grammar {
	return BuildWithPrecedence(DefaultPrecedence())
}

// BuildWithPrecedence constructs the built-in grammar's production set
// with a caller-supplied precedence list, letting a `--grammar` TOML
// descriptor (per §3A's CompilerOptions) override associativity and
// level without touching the rule table itself, which is fixed because
// its callbacks are compiled Go closures a data file cannot express.
func BuildWithPrecedence(precedence []grammar.PrecedenceLevel) *grammar.Grammar {
	rules := []grammar.Rule{
		// MODULE -> STMT_LIST
		grammar.NewRule(Start, []string{"STMT_LIST"}, func(children []any, _ any) any {
			return &ast.Module{Stmts: stmts(children, 0)}
		}),

		// STMT_LIST -> STMT_LIST STMT | ε
		grammar.NewRule("STMT_LIST", []string{"STMT_LIST", "STMT"}, func(children []any, _ any) any {
			return append(stmts(children, 0), node(children, 1))
		}),
		grammar.NewRule("STMT_LIST", []string{}, func(children []any, _ any) any {
			return []ast.Node{}
		}),

		// STMT -> FUNC_DEF | IF_STMT | FOR_LOOP | SIMPLE_STMT NEWLINE
		grammar.NewRule("STMT", []string{"FUNC_DEF"}, nil),
		grammar.NewRule("STMT", []string{"IF_STMT"}, nil),
		grammar.NewRule("STMT", []string{"FOR_LOOP"}, nil),
		grammar.NewRule("STMT", []string{"SIMPLE_STMT", "NEWLINE"}, func(children []any, _ any) any {
			return node(children, 0)
		}),

		// SIMPLE_STMT -> ASSIGN_STMT | RETURN_STMT | EXPR_STMT
		grammar.NewRule("SIMPLE_STMT", []string{"ASSIGN_STMT"}, nil),
		grammar.NewRule("SIMPLE_STMT", []string{"RETURN_STMT"}, nil),
		grammar.NewRule("SIMPLE_STMT", []string{"EXPR_STMT"}, nil),

		grammar.NewRule("ASSIGN_STMT", []string{"NAME", "ASSIGN", "EXPR"}, func(children []any, _ any) any {
			return &ast.Assign{Name: lexeme(children, 0), Expr: node(children, 2)}
		}),

		grammar.NewRule("RETURN_STMT", []string{"KW_RETURN", "EXPR"}, func(children []any, _ any) any {
			return &ast.ReturnStmt{Expr: node(children, 1)}
		}),
		grammar.NewRule("RETURN_STMT", []string{"KW_RETURN"}, func(children []any, _ any) any {
			return &ast.ReturnStmt{Expr: nil}
		}),

		grammar.NewRule("EXPR_STMT", []string{"EXPR"}, func(children []any, _ any) any {
			return &ast.ExprStmt{Expr: node(children, 0)}
		}),

		// FUNC_DEF -> KW_FUNC NAME LPAREN PARAM_LIST_OPT RPAREN OP_ARROW
		//             TYPE_DECL COLON NEWLINE BLOCK
		grammar.NewRule("FUNC_DEF",
			[]string{"KW_FUNC", "NAME", "LPAREN", "PARAM_LIST_OPT", "RPAREN", "OP_ARROW", "TYPE_DECL", "COLON", "NEWLINE", "BLOCK"},
			func(children []any, _ any) any {
				return &ast.FuncDef{
					Name:       lexeme(children, 1),
					Args:       &ast.FuncArgs{Positional: children[3].([]*ast.VarDecl)},
					ReturnType: children[6].(ast.TypeDecl),
					Body:       stmts(children, 9),
				}
			}),

		// BLOCK -> INDENT STMT_PLUS DEDENT
		grammar.NewRule("BLOCK", []string{"INDENT", "STMT_PLUS", "DEDENT"}, func(children []any, _ any) any {
			return stmts(children, 1)
		}),

		// STMT_PLUS -> STMT_PLUS STMT | STMT
		grammar.NewRule("STMT_PLUS", []string{"STMT_PLUS", "STMT"}, func(children []any, _ any) any {
			return append(stmts(children, 0), node(children, 1))
		}),
		grammar.NewRule("STMT_PLUS", []string{"STMT"}, func(children []any, _ any) any {
			return []ast.Node{node(children, 0)}
		}),

		// PARAM_LIST_OPT -> PARAM_LIST | ε
		grammar.NewRule("PARAM_LIST_OPT", []string{"PARAM_LIST"}, func(children []any, _ any) any {
			return children[0].([]*ast.VarDecl)
		}),
		grammar.NewRule("PARAM_LIST_OPT", []string{}, func(children []any, _ any) any {
			return []*ast.VarDecl{}
		}),

		// PARAM_LIST -> PARAM_LIST COMMA PARAM | PARAM
		grammar.NewRule("PARAM_LIST", []string{"PARAM_LIST", "COMMA", "PARAM"}, func(children []any, _ any) any {
			return append(children[0].([]*ast.VarDecl), children[2].(*ast.VarDecl))
		}),
		grammar.NewRule("PARAM_LIST", []string{"PARAM"}, func(children []any, _ any) any {
			return []*ast.VarDecl{children[0].(*ast.VarDecl)}
		}),

		// PARAM -> KW_VAR NAME COLON TYPE_DECL
		grammar.NewRule("PARAM", []string{"KW_VAR", "NAME", "COLON", "TYPE_DECL"}, func(children []any, _ any) any {
			return &ast.VarDecl{Name: lexeme(children, 1), Type: children[3].(ast.TypeDecl)}
		}),

		// TYPE_DECL -> NAME ("str" is the builtin string type; anything
		// else is a plain named type)
		grammar.NewRule("TYPE_DECL", []string{"NAME"}, func(children []any, _ any) any {
			name := lexeme(children, 0)
			if name == "str" {
				return &ast.StringTypeDecl{}
			}
			return &ast.NameTypeDecl{Name: name}
		}),

		// IF_STMT -> KW_IF EXPR COLON NEWLINE BLOCK ELSE_CLAUSE
		grammar.NewRule("IF_STMT", []string{"KW_IF", "EXPR", "COLON", "NEWLINE", "BLOCK", "ELSE_CLAUSE"},
			func(children []any, _ any) any {
				var elseBody []ast.Node
				if children[5] != nil {
					elseBody = children[5].([]ast.Node)
				}
				return &ast.IfStmt{Cond: node(children, 1), Body: stmts(children, 4), Else: elseBody}
			}),

		// ELSE_CLAUSE -> KW_ELIF EXPR COLON NEWLINE BLOCK ELSE_CLAUSE
		grammar.NewRule("ELSE_CLAUSE",
			[]string{"KW_ELIF", "EXPR", "COLON", "NEWLINE", "BLOCK", "ELSE_CLAUSE"},
			func(children []any, _ any) any {
				var nested []ast.Node
				if children[5] != nil {
					nested = children[5].([]ast.Node)
				}
				elif := &ast.IfStmt{Cond: node(children, 1), Body: stmts(children, 4), Else: nested}
				return []ast.Node{elif}
			}),
		// ELSE_CLAUSE -> KW_ELSE COLON NEWLINE BLOCK
		grammar.NewRule("ELSE_CLAUSE", []string{"KW_ELSE", "COLON", "NEWLINE", "BLOCK"}, func(children []any, _ any) any {
			return stmts(children, 3)
		}),
		// ELSE_CLAUSE -> ε
		grammar.NewRule("ELSE_CLAUSE", []string{}, func(children []any, _ any) any {
			return nil
		}),

		// FOR_LOOP -> KW_FOR NAME KW_IN EXPR COLON NEWLINE BLOCK
		grammar.NewRule("FOR_LOOP", []string{"KW_FOR", "NAME", "KW_IN", "EXPR", "COLON", "NEWLINE", "BLOCK"},
			func(children []any, _ any) any {
				return &ast.ForLoop{
					Targets:  []string{lexeme(children, 1)},
					Iterable: node(children, 3),
					Body:     stmts(children, 6),
				}
			}),

		// EXPR binary operators, lowest to highest precedence.
		binOpRule("OP_EQ", ast.OpEq),
		binOpRule("OP_NEQ", ast.OpNe),
		binOpRule("LT", ast.OpLt),
		binOpRule("GT", ast.OpGt),
		binOpRule("OP_LEQ", ast.OpLe),
		binOpRule("OP_GEQ", ast.OpGe),
		binOpRule("PLUS", ast.OpAdd),
		binOpRule("MINUS", ast.OpSub),
		binOpRule("STAR", ast.OpMul),
		binOpRule("SLASH", ast.OpDiv),

		// EXPR -> MINUS EXPR %UMINUS (unary minus, binds tighter than */)
		grammar.NewRule("EXPR", []string{"MINUS", "EXPR", "%UMINUS"}, func(children []any, _ any) any {
			return &ast.UnaryExpr{Op: ast.OpUSub, Expr: node(children, 1)}
		}),

		grammar.NewRule("EXPR", []string{"POSTFIX"}, func(children []any, _ any) any {
			return node(children, 0)
		}),

		// POSTFIX -> POSTFIX LPAREN ARGS_OPT RPAREN
		grammar.NewRule("POSTFIX", []string{"POSTFIX", "LPAREN", "ARGS_OPT", "RPAREN"}, func(children []any, _ any) any {
			return &ast.Call{Callee: node(children, 0), Args: children[2].([]ast.Node)}
		}),
		// POSTFIX -> POSTFIX DOT NAME
		grammar.NewRule("POSTFIX", []string{"POSTFIX", "DOT", "NAME"}, func(children []any, _ any) any {
			return &ast.MemberAccess{Base: node(children, 0), Member: lexeme(children, 2)}
		}),
		grammar.NewRule("POSTFIX", []string{"ATOM"}, func(children []any, _ any) any {
			return node(children, 0)
		}),

		// ATOM -> NAME | INT | STRING | LPAREN EXPR RPAREN | LPAREN EXPR
		//         COMMA TUPLE_REST RPAREN
		grammar.NewRule("ATOM", []string{"NAME"}, func(children []any, _ any) any {
			return &ast.Name{Ident: lexeme(children, 0)}
		}),
		grammar.NewRule("ATOM", []string{"INT"}, func(children []any, _ any) any {
			v, _ := strconv.Atoi(lexeme(children, 0))
			return &ast.Int{Value: v}
		}),
		grammar.NewRule("ATOM", []string{"STRING"}, func(children []any, _ any) any {
			return &ast.String{Value: unquote(lexeme(children, 0))}
		}),
		grammar.NewRule("ATOM", []string{"LPAREN", "EXPR", "RPAREN"}, func(children []any, _ any) any {
			return node(children, 1)
		}),
		grammar.NewRule("ATOM", []string{"LPAREN", "EXPR", "COMMA", "TUPLE_REST", "RPAREN"}, func(children []any, _ any) any {
			elems := append([]ast.Node{node(children, 1)}, children[3].([]ast.Node)...)
			return &ast.Tuple{Elems: elems}
		}),

		// TUPLE_REST -> TUPLE_REST COMMA EXPR | EXPR | ε
		grammar.NewRule("TUPLE_REST", []string{"TUPLE_REST", "COMMA", "EXPR"}, func(children []any, _ any) any {
			return append(children[0].([]ast.Node), node(children, 2))
		}),
		grammar.NewRule("TUPLE_REST", []string{"EXPR"}, func(children []any, _ any) any {
			return []ast.Node{node(children, 0)}
		}),
		grammar.NewRule("TUPLE_REST", []string{}, func(children []any, _ any) any {
			return []ast.Node{}
		}),

		// ARGS_OPT -> ARG_LIST | ε
		grammar.NewRule("ARGS_OPT", []string{"ARG_LIST"}, func(children []any, _ any) any {
			return children[0].([]ast.Node)
		}),
		grammar.NewRule("ARGS_OPT", []string{}, func(children []any, _ any) any {
			return []ast.Node{}
		}),

		// ARG_LIST -> ARG_LIST COMMA EXPR | EXPR
		grammar.NewRule("ARG_LIST", []string{"ARG_LIST", "COMMA", "EXPR"}, func(children []any, _ any) any {
			return append(children[0].([]ast.Node), node(children, 2))
		}),
		grammar.NewRule("ARG_LIST", []string{"EXPR"}, func(children []any, _ any) any {
			return []ast.Node{node(children, 0)}
		}),
	}

	return grammar.New(Start, Terminals, rules, precedence)
}
