package ast

import (
	"fmt"
	"strings"
)

// VarDecl is a name bound to a declared type, used both as a function
// parameter and as the LHS of a typed declaration.
type VarDecl struct {
	Name string
	Type TypeDecl
}

type VarDeclVisitor interface {
	VisitVarDecl(*VarDecl) (any, error)
}

func (n *VarDecl) Accept(v Visitor) (any, error) {
	vv, ok := v.(VarDeclVisitor)
	if !ok {
		return nil, missingMethod("VarDecl", v)
	}
	return vv.VisitVarDecl(n)
}

func (n *VarDecl) String() string {
	return fmt.Sprintf("VarDecl(%s: %s)", n.Name, n.Type.String())
}

// Assign is a name bound to the value of an expression: "name := expr".
type Assign struct {
	Name string
	Expr Node
}

type AssignVisitor interface {
	VisitAssign(*Assign) (any, error)
}

func (n *Assign) Accept(v Visitor) (any, error) {
	av, ok := v.(AssignVisitor)
	if !ok {
		return nil, missingMethod("Assign", v)
	}
	return av.VisitAssign(n)
}

func (n *Assign) String() string {
	return fmt.Sprintf("Assign(%s)\n%s", n.Name, indentLines(n.Expr.String()))
}

// FuncArgs is a function definition's parameter list: positional
// declarations, keyword-defaulted assignments, and whether a trailing
// varargs parameter is present.
type FuncArgs struct {
	Positional  []*VarDecl
	Keyword     []*Assign
	HasVarargs  bool
	VarargsName string
}

type FuncArgsVisitor interface {
	VisitFuncArgs(*FuncArgs) (any, error)
}

func (n *FuncArgs) Accept(v Visitor) (any, error) {
	fv, ok := v.(FuncArgsVisitor)
	if !ok {
		return nil, missingMethod("FuncArgs", v)
	}
	return fv.VisitFuncArgs(n)
}

func (n *FuncArgs) String() string {
	var sb strings.Builder
	sb.WriteString("FuncArgs\n")
	for _, p := range n.Positional {
		sb.WriteString(indentLines(p.String()))
		sb.WriteRune('\n')
	}
	for _, k := range n.Keyword {
		sb.WriteString(indentLines(k.String()))
		sb.WriteRune('\n')
	}
	if n.HasVarargs {
		fmt.Fprintf(&sb, "  *%s\n", n.VarargsName)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FuncDef is a top-level or nested function definition.
type FuncDef struct {
	Name       string
	Args       *FuncArgs
	ReturnType TypeDecl
	Body       []Node
}

type FuncDefVisitor interface {
	VisitFuncDef(*FuncDef) (any, error)
}

func (n *FuncDef) Accept(v Visitor) (any, error) {
	fv, ok := v.(FuncDefVisitor)
	if !ok {
		return nil, missingMethod("FuncDef", v)
	}
	return fv.VisitFuncDef(n)
}

func (n *FuncDef) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "FuncDef(%s)\n", n.Name)
	sb.WriteString(indentLines(n.Args.String()))
	sb.WriteRune('\n')
	for _, s := range n.Body {
		sb.WriteString(indentLines(s.String()))
		sb.WriteRune('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ExprStmt is an expression evaluated for its side effect, its value
// discarded.
type ExprStmt struct {
	Expr Node
}

type ExprStmtVisitor interface {
	VisitExprStmt(*ExprStmt) (any, error)
}

func (n *ExprStmt) Accept(v Visitor) (any, error) {
	ev, ok := v.(ExprStmtVisitor)
	if !ok {
		return nil, missingMethod("ExprStmt", v)
	}
	return ev.VisitExprStmt(n)
}

func (n *ExprStmt) String() string {
	return fmt.Sprintf("ExprStmt\n%s", indentLines(n.Expr.String()))
}

// ReturnStmt returns a value (or nothing) from the enclosing function.
type ReturnStmt struct {
	Expr Node // nil for a bare "return"
}

type ReturnStmtVisitor interface {
	VisitReturnStmt(*ReturnStmt) (any, error)
}

func (n *ReturnStmt) Accept(v Visitor) (any, error) {
	rv, ok := v.(ReturnStmtVisitor)
	if !ok {
		return nil, missingMethod("ReturnStmt", v)
	}
	return rv.VisitReturnStmt(n)
}

func (n *ReturnStmt) String() string {
	if n.Expr == nil {
		return "ReturnStmt"
	}
	return fmt.Sprintf("ReturnStmt\n%s", indentLines(n.Expr.String()))
}

// IfStmt is a conditional block; elif/else chains are represented by a
// nested IfStmt in Else.
type IfStmt struct {
	Cond Node
	Body []Node
	Else []Node // nil if no else/elif clause
}

type IfStmtVisitor interface {
	VisitIfStmt(*IfStmt) (any, error)
}

func (n *IfStmt) Accept(v Visitor) (any, error) {
	iv, ok := v.(IfStmtVisitor)
	if !ok {
		return nil, missingMethod("IfStmt", v)
	}
	return iv.VisitIfStmt(n)
}

func (n *IfStmt) String() string {
	var sb strings.Builder
	sb.WriteString("IfStmt\n")
	sb.WriteString(indentLines(n.Cond.String()))
	sb.WriteRune('\n')
	for _, s := range n.Body {
		sb.WriteString(indentLines(s.String()))
		sb.WriteRune('\n')
	}
	if n.Else != nil {
		sb.WriteString("  Else\n")
		for _, s := range n.Else {
			sb.WriteString(indentLines(indentLines(s.String())))
			sb.WriteRune('\n')
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ForLoop iterates targets over iterable's elements.
type ForLoop struct {
	Targets  []string
	Iterable Node
	Body     []Node
}

type ForLoopVisitor interface {
	VisitForLoop(*ForLoop) (any, error)
}

func (n *ForLoop) Accept(v Visitor) (any, error) {
	fv, ok := v.(ForLoopVisitor)
	if !ok {
		return nil, missingMethod("ForLoop", v)
	}
	return fv.VisitForLoop(n)
}

func (n *ForLoop) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ForLoop(%s)\n", strings.Join(n.Targets, ", "))
	sb.WriteString(indentLines(n.Iterable.String()))
	sb.WriteRune('\n')
	for _, s := range n.Body {
		sb.WriteString(indentLines(s.String()))
		sb.WriteRune('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}
