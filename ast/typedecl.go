package ast

import (
	"fmt"
	"strings"
)

// TypeDecl is the syntactic form of a type annotation, as written in
// source. It is a Node like any other so it can be visited, but it is
// also kept as a narrower alias for clarity at call sites that only deal
// in type syntax (e.g. VarDecl.Type).
type TypeDecl interface {
	Node
	typeDecl()
}

// NameTypeDecl is a plain named type, e.g. "int" or a user-defined type
// name.
type NameTypeDecl struct {
	Name string
}

func (n *NameTypeDecl) typeDecl() {}

type NameTypeDeclVisitor interface {
	VisitNameTypeDecl(*NameTypeDecl) (any, error)
}

func (n *NameTypeDecl) Accept(v Visitor) (any, error) {
	tv, ok := v.(NameTypeDeclVisitor)
	if !ok {
		return nil, missingMethod("NameTypeDecl", v)
	}
	return tv.VisitNameTypeDecl(n)
}

func (n *NameTypeDecl) String() string { return fmt.Sprintf("NameTypeDecl(%s)", n.Name) }

// TupleTypeDecl is a fixed-arity tuple type, e.g. "(int, str)".
type TupleTypeDecl struct {
	Elems []TypeDecl
}

func (n *TupleTypeDecl) typeDecl() {}

type TupleTypeDeclVisitor interface {
	VisitTupleTypeDecl(*TupleTypeDecl) (any, error)
}

func (n *TupleTypeDecl) Accept(v Visitor) (any, error) {
	tv, ok := v.(TupleTypeDeclVisitor)
	if !ok {
		return nil, missingMethod("TupleTypeDecl", v)
	}
	return tv.VisitTupleTypeDecl(n)
}

func (n *TupleTypeDecl) String() string {
	parts := make([]string, len(n.Elems))
	for i, e := range n.Elems {
		parts[i] = e.String()
	}
	return fmt.Sprintf("TupleTypeDecl(%s)", strings.Join(parts, ", "))
}

// FuncTypeDecl is a function type, e.g. "(int) -> str".
type FuncTypeDecl struct {
	Args       []TypeDecl
	Return     TypeDecl
	HasVarargs bool
}

func (n *FuncTypeDecl) typeDecl() {}

type FuncTypeDeclVisitor interface {
	VisitFuncTypeDecl(*FuncTypeDecl) (any, error)
}

func (n *FuncTypeDecl) Accept(v Visitor) (any, error) {
	tv, ok := v.(FuncTypeDeclVisitor)
	if !ok {
		return nil, missingMethod("FuncTypeDecl", v)
	}
	return tv.VisitFuncTypeDecl(n)
}

func (n *FuncTypeDecl) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	varargs := ""
	if n.HasVarargs {
		varargs = ", ..."
	}
	return fmt.Sprintf("FuncTypeDecl((%s%s) -> %s)", strings.Join(parts, ", "), varargs, n.Return.String())
}

// StringTypeDecl is the builtin string type.
type StringTypeDecl struct{}

func (n *StringTypeDecl) typeDecl() {}

type StringTypeDeclVisitor interface {
	VisitStringTypeDecl(*StringTypeDecl) (any, error)
}

func (n *StringTypeDecl) Accept(v Visitor) (any, error) {
	tv, ok := v.(StringTypeDeclVisitor)
	if !ok {
		return nil, missingMethod("StringTypeDecl", v)
	}
	return tv.VisitStringTypeDecl(n)
}

func (n *StringTypeDecl) String() string { return "StringTypeDecl" }

// StarArgsTypeDecl marks a variadic parameter's declared element type,
// e.g. the "int" in "*args: int".
type StarArgsTypeDecl struct {
	Elem TypeDecl
}

func (n *StarArgsTypeDecl) typeDecl() {}

type StarArgsTypeDeclVisitor interface {
	VisitStarArgsTypeDecl(*StarArgsTypeDecl) (any, error)
}

func (n *StarArgsTypeDecl) Accept(v Visitor) (any, error) {
	tv, ok := v.(StarArgsTypeDeclVisitor)
	if !ok {
		return nil, missingMethod("StarArgsTypeDecl", v)
	}
	return tv.VisitStarArgsTypeDecl(n)
}

func (n *StarArgsTypeDecl) String() string {
	return fmt.Sprintf("StarArgsTypeDecl(%s)", n.Elem.String())
}
