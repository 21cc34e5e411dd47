package ast

import (
	"fmt"
	"strings"
)

// BinOp enumerates the binary operators of §3.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	default:
		return "?"
	}
}

// UnaryOp enumerates the unary operators of §3.
type UnaryOp int

const (
	OpUSub UnaryOp = iota
)

func (op UnaryOp) String() string {
	switch op {
	case OpUSub:
		return "-"
	default:
		return "?"
	}
}

// Name is a bare identifier reference.
type Name struct {
	Ident string
}

type NameVisitor interface {
	VisitName(*Name) (any, error)
}

func (n *Name) Accept(v Visitor) (any, error) {
	nv, ok := v.(NameVisitor)
	if !ok {
		return nil, missingMethod("Name", v)
	}
	return nv.VisitName(n)
}

func (n *Name) String() string { return fmt.Sprintf("Name(%s)", n.Ident) }

// Int is an integer literal.
type Int struct {
	Value int
}

type IntVisitor interface {
	VisitInt(*Int) (any, error)
}

func (n *Int) Accept(v Visitor) (any, error) {
	iv, ok := v.(IntVisitor)
	if !ok {
		return nil, missingMethod("Int", v)
	}
	return iv.VisitInt(n)
}

func (n *Int) String() string { return fmt.Sprintf("Int(%d)", n.Value) }

// String is a string literal. Value excludes the surrounding quotes.
type String struct {
	Value string
}

type StringVisitor interface {
	VisitString(*String) (any, error)
}

func (n *String) Accept(v Visitor) (any, error) {
	sv, ok := v.(StringVisitor)
	if !ok {
		return nil, missingMethod("String", v)
	}
	return sv.VisitString(n)
}

func (n *String) String() string { return fmt.Sprintf("String(%q)", n.Value) }

// Call is a function-call expression.
type Call struct {
	Callee Node
	Args   []Node
}

type CallVisitor interface {
	VisitCall(*Call) (any, error)
}

func (n *Call) Accept(v Visitor) (any, error) {
	cv, ok := v.(CallVisitor)
	if !ok {
		return nil, missingMethod("Call", v)
	}
	return cv.VisitCall(n)
}

func (n *Call) String() string {
	var sb strings.Builder
	sb.WriteString("Call\n")
	sb.WriteString(indentLines(n.Callee.String()))
	sb.WriteRune('\n')
	for _, a := range n.Args {
		sb.WriteString(indentLines(a.String()))
		sb.WriteRune('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}

// MemberAccess is "base.member".
type MemberAccess struct {
	Base   Node
	Member string
}

type MemberAccessVisitor interface {
	VisitMemberAccess(*MemberAccess) (any, error)
}

func (n *MemberAccess) Accept(v Visitor) (any, error) {
	mv, ok := v.(MemberAccessVisitor)
	if !ok {
		return nil, missingMethod("MemberAccess", v)
	}
	return mv.VisitMemberAccess(n)
}

func (n *MemberAccess) String() string {
	return fmt.Sprintf("MemberAccess(.%s)\n%s", n.Member, indentLines(n.Base.String()))
}

// Tuple is a fixed-arity tuple literal.
type Tuple struct {
	Elems []Node
}

type TupleVisitor interface {
	VisitTuple(*Tuple) (any, error)
}

func (n *Tuple) Accept(v Visitor) (any, error) {
	tv, ok := v.(TupleVisitor)
	if !ok {
		return nil, missingMethod("Tuple", v)
	}
	return tv.VisitTuple(n)
}

func (n *Tuple) String() string {
	var sb strings.Builder
	sb.WriteString("Tuple\n")
	for _, e := range n.Elems {
		sb.WriteString(indentLines(e.String()))
		sb.WriteRune('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}

// BinExpr is a binary operator expression.
type BinExpr struct {
	Lhs Node
	Op  BinOp
	Rhs Node
}

type BinExprVisitor interface {
	VisitBinExpr(*BinExpr) (any, error)
}

func (n *BinExpr) Accept(v Visitor) (any, error) {
	bv, ok := v.(BinExprVisitor)
	if !ok {
		return nil, missingMethod("BinExpr", v)
	}
	return bv.VisitBinExpr(n)
}

func (n *BinExpr) String() string {
	return fmt.Sprintf("BinExpr(%s)\n%s\n%s", n.Op, indentLines(n.Lhs.String()), indentLines(n.Rhs.String()))
}

// UnaryExpr is a unary operator expression.
type UnaryExpr struct {
	Op   UnaryOp
	Expr Node
}

type UnaryExprVisitor interface {
	VisitUnaryExpr(*UnaryExpr) (any, error)
}

func (n *UnaryExpr) Accept(v Visitor) (any, error) {
	uv, ok := v.(UnaryExprVisitor)
	if !ok {
		return nil, missingMethod("UnaryExpr", v)
	}
	return uv.VisitUnaryExpr(n)
}

func (n *UnaryExpr) String() string {
	return fmt.Sprintf("UnaryExpr(%s)\n%s", n.Op, indentLines(n.Expr.String()))
}
