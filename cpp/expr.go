package cpp

import (
	"strconv"
	"strings"
)

// Call is a function-call expression.
type Call struct {
	Callee Node
	Args   []Node
}

func (n *Call) Lines() []string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = str(a)
	}
	return []string{str(n.Callee) + "(" + strings.Join(parts, ", ") + ")"}
}

// Name is a bare identifier reference.
type Name struct {
	Ident string
}

func (n *Name) Lines() []string { return []string{n.Ident} }

// Int is an integer literal.
type Int struct {
	Value int
}

func (n *Int) Lines() []string { return []string{strconv.Itoa(n.Value)} }

// String is a string literal, rendered with C++ double-quote escaping.
type String struct {
	Value string
}

func (n *String) Lines() []string {
	return []string{strconv.Quote(n.Value)}
}

// BinExpr is a parenthesized binary-operator expression.
type BinExpr struct {
	Lhs Node
	Op  string
	Rhs Node
}

func (n *BinExpr) Lines() []string {
	return []string{"(" + str(n.Lhs) + " " + n.Op + " " + str(n.Rhs) + ")"}
}

// UnaryExpr is a parenthesized prefix unary-operator expression.
type UnaryExpr struct {
	Op   string
	Expr Node
}

func (n *UnaryExpr) Lines() []string {
	return []string{"(" + n.Op + str(n.Expr) + ")"}
}

// MemberAccess is "base.member".
type MemberAccess struct {
	Base   Node
	Member string
}

func (n *MemberAccess) Lines() []string {
	return []string{str(n.Base) + "." + n.Member}
}

// Raw is an already-rendered expression fragment, for the rare construct
// (a for-loop's init/post clauses) with no dedicated AST node of its own.
type Raw struct {
	Text string
}

func (n *Raw) Lines() []string { return []string{n.Text} }
