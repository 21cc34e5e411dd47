// Package ast defines the typed abstract syntax tree for language L
// built by the parser's reduction callbacks, and the double-dispatch
// visitor mechanism used by the type-inference and lowering passes.
//
// Each concrete node implements Accept(Visitor) by downcasting the
// generic Visitor to the narrow, node-specific interface it needs (e.g.
// ModuleVisitor) and invoking the one method on it. A visitor that does
// not implement the narrow interface for a node it is asked to visit
// gets back a FeatureUnsupported diagnostic naming the node type and the
// missing method, rather than a panic — grounded on
// tunascript/syntax/ast.go's Type()+AsXNode() tagged-node pattern,
// generalized from a single flat node-kind enum to one narrow interface
// per node type.
package ast

import (
	"fmt"
	"strings"

	"github.com/dekarrin/langc/diag"
)

// Visitor is the marker type accepted by every node's Accept method. A
// concrete visitor implements whichever of the Visit*Node interfaces its
// pass needs; it need not implement all of them.
type Visitor any

// Node is implemented by every L AST node.
type Node interface {
	Accept(v Visitor) (any, error)
	String() string
}

// missingMethod builds the diagnostic returned when v does not implement
// the narrow visitor interface a node requires.
func missingMethod(nodeType string, v Visitor) error {
	return diag.FeatureUnsupported(fmt.Sprintf("visitor %T has no method to visit %s", v, nodeType))
}

// indentLines prefixes every line of s with one level of indentation,
// for String()'s line-per-node dump convention.
func indentLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

// Module is the root node: an ordered list of top-level statements.
type Module struct {
	Stmts []Node
}

type ModuleVisitor interface {
	VisitModule(*Module) (any, error)
}

func (n *Module) Accept(v Visitor) (any, error) {
	mv, ok := v.(ModuleVisitor)
	if !ok {
		return nil, missingMethod("Module", v)
	}
	return mv.VisitModule(n)
}

func (n *Module) String() string {
	var sb strings.Builder
	sb.WriteString("Module\n")
	for _, s := range n.Stmts {
		sb.WriteString(indentLines(s.String()))
		sb.WriteRune('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}
