package ast

import (
	"testing"

	"github.com/dekarrin/langc/diag"
	"github.com/stretchr/testify/assert"
)

// countingVisitor implements only NameVisitor and IntVisitor, to exercise
// both the successful-dispatch and missing-method paths.
type countingVisitor struct {
	names int
	ints  int
}

func (c *countingVisitor) VisitName(n *Name) (any, error) {
	c.names++
	return n.Ident, nil
}

func (c *countingVisitor) VisitInt(n *Int) (any, error) {
	c.ints++
	return n.Value, nil
}

func Test_Name_Accept_dispatches_to_NameVisitor(t *testing.T) {
	assert := assert.New(t)

	v := &countingVisitor{}
	n := &Name{Ident: "x"}

	result, err := n.Accept(v)
	assert.NoError(err)
	assert.Equal("x", result)
	assert.Equal(1, v.names)
}

func Test_String_Accept_missing_visitor_method_is_diagnostic(t *testing.T) {
	assert := assert.New(t)

	v := &countingVisitor{}
	n := &String{Value: "hi"}

	_, err := n.Accept(v)
	assert.Error(err)

	var d diag.Diagnostic
	assert.ErrorAs(err, &d)
	assert.Equal(diag.KindFeatureUnsupported, d.Kind())
}

func Test_Module_String_indents_statements(t *testing.T) {
	assert := assert.New(t)

	m := &Module{Stmts: []Node{
		&ExprStmt{Expr: &Int{Value: 1}},
	}}

	s := m.String()
	assert.Contains(s, "Module")
	assert.Contains(s, "ExprStmt")
	assert.Contains(s, "Int(1)")
}

func Test_BinExpr_String_includes_operator(t *testing.T) {
	assert := assert.New(t)

	e := &BinExpr{Lhs: &Int{Value: 1}, Op: OpAdd, Rhs: &Int{Value: 2}}
	assert.Contains(e.String(), "BinExpr(+)")
}
