package cpp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Module_Lines_includes_then_functions(t *testing.T) {
	assert := assert.New(t)

	m := &Module{
		Includes: []*Include{{Header: "iostream", System: true}},
		Funcs: []*FuncDef{
			{
				ReturnType: Type{Base: "int"},
				Name:       "main",
				Body: []Node{
					&ReturnStmt{Expr: &Int{Value: 0}},
				},
			},
		},
	}

	out := Str(m)
	assert.Contains(out, "#include <iostream>")
	assert.Contains(out, "int main() {")
	assert.Contains(out, "    return 0;")
	assert.Contains(out, "}")
}

func Test_IfStmt_Lines_nests_body(t *testing.T) {
	assert := assert.New(t)

	n := &IfStmt{
		Cond: &BinExpr{Lhs: &Name{Ident: "x"}, Op: ">", Rhs: &Int{Value: 0}},
		Body: []Node{&ReturnStmt{Expr: &Int{Value: 1}}},
	}

	lines := n.Lines()
	assert.Equal("if ((x > 0)) {", lines[0])
	assert.Equal("    return 1;", lines[1])
	assert.Equal("}", lines[2])
}

func Test_Type_render_with_template_args(t *testing.T) {
	assert := assert.New(t)

	ty := Type{Base: "std::vector", TemplateArgs: []Type{{Base: "int"}}}
	assert.Equal("std::vector<int>", ty.render())
}
