package lower

import (
	"testing"

	"github.com/dekarrin/langc/ast"
	"github.com/dekarrin/langc/cpp"
	"github.com/stretchr/testify/assert"
)

func funcArgs(positional ...*ast.VarDecl) *ast.FuncArgs {
	return &ast.FuncArgs{Positional: positional}
}

// Test_Lower_simple_func: a function taking int parameters x and y whose
// body is "x + y" lowers to a Module with one FuncDef whose body is a
// single BinExpr(ADD, Name x, Name y).
func Test_Lower_simple_func(t *testing.T) {
	assert := assert.New(t)

	m := &ast.Module{
		Stmts: []ast.Node{
			&ast.FuncDef{
				Name:       "func",
				Args:       funcArgs(&ast.VarDecl{Name: "x", Type: &ast.NameTypeDecl{Name: "int"}}, &ast.VarDecl{Name: "y", Type: &ast.NameTypeDecl{Name: "int"}}),
				ReturnType: &ast.NameTypeDecl{Name: "int"},
				Body: []ast.Node{
					&ast.ExprStmt{Expr: &ast.BinExpr{
						Lhs: &ast.Name{Ident: "x"},
						Op:  ast.OpAdd,
						Rhs: &ast.Name{Ident: "y"},
					}},
				},
			},
		},
	}

	out, err := Lower(m)
	assert.NoError(err)
	assert.Len(out.Funcs, 1)
	assert.Equal("func", out.Funcs[0].Name)
	assert.Len(out.Funcs[0].Body, 1)

	_, ok := out.Funcs[0].Body[0].(*cpp.ExprStmt)
	assert.True(ok)
}

func Test_Lower_empty_module(t *testing.T) {
	assert := assert.New(t)

	out, err := Lower(&ast.Module{})
	assert.NoError(err)
	assert.Empty(out.Funcs)
}

// Test_Lower_main_calls_print mirrors end-to-end scenario 3: a call to the
// builtin print resolves through the io library and the emitted module
// carries the lang_io.h include first.
func Test_Lower_main_calls_print(t *testing.T) {
	assert := assert.New(t)

	m := &ast.Module{
		Stmts: []ast.Node{
			&ast.FuncDef{
				Name:       "main",
				Args:       funcArgs(),
				ReturnType: &ast.NameTypeDecl{Name: "int"},
				Body: []ast.Node{
					&ast.ExprStmt{Expr: &ast.Call{
						Callee: &ast.Name{Ident: "print"},
						Args:   []ast.Node{&ast.String{Value: "hi"}},
					}},
				},
			},
		},
	}

	out, err := Lower(m)
	assert.NoError(err)
	assert.Equal("lang_io.h", out.Includes[0].Header)

	stmt, ok := out.Funcs[0].Body[0].(*cpp.ExprStmt)
	assert.True(ok)
	call, ok := stmt.Expr.(*cpp.Call)
	assert.True(ok)
	assert.Equal(&cpp.Name{Ident: "print"}, call.Callee)
}

// Test_Lower_for_range_binds_int mirrors supplemental scenario 7: "for x in
// range(3): print(x)" binds x as int and lowers to a C-style for loop.
func Test_Lower_for_range_binds_int(t *testing.T) {
	assert := assert.New(t)

	m := &ast.Module{
		Stmts: []ast.Node{
			&ast.FuncDef{
				Name:       "main",
				Args:       funcArgs(),
				ReturnType: &ast.NameTypeDecl{Name: "int"},
				Body: []ast.Node{
					&ast.ForLoop{
						Targets: []string{"x"},
						Iterable: &ast.Call{
							Callee: &ast.Name{Ident: "range"},
							Args:   []ast.Node{&ast.Int{Value: 3}},
						},
						Body: []ast.Node{
							&ast.ExprStmt{Expr: &ast.Call{
								Callee: &ast.Name{Ident: "print"},
								Args:   []ast.Node{&ast.Name{Ident: "x"}},
							}},
						},
					},
				},
			},
		},
	}

	out, err := Lower(m)
	assert.NoError(err)

	forStmt, ok := out.Funcs[0].Body[0].(*cpp.ForStmt)
	assert.True(ok)
	assert.Contains(cpp.Str(forStmt), "int x = 0")
}

func Test_Lower_keyword_args_in_def_is_unsupported(t *testing.T) {
	assert := assert.New(t)

	m := &ast.Module{
		Stmts: []ast.Node{
			&ast.FuncDef{
				Name: "func",
				Args: &ast.FuncArgs{
					Keyword: []*ast.Assign{{Name: "y", Expr: &ast.Int{Value: 1}}},
				},
				ReturnType: &ast.NameTypeDecl{Name: "int"},
			},
		},
	}

	_, err := Lower(m)
	assert.Error(err)
}

func Test_Lower_unbound_name_is_NameError(t *testing.T) {
	assert := assert.New(t)

	m := &ast.Module{
		Stmts: []ast.Node{
			&ast.FuncDef{
				Name:       "func",
				Args:       funcArgs(),
				ReturnType: &ast.NameTypeDecl{Name: "int"},
				Body: []ast.Node{
					&ast.ExprStmt{Expr: &ast.Name{Ident: "undefined"}},
				},
			},
		},
	}

	_, err := Lower(m)
	assert.Error(err)
}

func Test_Lower_assign_binds_inferred_type(t *testing.T) {
	assert := assert.New(t)

	m := &ast.Module{
		Stmts: []ast.Node{
			&ast.FuncDef{
				Name:       "func",
				Args:       funcArgs(),
				ReturnType: &ast.NameTypeDecl{Name: "int"},
				Body: []ast.Node{
					&ast.Assign{Name: "x", Expr: &ast.Int{Value: 1}},
					&ast.ExprStmt{Expr: &ast.Name{Ident: "x"}},
				},
			},
		},
	}

	out, err := Lower(m)
	assert.NoError(err)

	assign, ok := out.Funcs[0].Body[0].(*cpp.Assign)
	assert.True(ok)
	assert.Equal("int", assign.Decl.Type.Base)
}
