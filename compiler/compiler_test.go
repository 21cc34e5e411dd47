package compiler

import (
	"testing"

	"github.com/dekarrin/langc/cpp"
	"github.com/stretchr/testify/assert"
)

func Test_Compile_simple_func_body_is_single_binexpr(t *testing.T) {
	assert := assert.New(t)

	c := New(Options{})
	mod, err := c.Compile("func main(var x: int, var y: int) -> int:\n    x - y\n")
	assert.NoError(err)
	assert.Len(mod.Funcs, 1)
	assert.Equal("main", mod.Funcs[0].Name)
	assert.Len(mod.Funcs[0].Body, 1)

	stmt, ok := mod.Funcs[0].Body[0].(*cpp.ExprStmt)
	assert.True(ok)
	bin, ok := stmt.Expr.(*cpp.BinExpr)
	assert.True(ok)
	assert.Equal("-", bin.Op)
}

func Test_Compile_empty_input_yields_empty_module(t *testing.T) {
	assert := assert.New(t)

	c := New(Options{})
	mod, err := c.Compile("")
	assert.NoError(err)
	assert.Empty(mod.Funcs)
}

func Test_Compile_main_calls_print_includes_io_header_first(t *testing.T) {
	assert := assert.New(t)

	c := New(Options{})
	mod, err := c.Compile("func main() -> int:\n    print(\"hi\")\n")
	assert.NoError(err)
	assert.NotEmpty(mod.Includes)
	assert.Equal("lang_io.h", mod.Includes[0].Header)

	assert.Len(mod.Funcs, 1)
	assert.Equal("main", mod.Funcs[0].Name)
	stmt, ok := mod.Funcs[0].Body[0].(*cpp.ExprStmt)
	assert.True(ok)
	call, ok := stmt.Expr.(*cpp.Call)
	assert.True(ok)
	callee, ok := call.Callee.(*cpp.Name)
	assert.True(ok)
	assert.Equal("print", callee.Ident)
}

func Test_Compile_precedence_mul_binds_tighter_than_sub(t *testing.T) {
	assert := assert.New(t)

	c := New(Options{})
	mod, err := c.Compile("func f(var x: int, var y: int, var z: int) -> int:\n    x - y * z\n")
	assert.NoError(err)

	stmt := mod.Funcs[0].Body[0].(*cpp.ExprStmt)
	top, ok := stmt.Expr.(*cpp.BinExpr)
	assert.True(ok)
	assert.Equal("-", top.Op)

	rhs, ok := top.Rhs.(*cpp.BinExpr)
	assert.True(ok, "y * z must be the RHS of the subtraction, reflecting * binding tighter than -")
	assert.Equal("*", rhs.Op)
}

func Test_Compile_for_range_lowers_to_int_bound_loop(t *testing.T) {
	assert := assert.New(t)

	c := New(Options{})
	mod, err := c.Compile("func main() -> int:\n    for x in range(3):\n        print(x)\n")
	assert.NoError(err)

	forStmt, ok := mod.Funcs[0].Body[0].(*cpp.ForStmt)
	assert.True(ok)
	assert.Len(forStmt.Body, 1)
}

func Test_Compile_unbound_name_is_a_diagnostic(t *testing.T) {
	assert := assert.New(t)

	c := New(Options{})
	_, err := c.Compile("func main() -> int:\n    undefined_name\n")
	assert.Error(err)
}

func Test_Compile_malformed_indentation_is_rejected(t *testing.T) {
	assert := assert.New(t)

	c := New(Options{})
	// a lone DEDENT to a column never pushed is an IndentationError from
	// the indent shaper, surfaced through Compile as a non-nil error.
	_, err := c.Compile("func main() -> int:\n    x\n  y\n")
	assert.Error(err)
}

func Test_Compile_is_deterministic_across_repeated_calls(t *testing.T) {
	assert := assert.New(t)

	c := New(Options{})
	src := "func main() -> int:\n    print(\"hi\")\n"

	first, err := c.Compile(src)
	assert.NoError(err)
	second, err := c.Compile(src)
	assert.NoError(err)

	assert.Equal(cpp.Str(first), cpp.Str(second))
}

func Test_New_with_LR1_mode_compiles_the_same_program(t *testing.T) {
	assert := assert.New(t)

	c := New(Options{Mode: LR1})
	mod, err := c.Compile("func main() -> int:\n    print(\"hi\")\n")
	assert.NoError(err)
	assert.Len(mod.Funcs, 1)
}
