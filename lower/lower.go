// Package lower implements the double-dispatch lowering visitor that walks
// a typed L AST (package ast) and produces the target C++ AST (package
// cpp), per §4.6. It shares a single lexical scope (package types) with an
// internal type-inference visitor so that Assign and ForLoop can bind
// freshly inferred types as they go.
package lower

import (
	"fmt"

	"github.com/dekarrin/langc/ast"
	"github.com/dekarrin/langc/cpp"
	"github.com/dekarrin/langc/diag"
	"github.com/dekarrin/langc/types"
)

// Visitor lowers L AST nodes to cpp AST nodes. It implements one of ast's
// narrow Visit*Node interfaces per node variant it handles.
type Visitor struct {
	scope *types.Scope
	infer *inferencer

	// cachedTypeName carries a VarDecl's name across the two-step
	// traversal (visit the name, then visit its TypeDecl) so the
	// TypeDecl's own Visit method can build a complete RegVarDecl. Must
	// be empty before entering a type-decl visit and is always cleared on
	// exit, even on error paths, per §4.6.
	cachedTypeName string
}

// NewVisitor builds a lowering visitor with a fresh global scope
// pre-populated with every builtin library's symbols, per §4.6.
func NewVisitor() *Visitor {
	scope := types.NewScope()
	for _, lib := range builtinLibs {
		for _, sym := range lib.symbols {
			scope.AddVar(sym.name, sym.t)
		}
	}
	return &Visitor{scope: scope, infer: &inferencer{scope: scope}}
}

// Lower runs a fresh Visitor over m and returns the lowered C++ module.
func Lower(m *ast.Module) (*cpp.Module, error) {
	v := NewVisitor()
	res, err := m.Accept(v)
	if err != nil {
		return nil, err
	}
	return res.(*cpp.Module), nil
}

// includes returns one cpp.Include per builtin library, in the
// alphabetical-by-filename order they're declared in.
func includes() []*cpp.Include {
	out := make([]*cpp.Include, len(builtinLibs))
	for i, lib := range builtinLibs {
		out[i] = &cpp.Include{Header: lib.header, System: false}
	}
	return out
}

// lowerExpr visits n and asserts the result is a cpp.Node; it is used
// uniformly for both statements and expressions since both lower to
// cpp.Node.
func (v *Visitor) lowerExpr(n ast.Node) (cpp.Node, error) {
	res, err := n.Accept(v)
	if err != nil {
		return nil, err
	}
	node, ok := res.(cpp.Node)
	if !ok {
		return nil, diag.FeatureUnsupported(fmt.Sprintf("lowering %T", n))
	}
	return node, nil
}

func (v *Visitor) lowerStmts(stmts []ast.Node) ([]cpp.Node, error) {
	out := make([]cpp.Node, 0, len(stmts))
	for _, s := range stmts {
		n, err := v.lowerExpr(s)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// lowerVarDecl lowers a declared parameter via the cachedTypeName scratch
// field: it stashes the declared name, visits the TypeDecl (whose own
// Visit method reads the stash to build the RegVarDecl), then clears it.
func (v *Visitor) lowerVarDecl(vd *ast.VarDecl) (*cpp.RegVarDecl, error) {
	v.cachedTypeName = vd.Name
	res, err := vd.Type.Accept(v)
	v.cachedTypeName = ""
	if err != nil {
		return nil, err
	}
	decl, ok := res.(*cpp.RegVarDecl)
	if !ok {
		return nil, diag.FeatureUnsupported(fmt.Sprintf("declared parameter type %T", vd.Type))
	}
	return decl, nil
}

// langTypeToCppType maps a semantic LangType to the C++ Type used to
// declare a value of it.
func langTypeToCppType(t types.LangType) cpp.Type {
	switch tt := t.(type) {
	case types.NameType:
		switch tt.Name {
		case types.NoneTypeName:
			return cpp.Type{Base: "void"}
		default:
			return cpp.Type{Base: tt.Name}
		}
	case types.StringType:
		return cpp.Type{Base: "std::string"}
	case types.TupleType:
		args := make([]cpp.Type, len(tt.Elems))
		for i, e := range tt.Elems {
			args[i] = langTypeToCppType(e)
		}
		return cpp.Type{Base: "std::tuple", TemplateArgs: args}
	case types.StarArgsType:
		return langTypeToCppType(tt.Elem)
	default:
		// FuncType and anything else aren't declarable locals in this
		// target subset.
		return cpp.Type{Base: "auto"}
	}
}

// VisitModule lowers each top-level statement, which must be a FuncDef,
// then prepends one Include per builtin library, per §4.6.
func (v *Visitor) VisitModule(n *ast.Module) (any, error) {
	funcs := make([]*cpp.FuncDef, 0, len(n.Stmts))
	for _, s := range n.Stmts {
		res, err := s.Accept(v)
		if err != nil {
			return nil, err
		}
		fn, ok := res.(*cpp.FuncDef)
		if !ok {
			return nil, diag.FeatureUnsupported(fmt.Sprintf("top-level statement of type %T", s))
		}
		funcs = append(funcs, fn)
	}
	return &cpp.Module{Includes: includes(), Funcs: funcs}, nil
}

// VisitFuncDef registers the function's FuncType in the outer scope before
// entering the inner scope, rejects keyword args as unsupported, lowers
// each positional arg and the body, and exits scope on every path.
func (v *Visitor) VisitFuncDef(n *ast.FuncDef) (any, error) {
	if len(n.Args.Keyword) > 0 {
		return nil, diag.FeatureUnsupported("keyword arguments in function definitions")
	}

	argTypes := make([]types.LangType, len(n.Args.Positional))
	for i, p := range n.Args.Positional {
		argTypes[i] = types.FromTypeDecl(p.Type)
	}
	retType := types.FromTypeDecl(n.ReturnType)
	v.scope.AddVar(n.Name, types.FuncType{Return: retType, Args: argTypes, HasVarargs: n.Args.HasVarargs})

	v.scope.Enter()
	defer v.scope.Exit()

	params := make([]*cpp.RegVarDecl, len(n.Args.Positional))
	for i, p := range n.Args.Positional {
		decl, err := v.lowerVarDecl(p)
		if err != nil {
			return nil, err
		}
		v.scope.AddVar(p.Name, types.FromTypeDecl(p.Type))
		params[i] = decl
	}
	if n.Args.HasVarargs {
		// The grammar has no varargs parameter syntax; a FuncArgs built
		// with HasVarargs carries a name but no declared element type.
		// Bind it as an int star-args so references to it resolve; no C++
		// parameter is emitted for it.
		v.scope.AddVar(n.Args.VarargsName, types.StarArgsType{Elem: intType()})
	}

	body, err := v.lowerStmts(n.Body)
	if err != nil {
		return nil, err
	}

	return &cpp.FuncDef{
		// §4.6: the return-type label is a fixed "int" placeholder.
		ReturnType: cpp.Type{Base: "int"},
		Name:       n.Name,
		Params:     params,
		Body:       body,
	}, nil
}

func (v *Visitor) VisitExprStmt(n *ast.ExprStmt) (any, error) {
	e, err := v.lowerExpr(n.Expr)
	if err != nil {
		return nil, err
	}
	return &cpp.ExprStmt{Expr: e}, nil
}

func (v *Visitor) VisitReturnStmt(n *ast.ReturnStmt) (any, error) {
	if n.Expr == nil {
		return &cpp.ReturnStmt{}, nil
	}
	e, err := v.lowerExpr(n.Expr)
	if err != nil {
		return nil, err
	}
	return &cpp.ReturnStmt{Expr: e}, nil
}

func (v *Visitor) VisitIfStmt(n *ast.IfStmt) (any, error) {
	cond, err := v.lowerExpr(n.Cond)
	if err != nil {
		return nil, err
	}
	body, err := v.lowerStmts(n.Body)
	if err != nil {
		return nil, err
	}
	var elseBody []cpp.Node
	if n.Else != nil {
		elseBody, err = v.lowerStmts(n.Else)
		if err != nil {
			return nil, err
		}
	}
	return &cpp.IfStmt{Cond: cond, Body: body, Else: elseBody}, nil
}

// asRangeCall recognizes the "range(n)" special form, the only iterable
// shape this target subset lowers (the cpp AST has no general
// iterator/range-for node). Any other iterable is FeatureUnsupported.
func asRangeCall(iterable ast.Node) (*ast.Call, bool) {
	call, ok := iterable.(*ast.Call)
	if !ok || len(call.Args) != 1 {
		return nil, false
	}
	name, ok := call.Callee.(*ast.Name)
	if !ok || name.Ident != "range" {
		return nil, false
	}
	return call, true
}

// VisitForLoop lowers a for loop over the recognized "range(n)" form to a
// C-style for, binding its single target as a fresh int scope entry before
// lowering the body, a supplemental feature per §3A/§9. A loop with more
// than one target, or over any other iterable, is FeatureUnsupported.
func (v *Visitor) VisitForLoop(n *ast.ForLoop) (any, error) {
	if len(n.Targets) != 1 {
		return nil, diag.FeatureUnsupported("for-loop with other than one target")
	}
	call, ok := asRangeCall(n.Iterable)
	if !ok {
		return nil, diag.FeatureUnsupported("for-loop over a non-range iterable")
	}
	elemType := intType()

	bound, err := v.lowerExpr(call.Args[0])
	if err != nil {
		return nil, err
	}

	target := n.Targets[0]

	v.scope.Enter()
	defer v.scope.Exit()
	v.scope.AddVar(target, elemType)

	body, err := v.lowerStmts(n.Body)
	if err != nil {
		return nil, err
	}

	elemCppType := langTypeToCppType(elemType)
	return &cpp.ForStmt{
		Init: &cpp.Raw{Text: elemCppType.Base + " " + target + " = 0"},
		Cond: &cpp.BinExpr{Lhs: &cpp.Name{Ident: target}, Op: "<", Rhs: bound},
		Post: &cpp.Raw{Text: target + "++"},
		Body: body,
	}, nil
}

func (v *Visitor) VisitAssign(n *ast.Assign) (any, error) {
	e, err := v.lowerExpr(n.Expr)
	if err != nil {
		return nil, err
	}
	t, err := v.infer.InferType(n.Expr)
	if err != nil {
		return nil, err
	}
	v.scope.AddVar(n.Name, t)
	return &cpp.Assign{Decl: &cpp.RegVarDecl{Name: n.Name, Type: langTypeToCppType(t)}, Expr: e}, nil
}

func (v *Visitor) VisitName(n *ast.Name) (any, error) {
	if _, err := v.scope.Lookup(n.Ident); err != nil {
		return nil, err
	}
	return &cpp.Name{Ident: n.Ident}, nil
}

func (v *Visitor) VisitInt(n *ast.Int) (any, error) {
	return &cpp.Int{Value: n.Value}, nil
}

func (v *Visitor) VisitString(n *ast.String) (any, error) {
	return &cpp.String{Value: n.Value}, nil
}

func (v *Visitor) VisitCall(n *ast.Call) (any, error) {
	callee, err := v.lowerExpr(n.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]cpp.Node, len(n.Args))
	for i, a := range n.Args {
		args[i], err = v.lowerExpr(a)
		if err != nil {
			return nil, err
		}
	}
	return &cpp.Call{Callee: callee, Args: args}, nil
}

func (v *Visitor) VisitMemberAccess(n *ast.MemberAccess) (any, error) {
	base, err := v.lowerExpr(n.Base)
	if err != nil {
		return nil, err
	}
	return &cpp.MemberAccess{Base: base, Member: n.Member}, nil
}

// VisitTuple lowers a tuple literal to a std::make_tuple call, reusing the
// Call node rather than introducing a dedicated cpp tuple node.
func (v *Visitor) VisitTuple(n *ast.Tuple) (any, error) {
	args := make([]cpp.Node, len(n.Elems))
	for i, e := range n.Elems {
		a, err := v.lowerExpr(e)
		if err != nil {
			return nil, err
		}
		args[i] = a
	}
	return &cpp.Call{Callee: &cpp.Name{Ident: "std::make_tuple"}, Args: args}, nil
}

func (v *Visitor) VisitBinExpr(n *ast.BinExpr) (any, error) {
	lhs, err := v.lowerExpr(n.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := v.lowerExpr(n.Rhs)
	if err != nil {
		return nil, err
	}
	return &cpp.BinExpr{Lhs: lhs, Op: n.Op.String(), Rhs: rhs}, nil
}

func (v *Visitor) VisitUnaryExpr(n *ast.UnaryExpr) (any, error) {
	e, err := v.lowerExpr(n.Expr)
	if err != nil {
		return nil, err
	}
	return &cpp.UnaryExpr{Op: n.Op.String(), Expr: e}, nil
}

// VisitNameTypeDecl builds the RegVarDecl for a plain named type using the
// name stashed in cachedTypeName.
func (v *Visitor) VisitNameTypeDecl(n *ast.NameTypeDecl) (any, error) {
	return &cpp.RegVarDecl{Name: v.cachedTypeName, Type: langTypeToCppType(types.NameType{Name: n.Name})}, nil
}

func (v *Visitor) VisitStringTypeDecl(n *ast.StringTypeDecl) (any, error) {
	return &cpp.RegVarDecl{Name: v.cachedTypeName, Type: cpp.Type{Base: "std::string"}}, nil
}

func (v *Visitor) VisitTupleTypeDecl(n *ast.TupleTypeDecl) (any, error) {
	return nil, diag.FeatureUnsupported("tuple-typed parameter declarations")
}

func (v *Visitor) VisitFuncTypeDecl(n *ast.FuncTypeDecl) (any, error) {
	return nil, diag.FeatureUnsupported("function-typed parameter declarations")
}

func (v *Visitor) VisitStarArgsTypeDecl(n *ast.StarArgsTypeDecl) (any, error) {
	return nil, diag.FeatureUnsupported("explicit varargs element type declarations")
}
