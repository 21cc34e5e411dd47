package lower

import (
	"github.com/dekarrin/langc/ast"
	"github.com/dekarrin/langc/diag"
	"github.com/dekarrin/langc/types"
)

// inferencer is the type-inference visitor family mentioned in §4.4: it
// walks an expression and returns the LangType it evaluates to, consulting
// the same scope the lowering visitor threads through the tree.
type inferencer struct {
	scope *types.Scope
}

// InferType visits n and asserts the result is a LangType.
func (inf *inferencer) InferType(n ast.Node) (types.LangType, error) {
	res, err := n.Accept(inf)
	if err != nil {
		return nil, err
	}
	t, ok := res.(types.LangType)
	if !ok {
		return nil, diag.FeatureUnsupported("type inference for this expression form")
	}
	return t, nil
}

func (inf *inferencer) VisitName(n *ast.Name) (any, error) {
	return inf.scope.Lookup(n.Ident)
}

func (inf *inferencer) VisitInt(n *ast.Int) (any, error) {
	return intType(), nil
}

func (inf *inferencer) VisitString(n *ast.String) (any, error) {
	return strType(), nil
}

func (inf *inferencer) VisitCall(n *ast.Call) (any, error) {
	calleeType, err := inf.InferType(n.Callee)
	if err != nil {
		return nil, err
	}
	ft, ok := calleeType.(types.FuncType)
	if !ok {
		return nil, diag.FeatureUnsupported("calling a non-function value")
	}
	return ft.Return, nil
}

func (inf *inferencer) VisitBinExpr(n *ast.BinExpr) (any, error) {
	lhs, err := inf.InferType(n.Lhs)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		return types.NameType{Name: "bool"}, nil
	default:
		// arithmetic operators are assumed homogeneous; the LHS's type
		// stands for the expression's type.
		return lhs, nil
	}
}

func (inf *inferencer) VisitUnaryExpr(n *ast.UnaryExpr) (any, error) {
	return inf.InferType(n.Expr)
}

func (inf *inferencer) VisitTuple(n *ast.Tuple) (any, error) {
	elems := make([]types.LangType, len(n.Elems))
	for i, e := range n.Elems {
		t, err := inf.InferType(e)
		if err != nil {
			return nil, err
		}
		elems[i] = t
	}
	return types.TupleType{Elems: elems}, nil
}

func (inf *inferencer) VisitMemberAccess(n *ast.MemberAccess) (any, error) {
	return nil, diag.FeatureUnsupported("type inference for member access")
}
