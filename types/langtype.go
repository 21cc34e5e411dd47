// Package types implements language L's semantic type model: LangType
// variants with structural equality, the syntactic-TypeDecl <->
// semantic-LangType conversions, and the lexical scope stack the type
// inferencer and lowering pass both thread through the AST.
package types

import (
	"fmt"
	"strings"

	"github.com/dekarrin/langc/ast"
)

// LangType is a semantic type, isomorphic to ast.TypeDecl but stripped of
// syntactic form, per §3.
type LangType interface {
	fmt.Stringer
	Equal(LangType) bool
	ToTypeDecl() ast.TypeDecl
	langType()
}

// NameType is a plain named type: "int", "bool", a user-defined name, or
// the special sentinel name used for NoneType (see NoneTypeName).
type NameType struct {
	Name string
}

func (t NameType) langType() {}

func (t NameType) String() string { return t.Name }

func (t NameType) Equal(o LangType) bool {
	other, ok := o.(NameType)
	return ok && other.Name == t.Name
}

func (t NameType) ToTypeDecl() ast.TypeDecl {
	return &ast.NameTypeDecl{Name: t.Name}
}

// NoneTypeName is the NameType used for a function with no declared
// return value. Decided as an Open Question: rather than inventing a
// distinct NoneType variant, NoneType is represented as
// NameType("NoneType"), since every place that consumes a LangType already
// knows how to compare and render a NameType.
const NoneTypeName = "NoneType"

// NoneType returns the canonical NameType representing "no value".
func NoneType() LangType { return NameType{Name: NoneTypeName} }

// StringType is the builtin string type.
type StringType struct{}

func (t StringType) langType() {}

func (t StringType) String() string { return "str" }

func (t StringType) Equal(o LangType) bool {
	_, ok := o.(StringType)
	return ok
}

func (t StringType) ToTypeDecl() ast.TypeDecl {
	return &ast.StringTypeDecl{}
}

// TupleType is a fixed-arity tuple of element types.
type TupleType struct {
	Elems []LangType
}

func (t TupleType) langType() {}

func (t TupleType) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t TupleType) Equal(o LangType) bool {
	other, ok := o.(TupleType)
	if !ok || len(other.Elems) != len(t.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equal(other.Elems[i]) {
			return false
		}
	}
	return true
}

func (t TupleType) ToTypeDecl() ast.TypeDecl {
	elems := make([]ast.TypeDecl, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = e.ToTypeDecl()
	}
	return &ast.TupleTypeDecl{Elems: elems}
}

// FuncType is a function signature: its return type, its positional
// argument types, and whether it accepts trailing varargs.
type FuncType struct {
	Return     LangType
	Args       []LangType
	HasVarargs bool
}

func (t FuncType) langType() {}

func (t FuncType) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	varargs := ""
	if t.HasVarargs {
		varargs = ", ..."
	}
	return fmt.Sprintf("(%s%s) -> %s", strings.Join(parts, ", "), varargs, t.Return.String())
}

// Equal returns true iff both FuncTypes' return types, argument-type
// sequences, and has_varargs flags all match, per §4.4.
func (t FuncType) Equal(o LangType) bool {
	other, ok := o.(FuncType)
	if !ok {
		return false
	}
	if !t.Return.Equal(other.Return) {
		return false
	}
	if t.HasVarargs != other.HasVarargs {
		return false
	}
	if len(t.Args) != len(other.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

func (t FuncType) ToTypeDecl() ast.TypeDecl {
	args := make([]ast.TypeDecl, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.ToTypeDecl()
	}
	return &ast.FuncTypeDecl{Args: args, Return: t.Return.ToTypeDecl(), HasVarargs: t.HasVarargs}
}

// StarArgsType wraps the declared element type of a variadic parameter.
type StarArgsType struct {
	Elem LangType
}

func (t StarArgsType) langType() {}

func (t StarArgsType) String() string { return "*" + t.Elem.String() }

func (t StarArgsType) Equal(o LangType) bool {
	other, ok := o.(StarArgsType)
	return ok && t.Elem.Equal(other.Elem)
}

func (t StarArgsType) ToTypeDecl() ast.TypeDecl {
	return &ast.StarArgsTypeDecl{Elem: t.Elem.ToTypeDecl()}
}

// FromTypeDecl converts a syntactic TypeDecl into its semantic LangType,
// the total inverse of LangType.ToTypeDecl, per §3.
func FromTypeDecl(d ast.TypeDecl) LangType {
	switch n := d.(type) {
	case *ast.NameTypeDecl:
		return NameType{Name: n.Name}
	case *ast.StringTypeDecl:
		return StringType{}
	case *ast.TupleTypeDecl:
		elems := make([]LangType, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = FromTypeDecl(e)
		}
		return TupleType{Elems: elems}
	case *ast.FuncTypeDecl:
		args := make([]LangType, len(n.Args))
		for i, a := range n.Args {
			args[i] = FromTypeDecl(a)
		}
		return FuncType{Return: FromTypeDecl(n.Return), Args: args, HasVarargs: n.HasVarargs}
	case *ast.StarArgsTypeDecl:
		return StarArgsType{Elem: FromTypeDecl(n.Elem)}
	default:
		// unreachable for any TypeDecl produced by the parser; every
		// variant is covered above.
		return NameType{Name: fmt.Sprintf("<unknown:%T>", d)}
	}
}
