// Package cpp defines the target C++ abstract syntax tree produced by
// the lowering pass, and its pretty-printer. Every node implements
// Lines() []string; codegen always goes through Lines()/str(), never
// through the String() dumps the L AST carries for test/debug comparison
// (nodes in this package have no String() method), per §4.4/§4.7.
package cpp

import "strings"

// Indent is the fixed per-level indentation width used by every
// statement node that owns a nested body, per §4.7.
const Indent = "    "

// Node is implemented by every C++ AST node.
type Node interface {
	// Lines returns the node's textual rendering, one output line per
	// slice element, with no trailing newline on any element.
	Lines() []string
}

// indentAll prefixes every line with one Indent.
func indentAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if l == "" {
			out[i] = ""
			continue
		}
		out[i] = Indent + l
	}
	return out
}

// str joins a node's Lines with newlines, per §4.7's str() = strings.Join
// convention.
func str(n Node) string {
	return strings.Join(n.Lines(), "\n")
}

// Str renders n as a single string.
func Str(n Node) string {
	return str(n)
}

// Include is a "#include <header>" or "#include \"header\"" directive.
// System is true for angle-bracket includes.
type Include struct {
	Header string
	System bool
}

func (n *Include) Lines() []string {
	if n.System {
		return []string{"#include <" + n.Header + ">"}
	}
	return []string{"#include \"" + n.Header + "\""}
}

// SimpleDefine is a "#define NAME" directive with no replacement value.
type SimpleDefine struct {
	Name string
}

func (n *SimpleDefine) Lines() []string {
	return []string{"#define " + n.Name}
}

// Ifndef opens a "#ifndef NAME" header guard.
type Ifndef struct {
	Name string
}

func (n *Ifndef) Lines() []string {
	return []string{"#ifndef " + n.Name}
}

// Endif closes a header guard.
type Endif struct{}

func (n *Endif) Lines() []string {
	return []string{"#endif"}
}

// Type is a C++ type reference: a base name plus optional template
// arguments, e.g. Type{Base: "std::vector", TemplateArgs: []Type{{Base:
// "int"}}} renders as "std::vector<int>".
type Type struct {
	Base         string
	TemplateArgs []Type
}

func (t Type) render() string {
	if len(t.TemplateArgs) == 0 {
		return t.Base
	}
	parts := make([]string, len(t.TemplateArgs))
	for i, a := range t.TemplateArgs {
		parts[i] = a.render()
	}
	return t.Base + "<" + strings.Join(parts, ", ") + ">"
}

// RegVarDecl is a local or parameter variable declaration: "Type name;"
// or, inside a parameter list, "Type name".
type RegVarDecl struct {
	Name string
	Type Type
}

func (n *RegVarDecl) Lines() []string {
	return []string{n.Type.render() + " " + n.Name + ";"}
}

// Decl renders the declaration without a trailing semicolon, for use in
// a function's parameter list.
func (n *RegVarDecl) Decl() string {
	return n.Type.render() + " " + n.Name
}

// Module is the root node: the set of headers this translation unit
// needs, plus top-level function definitions. HeaderGuard, when set,
// wraps the emitted lines in an Ifndef/SimpleDefine/.../Endif guard for a
// future header-emission mode (see §4.7); the CLI's default single-TU
// mode leaves it empty.
type Module struct {
	HeaderGuard string
	Includes    []*Include
	Funcs       []*FuncDef
}

func (n *Module) Lines() []string {
	var lines []string

	if n.HeaderGuard != "" {
		lines = append(lines, (&Ifndef{Name: n.HeaderGuard}).Lines()...)
		lines = append(lines, (&SimpleDefine{Name: n.HeaderGuard}).Lines()...)
	}

	for _, inc := range n.Includes {
		lines = append(lines, inc.Lines()...)
	}
	lines = append(lines, "")

	for i, f := range n.Funcs {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, f.Lines()...)
	}

	if n.HeaderGuard != "" {
		lines = append(lines, (&Endif{}).Lines()...)
	}

	return lines
}

// FuncDef is a function definition: return type, name, parameters, and
// body.
type FuncDef struct {
	ReturnType Type
	Name       string
	Params     []*RegVarDecl
	Body       []Node
}

func (n *FuncDef) Lines() []string {
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Decl()
	}

	sig := n.ReturnType.render() + " " + n.Name + "(" + strings.Join(params, ", ") + ") {"
	lines := []string{sig}

	for _, b := range n.Body {
		lines = append(lines, indentAll(b.Lines())...)
	}

	lines = append(lines, "}")
	return lines
}
