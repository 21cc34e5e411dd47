package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_FuncType_Equal_requires_matching_args_and_varargs(t *testing.T) {
	assert := assert.New(t)

	a := FuncType{Return: StringType{}, Args: []LangType{NameType{Name: "int"}}, HasVarargs: false}
	b := FuncType{Return: StringType{}, Args: []LangType{NameType{Name: "int"}}, HasVarargs: false}
	c := FuncType{Return: StringType{}, Args: []LangType{NameType{Name: "int"}}, HasVarargs: true}

	assert.True(a.Equal(b))
	assert.False(a.Equal(c))
}

func Test_FromTypeDecl_ToTypeDecl_roundtrip(t *testing.T) {
	assert := assert.New(t)

	orig := FuncType{
		Return:     NameType{Name: "int"},
		Args:       []LangType{StringType{}, NameType{Name: "bool"}},
		HasVarargs: true,
	}

	decl := orig.ToTypeDecl()
	back := FromTypeDecl(decl)

	assert.True(orig.Equal(back))
}

func Test_Scope_Lookup_searches_innermost_first(t *testing.T) {
	assert := assert.New(t)

	s := NewScope()
	s.AddVar("x", NameType{Name: "int"})

	s.Enter()
	s.AddVar("x", StringType{})

	v, err := s.Lookup("x")
	assert.NoError(err)
	assert.True(v.Equal(StringType{}))

	s.Exit()

	v, err = s.Lookup("x")
	assert.NoError(err)
	assert.True(v.Equal(NameType{Name: "int"}))
}

func Test_Scope_Lookup_unbound_is_NameError(t *testing.T) {
	assert := assert.New(t)

	s := NewScope()
	_, err := s.Lookup("nope")
	assert.Error(err)
}

func Test_Scope_Exit_on_global_panics(t *testing.T) {
	assert := assert.New(t)

	s := NewScope()
	assert.Panics(func() { s.Exit() })
}
