package lower

import "github.com/dekarrin/langc/types"

// librarySymbol is one name -> LangType entry contributed by a builtin
// library.
type librarySymbol struct {
	name string
	t    types.LangType
}

// libEntry is a LibData record per §4.6: a header filename plus the
// symbols it contributes to the global scope.
type libEntry struct {
	header  string
	symbols []librarySymbol
}

func intType() types.LangType { return types.NameType{Name: "int"} }
func strType() types.LangType { return types.StringType{} }

// builtinLibs lists every library imported at compiler construction, in
// the alphabetical-by-filename order Module lowering prepends their
// Includes in. io is specified directly by §4.6; math and str are the
// supplemental libraries grounded in original_source/'s standard prelude.
var builtinLibs = []libEntry{
	{
		header: "lang_io.h",
		symbols: []librarySymbol{
			{"print", types.FuncType{Return: types.NoneType(), Args: nil, HasVarargs: true}},
			{"input", types.FuncType{Return: strType(), Args: []types.LangType{strType()}}},
		},
	},
	{
		header: "lang_math.h",
		symbols: []librarySymbol{
			{"abs", types.FuncType{Return: intType(), Args: []types.LangType{intType()}}},
			{"min", types.FuncType{Return: intType(), Args: []types.LangType{intType(), intType()}}},
			{"max", types.FuncType{Return: intType(), Args: []types.LangType{intType(), intType()}}},
		},
	},
	{
		header: "lang_str.h",
		symbols: []librarySymbol{
			{"len", types.FuncType{Return: intType(), Args: []types.LangType{strType()}}},
			{"concat", types.FuncType{Return: strType(), Args: []types.LangType{strType()}, HasVarargs: true}},
		},
	},
}
