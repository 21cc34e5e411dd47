// Package grammarconfig loads the optional TOML grammar descriptor named
// by the CLI's --grammar flag, per §3A's CompilerOptions ("precedence
// overrides loaded from a TOML grammar descriptor"). The descriptor lets
// a caller relitigate associativity and precedence level for language L's
// operators without recompiling; the production set itself stays fixed,
// since its reduction callbacks are compiled Go closures a data file
// cannot express (see langgrammar.BuildWithPrecedence).
//
// Grounded on the reference codebase's own TOML-is-the-data-driven-format
// convention (the .tqw world-manifest loader), generalized from a game
// world descriptor to a grammar-precedence descriptor; both are
// BurntSushi/toml-decoded structs handed to a Build function.
package grammarconfig

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/langc/grammar"
)

// Descriptor is the root of a --grammar TOML file.
type Descriptor struct {
	Precedence []PrecedenceEntry `toml:"precedence"`
}

// PrecedenceEntry is one [[precedence]] table: an associativity and the
// terminals sharing that level, lowest level first in file order.
type PrecedenceEntry struct {
	Assoc     string   `toml:"assoc"`
	Terminals []string `toml:"terminals"`
}

// Load decodes path into a Descriptor.
func Load(path string) (*Descriptor, error) {
	var d Descriptor
	if _, err := toml.DecodeFile(path, &d); err != nil {
		return nil, fmt.Errorf("grammarconfig: %w", err)
	}
	return &d, nil
}

// Precedence converts the descriptor into the []grammar.PrecedenceLevel
// langgrammar.BuildWithPrecedence expects, rejecting any assoc spelling
// other than "left"/"right".
func (d *Descriptor) Precedence() ([]grammar.PrecedenceLevel, error) {
	levels := make([]grammar.PrecedenceLevel, 0, len(d.Precedence))
	for _, e := range d.Precedence {
		var assoc grammar.Assoc
		switch e.Assoc {
		case "left":
			assoc = grammar.LeftAssoc
		case "right":
			assoc = grammar.RightAssoc
		default:
			return nil, fmt.Errorf("grammarconfig: precedence entry has invalid assoc %q (want \"left\" or \"right\")", e.Assoc)
		}
		levels = append(levels, grammar.PrecedenceLevel{Assoc: assoc, Terminals: e.Terminals})
	}
	return levels, nil
}
