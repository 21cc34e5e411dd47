package grammarconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/langc/grammar"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "grammar.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func Test_Load_and_Precedence(t *testing.T) {
	assert := assert.New(t)

	path := writeTemp(t, `
[[precedence]]
assoc = "left"
terminals = ["PLUS", "MINUS"]

[[precedence]]
assoc = "right"
terminals = ["STAR", "SLASH"]
`)

	d, err := Load(path)
	assert.NoError(err)

	levels, err := d.Precedence()
	assert.NoError(err)
	assert.Equal([]grammar.PrecedenceLevel{
		{Assoc: grammar.LeftAssoc, Terminals: []string{"PLUS", "MINUS"}},
		{Assoc: grammar.RightAssoc, Terminals: []string{"STAR", "SLASH"}},
	}, levels)
}

func Test_Precedence_rejects_unknown_assoc(t *testing.T) {
	assert := assert.New(t)

	path := writeTemp(t, `
[[precedence]]
assoc = "sideways"
terminals = ["PLUS"]
`)

	d, err := Load(path)
	assert.NoError(err)

	_, err = d.Precedence()
	assert.Error(err)
}
