package cppruntime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_WriteTo_extracts_every_bundled_header(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	assert.NoError(WriteTo(dir))

	for _, name := range []string{"lang_io.h", "lang_math.h", "lang_str.h"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		assert.NoError(err)
		assert.NotEmpty(data)
	}
}
