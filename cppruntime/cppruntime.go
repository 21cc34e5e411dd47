// Package cppruntime bundles the runtime support headers that compiled
// programs include (lang_io.h, lang_math.h, lang_str.h). Per §1 these are
// an external collaborator out of this specification's scope — the
// front-end pipeline only needs to know they exist and where the CLI can
// point the host C++ compiler's -I flag at them.
package cppruntime

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed headers/*.h
var headers embed.FS

// WriteTo extracts the bundled runtime headers into dir, which must
// already exist, overwriting any files already there.
func WriteTo(dir string) error {
	entries, err := fs.ReadDir(headers, "headers")
	if err != nil {
		return err
	}

	for _, e := range entries {
		data, err := fs.ReadFile(headers, filepath.Join("headers", e.Name()))
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, e.Name()), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
