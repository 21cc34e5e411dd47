package cache

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/dekarrin/rezi"
)

// FileStore is the default grammar cache backend: a single rezi-encoded
// cacheRecord blob at a fixed path, written via the exclusive-
// temp-file-then-rename convention of §5 so two CLI invocations racing on
// the same cache path can't corrupt it.
type FileStore struct {
	Path string
}

// NewFileStore builds a FileStore backed by the file at path. The file
// need not exist yet; Get simply misses until the first successful Put.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Get(fingerprint uint64) ([]byte, bool, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var rec cacheRecord
	if _, err := rezi.DecBinary(data, &rec); err != nil {
		// a corrupt or foreign cache file is treated as a miss, not a
		// fatal error; the compiler just rebuilds and overwrites it.
		return nil, false, nil
	}
	if rec.Fingerprint != fingerprint {
		return nil, false, nil
	}
	return rec.Blob, true, nil
}

func (s *FileStore) Put(fingerprint uint64, blob []byte) error {
	data := rezi.EncBinary(cacheRecord{Fingerprint: fingerprint, Blob: blob})

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".langc-cache-*")
	if err != nil {
		// best-effort per §5: skip caching rather than fail the compile.
		return nil
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(tmpName)
		return nil
	}

	if err := os.Rename(tmpName, s.Path); err != nil {
		os.Remove(tmpName)
		return nil
	}
	return nil
}
