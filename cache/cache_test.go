package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Fingerprint_is_stable_and_sensitive_to_text(t *testing.T) {
	assert := assert.New(t)

	a := Fingerprint("E -> E PLUS T | T")
	b := Fingerprint("E -> E PLUS T | T")
	c := Fingerprint("E -> E MINUS T | T")

	assert.Equal(a, b)
	assert.NotEqual(a, c)
}

func Test_FileStore_miss_before_any_put(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "cache.bin")
	s := NewFileStore(path)

	_, ok, err := s.Get(Fingerprint("anything"))
	assert.NoError(err)
	assert.False(ok)
}

func Test_FileStore_put_then_get_round_trips(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "cache.bin")
	s := NewFileStore(path)

	fp := Fingerprint("E -> E PLUS T | T")
	err := s.Put(fp, []byte{1, 2, 3, 4})
	assert.NoError(err)

	blob, ok, err := s.Get(fp)
	assert.NoError(err)
	assert.True(ok)
	assert.Equal([]byte{1, 2, 3, 4}, blob)
}

func Test_FileStore_miss_on_fingerprint_mismatch(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "cache.bin")
	s := NewFileStore(path)

	assert.NoError(s.Put(Fingerprint("one"), []byte{9}))

	_, ok, err := s.Get(Fingerprint("two"))
	assert.NoError(err)
	assert.False(ok)
}

func Test_cacheRecord_binary_round_trip(t *testing.T) {
	assert := assert.New(t)

	rec := cacheRecord{Fingerprint: 123456789, Blob: []byte("a table blob")}
	data, err := rec.MarshalBinary()
	assert.NoError(err)

	var back cacheRecord
	assert.NoError(back.UnmarshalBinary(data))
	assert.Equal(rec, back)
}
