// Package cache implements the on-disk grammar cache described in §3A and
// §4.8: a pluggable Store interface with a default rezi-encoded FileStore
// and an opt-in SQLiteStore, both round-tripping the identical
// rezi-encoded cacheRecord payload.
package cache

import "hash/fnv"

// Store persists one grammar table blob keyed by a fingerprint of the
// grammar's rule text. Put is always best-effort per §5: a failure to
// persist (lock contention, a read-only cache path) is swallowed rather
// than surfaced, since the cache is purely a performance optimization the
// compiler can always fall back from.
type Store interface {
	// Get returns the cached blob for fingerprint, and ok=false if there
	// is no entry (or the entry belongs to a different fingerprint, for
	// FileStore's single-slot design).
	Get(fingerprint uint64) (blob []byte, ok bool, err error)

	// Put stores blob under fingerprint, overwriting any prior entry.
	Put(fingerprint uint64, blob []byte) error
}

// Fingerprint hashes a grammar's rule text into the uint64 fingerprint
// §3A's GrammarCache record keys on. Two grammars with byte-identical rule
// text hash identically; any textual change invalidates the cache.
func Fingerprint(ruleText string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(ruleText))
	return h.Sum64()
}
