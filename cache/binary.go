package cache

import (
	"encoding/binary"
	"fmt"
)

// The encXxx/decXxx helpers below give cacheRecord a hand-rolled
// encoding.BinaryMarshaler/BinaryUnmarshaler implementation in the same
// length-prefixed style internal/tunascript's AST node types use, so that
// rezi.EncBinary/rezi.DecBinary (the same pair server/dao/sqlite calls for
// game.State) can wrap it uniformly regardless of which Store persists it.

func encBytes(b []byte) []byte {
	out := make([]byte, 8, 8+len(b))
	binary.BigEndian.PutUint64(out, uint64(len(b)))
	return append(out, b...)
}

func decBytes(data []byte) ([]byte, int, error) {
	if len(data) < 8 {
		return nil, 0, fmt.Errorf("cache: unexpected end of data reading blob length")
	}
	n := int(binary.BigEndian.Uint64(data))
	if len(data) < 8+n {
		return nil, 0, fmt.Errorf("cache: unexpected end of data reading blob body")
	}
	out := make([]byte, n)
	copy(out, data[8:8+n])
	return out, 8 + n, nil
}

func encUint64(v uint64) []byte {
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, v)
	return out
}

func decUint64(data []byte) (uint64, int, error) {
	if len(data) < 8 {
		return 0, 0, fmt.Errorf("cache: unexpected end of data reading uint64")
	}
	return binary.BigEndian.Uint64(data), 8, nil
}

// cacheRecord is the rezi-encoded payload both Store implementations round
// trip, per §3A's GrammarCache record: the rule-text fingerprint plus the
// opaque serialized table blob a caller (the compiler package) produced.
type cacheRecord struct {
	Fingerprint uint64
	Blob        []byte
}

func (r cacheRecord) MarshalBinary() ([]byte, error) {
	data := encUint64(r.Fingerprint)
	data = append(data, encBytes(r.Blob)...)
	return data, nil
}

func (r *cacheRecord) UnmarshalBinary(data []byte) error {
	fp, n, err := decUint64(data)
	if err != nil {
		return err
	}
	data = data[n:]

	blob, _, err := decBytes(data)
	if err != nil {
		return err
	}

	r.Fingerprint = fp
	r.Blob = blob
	return nil
}
