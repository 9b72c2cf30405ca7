// Package hasher produces short hex content hashes with xxHash64.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Output file names carry the first 8 hex chars, cache keys all 16.
const (
	ShortLen = 8
	FullLen  = 16
)

func format(sum uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}

// ContentHash returns the xxHash64 of data as hex, truncated to hexLen
// characters when hexLen is positive.
func ContentHash(data []byte, hexLen int) string {
	return format(xxhash.Sum64(data), hexLen)
}

// ContentHashReader is ContentHash over a stream.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return format(h.Sum64(), hexLen), nil
}

// Parts hashes a sequence of byte strings. Every part is length prefixed,
// so ("ab", "c") and ("a", "bc") differ.
func Parts(hexLen int, parts ...[]byte) string {
	h := xxhash.New()
	var n [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
		h.Write(n[:])
		h.Write(p)
	}
	return format(h.Sum64(), hexLen)
}
