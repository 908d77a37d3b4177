package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a SHA-256 value, same layout as source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by parts: H(content || part1 || ...).
// Parts are length-prefixed so ("ab", "c") and ("a", "bc") differ.
func Combine(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		var n [8]byte
		l := uint64(len(p))
		for i := range n {
			n[i] = byte(l >> (8 * i))
		}
		_, _ = h.Write(n[:])
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

func (d Digest) String() string { return hex.EncodeToString(d[:]) }
