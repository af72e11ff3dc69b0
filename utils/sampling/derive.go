package sampling

import (
	"github.com/zeebo/blake3"
)

// KeySize is the size in bytes of the keys returned by [DeriveKey].
const KeySize = 32

// DeriveKey derives a KeySize bytes key from seed, bound to label.
// Distinct labels yield independent keys, so that a single master seed can
// drive several [KeyedPRNG] without any two of them sharing a stream.
func DeriveKey(seed []byte, label string) []byte {
	hasher := blake3.New()
	hasher.Write([]byte(label))
	hasher.Write([]byte{0})
	hasher.Write(seed)
	sum := hasher.Sum(nil)
	return sum[:KeySize]
}

// NewDerivedPRNG returns a [KeyedPRNG] keyed with DeriveKey(seed, label).
func NewDerivedPRNG(seed []byte, label string) (*KeyedPRNG, error) {
	return NewKeyedPRNG(DeriveKey(seed, label))
}
