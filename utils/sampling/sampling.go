// Package sampling implements secure sampling of bytes and integers.
package sampling

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ReadUint64 reads 8 bytes from prng and returns them as a little endian uint64.
func ReadUint64(prng PRNG) uint64 {
	b := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := prng.Read(b); err != nil {
		// Sanity check, this error should not happen.
		panic(fmt.Errorf("prng.Read: %w", err))
	}
	return binary.LittleEndian.Uint64(b)
}

// ReadFloat64 returns a float64 uniformly distributed in (0, 1], using 53 bits of prng.
func ReadFloat64(prng PRNG) float64 {
	return float64((ReadUint64(prng)>>11)+1) / (1 << 53)
}

// ReadNormFloat64 returns a normally distributed float64 with mean 0 and
// standard deviation 1 (Box-Muller transform).
func ReadNormFloat64(prng PRNG) float64 {
	u1, u2 := ReadFloat64(prng), ReadFloat64(prng)
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
