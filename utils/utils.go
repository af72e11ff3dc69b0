// Package utils implements various helper functions.
package utils

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Number is the set of types on which the arithmetic helpers are defined.
type Number interface {
	constraints.Integer | constraints.Float
}

// Min returns the minimum value of the two inputs.
func Min[V Number](a, b V) (r V) {
	if a > b {
		return b
	}
	return a
}

// Max returns the maximum value of the two inputs.
func Max[V Number](a, b V) (r V) {
	if a < b {
		return b
	}
	return a
}

// MinSlice returns the minimum value in the slice.
// It panics if the slice is empty.
func MinSlice[V Number](slice []V) (min V) {
	min = slice[0]
	for _, c := range slice[1:] {
		min = Min(min, c)
	}
	return
}

// AllDistinct returns true if all elements in s are distinct, and false otherwise.
func AllDistinct[V comparable](s []V) bool {
	m := make(map[V]struct{}, len(s))
	for _, si := range s {
		if _, exists := m[si]; exists {
			return false
		}
		m[si] = struct{}{}
	}
	return true
}

// BitReverse64 returns the bit-reverse value of the input value, within a context of 2^bitLen.
func BitReverse64[V constraints.Integer](index V, bitLen int) uint64 {
	return bits.Reverse64(uint64(index)) >> (64 - bitLen)
}

// IsPowerOfTwo returns true if x is a power of two.
func IsPowerOfTwo[V constraints.Integer](x V) bool {
	return x > 0 && x&(x-1) == 0
}
