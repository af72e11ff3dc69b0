package ring

import (
	"math/bits"
)

//============================
//=== MONTGOMERY REDUCTION ===
//============================

// MForm returns a*2^64 mod q.
// The input a must be smaller than q.
func MForm(a, q uint64) (r uint64) {
	_, r = bits.Div64(a, 0, q)
	return
}

// IMForm returns a*(1/2^64) mod q.
func IMForm(a, q, qInv uint64) (r uint64) {
	return MRed(a, 1, q, qInv)
}

// GenMRedConstant computes the constant qInv = q^-1 mod 2^64 required for [MRed].
// The modulus q must be odd.
func GenMRedConstant(q uint64) (qInv uint64) {
	// Newton iterations, each one doubles the number of correct bits (3 -> 6 -> ... -> 96).
	qInv = q
	for i := 0; i < 5; i++ {
		qInv *= 2 - q*qInv
	}
	return
}

// MRed computes x * y * (1/2^64) mod q.
// Requires x*y < q*2^64, which holds for x < 2q and y < q when q < 2^63.
func MRed(x, y, q, qInv uint64) (r uint64) {
	ahi, alo := bits.Mul64(x, y)
	R := alo * qInv
	H, _ := bits.Mul64(R, q)
	r = ahi - H + q
	if r >= q {
		r -= q
	}
	return
}

//==========================
//=== GENERIC REDUCTION  ===
//==========================

// MulMod returns x * y mod q.
// The inputs must be smaller than q.
func MulMod(x, y, q uint64) (r uint64) {
	hi, lo := bits.Mul64(x, y)
	_, r = bits.Div64(hi, lo, q)
	return
}

// ModExp performs the modular exponentiation x^e mod q.
func ModExp(x, e, q uint64) (result uint64) {
	result = 1
	x %= q
	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			result = MulMod(result, x, q)
		}
		x = MulMod(x, x, q)
	}
	return result
}

// ModInverse returns x^-1 mod q for a prime q.
func ModInverse(x, q uint64) uint64 {
	return ModExp(x, q-2, q)
}

//===============================
//==== CONDITIONAL REDUCTION ====
//===============================

// CRed reduce returns a mod q, where
// a is required to be in the range [0, 2q-1].
func CRed(a, q uint64) uint64 {
	if a >= q {
		return a - q
	}
	return a
}
