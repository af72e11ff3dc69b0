package bfv

import (
	"math"
	"math/big"

	"github.com/montanaflynn/stats"

	"github.com/latticelab/bfvnoise/ring"
)

// budgetBits returns the largest k >= 0 such that norm * 2^k <= floor(Q/2), that is
// floor(log2((Q/2) / norm)) clamped at zero. A zero norm gives bits(Q) - 1.
func budgetBits(norm, Q *big.Int) int {

	QHalf := new(big.Int).Rsh(Q, 1)

	if norm.Sign() == 0 {
		return QHalf.BitLen()
	}

	k := QHalf.BitLen() - norm.BitLen()

	if k <= 0 {
		return 0
	}

	if new(big.Int).Lsh(norm, uint(k)).Cmp(QHalf) > 0 {
		k--
	}

	return k
}

// Norm returns the log2 of the standard deviation, minimum and maximum absolute value of
// the coefficients of the invariant noise [t * (c0 + c1*s)]_Q of ct, decrypted with dec.
// Dividing by Q, i.e. subtracting log2(Q), gives the invariant noise relative to the modulus.
func Norm(ct *Ciphertext, dec *Decryptor) (std, min, max float64) {

	coeffsBigint := ring.NewBigintSlice(dec.params.N())

	dec.invariantNoise(ct, coeffsBigint)

	return NormStats(coeffsBigint)
}

// NormStats returns the log2 of the standard deviation, minimum and maximum absolute value of vec.
func NormStats(vec []*big.Int) (std, min, max float64) {

	values := make(stats.Float64Data, len(vec))
	abs := make(stats.Float64Data, len(vec))

	f := new(big.Float)
	for i, c := range vec {
		values[i], _ = f.SetInt(c).Float64()
		abs[i] = math.Abs(values[i])
	}

	s, _ := stats.StandardDeviationPopulation(values)
	lo, _ := stats.Min(abs)
	hi, _ := stats.Max(abs)

	return math.Log2(s), math.Log2(lo), math.Log2(hi)
}
