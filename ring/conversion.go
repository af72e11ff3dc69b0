package ring

import (
	"math/big"
)

// SetCoefficientsInt64 sets the coefficients of p2 to the signed coefficients coeffs,
// reduced modulo each modulus of the ring.
func (r Ring) SetCoefficientsInt64(coeffs []int64, p2 Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		q := s.Modulus
		p2tmp := p2.Coeffs[i]
		for j, c := range coeffs {
			if c < 0 {
				p2tmp[j] = q - uint64(-c)%q
				if p2tmp[j] == q {
					p2tmp[j] = 0
				}
			} else {
				p2tmp[j] = uint64(c) % q
			}
		}
	}
}

// SetCoefficientsBigint sets the coefficients of p2 to the integers coeffs,
// reduced modulo each modulus of the ring. Negative integers are supported.
func (r Ring) SetCoefficientsBigint(coeffs []*big.Int, p2 Poly) {
	tmp, bq := new(big.Int), new(big.Int)
	for i, s := range r.SubRings[:r.level+1] {
		bq.SetUint64(s.Modulus)
		p2tmp := p2.Coeffs[i]
		for j := range coeffs {
			p2tmp[j] = tmp.Mod(coeffs[j], bq).Uint64()
		}
	}
}

// PolyToBigint reconstructs p1 and writes the result on coeffsBigint, with
// each coefficient in [0, Q) where Q is the modulus of the ring at its level.
// coeffsBigint must be of length at least N and its elements non-nil.
func (r Ring) PolyToBigint(p1 Poly, coeffsBigint []*big.Int) {
	r.polyToBigint(p1, coeffsBigint, false)
}

// PolyToBigintCentered reconstructs p1 and writes the result on coeffsBigint,
// with each coefficient in (-Q/2, Q/2].
func (r Ring) PolyToBigintCentered(p1 Poly, coeffsBigint []*big.Int) {
	r.polyToBigint(p1, coeffsBigint, true)
}

func (r Ring) polyToBigint(p1 Poly, coeffsBigint []*big.Int, centered bool) {

	crt := r.CRT()

	residues := make([]uint64, r.level+1)

	for j := 0; j < r.N(); j++ {

		for i := range residues {
			residues[i] = p1.Coeffs[i][j]
		}

		if centered {
			crt.ReconstructCentered(residues, coeffsBigint[j])
		} else {
			crt.Reconstruct(residues, coeffsBigint[j])
		}
	}
}

// NewBigintSlice allocates a slice of n zero big.Int.
func NewBigintSlice(n int) (v []*big.Int) {
	v = make([]*big.Int, n)
	for i := range v {
		v[i] = new(big.Int)
	}
	return
}
