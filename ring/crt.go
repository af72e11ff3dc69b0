package ring

import (
	"math/big"

	"github.com/latticelab/bfvnoise/utils/bignum"
)

// CRTBasis stores the constants to reconstruct an integer modulo Q = prod q_i
// from its residues modulo each q_i:
//
//	x = sum_i [x_i * (Q/q_i)^-1]_{q_i} * (Q/q_i) mod Q
type CRTBasis struct {
	moduli    []uint64
	modulus   *big.Int
	half      *big.Int
	qHat      []*big.Int // Q/q_i
	qHatInvMF []uint64   // (Q/q_i)^-1 mod q_i in Montgomery form
	mredConst []uint64
}

// NewCRTBasis precomputes the CRT reconstruction constants for the given
// pairwise coprime moduli.
func NewCRTBasis(moduli []uint64) (b *CRTBasis) {

	b = &CRTBasis{
		moduli:    make([]uint64, len(moduli)),
		modulus:   big.NewInt(1),
		qHat:      make([]*big.Int, len(moduli)),
		qHatInvMF: make([]uint64, len(moduli)),
		mredConst: make([]uint64, len(moduli)),
	}

	copy(b.moduli, moduli)

	for _, qi := range moduli {
		b.modulus.Mul(b.modulus, new(big.Int).SetUint64(qi))
	}

	b.half = new(big.Int).Rsh(b.modulus, 1)

	tmp := new(big.Int)
	for i, qi := range moduli {
		bqi := new(big.Int).SetUint64(qi)
		b.qHat[i] = new(big.Int).Quo(b.modulus, bqi)
		qHatModqi := tmp.Mod(b.qHat[i], bqi).Uint64()
		b.qHatInvMF[i] = MForm(ModInverse(qHatModqi, qi), qi)
		b.mredConst[i] = GenMRedConstant(qi)
	}

	return
}

// Modulus returns the product of the moduli of the basis.
func (b *CRTBasis) Modulus() *big.Int {
	return new(big.Int).Set(b.modulus)
}

// Reconstruct sets out to the unique integer in [0, Q) whose residues are given by residues.
// The residues must be reduced modulo their respective moduli.
func (b *CRTBasis) Reconstruct(residues []uint64, out *big.Int) {
	out.SetUint64(0)
	tmp := new(big.Int)
	for i, qi := range b.moduli {
		c := MRed(residues[i], b.qHatInvMF[i], qi, b.mredConst[i])
		tmp.SetUint64(c)
		tmp.Mul(tmp, b.qHat[i])
		out.Add(out, tmp)
	}
	out.Mod(out, b.modulus)
}

// ReconstructCentered sets out to the unique integer in (-Q/2, Q/2] whose residues are given by residues.
func (b *CRTBasis) ReconstructCentered(residues []uint64, out *big.Int) {
	b.Reconstruct(residues, out)
	bignum.Center(out, b.modulus, b.half)
}
