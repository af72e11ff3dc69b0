package ring

import (
	"fmt"
	"math/bits"

	"github.com/latticelab/bfvnoise/utils"
)

// SubRing is a struct storing precomputation
// for fast modular reduction and NTT for
// a given modulus.
type SubRing struct {
	// Polynomial nb.Coefficients
	N int

	// Modulus
	Modulus uint64

	// 2N
	NthRoot uint64

	// Fast reduction constants
	MRedConstant uint64 // Montgomery reduction constant

	// Primitive NthRoot-th root of unity
	PrimitiveRoot uint64

	// NTT constants, in Montgomery form and bit-reversed order
	RootsForward  []uint64
	RootsBackward []uint64

	// N^-1 mod Modulus in Montgomery form
	NInv uint64
}

// NewSubRing creates a new SubRing with the standard NTT.
// The modulus must be a prime congruent to 1 modulo 2N and smaller than 2^62.
func NewSubRing(N int, Modulus uint64) (s *SubRing, err error) {

	if N < 2 || !utils.IsPowerOfTwo(N) {
		return nil, fmt.Errorf("invalid ring degree: %d must be a power of two greater than one", N)
	}

	if bits.Len64(Modulus) > 62 {
		return nil, fmt.Errorf("invalid modulus: %d exceeds 62 bits", Modulus)
	}

	s = &SubRing{
		N:            N,
		Modulus:      Modulus,
		NthRoot:      uint64(N) << 1,
		MRedConstant: GenMRedConstant(Modulus),
	}

	return s, s.generateNTTConstants()
}

// generateNTTConstants finds a primitive NthRoot-th root of unity psi and
// tabulates its powers for the negacyclic NTT.
func (s *SubRing) generateNTTConstants() (err error) {

	Modulus := s.Modulus
	NthRoot := s.NthRoot

	if !IsNTTFriendly(Modulus, NthRoot) {
		return fmt.Errorf("invalid modulus: %d is not a prime equal to 1 mod NthRoot=%d", Modulus, NthRoot)
	}

	// Since NthRoot is a power of two, psi has order exactly NthRoot
	// as soon as psi^(NthRoot/2) = -1.
	for g := uint64(2); ; g++ {
		psi := ModExp(g, (Modulus-1)/NthRoot, Modulus)
		if ModExp(psi, NthRoot>>1, Modulus) == Modulus-1 {
			s.PrimitiveRoot = psi
			break
		}
	}

	N := s.N
	logN := bits.Len64(uint64(N)) - 1

	psiInv := ModInverse(s.PrimitiveRoot, Modulus)

	s.RootsForward = make([]uint64, N)
	s.RootsBackward = make([]uint64, N)

	powForward := uint64(1)
	powBackward := uint64(1)

	// RootsForward[bitrev(j)] = psi^j, RootsBackward[bitrev(j)] = psi^-j
	for j := 0; j < N; j++ {
		idx := utils.BitReverse64(j, logN)
		s.RootsForward[idx] = MForm(powForward, Modulus)
		s.RootsBackward[idx] = MForm(powBackward, Modulus)
		powForward = MulMod(powForward, s.PrimitiveRoot, Modulus)
		powBackward = MulMod(powBackward, psiInv, Modulus)
	}

	s.NInv = MForm(ModInverse(uint64(N), Modulus), Modulus)

	return
}
