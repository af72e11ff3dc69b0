// Package ring implements RNS-accelerated modular arithmetic operations for polynomials in
// Z_Q[X]/(X^N+1), including: number theoretic transform (NTT); exact CRT reconstruction;
// division and rounding by an RNS modulus; uniform, Gaussian and ternary sampling.
package ring

import (
	"fmt"
	"math/big"

	"github.com/latticelab/bfvnoise/utils"
)

// Ring is a structure that keeps all the variables required to operate on a polynomial represented in this ring.
// A Ring can be restricted to a prefix of its moduli chain with [Ring.AtLevel], in which case all
// operations only act on the first level+1 moduli.
type Ring struct {
	SubRings []*SubRing

	// Product of the Moduli for each level
	ModulusAtLevel []*big.Int

	// CRT reconstruction constants for each level
	crt []*CRTBasis

	level int
}

// NewRing creates a new RNS Ring with degree N and coefficient moduli Moduli.
// N must be a power of two larger than one and the moduli must be distinct
// NTT-friendly primes (equal to 1 mod 2N) of at most 62 bits.
func NewRing(N int, Moduli []uint64) (r *Ring, err error) {

	if len(Moduli) == 0 {
		return nil, fmt.Errorf("invalid Moduli: must contain at least one modulus")
	}

	if !utils.AllDistinct(Moduli) {
		return nil, fmt.Errorf("invalid Moduli: moduli must be distinct")
	}

	r = &Ring{
		SubRings:       make([]*SubRing, len(Moduli)),
		ModulusAtLevel: make([]*big.Int, len(Moduli)),
		crt:            make([]*CRTBasis, len(Moduli)),
		level:          len(Moduli) - 1,
	}

	for i := range Moduli {

		if r.SubRings[i], err = NewSubRing(N, Moduli[i]); err != nil {
			return nil, err
		}

		r.crt[i] = NewCRTBasis(Moduli[:i+1])
		r.ModulusAtLevel[i] = r.crt[i].Modulus()
	}

	return
}

// AtLevel returns a shallow copy of the target ring configured to
// carry on operations at the specified level.
func (r Ring) AtLevel(level int) *Ring {

	if level < 0 {
		panic("level cannot be negative")
	}

	if level > r.MaxLevel() {
		panic("level cannot be larger than max level")
	}

	return &Ring{
		SubRings:       r.SubRings,
		ModulusAtLevel: r.ModulusAtLevel,
		crt:            r.crt,
		level:          level,
	}
}

// N returns the ring degree.
func (r Ring) N() int {
	return r.SubRings[0].N
}

// NthRoot returns the multiplicative order of the primitive root.
func (r Ring) NthRoot() uint64 {
	return r.SubRings[0].NthRoot
}

// Level returns the level of the current ring.
func (r Ring) Level() int {
	return r.level
}

// MaxLevel returns the maximum level allowed by the ring (#NbModuli -1).
func (r Ring) MaxLevel() int {
	return len(r.SubRings) - 1
}

// ModuliChain returns the list of primes in the modulus chain.
func (r Ring) ModuliChain() (moduli []uint64) {
	moduli = make([]uint64, len(r.SubRings))
	for i := range r.SubRings {
		moduli[i] = r.SubRings[i].Modulus
	}
	return
}

// ModuliChainLength returns the number of primes in the RNS basis of the ring.
func (r Ring) ModuliChainLength() int {
	return len(r.SubRings)
}

// Modulus returns the modulus of the target ring at the currently
// set level in *big.Int.
func (r Ring) Modulus() *big.Int {
	return r.ModulusAtLevel[r.level]
}

// CRT returns the CRT reconstruction constants of the target ring at the currently set level.
func (r Ring) CRT() *CRTBasis {
	return r.crt[r.level]
}

// NewPoly creates a new polynomial with all coefficients set to 0,
// at the level of the ring.
func (r Ring) NewPoly() Poly {
	return NewPoly(r.N(), r.level)
}
