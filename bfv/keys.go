package bfv

import (
	"github.com/latticelab/bfvnoise/ring"
)

// PolyQP represents a polynomial in the ring of modulus Q*P.
// It stores the residues modulo Q and modulo P in separate polynomials.
type PolyQP struct {
	Q ring.Poly
	P ring.Poly
}

// NewPolyQP allocates a new PolyQP at the maximum level of the parameters.
func NewPolyQP(params Parameters) PolyQP {
	return PolyQP{
		Q: params.RingQ().NewPoly(),
		P: params.RingP().NewPoly(),
	}
}

// Equal returns true if the receiver and other have the same coefficients.
func (p PolyQP) Equal(other *PolyQP) bool {
	return other != nil && p.Q.Equal(&other.Q) && p.P.Equal(&other.P)
}

// SecretKey is a type for BFV secret keys.
// The ternary secret s is stored modulo Q and P, in the NTT and Montgomery domain.
type SecretKey struct {
	Value PolyQP
}

// NewSecretKey allocates a new zero [SecretKey].
func NewSecretKey(params Parameters) *SecretKey {
	return &SecretKey{Value: NewPolyQP(params)}
}

// Equal returns true if the receiver and other are equal.
func (sk SecretKey) Equal(other *SecretKey) bool {
	return other != nil && sk.Value.Equal(&other.Value)
}

// PublicKey is a type for BFV public keys.
// It stores the pair (-(a*s + e), a) modulo Q, in the NTT and Montgomery domain.
type PublicKey struct {
	Value [2]ring.Poly
}

// NewPublicKey allocates a new zero [PublicKey].
func NewPublicKey(params Parameters) *PublicKey {
	return &PublicKey{Value: [2]ring.Poly{params.RingQ().NewPoly(), params.RingQ().NewPoly()}}
}

// Equal returns true if the receiver and other are equal.
func (pk PublicKey) Equal(other *PublicKey) bool {
	return other != nil && pk.Value[0].Equal(&other.Value[0]) && pk.Value[1].Equal(&other.Value[1])
}

// RelinearizationKey is a type for BFV relinearization keys.
//
// Value[i] is an encryption modulo Q*P of P * g_i * s^2, where g_i is the CRT idempotent
// of the i-th modulus of Q: g_i = 1 mod q_i and 0 mod q_j for j != i. Each pair
// (-a_i*s + e_i + P*g_i*s^2, a_i) is stored in the NTT and Montgomery domain.
type RelinearizationKey struct {
	Value [][2]PolyQP
}

// NewRelinearizationKey allocates a new zero [RelinearizationKey].
func NewRelinearizationKey(params Parameters) *RelinearizationKey {
	rlk := &RelinearizationKey{Value: make([][2]PolyQP, params.QCount())}
	for i := range rlk.Value {
		rlk.Value[i] = [2]PolyQP{NewPolyQP(params), NewPolyQP(params)}
	}
	return rlk
}

// DecompositionCount returns the number of RNS digits of the key.
func (rlk RelinearizationKey) DecompositionCount() int {
	return len(rlk.Value)
}

// Equal returns true if the receiver and other are equal.
func (rlk RelinearizationKey) Equal(other *RelinearizationKey) bool {
	if other == nil || len(rlk.Value) != len(other.Value) {
		return false
	}
	for i := range rlk.Value {
		if !rlk.Value[i][0].Equal(&other.Value[i][0]) || !rlk.Value[i][1].Equal(&other.Value[i][1]) {
			return false
		}
	}
	return true
}
