package bfv

import (
	"github.com/latticelab/bfvnoise/ring"
)

// Plaintext is a polynomial with coefficients modulo the plaintext modulus t.
type Plaintext struct {
	Value ring.Poly
}

// NewPlaintext allocates a new zero [Plaintext].
func NewPlaintext(params Parameters) *Plaintext {
	return &Plaintext{Value: params.RingT().NewPoly()}
}

// N returns the number of coefficients of the plaintext.
func (pt Plaintext) N() int {
	return pt.Value.N()
}

// CopyNew creates a deep copy of the receiver.
func (pt Plaintext) CopyNew() *Plaintext {
	return &Plaintext{Value: *pt.Value.CopyNew()}
}

// Equal returns true if the receiver and other have the same coefficients.
func (pt Plaintext) Equal(other *Plaintext) bool {
	return other != nil && pt.Value.Equal(&other.Value)
}

// Ciphertext is a vector of degree+1 polynomials modulo q_0...q_level,
// stored in the coefficient domain.
type Ciphertext struct {
	Value []ring.Poly
}

// NewCiphertext allocates a new zero [Ciphertext] of the given degree and level.
func NewCiphertext(params Parameters, degree, level int) *Ciphertext {
	ringQ := params.RingQ().AtLevel(level)
	ct := &Ciphertext{Value: make([]ring.Poly, degree+1)}
	for i := range ct.Value {
		ct.Value[i] = ringQ.NewPoly()
	}
	return ct
}

// Degree returns the degree of the ciphertext.
func (ct Ciphertext) Degree() int {
	return len(ct.Value) - 1
}

// Level returns the level of the ciphertext, that is, the index of the last modulus of its chain.
func (ct Ciphertext) Level() int {
	return ct.Value[0].Level()
}

// Resize resizes the degree and the level of the receiver.
// Polynomials added by the resize are zero.
func (ct *Ciphertext) Resize(degree, level int) {

	if ct.Degree() > degree {
		ct.Value = ct.Value[:degree+1]
	} else if ct.Degree() < degree {
		N := ct.Value[0].N()
		for ct.Degree() < degree {
			ct.Value = append(ct.Value, ring.NewPoly(N, level))
		}
	}

	for i := range ct.Value {
		ct.Value[i].Resize(level)
	}
}

// CopyNew creates a deep copy of the receiver.
func (ct Ciphertext) CopyNew() *Ciphertext {
	ctCpy := &Ciphertext{Value: make([]ring.Poly, len(ct.Value))}
	for i := range ct.Value {
		ctCpy.Value[i] = *ct.Value[i].CopyNew()
	}
	return ctCpy
}

// Copy copies other on the receiver, resizing the receiver to the degree and level of other.
func (ct *Ciphertext) Copy(other *Ciphertext) {
	if ct == other {
		return
	}
	ct.Resize(other.Degree(), other.Level())
	for i := range other.Value {
		ct.Value[i].Copy(other.Value[i])
	}
}

// Equal returns true if the receiver and other have the same degree, level and coefficients.
func (ct Ciphertext) Equal(other *Ciphertext) bool {

	if other == nil || len(ct.Value) != len(other.Value) {
		return false
	}

	for i := range ct.Value {
		if !ct.Value[i].Equal(&other.Value[i]) {
			return false
		}
	}

	return true
}
