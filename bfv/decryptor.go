package bfv

import (
	"fmt"
	"math/big"

	"github.com/latticelab/bfvnoise/ring"
)

// Decryptor is a structure that decrypts ciphertexts with a [SecretKey] and
// measures their invariant noise budget.
// A Decryptor is not safe for concurrent use, see [Decryptor.ShallowCopy].
type Decryptor struct {
	params  Parameters
	sk      *SecretKey
	buffQ   [2]ring.Poly
	buffBig []*big.Int
}

// NewDecryptor creates a new [Decryptor] from the provided parameters and secret key.
func NewDecryptor(params Parameters, sk *SecretKey) *Decryptor {

	if sk == nil {
		panic("cannot NewDecryptor: sk is nil")
	}

	if sk.Value.Q.N() != params.N() {
		panic(fmt.Errorf("cannot NewDecryptor: sk ring degree %d does not match params ring degree %d", sk.Value.Q.N(), params.N()))
	}

	return &Decryptor{
		params:  params,
		sk:      sk,
		buffQ:   [2]ring.Poly{params.RingQ().NewPoly(), params.RingQ().NewPoly()},
		buffBig: ring.NewBigintSlice(params.N()),
	}
}

// ShallowCopy creates a shallow copy of the receiver in which all the read-only
// data-structures are shared with the receiver and the temporary buffers are reallocated.
func (dec Decryptor) ShallowCopy() *Decryptor {
	return NewDecryptor(dec.params, dec.sk)
}

// Decrypt decrypts ct on pt: m = round(t * [c0 + c1*s + ... + cd*s^d]_Q / Q) mod t,
// where Q is the modulus of the ciphertext at its level.
// The result is only correct if the noise budget of ct is positive.
func (dec Decryptor) Decrypt(ct *Ciphertext, pt *Plaintext) {

	level := ct.Level()

	ringQ := dec.params.RingQ().AtLevel(level)

	dec.phase(ct, dec.buffQ[0])
	ringQ.PolyToBigint(dec.buffQ[0], dec.buffBig)

	Q := ringQ.Modulus()
	QHalf := new(big.Int).Rsh(Q, 1)
	T := new(big.Int).SetUint64(dec.params.PlaintextModulus())

	m := pt.Value.Coeffs[0]
	for j, c := range dec.buffBig {
		c.Mul(c, T)
		c.Add(c, QHalf)
		c.Quo(c, Q)
		m[j] = c.Mod(c, T).Uint64()
	}
}

// DecryptNew decrypts ct on a newly allocated plaintext.
func (dec Decryptor) DecryptNew(ct *Ciphertext) (pt *Plaintext) {
	pt = NewPlaintext(dec.params)
	dec.Decrypt(ct, pt)
	return
}

// NoiseBudget returns the invariant noise budget of ct in bits, that is, the largest k >= 0 such that
//
//	||[t * (c0 + c1*s + ... + cd*s^d)]_Q|| * 2^k <= Q/2
//
// where Q is the modulus of the ciphertext at its level and the norm is the
// infinity norm of the centered representative. A budget of zero means that
// the noise may have consumed the plaintext.
func (dec Decryptor) NoiseBudget(ct *Ciphertext) int {

	dec.invariantNoise(ct, dec.buffBig)

	max := new(big.Int)
	for _, c := range dec.buffBig {
		if c.CmpAbs(max) == 1 {
			max.Abs(c)
		}
	}

	return budgetBits(max, dec.params.QAtLevel(ct.Level()))
}

// invariantNoise writes on coeffs the centered representative of [t * (c0 + c1*s + ... + cd*s^d)]_Q.
func (dec Decryptor) invariantNoise(ct *Ciphertext, coeffs []*big.Int) {

	level := ct.Level()

	ringQ := dec.params.RingQ().AtLevel(level)

	dec.phase(ct, dec.buffQ[0])
	ringQ.MulScalar(dec.buffQ[0], dec.params.PlaintextModulus(), dec.buffQ[0])
	ringQ.PolyToBigintCentered(dec.buffQ[0], coeffs)
}

// phase evaluates c0 + c1*s + ... + cd*s^d mod Q on pol, in the coefficient domain,
// using Horner's scheme in the NTT domain.
func (dec Decryptor) phase(ct *Ciphertext, pol ring.Poly) {

	level := ct.Level()

	ringQ := dec.params.RingQ().AtLevel(level)

	tmp := dec.buffQ[1]

	ringQ.NTT(ct.Value[ct.Degree()], pol)

	for i := ct.Degree() - 1; i >= 0; i-- {
		ringQ.MulCoeffsMontgomery(pol, dec.sk.Value.Q, pol)
		ringQ.NTT(ct.Value[i], tmp)
		ringQ.Add(pol, tmp, pol)
	}

	ringQ.INTT(pol, pol)
}
