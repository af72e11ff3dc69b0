package bfv

import (
	"fmt"
	"math/big"

	"github.com/latticelab/bfvnoise/ring"
	"github.com/latticelab/bfvnoise/utils/sampling"
)

// Encryptor is a structure that encrypts plaintexts under a [PublicKey].
// An Encryptor is not safe for concurrent use, see [Encryptor.ShallowCopy].
type Encryptor struct {
	params          Parameters
	pk              *PublicKey
	prng            sampling.PRNG
	ternarySampler  *ring.TernarySampler
	gaussianSampler *ring.GaussianSampler

	// [Delta]_{q_i} for each modulus of Q
	deltaMod []uint64

	buffInt []int64
	buffQ   [2]ring.Poly
}

// NewEncryptor creates a new [Encryptor] from the provided parameters and public key,
// drawing its randomness from prng.
func NewEncryptor(params Parameters, pk *PublicKey, prng sampling.PRNG) *Encryptor {

	if pk == nil {
		panic("cannot NewEncryptor: pk is nil")
	}

	if pk.Value[0].N() != params.N() {
		panic(fmt.Errorf("cannot NewEncryptor: pk ring degree %d does not match params ring degree %d", pk.Value[0].N(), params.N()))
	}

	ringQ := params.RingQ()

	delta := params.Delta(params.MaxLevel())
	deltaMod := make([]uint64, ringQ.ModuliChainLength())
	tmp, bq := new(big.Int), new(big.Int)
	for i, qi := range ringQ.ModuliChain() {
		deltaMod[i] = tmp.Mod(delta, bq.SetUint64(qi)).Uint64()
	}

	return &Encryptor{
		params:          params,
		pk:              pk,
		prng:            prng,
		ternarySampler:  ring.NewTernarySampler(prng),
		gaussianSampler: ring.NewGaussianSampler(prng, params.Sigma(), params.Sigma()*ring.DefaultBound),
		deltaMod:        deltaMod,
		buffInt:         make([]int64, params.N()),
		buffQ:           [2]ring.Poly{ringQ.NewPoly(), ringQ.NewPoly()},
	}
}

// ShallowCopy creates a shallow copy of the receiver in which all the read-only
// data-structures are shared with the receiver and the temporary buffers are reallocated.
// The copy draws its randomness from the same PRNG.
func (enc Encryptor) ShallowCopy() *Encryptor {
	return NewEncryptor(enc.params, enc.pk, enc.prng)
}

// Encrypt encrypts pt on ct at the maximum level: ct = (pk0*u + e1 + Delta*m, pk1*u + e2),
// with u a fresh ternary polynomial and e1, e2 fresh Gaussian errors.
// The ciphertext is resized to degree one.
func (enc Encryptor) Encrypt(pt *Plaintext, ct *Ciphertext) (err error) {

	if pt.N() != enc.params.N() {
		return fmt.Errorf("cannot Encrypt: plaintext ring degree %d does not match params ring degree %d", pt.N(), enc.params.N())
	}

	ringQ := enc.params.RingQ()

	ct.Resize(1, enc.params.MaxLevel())

	u := enc.buffQ[0]
	enc.ternarySampler.Read(enc.buffInt)
	ringQ.SetCoefficientsInt64(enc.buffInt, u)
	ringQ.NTT(u, u)

	for i := range ct.Value {
		ringQ.MulCoeffsMontgomery(u, enc.pk.Value[i], ct.Value[i])
		ringQ.INTT(ct.Value[i], ct.Value[i])

		enc.gaussianSampler.Read(enc.buffInt)
		ringQ.SetCoefficientsInt64(enc.buffInt, enc.buffQ[1])
		ringQ.Add(ct.Value[i], enc.buffQ[1], ct.Value[i])
	}

	// c0 += Delta * m, with m in [0, t) smaller than every q_i
	m := pt.Value.Coeffs[0]
	for i, s := range ringQ.SubRings {
		q, delta := s.Modulus, enc.deltaMod[i]
		c0 := ct.Value[0].Coeffs[i]
		for j := range c0 {
			c0[j] = ring.CRed(c0[j]+ring.MulMod(m[j], delta, q), q)
		}
	}

	return
}

// EncryptNew encrypts pt on a newly allocated ciphertext.
func (enc Encryptor) EncryptNew(pt *Plaintext) (ct *Ciphertext, err error) {
	ct = NewCiphertext(enc.params, 1, enc.params.MaxLevel())
	return ct, enc.Encrypt(pt, ct)
}
