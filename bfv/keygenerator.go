package bfv

import (
	"math/big"

	"github.com/latticelab/bfvnoise/ring"
	"github.com/latticelab/bfvnoise/utils/sampling"
)

// KeyGenerator is a structure that stores the elements required to create new keys.
// A KeyGenerator is not safe for concurrent use.
type KeyGenerator struct {
	params          Parameters
	uniformSampler  *ring.UniformSampler
	ternarySampler  *ring.TernarySampler
	gaussianSampler *ring.GaussianSampler
	buffInt         []int64
	buffQ           ring.Poly
	buffP           ring.Poly
}

// NewKeyGenerator creates a new KeyGenerator drawing its randomness from prng.
func NewKeyGenerator(params Parameters, prng sampling.PRNG) *KeyGenerator {
	return &KeyGenerator{
		params:          params,
		uniformSampler:  ring.NewUniformSampler(prng),
		ternarySampler:  ring.NewTernarySampler(prng),
		gaussianSampler: ring.NewGaussianSampler(prng, params.Sigma(), params.Sigma()*ring.DefaultBound),
		buffInt:         make([]int64, params.N()),
		buffQ:           params.RingQ().NewPoly(),
		buffP:           params.RingP().NewPoly(),
	}
}

// GenKeysNew generates a new secret key, with its public key and relinearization key.
func (kgen KeyGenerator) GenKeysNew() (sk *SecretKey, pk *PublicKey, rlk *RelinearizationKey) {
	sk, pk = kgen.GenKeyPairNew()
	return sk, pk, kgen.GenRelinearizationKeyNew(sk)
}

// GenKeyPairNew generates a new secret key and its public key.
func (kgen KeyGenerator) GenKeyPairNew() (sk *SecretKey, pk *PublicKey) {
	sk = kgen.GenSecretKeyNew()
	return sk, kgen.GenPublicKeyNew(sk)
}

// GenSecretKeyNew generates a new [SecretKey] with coefficients uniformly distributed in {-1, 0, 1}.
func (kgen KeyGenerator) GenSecretKeyNew() (sk *SecretKey) {

	sk = NewSecretKey(kgen.params)

	kgen.ternarySampler.Read(kgen.buffInt)

	ringQ, ringP := kgen.params.RingQ(), kgen.params.RingP()

	ringQ.SetCoefficientsInt64(kgen.buffInt, sk.Value.Q)
	ringQ.NTT(sk.Value.Q, sk.Value.Q)
	ringQ.MForm(sk.Value.Q, sk.Value.Q)

	ringP.SetCoefficientsInt64(kgen.buffInt, sk.Value.P)
	ringP.NTT(sk.Value.P, sk.Value.P)
	ringP.MForm(sk.Value.P, sk.Value.P)

	return
}

// GenPublicKeyNew generates a new [PublicKey] (-(a*s + e), a) from the provided [SecretKey].
func (kgen KeyGenerator) GenPublicKeyNew(sk *SecretKey) (pk *PublicKey) {

	if sk == nil {
		panic("cannot GenPublicKeyNew: sk is nil")
	}

	pk = NewPublicKey(kgen.params)

	ringQ := kgen.params.RingQ()

	// a is sampled directly in the NTT domain
	kgen.uniformSampler.Read(ringQ, pk.Value[1])

	// pk0 = -(a*s + e)
	kgen.readErrorNTT(ringQ, kgen.buffQ)
	ringQ.MulCoeffsMontgomeryThenAdd(pk.Value[1], sk.Value.Q, kgen.buffQ)
	ringQ.Neg(kgen.buffQ, pk.Value[0])

	ringQ.MForm(pk.Value[0], pk.Value[0])
	ringQ.MForm(pk.Value[1], pk.Value[1])

	return
}

// GenRelinearizationKeyNew generates a new [RelinearizationKey] for s^2 from the provided [SecretKey].
func (kgen KeyGenerator) GenRelinearizationKeyNew(sk *SecretKey) (rlk *RelinearizationKey) {

	if sk == nil {
		panic("cannot GenRelinearizationKeyNew: sk is nil")
	}

	params := kgen.params
	ringQ, ringP := params.RingQ(), params.RingP()

	rlk = NewRelinearizationKey(params)

	// s^2 in the NTT domain, out of the Montgomery domain
	s2 := ringQ.NewPoly()
	ringQ.MulCoeffsMontgomery(sk.Value.Q, sk.Value.Q, s2)
	ringQ.IMForm(s2, s2)

	PInt := ringP.Modulus()

	for i, s := range ringQ.SubRings {

		b, a := rlk.Value[i][0], rlk.Value[i][1]

		kgen.uniformSampler.Read(ringQ, a.Q)
		kgen.uniformSampler.Read(ringP, a.P)

		// e - a*s mod Q and P, with the same e
		kgen.readErrorQP(b)
		ringQ.MulCoeffsMontgomery(a.Q, sk.Value.Q, kgen.buffQ)
		ringQ.Sub(b.Q, kgen.buffQ, b.Q)
		ringP.MulCoeffsMontgomery(a.P, sk.Value.P, kgen.buffP)
		ringP.Sub(b.P, kgen.buffP, b.P)

		// + P * g_i * s^2, which is [P]_{q_i} * s^2 mod q_i and zero elsewhere
		q := s.Modulus
		PModq := ring.MForm(new(big.Int).Mod(PInt, new(big.Int).SetUint64(q)).Uint64(), q)
		btmp, s2tmp := b.Q.Coeffs[i], s2.Coeffs[i]
		for j := range btmp {
			btmp[j] = ring.CRed(btmp[j]+ring.MRed(s2tmp[j], PModq, q, s.MRedConstant), q)
		}

		ringQ.MForm(b.Q, b.Q)
		ringQ.MForm(a.Q, a.Q)
		ringP.MForm(b.P, b.P)
		ringP.MForm(a.P, a.P)
	}

	return
}

// readErrorNTT samples a new error polynomial on pol, in the NTT domain.
func (kgen KeyGenerator) readErrorNTT(r *ring.Ring, pol ring.Poly) {
	kgen.gaussianSampler.Read(kgen.buffInt)
	r.SetCoefficientsInt64(kgen.buffInt, pol)
	r.NTT(pol, pol)
}

// readErrorQP samples a new error polynomial on p, in the NTT domain,
// with the same coefficients modulo Q and P.
func (kgen KeyGenerator) readErrorQP(p PolyQP) {
	kgen.gaussianSampler.Read(kgen.buffInt)
	kgen.params.RingQ().SetCoefficientsInt64(kgen.buffInt, p.Q)
	kgen.params.RingQ().NTT(p.Q, p.Q)
	kgen.params.RingP().SetCoefficientsInt64(kgen.buffInt, p.P)
	kgen.params.RingP().NTT(p.P, p.P)
}
