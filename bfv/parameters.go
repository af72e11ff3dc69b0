package bfv

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"

	"github.com/google/go-cmp/cmp"

	"github.com/latticelab/bfvnoise/ring"
	"github.com/latticelab/bfvnoise/utils"
	"github.com/latticelab/bfvnoise/utils/bignum"
)

// MaxLogN is the log2 of the largest supported polynomial modulus degree.
const MaxLogN = 16

// MinLogN is the log2 of the smallest supported polynomial modulus degree.
const MinLogN = 12

// MaxModuliSize is the largest bit-length supported for the moduli of Q and P.
const MaxModuliSize = 61

// auxModuliSize is the bit-length of the moduli of the auxiliary basis used for the tensoring.
const auxModuliSize = 62

// ParametersLiteral is a literal representation of BFV parameters. It has public fields and
// is used to express unchecked user-defined parameters literally into Go programs.
// The [NewParametersFromLiteral] function is used to generate the actual checked parameters
// from the literal representation.
//
// Users must set the polynomial degree (LogN) and the coefficient modulus, by either setting
// the Q and P fields to the desired moduli chain, or by setting the LogQ and LogP fields to
// the desired moduli sizes. The plaintext modulus is set either with PlaintextModulus, or
// with LogT, in which case the largest NTT-friendly prime smaller than 2^LogT is used.
//
// If left unset, Sigma defaults to [ring.DefaultSigma].
type ParametersLiteral struct {
	LogN             int
	Q                []uint64 `json:",omitempty"`
	P                []uint64 `json:",omitempty"`
	LogQ             []int    `json:",omitempty"`
	LogP             []int    `json:",omitempty"`
	PlaintextModulus uint64   `json:",omitempty"`
	LogT             int      `json:",omitempty"`
	Sigma            float64  `json:",omitempty"`
}

// Parameters represents a set of BFV parameters. Its fields are private and
// immutable. See [ParametersLiteral] for user-specified parameters.
type Parameters struct {
	logN     int
	qi       []uint64
	pi       []uint64
	qMul     []uint64
	t        uint64
	sigma    float64
	ringQ    *ring.Ring
	ringP    *ring.Ring
	ringT    *ring.Ring
	ringQMul *ring.Ring
}

// NewParameters instantiates a set of BFV parameters from the given ring degree logN,
// ciphertext moduli q, key-switching modulus p, plaintext modulus t and error standard
// deviation sigma. It returns the empty parameters Parameters{} and an error wrapping
// [ErrInvalidParameters] if the specified parameters are invalid.
func NewParameters(logN int, q, p []uint64, t uint64, sigma float64) (params Parameters, err error) {

	if err = checkSizeParams(logN); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParameters: %w", err)
	}

	if err = CheckModuli(logN, q, p); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParameters: %w", err)
	}

	if err = checkPlaintextModulus(logN, q, p, t); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParameters: %w", err)
	}

	if sigma <= 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return Parameters{}, fmt.Errorf("cannot NewParameters: %w: sigma=%f must be positive", ErrInvalidParameters, sigma)
	}

	params = Parameters{
		logN:  logN,
		qi:    append([]uint64{}, q...),
		pi:    append([]uint64{}, p...),
		t:     t,
		sigma: sigma,
	}

	if err = params.initRings(); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParameters: %w", err)
	}

	// Worst case decryption correctness of a fresh ciphertext: ||t * (c0 + c1*s)||_Q < Q/2.
	if bound := params.freshNoiseBound(); new(big.Int).Lsh(bound, 1).Cmp(params.ringQ.Modulus()) >= 0 {
		return Parameters{}, fmt.Errorf("cannot NewParameters: %w: Q (%.2f bits) is too small to decrypt a fresh ciphertext (requires more than %d bits)",
			ErrInvalidParameters, params.LogQ(), bound.BitLen()+1)
	}

	return
}

// NewParametersFromLiteral instantiates a set of BFV parameters from a [ParametersLiteral].
// It returns the empty parameters Parameters{} and a non-nil error if the specified parameters are invalid.
//
// If the moduli chain is specified through the LogQ and LogP fields, the method generates a moduli chain matching
// the specified sizes (see [GenModuli]).
func NewParametersFromLiteral(pl ParametersLiteral) (params Parameters, err error) {

	if err = checkSizeParams(pl.LogN); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w", err)
	}

	// Invalid moduli configurations: do not allow empty Q and LogQ as well double-set log and non-log fields.
	switch {
	case pl.Q == nil && pl.LogQ == nil:
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: both Q and LogQ fields are empty", ErrInvalidParameters)
	case pl.Q != nil && pl.LogQ != nil:
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: both Q and LogQ fields are set", ErrInvalidParameters)
	case pl.P != nil && pl.LogP != nil:
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: both P and LogP fields are set", ErrInvalidParameters)
	case pl.PlaintextModulus == 0 && pl.LogT == 0:
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: both PlaintextModulus and LogT fields are empty", ErrInvalidParameters)
	case pl.PlaintextModulus != 0 && pl.LogT != 0:
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: both PlaintextModulus and LogT fields are set", ErrInvalidParameters)
	}

	q, p := pl.Q, pl.P

	if pl.LogQ != nil || pl.LogP != nil {

		var qGen, pGen []uint64
		if qGen, pGen, err = GenModuli(pl.LogN, pl.LogQ, pl.LogP); err != nil {
			return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w", err)
		}

		if pl.LogQ != nil {
			q = qGen
		}

		if pl.LogP != nil {
			p = pGen
		}
	}

	t := pl.PlaintextModulus
	if pl.LogT != 0 {

		if pl.LogT < 2 || pl.LogT > MaxModuliSize {
			return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: LogT=%d is not in [2, %d]", ErrInvalidParameters, pl.LogT, MaxModuliSize)
		}

		var primes []uint64
		if primes, err = ring.GenerateNTTPrimesP(pl.LogT, 2<<pl.LogN, 1); err != nil {
			return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: %w", ErrInvalidParameters, err)
		}
		t = primes[0]
	}

	sigma := pl.Sigma
	if sigma == 0 {
		sigma = ring.DefaultSigma
	}

	return NewParameters(pl.LogN, q, p, t, sigma)
}

// GenModuli generates a valid moduli chain from the provided moduli sizes.
// Primes of 61 bits are taken downward from 2^61, other sizes alternate around 2^logQi.
func GenModuli(logN int, logQ, logP []int) (q, p []uint64, err error) {

	if err = checkSizeParams(logN); err != nil {
		return
	}

	for i, qi := range logQ {
		if qi <= 0 || qi > MaxModuliSize {
			return nil, nil, fmt.Errorf("%w: logQ[%d]=%d is not in ]0, %d]", ErrInvalidParameters, i, qi, MaxModuliSize)
		}
	}

	for i, pi := range logP {
		if pi <= 0 || pi > MaxModuliSize {
			return nil, nil, fmt.Errorf("%w: logP[%d]=%d is not in ]0, %d]", ErrInvalidParameters, i, pi, MaxModuliSize)
		}
	}

	NthRoot := 2 << logN

	// Extracts all the different primes bit size and maps their number
	primesbitlen := make(map[int]int)
	for _, qi := range logQ {
		primesbitlen[qi]++
	}

	for _, pj := range logP {
		primesbitlen[pj]++
	}

	// For each bit-size, finds that many primes
	primes := make(map[int][]uint64)
	for bitsize, value := range primesbitlen {
		if bitsize == MaxModuliSize {
			primes[bitsize], err = ring.GenerateNTTPrimesP(bitsize, NthRoot, value)
		} else {
			primes[bitsize], err = ring.GenerateNTTPrimes(bitsize, NthRoot, value)
		}

		if err != nil {
			return nil, nil, fmt.Errorf("cannot GenModuli: %w: %w", ErrInvalidParameters, err)
		}
	}

	// Assigns the primes to the moduli chain
	for _, qi := range logQ {
		q = append(q, primes[qi][0])
		primes[qi] = primes[qi][1:]
	}

	for _, pj := range logP {
		p = append(p, primes[pj][0])
		primes[pj] = primes[pj][1:]
	}

	return
}

// CheckModuli checks that q and p form a valid moduli chain for the ring degree 2^logN:
// Q must be non-empty, there must be exactly one modulus P, and all moduli must be
// distinct NTT-friendly primes of at most [MaxModuliSize] bits.
func CheckModuli(logN int, q, p []uint64) error {

	if len(q) == 0 {
		return fmt.Errorf("%w: Q must contain at least one modulus", ErrInvalidParameters)
	}

	if len(p) != 1 {
		return fmt.Errorf("%w: P must contain exactly one modulus but contains %d", ErrInvalidParameters, len(p))
	}

	NthRoot := uint64(2) << logN

	check := func(name string, i int, qi uint64) error {
		if bits.Len64(qi) > MaxModuliSize {
			return fmt.Errorf("%w: %s[%d] bit-size is larger than %d", ErrInvalidParameters, name, i, MaxModuliSize)
		}
		if !ring.IsNTTFriendly(qi, NthRoot) {
			return fmt.Errorf("%w: %s[%d]=%d is not a prime equal to 1 mod 2N=%d", ErrInvalidParameters, name, i, qi, NthRoot)
		}
		return nil
	}

	for i, qi := range q {
		if err := check("Q", i, qi); err != nil {
			return err
		}
	}

	for i, pi := range p {
		if err := check("P", i, pi); err != nil {
			return err
		}
	}

	if !utils.AllDistinct(append(append([]uint64{}, q...), p...)) {
		return fmt.Errorf("%w: moduli of Q and P must be distinct", ErrInvalidParameters)
	}

	return nil
}

func checkSizeParams(logN int) error {
	if logN > MaxLogN {
		return fmt.Errorf("%w: logN=%d is larger than MaxLogN=%d", ErrInvalidParameters, logN, MaxLogN)
	}
	if logN < MinLogN {
		return fmt.Errorf("%w: logN=%d is smaller than MinLogN=%d", ErrInvalidParameters, logN, MinLogN)
	}
	return nil
}

// checkPlaintextModulus checks that t is a prime enabling batching (t = 1 mod 2N)
// and smaller than every modulus of Q and P.
func checkPlaintextModulus(logN int, q, p []uint64, t uint64) error {

	if NthRoot := uint64(2) << logN; !ring.IsNTTFriendly(t, NthRoot) {
		return fmt.Errorf("%w: plaintext modulus t=%d is not a prime equal to 1 mod 2N=%d", ErrInvalidParameters, t, NthRoot)
	}

	if t >= utils.MinSlice(q) || t >= utils.MinSlice(p) {
		return fmt.Errorf("%w: plaintext modulus t=%d must be smaller than all the moduli of Q and P", ErrInvalidParameters, t)
	}

	return nil
}

func (p *Parameters) initRings() (err error) {

	N := 1 << p.logN

	if p.ringQ, err = ring.NewRing(N, p.qi); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}

	if p.ringP, err = ring.NewRing(N, p.pi); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}

	if p.ringT, err = ring.NewRing(N, []uint64{p.t}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}

	// Auxiliary basis of len(Q)+1 moduli: at any level l, Q_l * QMul_{l+1}
	// is larger than the tensor product of two ciphertexts at level l.
	if p.qMul, err = ring.GenerateNTTPrimesP(auxModuliSize, 2*N, len(p.qi)+1); err != nil {
		return err
	}

	if p.ringQMul, err = ring.NewRing(N, p.qMul); err != nil {
		return err
	}

	return
}

// freshNoiseBound returns t * (B + t), with B = bound * (2N+1), an upper bound on
// ||[t * (c0 + c1*s)]_Q|| for a fresh encryption.
func (p Parameters) freshNoiseBound() *big.Int {
	B := new(big.Int).SetUint64(uint64(math.Floor(p.sigma*ring.DefaultBound)) * uint64(2*p.N()+1))
	T := new(big.Int).SetUint64(p.t)
	B.Add(B, T)
	return B.Mul(B, T)
}

// ParametersLiteral returns the [ParametersLiteral] of the target Parameters.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		LogN:             p.logN,
		Q:                p.Q(),
		P:                p.P(),
		PlaintextModulus: p.t,
		Sigma:            p.sigma,
	}
}

// N returns the ring degree.
func (p Parameters) N() int {
	return 1 << p.logN
}

// LogN returns the log of the degree of the polynomial ring.
func (p Parameters) LogN() int {
	return p.logN
}

// MaxSlots returns the number of plaintext slots.
func (p Parameters) MaxSlots() int {
	return p.N()
}

// Q returns a new slice with the factors of the ciphertext modulus Q.
func (p Parameters) Q() []uint64 {
	qi := make([]uint64, len(p.qi))
	copy(qi, p.qi)
	return qi
}

// P returns a new slice with the factors of the key-switching modulus P.
func (p Parameters) P() []uint64 {
	pi := make([]uint64, len(p.pi))
	copy(pi, p.pi)
	return pi
}

// QMul returns a new slice with the factors of the auxiliary modulus used by the tensoring.
func (p Parameters) QMul() []uint64 {
	qi := make([]uint64, len(p.qMul))
	copy(qi, p.qMul)
	return qi
}

// PlaintextModulus returns the plaintext coefficient modulus t.
func (p Parameters) PlaintextModulus() uint64 {
	return p.t
}

// Sigma returns the standard deviation of the error distribution.
func (p Parameters) Sigma() float64 {
	return p.sigma
}

// QCount returns the number of factors of the ciphertext modulus Q.
func (p Parameters) QCount() int {
	return len(p.qi)
}

// MaxLevel returns the maximum ciphertext level.
func (p Parameters) MaxLevel() int {
	return p.QCount() - 1
}

// RingQ returns a pointer to ring of the ciphertext modulus Q.
func (p Parameters) RingQ() *ring.Ring {
	return p.ringQ
}

// RingP returns a pointer to ring of the key-switching modulus P.
func (p Parameters) RingP() *ring.Ring {
	return p.ringP
}

// RingT returns a pointer to the plaintext ring.
func (p Parameters) RingT() *ring.Ring {
	return p.ringT
}

// RingQMul returns a pointer to the ring of the auxiliary modulus used by the tensoring.
func (p Parameters) RingQMul() *ring.Ring {
	return p.ringQMul
}

// QAtLevel returns the product of the moduli q_0...q_level.
func (p Parameters) QAtLevel(level int) *big.Int {
	return p.ringQ.AtLevel(level).Modulus()
}

// LogQ returns the size of the ciphertext modulus Q in bits.
func (p Parameters) LogQ() float64 {
	return bignum.Log2(p.ringQ.Modulus())
}

// LogQP returns the size of the extended modulus QP in bits.
func (p Parameters) LogQP() float64 {
	return bignum.Log2(new(big.Int).Mul(p.ringQ.Modulus(), p.ringP.Modulus()))
}

// Delta returns the plaintext scaling factor floor(Q_level / t).
func (p Parameters) Delta(level int) *big.Int {
	return new(big.Int).Quo(p.QAtLevel(level), new(big.Int).SetUint64(p.t))
}

// FreshNoiseBudgetBound returns a lower bound on the invariant noise budget,
// in bits, of any fresh encryption under the target parameters.
func (p Parameters) FreshNoiseBudgetBound() int {
	return budgetBits(p.freshNoiseBound(), p.ringQ.Modulus())
}

// Equal compares two sets of parameters for equality.
func (p Parameters) Equal(other *Parameters) bool {
	if other == nil {
		return false
	}
	return cmp.Equal(p.ParametersLiteral(), other.ParametersLiteral())
}
