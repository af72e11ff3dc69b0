package bfv

import (
	"fmt"
	"math/big"

	"github.com/latticelab/bfvnoise/ring"
	"github.com/latticelab/bfvnoise/utils"
	"github.com/latticelab/bfvnoise/utils/bignum"
)

// Evaluator is a struct that holds the necessary elements to perform the homomorphic operations between ciphertexts.
// An Evaluator is not safe for concurrent use, see [Evaluator.ShallowCopy].
type Evaluator struct {
	params Parameters
	rlk    *RelinearizationKey

	// CRT bases Q_level * QMul_{level+1} used to reconstruct the tensor product exactly.
	tensorBasis []*ring.CRTBasis

	*evaluatorBuffers
}

type evaluatorBuffers struct {
	buffQ      [4]ring.Poly
	buffQMul   [5]ring.Poly
	buffDeg2   *Ciphertext
	buffKsQ    [2]ring.Poly
	buffKsP    [2]ring.Poly
	buffDigitQ ring.Poly
	buffDigitP ring.Poly
	buffBig    []*big.Int
}

func newEvaluatorBuffers(params Parameters) *evaluatorBuffers {

	ringQ, ringP, ringQMul := params.RingQ(), params.RingP(), params.RingQMul()

	buff := &evaluatorBuffers{
		buffDeg2:   NewCiphertext(params, 2, params.MaxLevel()),
		buffKsQ:    [2]ring.Poly{ringQ.NewPoly(), ringQ.NewPoly()},
		buffKsP:    [2]ring.Poly{ringP.NewPoly(), ringP.NewPoly()},
		buffDigitQ: ringQ.NewPoly(),
		buffDigitP: ringP.NewPoly(),
		buffBig:    ring.NewBigintSlice(params.N()),
	}

	for i := range buff.buffQ {
		buff.buffQ[i] = ringQ.NewPoly()
	}

	for i := range buff.buffQMul {
		buff.buffQMul[i] = ringQMul.NewPoly()
	}

	return buff
}

// NewEvaluator creates a new [Evaluator] from the provided parameters and relinearization key.
// The relinearization key is only required by [Evaluator.Mul] and can be nil otherwise.
func NewEvaluator(params Parameters, rlk *RelinearizationKey) *Evaluator {

	if rlk != nil && rlk.DecompositionCount() != params.QCount() {
		panic(fmt.Errorf("cannot NewEvaluator: rlk has %d digits but params has %d moduli", rlk.DecompositionCount(), params.QCount()))
	}

	Q, QMul := params.Q(), params.QMul()

	tensorBasis := make([]*ring.CRTBasis, params.QCount())
	for level := range tensorBasis {
		tensorBasis[level] = ring.NewCRTBasis(append(append([]uint64{}, Q[:level+1]...), QMul[:level+2]...))
	}

	return &Evaluator{
		params:           params,
		rlk:              rlk,
		tensorBasis:      tensorBasis,
		evaluatorBuffers: newEvaluatorBuffers(params),
	}
}

// ShallowCopy creates a shallow copy of the receiver in which all the read-only
// data-structures are shared with the receiver and the temporary buffers are reallocated.
func (eval Evaluator) ShallowCopy() *Evaluator {
	return &Evaluator{
		params:           eval.params,
		rlk:              eval.rlk,
		tensorBasis:      eval.tensorBasis,
		evaluatorBuffers: newEvaluatorBuffers(eval.params),
	}
}

// Parameters returns the parameters of the receiver.
func (eval Evaluator) Parameters() Parameters {
	return eval.params
}

func checkLevels(opname string, op0, op1 *Ciphertext) error {
	if op0.Level() != op1.Level() {
		return fmt.Errorf("cannot %s: %w: op0.Level()=%d != op1.Level()=%d", opname, ErrLevelMismatch, op0.Level(), op1.Level())
	}
	return nil
}

// Add adds op0 to op1 and writes the result on opOut.
// The operands must be at the same level, the result is of degree max(op0.Degree(), op1.Degree()).
func (eval Evaluator) Add(op0, op1, opOut *Ciphertext) (err error) {
	if err = checkLevels("Add", op0, op1); err != nil {
		return
	}
	level := op0.Level()
	eval.evaluateInPlace(level, op0, op1, opOut, eval.params.RingQ().AtLevel(level).Add, false)
	return
}

// AddNew adds op0 to op1 and returns the result on a newly allocated ciphertext.
func (eval Evaluator) AddNew(op0, op1 *Ciphertext) (opOut *Ciphertext, err error) {
	opOut = NewCiphertext(eval.params, utils.Max(op0.Degree(), op1.Degree()), op0.Level())
	return opOut, eval.Add(op0, op1, opOut)
}

// Sub subtracts op1 from op0 and writes the result on opOut.
// The operands must be at the same level, the result is of degree max(op0.Degree(), op1.Degree()).
func (eval Evaluator) Sub(op0, op1, opOut *Ciphertext) (err error) {
	if err = checkLevels("Sub", op0, op1); err != nil {
		return
	}
	level := op0.Level()
	eval.evaluateInPlace(level, op0, op1, opOut, eval.params.RingQ().AtLevel(level).Sub, true)
	return
}

// SubNew subtracts op1 from op0 and returns the result on a newly allocated ciphertext.
func (eval Evaluator) SubNew(op0, op1 *Ciphertext) (opOut *Ciphertext, err error) {
	opOut = NewCiphertext(eval.params, utils.Max(op0.Degree(), op1.Degree()), op0.Level())
	return opOut, eval.Sub(op0, op1, opOut)
}

// Neg negates op0 and writes the result on opOut.
func (eval Evaluator) Neg(op0, opOut *Ciphertext) {
	level := op0.Level()
	ringQ := eval.params.RingQ().AtLevel(level)
	opOut.Resize(op0.Degree(), level)
	for i := range op0.Value {
		ringQ.Neg(op0.Value[i], opOut.Value[i])
	}
}

// evaluateInPlace applies evaluate component-wise on op0 and op1. Components present in only
// one of the operands are copied, or negated when they come from op1 and negate is set.
func (eval Evaluator) evaluateInPlace(level int, op0, op1, opOut *Ciphertext, evaluate func(p0, p1, pOut ring.Poly), negate bool) {

	ringQ := eval.params.RingQ().AtLevel(level)

	degree0, degree1 := op0.Degree(), op1.Degree()

	opOut.Resize(utils.Max(degree0, degree1), level)

	for i := range opOut.Value {
		switch {
		case i <= degree0 && i <= degree1:
			evaluate(op0.Value[i], op1.Value[i], opOut.Value[i])
		case i <= degree0:
			opOut.Value[i].CopyLvl(level, op0.Value[i])
		case negate:
			ringQ.Neg(op1.Value[i], opOut.Value[i])
		default:
			opOut.Value[i].CopyLvl(level, op1.Value[i])
		}
	}
}

// Mul multiplies op0 by op1 and writes the relinearized result on opOut:
//
//	opOut = Relinearize(round(t/Q * (op0 x op1)))
//
// The tensor product is computed exactly over the extended basis Q_level * QMul_{level+1}
// before the scaling by t/Q. The operands must be of degree one and at the same level,
// and the receiver must have been created with a [RelinearizationKey].
// opOut can alias op0 or op1.
func (eval Evaluator) Mul(op0, op1, opOut *Ciphertext) (err error) {

	if err = checkLevels("Mul", op0, op1); err != nil {
		return
	}

	if op0.Degree() != 1 || op1.Degree() != 1 {
		return fmt.Errorf("cannot Mul: operands must be of degree 1 but are of degree %d and %d", op0.Degree(), op1.Degree())
	}

	if eval.rlk == nil {
		return fmt.Errorf("cannot Mul: relinearization key is nil")
	}

	level := op0.Level()

	eval.tensor(level, op0, op1, eval.buffDeg2)

	opOut.Resize(1, level)

	eval.relinearize(level, eval.buffDeg2, opOut)

	return
}

// MulNew multiplies op0 by op1 and returns the relinearized result on a newly allocated ciphertext.
func (eval Evaluator) MulNew(op0, op1 *Ciphertext) (opOut *Ciphertext, err error) {
	opOut = NewCiphertext(eval.params, 1, op0.Level())
	return opOut, eval.Mul(op0, op1, opOut)
}

// tensor evaluates ct2 = round(t/Q * (c0 + c1*Y) * (d0 + d1*Y)) mod Q, at the given level.
func (eval Evaluator) tensor(level int, op0, op1, ct2 *Ciphertext) {

	ringQ := eval.params.RingQ().AtLevel(level)
	ringQMul := eval.params.RingQMul().AtLevel(level + 1)

	a0, a1, b0, b1 := eval.buffQ[0], eval.buffQ[1], eval.buffQ[2], eval.buffQ[3]
	a0M, a1M, b0M, b1M, c1M := eval.buffQMul[0], eval.buffQMul[1], eval.buffQMul[2], eval.buffQMul[3], eval.buffQMul[4]

	// Lifts the centered representatives of the operands to QMul
	for i, pair := range [][2]ring.Poly{{op0.Value[0], a0M}, {op0.Value[1], a1M}, {op1.Value[0], b0M}, {op1.Value[1], b1M}} {
		ringQ.NTT(pair[0], eval.buffQ[i])
		ringQ.PolyToBigintCentered(pair[0], eval.buffBig)
		ringQMul.SetCoefficientsBigint(eval.buffBig, pair[1])
		ringQMul.NTT(pair[1], pair[1])
	}

	ringQ.MForm(b0, b0)
	ringQ.MForm(b1, b1)
	ringQMul.MForm(b0M, b0M)
	ringQMul.MForm(b1M, b1M)

	// (c0, c1, c2) = (a0*b0, a0*b1 + a1*b0, a1*b1)
	ringQ.MulCoeffsMontgomery(a0, b0, ct2.Value[0])
	ringQ.MulCoeffsMontgomery(a0, b1, ct2.Value[1])
	ringQ.MulCoeffsMontgomeryThenAdd(a1, b0, ct2.Value[1])
	ringQ.MulCoeffsMontgomery(a1, b1, ct2.Value[2])

	ringQMul.MulCoeffsMontgomery(a0M, b1M, c1M)
	ringQMul.MulCoeffsMontgomeryThenAdd(a1M, b0M, c1M)
	ringQMul.MulCoeffsMontgomery(a0M, b0M, a0M)
	ringQMul.MulCoeffsMontgomery(a1M, b1M, a1M)

	basis := eval.tensorBasis[level]
	Q := ringQ.Modulus()
	T := new(big.Int).SetUint64(eval.params.PlaintextModulus())
	residues := make([]uint64, level+1+level+2)

	for i, pM := range []ring.Poly{a0M, c1M, a1M} {

		pQ := ct2.Value[i]

		ringQ.INTT(pQ, pQ)
		ringQMul.INTT(pM, pM)

		for j, c := range eval.buffBig {

			for k := 0; k < level+1; k++ {
				residues[k] = pQ.Coeffs[k][j]
			}

			for k := 0; k < level+2; k++ {
				residues[level+1+k] = pM.Coeffs[k][j]
			}

			basis.ReconstructCentered(residues, c)
			c.Mul(c, T)
			bignum.DivRound(c, Q, c)
		}

		ringQ.SetCoefficientsBigint(eval.buffBig, pQ)
	}
}

// relinearize switches the degree two component of ct2 from s^2 to s with the
// relinearization key and writes the degree one result on ctOut:
//
//	ctOut = (c0, c1) + round(sum_i [c2]_{q_i} * rlk_i / P)
func (eval Evaluator) relinearize(level int, ct2, ctOut *Ciphertext) {

	ringQ := eval.params.RingQ().AtLevel(level)
	ringP := eval.params.RingP()

	c2 := ct2.Value[2]
	digitQ, digitP := eval.buffDigitQ, eval.buffDigitP
	accQ, accP := eval.buffKsQ, eval.buffKsP

	for i := 0; i < level+1; i++ {

		digit := c2.Coeffs[i]

		// Reduces the i-th RNS digit modulo every q_j and P
		for j, s := range ringQ.SubRings[:level+1] {
			q, dst := s.Modulus, digitQ.Coeffs[j]
			for k := range dst {
				dst[k] = digit[k] % q
			}
		}

		p, dst := ringP.SubRings[0].Modulus, digitP.Coeffs[0]
		for k := range dst {
			dst[k] = digit[k] % p
		}

		ringQ.NTT(digitQ, digitQ)
		ringP.NTT(digitP, digitP)

		for k := range accQ {
			if i == 0 {
				ringQ.MulCoeffsMontgomery(digitQ, eval.rlk.Value[i][k].Q, accQ[k])
				ringP.MulCoeffsMontgomery(digitP, eval.rlk.Value[i][k].P, accP[k])
			} else {
				ringQ.MulCoeffsMontgomeryThenAdd(digitQ, eval.rlk.Value[i][k].Q, accQ[k])
				ringP.MulCoeffsMontgomeryThenAdd(digitP, eval.rlk.Value[i][k].P, accP[k])
			}
		}
	}

	for k := range accQ {
		ringQ.INTT(accQ[k], accQ[k])
		ringP.INTT(accP[k], accP[k])
		ringQ.DivRoundByModulus(accQ[k], ringP.SubRings[0], accP[k].Coeffs[0], accQ[k])
		ringQ.Add(ct2.Value[k], accQ[k], ctOut.Value[k])
	}
}

// ModSwitchToNext divides ctIn by the last modulus of its chain, rounds the result and writes it on ctOut,
// which is then one level lower than ctIn. ctOut can alias ctIn, in which case the operation is done in place.
// It returns an error wrapping [ErrChainExhausted] if ctIn is at level 0.
func (eval Evaluator) ModSwitchToNext(ctIn, ctOut *Ciphertext) (err error) {

	level := ctIn.Level()

	if level == 0 {
		return fmt.Errorf("cannot ModSwitchToNext: %w", ErrChainExhausted)
	}

	ringQ := eval.params.RingQ().AtLevel(level)

	if ctIn != ctOut {
		ctOut.Resize(ctIn.Degree(), level-1)
	}

	for i := range ctIn.Value {
		ringQ.DivRoundByLastModulus(ctIn.Value[i], ctOut.Value[i])
	}

	if ctIn == ctOut {
		ctOut.Resize(ctOut.Degree(), level-1)
	}

	return
}

// ModSwitchToNextNew divides ctIn by the last modulus of its chain, rounds the result
// and returns it on a newly allocated ciphertext one level lower than ctIn.
func (eval Evaluator) ModSwitchToNextNew(ctIn *Ciphertext) (ctOut *Ciphertext, err error) {

	if ctIn.Level() == 0 {
		return nil, fmt.Errorf("cannot ModSwitchToNextNew: %w", ErrChainExhausted)
	}

	ctOut = NewCiphertext(eval.params, ctIn.Degree(), ctIn.Level()-1)
	return ctOut, eval.ModSwitchToNext(ctIn, ctOut)
}

// ModSwitchTo switches ctIn down to the given level and writes the result on ctOut.
// ctOut can alias ctIn. It returns an error wrapping [ErrChainExhausted] if level is negative,
// and an error wrapping [ErrLevelMismatch] if level is larger than the level of ctIn.
func (eval Evaluator) ModSwitchTo(ctIn *Ciphertext, level int, ctOut *Ciphertext) (err error) {

	if level < 0 {
		return fmt.Errorf("cannot ModSwitchTo: %w: level=%d", ErrChainExhausted, level)
	}

	if level > ctIn.Level() {
		return fmt.Errorf("cannot ModSwitchTo: %w: level=%d > ctIn.Level()=%d", ErrLevelMismatch, level, ctIn.Level())
	}

	ctOut.Copy(ctIn)

	for ctOut.Level() > level {
		if err = eval.ModSwitchToNext(ctOut, ctOut); err != nil {
			return
		}
	}

	return
}
