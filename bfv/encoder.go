package bfv

import (
	"fmt"

	"github.com/latticelab/bfvnoise/ring"
)

// Encoder is a type that implements the batching encoding of vectors of integers
// modulo t into plaintexts.
//
// The slots are the evaluations of the plaintext polynomial at the 2N-th primitive
// roots of unity modulo t, in bit-reversed order, so that the addition and the
// multiplication of plaintexts act slot-wise on the encoded vectors.
type Encoder struct {
	params Parameters
	buffT  ring.Poly
}

// NewEncoder creates a new [Encoder] from the provided parameters.
func NewEncoder(params Parameters) *Encoder {
	return &Encoder{
		params: params,
		buffT:  params.RingT().NewPoly(),
	}
}

// ShallowCopy creates a shallow copy of the receiver in which all the read-only
// data-structures are shared with the receiver and the temporary buffers are reallocated.
func (ecd Encoder) ShallowCopy() *Encoder {
	return NewEncoder(ecd.params)
}

// Encode encodes a slice of integers in [0, t) on pt. Slots not covered by values are set to zero.
// It returns an error wrapping [ErrEncodingOverflow] if len(values) exceeds the number of slots
// or if a value is not smaller than t.
func (ecd Encoder) Encode(values []uint64, pt *Plaintext) (err error) {

	if len(values) > ecd.params.MaxSlots() {
		return fmt.Errorf("cannot Encode: %w: len(values)=%d > slots=%d", ErrEncodingOverflow, len(values), ecd.params.MaxSlots())
	}

	t := ecd.params.PlaintextModulus()

	slots := ecd.buffT.Coeffs[0]
	for i, v := range values {
		if v >= t {
			return fmt.Errorf("cannot Encode: %w: values[%d]=%d >= t=%d", ErrEncodingOverflow, i, v, t)
		}
		slots[i] = v
	}

	for i := len(values); i < len(slots); i++ {
		slots[i] = 0
	}

	ecd.params.RingT().INTT(ecd.buffT, pt.Value)

	return
}

// EncodeInt encodes a slice of signed integers in [-(t-1)/2, (t-1)/2] on pt.
// Slots not covered by values are set to zero.
// It returns an error wrapping [ErrEncodingOverflow] if len(values) exceeds the number of slots
// or if a value is out of range.
func (ecd Encoder) EncodeInt(values []int64, pt *Plaintext) (err error) {

	if len(values) > ecd.params.MaxSlots() {
		return fmt.Errorf("cannot EncodeInt: %w: len(values)=%d > slots=%d", ErrEncodingOverflow, len(values), ecd.params.MaxSlots())
	}

	t := ecd.params.PlaintextModulus()
	bound := int64(t-1) >> 1

	slots := ecd.buffT.Coeffs[0]
	for i, v := range values {

		if v > bound || v < -bound {
			return fmt.Errorf("cannot EncodeInt: %w: |values[%d]|=%d > (t-1)/2=%d", ErrEncodingOverflow, i, v, bound)
		}

		if v < 0 {
			slots[i] = t - uint64(-v)
		} else {
			slots[i] = uint64(v)
		}
	}

	for i := len(values); i < len(slots); i++ {
		slots[i] = 0
	}

	ecd.params.RingT().INTT(ecd.buffT, pt.Value)

	return
}

// EncodeNew encodes a slice of integers in [0, t) on a newly allocated plaintext.
func (ecd Encoder) EncodeNew(values []uint64) (pt *Plaintext, err error) {
	pt = NewPlaintext(ecd.params)
	return pt, ecd.Encode(values, pt)
}

// Decode decodes pt on values, with each slot in [0, t).
// values must be of length at most the number of slots.
func (ecd Encoder) Decode(pt *Plaintext, values []uint64) {
	ecd.params.RingT().NTT(pt.Value, ecd.buffT)
	copy(values, ecd.buffT.Coeffs[0])
}

// DecodeInt decodes pt on values, with each slot centered in [-(t-1)/2, (t-1)/2].
// values must be of length at most the number of slots.
func (ecd Encoder) DecodeInt(pt *Plaintext, values []int64) {

	ecd.params.RingT().NTT(pt.Value, ecd.buffT)

	t := ecd.params.PlaintextModulus()
	thalf := t >> 1

	for i, v := range ecd.buffT.Coeffs[0][:len(values)] {
		if v > thalf {
			values[i] = -int64(t - v)
		} else {
			values[i] = int64(v)
		}
	}
}
