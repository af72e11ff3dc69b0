package ring

import (
	"encoding/binary"
	"math"
	"math/bits"

	"github.com/latticelab/bfvnoise/utils/sampling"
)

// DefaultSigma is the default standard deviation of the discrete Gaussian distribution.
const DefaultSigma = 3.2

// DefaultBound is the default bound, in multiples of the standard deviation,
// at which the discrete Gaussian distribution is truncated.
const DefaultBound = 6.0

// UniformSampler samples polynomials with coefficients uniformly distributed modulo each modulus of a ring.
type UniformSampler struct {
	prng sampling.PRNG
	buff []byte
}

// NewUniformSampler creates a new UniformSampler drawing its randomness from prng.
func NewUniformSampler(prng sampling.PRNG) *UniformSampler {
	return &UniformSampler{prng: prng, buff: make([]byte, 8)}
}

// Read samples a new polynomial on pol, uniformly modulo each modulus of r up to its level.
func (us *UniformSampler) Read(r *Ring, pol Poly) {
	for i, s := range r.SubRings[:r.Level()+1] {

		q := s.Modulus
		mask := uint64(1)<<bits.Len64(q-1) - 1

		coeffs := pol.Coeffs[i]
		for j := range coeffs {
			for {
				if _, err := us.prng.Read(us.buff); err != nil {
					// Sanity check, this error should not happen.
					panic(err)
				}

				x := binary.LittleEndian.Uint64(us.buff)

				// Rejection sampling on the masked value keeps the distribution uniform.
				if x &= mask; x < q {
					coeffs[j] = x
					break
				}
			}
		}
	}
}

// ReadNew samples a new polynomial at the level of r.
func (us *UniformSampler) ReadNew(r *Ring) (pol Poly) {
	pol = r.NewPoly()
	us.Read(r, pol)
	return
}

// TernarySampler samples signed coefficients uniformly in {-1, 0, 1}.
type TernarySampler struct {
	prng sampling.PRNG
	buff []byte
}

// NewTernarySampler creates a new TernarySampler drawing its randomness from prng.
func NewTernarySampler(prng sampling.PRNG) *TernarySampler {
	return &TernarySampler{prng: prng}
}

// Read samples len(coeffs) coefficients uniformly in {-1, 0, 1}.
func (ts *TernarySampler) Read(coeffs []int64) {

	if len(ts.buff) < len(coeffs) {
		ts.buff = make([]byte, len(coeffs))
	}

	buff := ts.buff[:len(coeffs)]

	if _, err := ts.prng.Read(buff); err != nil {
		panic(err)
	}

	one := []byte{0}

	for j, b := range buff {

		// 255 = 3 * 85, rejecting the last byte value removes the modulo bias.
		for b == 255 {
			if _, err := ts.prng.Read(one); err != nil {
				panic(err)
			}
			b = one[0]
		}

		coeffs[j] = int64(b%3) - 1
	}
}

// GaussianSampler samples signed coefficients from a rounded Gaussian
// distribution truncated at Bound.
type GaussianSampler struct {
	prng  sampling.PRNG
	Sigma float64
	Bound float64
}

// NewGaussianSampler creates a new GaussianSampler with standard deviation sigma,
// truncated at bound, drawing its randomness from prng.
func NewGaussianSampler(prng sampling.PRNG, sigma, bound float64) *GaussianSampler {
	return &GaussianSampler{prng: prng, Sigma: sigma, Bound: bound}
}

// Read samples len(coeffs) coefficients.
func (gs *GaussianSampler) Read(coeffs []int64) {
	for j := range coeffs {
		for {
			if x := math.Round(gs.Sigma * sampling.ReadNormFloat64(gs.prng)); math.Abs(x) <= gs.Bound {
				coeffs[j] = int64(x)
				break
			}
		}
	}
}
