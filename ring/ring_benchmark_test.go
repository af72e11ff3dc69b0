package ring

import (
	"testing"
)

func BenchmarkRing(b *testing.B) {

	var err error

	for _, defaultParams := range testParameters {

		var tc *testParams
		if tc, err = genTestParams(defaultParams); err != nil {
			b.Fatal(err)
		}

		benchGenRing(tc, b)
		benchSampling(tc, b)
		benchMontgomery(tc, b)
		benchNTT(tc, b)
		benchMulCoeffs(tc, b)
		benchAddCoeffs(tc, b)
		benchDivRoundByLastModulus(tc, b)
	}
}

func benchGenRing(tc *testParams, b *testing.B) {
	b.Run(testString("GenRing", tc.ringQ), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := NewRing(tc.ringQ.N(), tc.ringQ.ModuliChain()); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func benchSampling(tc *testParams, b *testing.B) {

	pol := tc.ringQ.NewPoly()

	b.Run(testString("Sampling/Uniform", tc.ringQ), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			tc.uniformSampler.Read(tc.ringQ, pol)
		}
	})

	coeffs := make([]int64, tc.ringQ.N())

	b.Run(testString("Sampling/Ternary", tc.ringQ), func(b *testing.B) {
		ts := NewTernarySampler(tc.prng)
		for i := 0; i < b.N; i++ {
			ts.Read(coeffs)
		}
	})

	b.Run(testString("Sampling/Gaussian", tc.ringQ), func(b *testing.B) {
		gs := NewGaussianSampler(tc.prng, DefaultSigma, DefaultSigma*DefaultBound)
		for i := 0; i < b.N; i++ {
			gs.Read(coeffs)
		}
	})
}

func benchMontgomery(tc *testParams, b *testing.B) {

	pol := tc.uniformSampler.ReadNew(tc.ringQ)

	b.Run(testString("Montgomery/MForm", tc.ringQ), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			tc.ringQ.MForm(pol, pol)
		}
	})

	b.Run(testString("Montgomery/IMForm", tc.ringQ), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			tc.ringQ.IMForm(pol, pol)
		}
	})
}

func benchNTT(tc *testParams, b *testing.B) {

	pol := tc.uniformSampler.ReadNew(tc.ringQ)

	b.Run(testString("NTT/Forward", tc.ringQ), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			tc.ringQ.NTT(pol, pol)
		}
	})

	b.Run(testString("NTT/Backward", tc.ringQ), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			tc.ringQ.INTT(pol, pol)
		}
	})
}

func benchMulCoeffs(tc *testParams, b *testing.B) {

	p0 := tc.uniformSampler.ReadNew(tc.ringQ)
	p1 := tc.uniformSampler.ReadNew(tc.ringQ)

	b.Run(testString("MulCoeffs/Montgomery", tc.ringQ), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			tc.ringQ.MulCoeffsMontgomery(p0, p1, p0)
		}
	})

	b.Run(testString("MulCoeffs/MontgomeryThenAdd", tc.ringQ), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			tc.ringQ.MulCoeffsMontgomeryThenAdd(p0, p1, p0)
		}
	})

	b.Run(testString("MulScalar", tc.ringQ), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			tc.ringQ.MulScalar(p0, 1032193, p0)
		}
	})
}

func benchAddCoeffs(tc *testParams, b *testing.B) {

	p0 := tc.uniformSampler.ReadNew(tc.ringQ)
	p1 := tc.uniformSampler.ReadNew(tc.ringQ)

	b.Run(testString("Add", tc.ringQ), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			tc.ringQ.Add(p0, p1, p0)
		}
	})

	b.Run(testString("Sub", tc.ringQ), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			tc.ringQ.Sub(p0, p1, p0)
		}
	})

	b.Run(testString("Neg", tc.ringQ), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			tc.ringQ.Neg(p0, p0)
		}
	})
}

func benchDivRoundByLastModulus(tc *testParams, b *testing.B) {

	if tc.ringQ.Level() == 0 {
		return
	}

	p0 := tc.uniformSampler.ReadNew(tc.ringQ)
	p1 := tc.ringQ.AtLevel(tc.ringQ.Level() - 1).NewPoly()

	b.Run(testString("DivRoundByLastModulus", tc.ringQ), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			tc.ringQ.DivRoundByLastModulus(p0, p1)
		}
	})
}
