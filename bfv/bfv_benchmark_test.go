package bfv

import (
	"encoding/json"
	"testing"
)

func BenchmarkBFV(b *testing.B) {

	var err error

	paramsLiterals := TestParams

	if *flagParamString != "" {
		var jsonParams ParametersLiteral
		if err = json.Unmarshal([]byte(*flagParamString), &jsonParams); err != nil {
			b.Fatal(err)
		}
		paramsLiterals = []ParametersLiteral{jsonParams}
	}

	for _, p := range paramsLiterals {

		if p.PlaintextModulus == 0 && p.LogT == 0 {
			p.PlaintextModulus = TestPlaintextModulus[0]
		}

		var tc *testContext
		if tc, err = newTestContext(p); err != nil {
			b.Fatal(err)
		}

		benchKeyGenerator(tc, b)
		benchEncryptor(tc, b)
		benchEvaluator(tc, b)
	}
}

func benchKeyGenerator(tc *testContext, b *testing.B) {

	kgen := tc.kgen

	b.Run(name("KeyGenerator/GenSecretKey", tc, tc.params.MaxLevel()), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			kgen.GenSecretKeyNew()
		}
	})

	b.Run(name("KeyGenerator/GenPublicKey", tc, tc.params.MaxLevel()), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			kgen.GenPublicKeyNew(tc.sk)
		}
	})

	b.Run(name("KeyGenerator/GenRelinearizationKey", tc, tc.params.MaxLevel()), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			kgen.GenRelinearizationKeyNew(tc.sk)
		}
	})
}

func benchEncryptor(tc *testContext, b *testing.B) {

	pt := NewPlaintext(tc.params)
	if err := tc.ecd.Encode(tc.sampler.ReadNew(tc.params.RingT()).Coeffs[0], pt); err != nil {
		b.Fatal(err)
	}

	ct := NewCiphertext(tc.params, 1, tc.params.MaxLevel())

	b.Run(name("Encryptor/Encrypt", tc, ct.Level()), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if err := tc.enc.Encrypt(pt, ct); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run(name("Decryptor/Decrypt", tc, ct.Level()), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			tc.dec.Decrypt(ct, pt)
		}
	})

	b.Run(name("Decryptor/NoiseBudget", tc, ct.Level()), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			tc.dec.NoiseBudget(ct)
		}
	})
}

func benchEvaluator(tc *testContext, b *testing.B) {

	params := tc.params
	level := params.MaxLevel()

	pt := NewPlaintext(params)
	if err := tc.ecd.Encode(tc.sampler.ReadNew(params.RingT()).Coeffs[0], pt); err != nil {
		b.Fatal(err)
	}

	ct0, err := tc.enc.EncryptNew(pt)
	if err != nil {
		b.Fatal(err)
	}

	ct1, err := tc.enc.EncryptNew(pt)
	if err != nil {
		b.Fatal(err)
	}

	ctOut := NewCiphertext(params, 1, level)

	b.Run(name("Evaluator/Add", tc, level), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if err := tc.eval.Add(ct0, ct1, ctOut); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run(name("Evaluator/Mul", tc, level), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if err := tc.eval.Mul(ct0, ct1, ctOut); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run(name("Evaluator/ModSwitchToNext", tc, level), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if err := tc.eval.ModSwitchToNext(ct0, ctOut); err != nil {
				b.Fatal(err)
			}
		}
	})
}
