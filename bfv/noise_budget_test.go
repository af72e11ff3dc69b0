package bfv

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticelab/bfvnoise/utils/sampling"
)

func encryptConstant(t *testing.T, params Parameters, ecd *Encoder, enc *Encryptor, value uint64) *Ciphertext {
	values := make([]uint64, params.MaxSlots())
	for i := range values {
		values[i] = value
	}
	pt, err := ecd.EncodeNew(values)
	require.NoError(t, err)
	ct, err := enc.EncryptNew(pt)
	require.NoError(t, err)
	return ct
}

func decryptConstant(t *testing.T, params Parameters, ecd *Encoder, dec *Decryptor, ct *Ciphertext) uint64 {
	values := make([]uint64, params.MaxSlots())
	ecd.Decode(dec.DecryptNew(ct), values)
	for _, v := range values[1:] {
		require.Equal(t, values[0], v)
	}
	return values[0]
}

func TestNoiseBudgetScenario(t *testing.T) {

	if testing.Short() {
		t.Skip("skipping LogN=13 scenario in short mode")
	}

	params, err := NewParametersFromLiteral(ExampleParametersLogN13LogQP218)
	require.NoError(t, err)
	require.Equal(t, 8192, params.N())
	require.Equal(t, uint64(1032193), params.PlaintextModulus())
	require.InDelta(t, 174, params.LogQ(), 0.5)
	require.InDelta(t, 218, params.LogQP(), 0.5)

	prng, err := sampling.NewKeyedPRNG([]byte("scenario"))
	require.NoError(t, err)

	sk, pk, rlk := NewKeyGenerator(params, prng).GenKeysNew()
	ecd := NewEncoder(params)
	enc := NewEncryptor(params, pk, prng)
	dec := NewDecryptor(params, sk)
	eval := NewEvaluator(params, rlk)

	ct0 := encryptConstant(t, params, ecd, enc, 23)
	ct1 := encryptConstant(t, params, ecd, enc, 30)

	require.GreaterOrEqual(t, dec.NoiseBudget(ct0), params.FreshNoiseBudgetBound())
	require.GreaterOrEqual(t, dec.NoiseBudget(ct1), params.FreshNoiseBudgetBound())

	sum, err := eval.AddNew(ct0, ct1)
	require.NoError(t, err)
	prod, err := eval.MulNew(ct0, ct1)
	require.NoError(t, err)

	require.Equal(t, uint64(53), decryptConstant(t, params, ecd, dec, sum))
	require.Equal(t, uint64(690), decryptConstant(t, params, ecd, dec, prod))

	sumBudget, prodBudget := dec.NoiseBudget(sum), dec.NoiseBudget(prod)
	require.GreaterOrEqual(t, sumBudget, 120)
	require.Greater(t, prodBudget, 80)
	require.Less(t, prodBudget, sumBudget)

	require.NoError(t, eval.ModSwitchToNext(sum, sum))
	require.NoError(t, eval.ModSwitchToNext(prod, prod))

	require.Equal(t, params.MaxLevel()-1, sum.Level())
	require.Equal(t, params.MaxLevel()-1, prod.Level())

	require.Equal(t, uint64(53), decryptConstant(t, params, ecd, dec, sum))
	require.Equal(t, uint64(690), decryptConstant(t, params, ecd, dec, prod))

	sumSwitched, prodSwitched := dec.NoiseBudget(sum), dec.NoiseBudget(prod)

	require.LessOrEqual(t, sumSwitched, sumBudget-30)
	require.LessOrEqual(t, prodSwitched, prodBudget)
	require.Positive(t, prodSwitched)

	// After the switch both budgets are bounded by the rounding noise t * ||r0 + r1*s||,
	// which is larger than 2t, so they end up within a bit or two of each other.
	floor := params.QAtLevel(sum.Level()).BitLen() - 1 - bits.Len64(params.PlaintextModulus())
	require.LessOrEqual(t, sumSwitched, floor)
	require.LessOrEqual(t, prodSwitched, floor)
	require.InDelta(t, sumSwitched, prodSwitched, 2)

	// The chain is exhausted after exactly len(Q)-1 switches.
	for sum.Level() > 0 {
		require.NoError(t, eval.ModSwitchToNext(sum, sum))
	}
	require.ErrorIs(t, eval.ModSwitchToNext(sum, sum), ErrChainExhausted)
}
