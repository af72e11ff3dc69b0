package sampling_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticelab/bfvnoise/utils/sampling"
)

func Test_PRNG(t *testing.T) {

	key := []byte{0x49, 0x0a, 0x42, 0x3d, 0x97, 0x9d, 0xc1, 0x07, 0xa1, 0xd7, 0xe9, 0x7b, 0x3b, 0xce, 0xa1, 0xdb,
		0x42, 0xf3, 0xa6, 0xd5, 0x75, 0xd2, 0x0c, 0x92, 0xb7, 0x35, 0xce, 0x0c, 0xee, 0x09, 0x7c, 0x98}

	t.Run("KeyedPRNG", func(t *testing.T) {

		Ha, err := sampling.NewKeyedPRNG(key)
		require.NoError(t, err)
		Hb, err := sampling.NewKeyedPRNG(key)
		require.NoError(t, err)

		sum0 := make([]byte, 512)
		sum1 := make([]byte, 512)

		for i := 0; i < 128; i++ {
			Hb.Read(sum1)
		}

		Hb.Reset()

		Ha.Read(sum0)
		Hb.Read(sum1)

		require.Equal(t, sum0, sum1)
		require.Equal(t, key, Ha.Key())
	})

	t.Run("DeriveKey", func(t *testing.T) {
		k0 := sampling.DeriveKey(key, "keygen")
		k1 := sampling.DeriveKey(key, "encryptor")
		require.Len(t, k0, sampling.KeySize)
		require.NotEqual(t, k0, k1)
		require.Equal(t, k0, sampling.DeriveKey(key, "keygen"))

		p0, err := sampling.NewDerivedPRNG(key, "keygen")
		require.NoError(t, err)
		p1, err := sampling.NewKeyedPRNG(k0)
		require.NoError(t, err)
		require.Equal(t, sampling.ReadUint64(p0), sampling.ReadUint64(p1))
	})

	t.Run("ReadNormFloat64", func(t *testing.T) {
		prng, err := sampling.NewKeyedPRNG(key)
		require.NoError(t, err)

		n := 1 << 14
		var mean, variance float64
		for i := 0; i < n; i++ {
			x := sampling.ReadNormFloat64(prng)
			mean += x
			variance += x * x
		}
		mean /= float64(n)
		variance /= float64(n)

		require.InDelta(t, 0, mean, 0.05)
		require.InDelta(t, 1, variance, 0.05)
	})
}
