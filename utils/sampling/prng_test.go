package sampling_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/qtesla/utils/sampling"
)

func TestKeyedPRNG(t *testing.T) {

	key := []byte{0x49, 0x0a, 0x42, 0x3d, 0x97, 0x9d, 0xc1, 0x07, 0xa1, 0xd7, 0xe9, 0x7b, 0x3b, 0xce, 0xa1, 0xdb,
		0x42, 0xf3, 0xa6, 0xd5, 0x75, 0xd2, 0x0c, 0x92, 0xb7, 0x35, 0xce, 0x0c, 0xee, 0x09, 0x7c, 0x98}

	t.Run("Reset", func(t *testing.T) {

		Ha, err := sampling.NewKeyedPRNG(key)
		require.NoError(t, err)
		Hb, err := sampling.NewKeyedPRNG(key)
		require.NoError(t, err)

		sum0 := make([]byte, 512)
		sum1 := make([]byte, 512)

		for i := 0; i < 128; i++ {
			_, _ = Hb.Read(sum1)
		}

		Hb.Reset()

		_, _ = Ha.Read(sum0)
		_, _ = Hb.Read(sum1)

		require.Equal(t, sum0, sum1)
		require.Equal(t, key, Ha.Key())
	})

	t.Run("ReadSeed", func(t *testing.T) {

		prng, err := sampling.NewKeyedPRNG(key)
		require.NoError(t, err)

		seed, err := sampling.ReadSeed(prng, 32)
		require.NoError(t, err)
		require.Len(t, seed, 32)

		seed, err = sampling.ReadSeed(bytes.NewReader([]byte{1, 2, 3}), 32)
		require.Error(t, err)
		require.Nil(t, seed)

		seed, err = sampling.ReadSeed(nil, 32)
		require.NoError(t, err)
		require.Len(t, seed, 32)
	})
}

func TestSecurityLevel(t *testing.T) {

	seed := bytes.Repeat([]byte{0xa5}, 32)

	for _, level := range []sampling.SecurityLevel{sampling.Level128, sampling.Level256} {

		require.NoError(t, level.Validate())

		t.Run(fmt.Sprintf("CShake%d/DomainSeparation", level), func(t *testing.T) {
			out0 := make([]byte, level.Rate())
			out1 := make([]byte, level.Rate())
			level.CShake(out0, 0, seed)
			level.CShake(out1, 1, seed)
			require.NotEqual(t, out0, out1)

			level.CShake(out1, 0, seed)
			require.Equal(t, out0, out1)
		})

		t.Run(fmt.Sprintf("Shake%d/Concatenation", level), func(t *testing.T) {
			out0 := make([]byte, 64)
			out1 := make([]byte, 64)
			level.Shake(out0, seed[:10], seed[10:])
			level.Shake(out1, seed)
			require.Equal(t, out0, out1)
		})
	}

	require.Equal(t, 168, sampling.Level128.Rate())
	require.Equal(t, 136, sampling.Level256.Rate())
	require.Error(t, sampling.SecurityLevel(192).Validate())
}
