package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAbsInt32(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 1 << 20, -(1 << 20), math.MaxInt32, -math.MaxInt32} {
		want := v
		if v < 0 {
			want = -v
		}
		require.Equal(t, want, AbsInt32(v))
	}
}

func TestSelectInt32(t *testing.T) {
	require.Equal(t, int32(3), SelectInt32(-1, 3, 5))
	require.Equal(t, int32(5), SelectInt32(0, 3, 5))
	require.Equal(t, int32(-1), NegativeMask(-7))
	require.Equal(t, int32(0), NegativeMask(7))
	require.Equal(t, int32(0), NegativeMask(0))
}
