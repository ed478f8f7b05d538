package sign

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/qtesla/ring"
)

func testString(opname string, p Parameters) string {
	return fmt.Sprintf("%s/%s/N=%d/Q=%d/Type=%s", opname, p.Name(), p.N(), p.Q(), p.RingType())
}

// testSexticLiteral is a sextic parameter set with the qTESLA-I Gaussian and
// bounds large enough for it.
var testSexticLiteral = ParametersLiteral{
	Name:          "qTESLA-test-sextic",
	LogM:          7,
	Q:             8404993,
	BBits:         21,
	SBits:         10,
	H:             39,
	D:             22,
	GenA:          28,
	BoundE:        2300,
	BoundS:        2300,
	Gaussian:      "qTESLA-I",
	SecurityLevel: 128,
}

// testMultiLiteral is qTESLA-I with two public polynomials.
var testMultiLiteral = func() ParametersLiteral {
	pl := QTESLAI
	pl.Name = "qTESLA-test-K2"
	pl.K = 2
	return pl
}()

func TestParameters(t *testing.T) {

	testCases := []struct {
		literal     ParametersLiteral
		n           int
		k           int
		ringType    ring.Type
		qLog        int
		qInv        uint32
		barrettMult int64
		r           uint64
		r2InvN      uint64
		skSize      int
		pkSize      int
		sigSize     int
		rejectionS  int
		canSign     bool
	}{
		{QTESLAI, 512, 1, ring.Standard, 23, 3098553343, 1021, 1081347, 113307, 1344, 1504, 1376, 1586, true},
		{QTESLAIIISize, 1024, 1, ring.Standard, 23, 4148178943, 1021, 35843, 1217638, 2112, 2976, 2720, 910, true},
		{QTESLAIIISpeed, 1024, 1, ring.Standard, 24, 4034936831, 511, 15873, 237839, 2368, 3104, 2848, 1233, false},
		{QTESLAV, 2048, 1, ring.Standard, 25, 3707789311, 255, 10510081, 6863778, 4672, 6432, 5920, 1554, false},
		{QTESLAII, 768, 1, ring.Sextic, 24, 4034936831, 511, 15873, 3118783, 1600, 2336, 2144, 2 * 859, false},
		{QTESLAVSize, 1536, 1, ring.Sextic, 26, 4223674367, 127, 32253825, 22253546, 3520, 5024, 4640, 2 * 1792, false},
		{testMultiLiteral, 512, 2, ring.Standard, 23, 3098553343, 1021, 1081347, 113307, 1984, 2976, 1376, 1586, true},
	}

	for _, tc := range testCases {

		params, err := NewParametersFromLiteral(tc.literal)
		require.NoError(t, err)

		t.Run(testString("Derived", params), func(t *testing.T) {
			require.Equal(t, tc.n, params.N())
			require.Equal(t, tc.k, params.K())
			require.Equal(t, tc.ringType, params.RingType())
			require.Equal(t, tc.qLog, params.QLog())
			require.Equal(t, tc.qInv, params.QInv())
			require.Equal(t, tc.barrettMult, params.BarrettMult())
			require.Equal(t, tc.r, params.R())
			require.Equal(t, tc.r2InvN, params.R2InvN())
			require.Equal(t, (^uint64(0))/params.Q(), params.QRec())
			require.Equal(t, tc.skSize, params.SecretKeySize())
			require.Equal(t, tc.pkSize, params.PublicKeySize())
			require.Equal(t, tc.sigSize, params.SignatureSize())
			require.Equal(t, tc.rejectionS, params.RejectionS())
			require.Equal(t, tc.canSign, params.CanSign())
		})

		t.Run(testString("Ring", params), func(t *testing.T) {
			r := params.Ring()
			require.Equal(t, params.N(), r.N())
			require.Equal(t, int64(params.Q()), r.Modulus())
			require.Equal(t, params.RingType(), r.Type())
		})

		t.Run(testString("Marshalling", params), func(t *testing.T) {

			data, err := params.MarshalJSON()
			require.NoError(t, err)

			var paramsNew Parameters
			require.NoError(t, paramsNew.UnmarshalJSON(data))
			require.True(t, params.Equal(&paramsNew))

			data, err = params.MarshalBinary()
			require.NoError(t, err)

			paramsNew = Parameters{}
			require.NoError(t, paramsNew.UnmarshalBinary(data))
			require.True(t, params.Equal(&paramsNew))

			// the literal omits the empty fields
			var fields map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &fields))
			if params.RingType() == ring.Standard {
				require.NotContains(t, fields, "LogM")
			} else {
				require.NotContains(t, fields, "LogN")
				require.NotContains(t, fields, "Gaussian")
			}
		})
	}
}

func TestParametersDefaultK(t *testing.T) {

	params0, err := NewParametersFromLiteral(QTESLAI)
	require.NoError(t, err)

	pl := QTESLAI
	pl.K = 1
	params1, err := NewParametersFromLiteral(pl)
	require.NoError(t, err)

	require.Equal(t, 1, params0.K())
	require.True(t, params0.Equal(&params1))
	require.Equal(t, params0.PublicKeySize(), params1.PublicKeySize())
}

func TestParametersRegistry(t *testing.T) {

	require.Equal(t, []string{"qTESLA-I", "qTESLA-II", "qTESLA-III-size", "qTESLA-III-speed", "qTESLA-V", "qTESLA-V-size"}, ParameterSetNames())

	for _, name := range ParameterSetNames() {
		params, err := ParametersByName(name)
		require.NoError(t, err)
		require.Equal(t, name, params.Name())
	}

	_, err := ParametersByName("qTESLA-p-I")
	require.Error(t, err)
}

func TestParametersInvalid(t *testing.T) {

	testCases := []struct {
		name   string
		modify func(pl *ParametersLiteral)
	}{
		{"BothDegrees", func(pl *ParametersLiteral) { pl.LogM = 7 }},
		{"NoDegree", func(pl *ParametersLiteral) { pl.LogN = 0 }},
		{"ModulusNotPrime", func(pl *ParametersLiteral) { pl.Q = 4205571 }},
		{"ModulusNotNTTFriendly", func(pl *ParametersLiteral) { pl.LogN = 11 }},
		{"ModulusTooLarge", func(pl *ParametersLiteral) { pl.Q = 0x7fffffff }},
		{"ZeroH", func(pl *ParametersLiteral) { pl.H = 0 }},
		{"LargeH", func(pl *ParametersLiteral) { pl.H = 513 }},
		{"LargeD", func(pl *ParametersLiteral) { pl.D = 23 }},
		{"LargeBBits", func(pl *ParametersLiteral) { pl.BBits = 21 }},
		{"LargeSBits", func(pl *ParametersLiteral) { pl.SBits = 17 }},
		{"ZeroGenA", func(pl *ParametersLiteral) { pl.GenA = 0 }},
		{"NegativeK", func(pl *ParametersLiteral) { pl.K = -1 }},
		{"LargeK", func(pl *ParametersLiteral) { pl.K = MaxK + 1 }},
		{"ZeroBound", func(pl *ParametersLiteral) { pl.BoundE = 0 }},
		{"SmallRejection", func(pl *ParametersLiteral) { pl.RejectionS = 100 }},
		{"UnknownGaussian", func(pl *ParametersLiteral) { pl.Gaussian = "qTESLA-p-I" }},
		{"SecurityLevel", func(pl *ParametersLiteral) { pl.SecurityLevel = 192 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pl := QTESLAI
			tc.modify(&pl)
			_, err := NewParametersFromLiteral(pl)
			require.Error(t, err)
		})
	}

	t.Run("SexticRejection", func(t *testing.T) {
		pl := QTESLAII
		pl.RejectionE = pl.BoundE
		pl.RejectionS = 2 * pl.BoundS
		_, err := NewParametersFromLiteral(pl)
		require.Error(t, err)
	})
}

func TestParametersRingOnce(t *testing.T) {

	params, err := NewParametersFromLiteral(testSexticLiteral)
	require.NoError(t, err)

	rings := make([]*ring.Ring, 16)

	var wg sync.WaitGroup
	for i := range rings {
		wg.Add(1)
		go func(i int, p Parameters) {
			defer wg.Done()
			rings[i] = p.Ring()
		}(i, params)
	}
	wg.Wait()

	for i := range rings {
		require.Same(t, rings[0], rings[i])
	}

	require.Equal(t, 1, params.ringQ.builds)
}
