package sign

import (
	"bytes"
	"crypto"
	"errors"
	"log/slog"
	"math/rand"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/qtesla/utils/buffer"
	"github.com/tuneinsight/qtesla/utils/sampling"
)

var testMessage = []byte("The quick brown fox jumps over the lazy dog")

type testContext struct {
	params Parameters
	kgen   *KeyGenerator
	sk     *SecretKey
	pk     *PublicKey
}

func newTestPRNG(t *testing.T, key string) *sampling.KeyedPRNG {
	prng, err := sampling.NewKeyedPRNG([]byte(key))
	require.NoError(t, err)
	return prng
}

func newTestContext(t *testing.T, pl ParametersLiteral) *testContext {

	params, err := NewParametersFromLiteral(pl)
	require.NoError(t, err)

	kgen, err := NewKeyGenerator(params, WithRandom(newTestPRNG(t, "keygen")))
	require.NoError(t, err)

	sk, pk, err := kgen.GenKeyPair()
	require.NoError(t, err)

	return &testContext{
		params: params,
		kgen:   kgen,
		sk:     sk,
		pk:     pk,
	}
}

func TestSign(t *testing.T) {

	for _, pl := range []ParametersLiteral{QTESLAI, QTESLAIIISize, testSexticLiteral, testMultiLiteral} {

		tc := newTestContext(t, pl)

		for _, testSet := range []func(tc *testContext, t *testing.T){
			testKeyGenerator,
			testSignVerify,
			testSignTampered,
			testKeyMarshalling,
			testCryptoSigner,
			testObserver,
		} {
			testSet(tc, t)
			runtime.GC()
		}
	}
}

func testKeyGenerator(tc *testContext, t *testing.T) {

	params := tc.params

	t.Run(testString("KeyGenerator/Bounds", params), func(t *testing.T) {
		require.Len(t, tc.sk.e, params.K())
		require.Len(t, tc.pk.t, params.K())

		for _, e := range tc.sk.e {
			require.False(t, params.CheckES(e, params.BoundE()))
		}
		require.False(t, params.CheckES(tc.sk.s, params.BoundS()))

		q := int32(params.Q())
		for _, t0 := range tc.pk.t {
			for _, c := range t0 {
				require.GreaterOrEqual(t, c, int32(0))
				require.Less(t, c, q)
			}
		}
	})

	t.Run(testString("KeyGenerator/FromSeed", params), func(t *testing.T) {

		var seed [RandomSize]byte
		seed[0] = 1

		sk0, pk0 := tc.kgen.GenKeyPairFromSeed(seed)
		sk1, pk1 := tc.kgen.GenKeyPairFromSeed(seed)
		require.True(t, sk0.Equal(sk1))
		require.True(t, pk0.Equal(pk1))

		seed[0] = 2
		sk2, pk2 := tc.kgen.GenKeyPairFromSeed(seed)
		require.False(t, sk0.Equal(sk2))
		require.False(t, pk0.Equal(pk2))
	})

	t.Run(testString("KeyGenerator/PublicKey", params), func(t *testing.T) {
		require.True(t, tc.sk.PublicKey().Equal(tc.pk))
		pk, ok := tc.sk.Public().(*PublicKey)
		require.True(t, ok)
		require.True(t, pk.Equal(tc.pk))
	})

	t.Run(testString("KeyGenerator/RandomSource", params), func(t *testing.T) {
		kgen, err := NewKeyGenerator(params, WithRandom(bytes.NewReader(make([]byte, RandomSize-1))))
		require.NoError(t, err)
		_, _, err = kgen.GenKeyPair()
		require.Error(t, err)
	})
}

func testSignVerify(tc *testContext, t *testing.T) {

	params := tc.params

	signer, err := NewSigner(tc.sk, WithRandom(newTestPRNG(t, "sign")))
	require.NoError(t, err)

	verifier, err := NewVerifier(tc.pk)
	require.NoError(t, err)

	t.Run(testString("Sign/Open", params), func(t *testing.T) {

		sm, err := signer.Sign(testMessage)
		require.NoError(t, err)
		require.Equal(t, params.SignatureSize()+len(testMessage), len(sm))
		require.Equal(t, testMessage, sm[params.SignatureSize():])

		msg, err := verifier.Open(sm)
		require.NoError(t, err)
		require.Equal(t, testMessage, msg)

		// z respects the rejection bound
		z := params.Ring().NewPoly()
		_, err = buffer.UnpackSigned(z.Coeffs, sm[:params.SignatureSize()-CSize], params.D())
		require.NoError(t, err)
		require.False(t, params.TestZ(z))
	})

	t.Run(testString("Sign/Detached", params), func(t *testing.T) {

		sig, err := signer.SignDetached(testMessage)
		require.NoError(t, err)
		require.Equal(t, params.SignatureSize(), len(sig))
		require.NoError(t, verifier.Verify(testMessage, sig))

		err = verifier.Verify(testMessage, append(sig, 0))
		require.Error(t, err)
		require.False(t, errors.Is(err, ErrAuth))
	})

	t.Run(testString("Sign/EmptyMessage", params), func(t *testing.T) {
		sm, err := signer.Sign(nil)
		require.NoError(t, err)
		msg, err := verifier.Open(sm)
		require.NoError(t, err)
		require.Empty(t, msg)
	})

	t.Run(testString("Sign/Deterministic", params), func(t *testing.T) {

		signer0, err := NewSigner(tc.sk, WithRandom(newTestPRNG(t, "deterministic")))
		require.NoError(t, err)
		signer1, err := NewSigner(tc.sk, WithRandom(newTestPRNG(t, "deterministic")))
		require.NoError(t, err)

		sig0, err := signer0.SignDetached(testMessage)
		require.NoError(t, err)
		sig1, err := signer1.SignDetached(testMessage)
		require.NoError(t, err)
		require.Equal(t, sig0, sig1)

		// fresh randomness for each signature
		sig2, err := signer0.SignDetached(testMessage)
		require.NoError(t, err)
		require.NotEqual(t, sig0, sig2)
		require.NoError(t, verifier.Verify(testMessage, sig2))
	})

	t.Run(testString("Sign/PackageLevel", params), func(t *testing.T) {

		sk, pk, err := Keypair(params, newTestPRNG(t, "package"))
		require.NoError(t, err)

		sm, err := Sign(sk, testMessage, nil)
		require.NoError(t, err)

		msg, err := Open(pk, sm)
		require.NoError(t, err)
		require.Equal(t, testMessage, msg)

		_, err = Open(tc.pk, sm)
		require.ErrorIs(t, err, ErrAuth)
	})
}

func testSignTampered(tc *testContext, t *testing.T) {

	params := tc.params

	sm, err := Sign(tc.sk, testMessage, newTestPRNG(t, "tampered"))
	require.NoError(t, err)

	verifier, err := NewVerifier(tc.pk)
	require.NoError(t, err)

	t.Run(testString("Verify/TooShort", params), func(t *testing.T) {
		_, err := verifier.Open(sm[:params.SignatureSize()-1])
		require.ErrorIs(t, err, ErrSignatureTooShort)

		err = verifier.Verify(testMessage, sm[:params.SignatureSize()-1])
		require.ErrorIs(t, err, ErrSignatureTooShort)

		_, err = verifier.Open(nil)
		require.ErrorIs(t, err, ErrSignatureTooShort)
	})

	t.Run(testString("Verify/Message", params), func(t *testing.T) {
		tampered := append([]byte{}, sm...)
		tampered[len(tampered)-1] ^= 1
		_, err := verifier.Open(tampered)
		require.ErrorIs(t, err, ErrAuth)
	})

	t.Run(testString("Verify/Challenge", params), func(t *testing.T) {
		tampered := append([]byte{}, sm...)
		tampered[params.SignatureSize()-1] ^= 0x80
		_, err := verifier.Open(tampered)
		require.ErrorIs(t, err, ErrAuth)
	})

	t.Run(testString("Verify/Response", params), func(t *testing.T) {
		tampered := append([]byte{}, sm...)
		tampered[0] ^= 1
		_, err := verifier.Open(tampered)
		require.ErrorIs(t, err, ErrAuth)
	})

	t.Run(testString("Verify/Bound", params), func(t *testing.T) {

		z := params.Ring().NewPoly()
		_, err := buffer.UnpackSigned(z.Coeffs, sm[:params.SignatureSize()-CSize], params.D())
		require.NoError(t, err)

		for _, c := range []int32{int32(params.B() - params.RejectionS() + 1), -int32(params.B() - params.RejectionS() + 1)} {

			z.Coeffs[0] = c

			tampered := append([]byte{}, sm...)
			_, err = buffer.PackSigned(tampered[:params.SignatureSize()-CSize], z.Coeffs, params.D())
			require.NoError(t, err)

			_, err = verifier.Open(tampered)
			require.ErrorIs(t, err, ErrBound)
		}
	})

	t.Run(testString("Verify/BitFlips", params), func(t *testing.T) {

		source := rand.New(rand.NewSource(1))

		regions := []struct {
			name       string
			start, end int
		}{
			{"Response", 0, params.SignatureSize() - CSize},
			{"Challenge", params.SignatureSize() - CSize, params.SignatureSize()},
			{"Message", params.SignatureSize(), len(sm)},
		}

		for _, region := range regions {
			for i := 0; i < 64; i++ {

				bit := 8*region.start + source.Intn(8*(region.end-region.start))

				tampered := append([]byte{}, sm...)
				tampered[bit/8] ^= 1 << (bit % 8)

				_, err := verifier.Open(tampered)
				require.Error(t, err, "%s: bit %d", region.name, bit)
				require.True(t, errors.Is(err, ErrAuth) || errors.Is(err, ErrBound), "%s: bit %d: %v", region.name, bit, err)
			}
		}
	})

	t.Run(testString("Verify/WrongKey", params), func(t *testing.T) {
		var seed [RandomSize]byte
		_, pk := tc.kgen.GenKeyPairFromSeed(seed)
		_, err := Open(pk, sm)
		require.ErrorIs(t, err, ErrAuth)
	})
}

func testKeyMarshalling(tc *testContext, t *testing.T) {

	params := tc.params

	t.Run(testString("Marshalling/SecretKey", params), func(t *testing.T) {

		data, err := tc.sk.MarshalBinary()
		require.NoError(t, err)
		require.Equal(t, params.SecretKeySize(), len(data))

		sk := NewSecretKey(params)
		require.NoError(t, sk.UnmarshalBinary(data))
		require.True(t, tc.sk.Equal(sk))

		buf := new(bytes.Buffer)
		n, err := tc.sk.WriteTo(buf)
		require.NoError(t, err)
		require.Equal(t, int64(params.SecretKeySize()), n)

		sk = NewSecretKey(params)
		n, err = sk.ReadFrom(buf)
		require.NoError(t, err)
		require.Equal(t, int64(params.SecretKeySize()), n)
		require.True(t, tc.sk.Equal(sk))

		require.ErrorIs(t, NewSecretKey(params).UnmarshalBinary(data[1:]), ErrInvalidKey)

		_, err = NewSecretKey(params).ReadFrom(bytes.NewReader(data[:10]))
		require.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run(testString("Marshalling/SecretKeyBounds", params), func(t *testing.T) {

		large := int16(1)<<(params.SBits()-1) - 1

		for _, pol := range []int{0, params.K()} {

			sk := NewSecretKey(params)
			require.NoError(t, sk.UnmarshalBinary(mustMarshal(t, tc.sk)))

			// s, then the last e_k, with all coefficients at the largest encodable value
			target := sk.s
			if pol > 0 {
				target = sk.e[pol-1]
			}
			for i := range target {
				target[i] = large
			}

			require.ErrorIs(t, NewSecretKey(params).UnmarshalBinary(mustMarshal(t, sk)), ErrInvalidKey)
		}
	})

	t.Run(testString("Marshalling/PublicKey", params), func(t *testing.T) {

		data, err := tc.pk.MarshalBinary()
		require.NoError(t, err)
		require.Equal(t, params.PublicKeySize(), len(data))

		pk := NewPublicKey(params)
		require.NoError(t, pk.UnmarshalBinary(data))
		require.True(t, tc.pk.Equal(pk))

		buf := new(bytes.Buffer)
		_, err = tc.pk.WriteTo(buf)
		require.NoError(t, err)

		pk = NewPublicKey(params)
		_, err = pk.ReadFrom(buf)
		require.NoError(t, err)
		require.True(t, tc.pk.Equal(pk))

		require.ErrorIs(t, NewPublicKey(params).UnmarshalBinary(data[:len(data)-1]), ErrInvalidKey)

		// a first coefficient of t equal to 2^QLog - 1 >= Q
		invalid := append([]byte{}, data...)
		invalid[0], invalid[1], invalid[2] = 0xFF, 0xFF, 0xFF
		require.ErrorIs(t, NewPublicKey(params).UnmarshalBinary(invalid), ErrInvalidKey)
	})

	t.Run(testString("Fingerprint", params), func(t *testing.T) {
		require.Equal(t, tc.pk.Fingerprint(), tc.sk.PublicKey().Fingerprint())

		var seed [RandomSize]byte
		_, pk := tc.kgen.GenKeyPairFromSeed(seed)
		require.NotEqual(t, tc.pk.Fingerprint(), pk.Fingerprint())
	})
}

func mustMarshal(t *testing.T, sk *SecretKey) []byte {
	data, err := sk.MarshalBinary()
	require.NoError(t, err)
	return data
}

func testCryptoSigner(tc *testContext, t *testing.T) {

	t.Run(testString("CryptoSigner", tc.params), func(t *testing.T) {

		var signer crypto.Signer = tc.sk

		sig, err := signer.Sign(newTestPRNG(t, "crypto"), testMessage, crypto.Hash(0))
		require.NoError(t, err)

		verifier, err := NewVerifier(signer.Public().(*PublicKey))
		require.NoError(t, err)
		require.NoError(t, verifier.Verify(testMessage, sig))

		_, err = signer.Sign(nil, testMessage, crypto.SHA256)
		require.Error(t, err)
	})
}

func testObserver(tc *testContext, t *testing.T) {

	params := tc.params

	t.Run(testString("Observer/Counter", params), func(t *testing.T) {

		obs := NewCounterObserver()
		signer, err := NewSigner(tc.sk, WithRandom(newTestPRNG(t, "observer")), WithObserver(obs))
		require.NoError(t, err)

		const signatures = 4
		for i := 0; i < signatures; i++ {
			_, err = signer.SignDetached(testMessage)
			require.NoError(t, err)
		}

		require.Equal(t, int64(signatures), obs.Signatures.Load())

		summary, err := obs.Summary()
		require.NoError(t, err)
		require.Equal(t, signatures, summary.Count)
		require.GreaterOrEqual(t, summary.Mean, 1.0)
		require.GreaterOrEqual(t, summary.Max, summary.Median)

		// each attempt but the last of every signature is a retry
		retries := obs.RetriesRejection.Load() + obs.RetriesCorrectness.Load()
		require.InDelta(t, float64(retries+signatures), summary.Mean*signatures, 1e-9)

		_, err = NewCounterObserver().Summary()
		require.Error(t, err)
	})

	t.Run(testString("Observer/Log", params), func(t *testing.T) {

		buf := new(bytes.Buffer)
		logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		signer, err := NewSigner(tc.sk, WithRandom(newTestPRNG(t, "log")), WithObserver(NewLogObserver(logger)))
		require.NoError(t, err)

		_, err = signer.SignDetached(testMessage)
		require.NoError(t, err)

		require.Contains(t, buf.String(), "msg=signed")
		require.Contains(t, buf.String(), "component=qtesla")
	})
}

func TestKeyGeneratorRingOnly(t *testing.T) {
	for _, pl := range []ParametersLiteral{QTESLAIIISpeed, QTESLAV, QTESLAII, QTESLAVSize} {
		params, err := NewParametersFromLiteral(pl)
		require.NoError(t, err)
		_, err = NewKeyGenerator(params)
		require.Error(t, err)
		_, _, err = Keypair(params, nil)
		require.Error(t, err)
	}
}

func BenchmarkSign(b *testing.B) {

	for _, pl := range []ParametersLiteral{QTESLAI, QTESLAIIISize} {

		params, err := NewParametersFromLiteral(pl)
		if err != nil {
			b.Fatal(err)
		}

		kgen, err := NewKeyGenerator(params)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(testString("KeyGen", params), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, _, err := kgen.GenKeyPair(); err != nil {
					b.Fatal(err)
				}
			}
		})

		sk, pk, err := kgen.GenKeyPair()
		if err != nil {
			b.Fatal(err)
		}

		signer, err := NewSigner(sk)
		if err != nil {
			b.Fatal(err)
		}

		verifier, err := NewVerifier(pk)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(testString("Sign", params), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := signer.SignDetached(testMessage); err != nil {
					b.Fatal(err)
				}
			}
		})

		sig, err := signer.SignDetached(testMessage)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(testString("Verify", params), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if err := verifier.Verify(testMessage, sig); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
