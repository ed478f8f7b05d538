package sign

import (
	"fmt"
	"io"

	"github.com/tuneinsight/qtesla/ring"
	"github.com/tuneinsight/qtesla/utils"
)

// KeyGenerator is a structure that stores the elements required to create new keys.
// It is safe for concurrent use.
type KeyGenerator struct {
	params   Parameters
	gaussian *ring.GaussianSampler
	uniform  *ring.UniformSampler
	options
}

// NewKeyGenerator creates a new KeyGenerator, from which the secret and public keys, as
// well as other keys are generated. It returns an error if the parameters cannot sign.
func NewKeyGenerator(params Parameters, opts ...Option) (*KeyGenerator, error) {

	if !params.CanSign() {
		return nil, fmt.Errorf("sign.NewKeyGenerator: parameter set %s does not define a Gaussian sampler", params.Name())
	}

	r := params.Ring()

	gaussian, err := ring.NewGaussianSampler(r, params.SecurityLevel(), params.GaussianTable())
	if err != nil {
		return nil, fmt.Errorf("sign.NewKeyGenerator: %w", err)
	}

	return &KeyGenerator{
		params:   params,
		gaussian: gaussian,
		uniform:  ring.NewUniformSampler(r, params.GenA()),
		options:  newOptions(opts),
	}, nil
}

// GenKeyPair generates a new key pair from RandomSize bytes of the random source.
func (kgen *KeyGenerator) GenKeyPair() (sk *SecretKey, pk *PublicKey, err error) {

	var seed [RandomSize]byte
	if _, err = io.ReadFull(kgen.random, seed[:]); err != nil {
		return nil, nil, fmt.Errorf("sign.KeyGenerator.GenKeyPair: random source: %w", err)
	}

	sk, pk = kgen.GenKeyPairFromSeed(seed)
	return sk, pk, nil
}

// GenKeyPairFromSeed deterministically generates the key pair of the given seed.
// The seed is expanded into the seeds of e, s, a and y. The polynomials e_1, ..., e_K
// and then s are sampled with a shared nonce, incremented for each sample, until they
// satisfy the keygen bounds.
func (kgen *KeyGenerator) GenKeyPairFromSeed(seed [RandomSize]byte) (sk *SecretKey, pk *PublicKey) {

	params := kgen.params
	r := params.Ring()

	ext := make([]byte, 4*SeedSize)
	params.level.Shake(ext, seed[:])
	seedE, seedS := ext[:SeedSize], ext[SeedSize:2*SeedSize]

	sk = NewSecretKey(params)
	copy(sk.SeedA[:], ext[2*SeedSize:3*SeedSize])
	copy(sk.SeedY[:], ext[3*SeedSize:])

	e := make([]ring.Poly, params.K())
	for k := range e {
		e[k] = r.NewPoly()
	}
	s := r.NewPoly()

	var nonce int
	for k := range e {
		for {
			nonce++
			kgen.gaussian.Read(seedE, nonce, e[k])
			utils.ConvertSlice(sk.e[k], e[k].Coeffs)
			if !params.CheckES(sk.e[k], params.boundE) {
				break
			}
			kgen.observer.OnKeygenRetry(RetryE)
		}
	}

	for {
		nonce++
		kgen.gaussian.Read(seedS, nonce, s)
		utils.ConvertSlice(sk.s, s.Coeffs)
		if !params.CheckES(sk.s, params.boundS) {
			break
		}
		kgen.observer.OnKeygenRetry(RetryS)
	}

	a := kgen.uniform.ReadVectorNew(sk.SeedA[:], params.K())

	pk = NewPublicKey(params)
	pk.SeedA = sk.SeedA
	for k := range a {
		t := ring.Poly{Coeffs: pk.t[k]}
		r.Mul(a[k], s, t)
		r.AddCorrect(t, e[k], t)
	}

	return sk, pk
}
