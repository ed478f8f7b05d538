package sign

import (
	"fmt"
	"io"

	"github.com/tuneinsight/qtesla/ring"
	"github.com/tuneinsight/qtesla/utils/buffer"
)

// Signer signs messages with a secret key. The public polynomials a_k are
// expanded once at construction. It is safe for concurrent use.
type Signer struct {
	params  Parameters
	sk      *SecretKey
	a       []ring.Poly
	bounded *ring.BoundedSampler
	options
}

// NewSigner creates a new Signer for the secret key.
func NewSigner(sk *SecretKey, opts ...Option) (*Signer, error) {

	params := sk.params

	if params.N() == 0 {
		return nil, fmt.Errorf("sign.NewSigner: secret key has no parameters")
	}

	r := params.Ring()

	return &Signer{
		params:  params,
		sk:      sk,
		a:       ring.NewUniformSampler(r, params.GenA()).ReadVectorNew(sk.SeedA[:], params.K()),
		bounded: ring.NewBoundedSampler(r, params.SecurityLevel(), params.BBits()),
		options: newOptions(opts),
	}, nil
}

// Sign signs msg and returns the signed message: the signature followed by msg.
func (s *Signer) Sign(msg []byte) (sm []byte, err error) {

	sm = make([]byte, s.params.SignatureSize()+len(msg))

	if err = s.signTo(sm[:s.params.SignatureSize()], msg); err != nil {
		return nil, fmt.Errorf("sign.Signer.Sign: %w", err)
	}

	copy(sm[s.params.SignatureSize():], msg)

	return
}

// SignDetached signs msg and returns the signature alone.
func (s *Signer) SignDetached(msg []byte) (sig []byte, err error) {

	sig = make([]byte, s.params.SignatureSize())

	if err = s.signTo(sig, msg); err != nil {
		return nil, fmt.Errorf("sign.Signer.SignDetached: %w", err)
	}

	return
}

// signTo writes pack(z, D) || c on sig. Candidates are drawn with a fresh
// nonce until z passes the rejection test and every v_k - e_k*c passes the
// correctness test.
func (s *Signer) signTo(sig []byte, msg []byte) (err error) {

	params := s.params
	r := params.Ring()

	// seedY || rand || SHAKE(msg)
	input := make([]byte, SeedSize+RandomSize+HMSize)
	copy(input, s.sk.SeedY[:])
	if _, err = io.ReadFull(s.random, input[SeedSize:SeedSize+RandomSize]); err != nil {
		return fmt.Errorf("random source: %w", err)
	}
	params.level.Shake(input[SeedSize+RandomSize:], msg)
	hm := input[SeedSize+RandomSize:]

	rnd := make([]byte, SeedSize)
	params.level.Shake(rnd, input)

	y, z, w := r.NewPoly(), r.NewPoly(), r.NewPoly()
	sc, ec := r.NewPoly(), r.NewPoly()

	v := make([]ring.Poly, params.K())
	for k := range v {
		v[k] = r.NewPoly()
	}

	// Only the low byte of the nonce reaches the domain separator of y, so
	// y repeats after 256 rejections and the loop would cycle. Each attempt
	// passes with constant probability: 256 consecutive rejections do not
	// occur in practice.
	var nonce int
	for attempts := 1; ; attempts++ {

		nonce++
		s.bounded.Read(rnd, nonce, y)
		for k := range v {
			r.Mul(s.a[k], y, v[k])
		}

		c := params.HashH(v, hm)
		challenge := ring.EncodeChallenge(c[:], params.N(), params.H())

		ring.SparseMul(r, s.sk.s, challenge, sc)
		r.Add(y, sc, z)

		if params.TestRejection(z) {
			s.observer.OnSignRetry(RetryRejection)
			continue
		}

		var incorrect bool
		for k := range v {
			ring.SparseMul(r, s.sk.e[k], challenge, ec)
			r.SubCorrect(v[k], ec, w)
			if incorrect = params.TestCorrectness(w); incorrect {
				break
			}
		}

		if incorrect {
			s.observer.OnSignRetry(RetryCorrectness)
			continue
		}

		if _, err = buffer.PackSigned(sig[:len(sig)-CSize], z.Coeffs, params.D()); err != nil {
			return err
		}
		copy(sig[len(sig)-CSize:], c[:])

		s.observer.OnSigned(attempts)

		return nil
	}
}
