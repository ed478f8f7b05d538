package sign

import (
	"crypto/subtle"
	"fmt"

	"github.com/tuneinsight/qtesla/ring"
	"github.com/tuneinsight/qtesla/utils/buffer"
)

// Verifier checks signatures against a public key. The public polynomials a_k
// are expanded once at construction. It is safe for concurrent use.
type Verifier struct {
	params Parameters
	pk     *PublicKey
	a      []ring.Poly
}

// NewVerifier creates a new Verifier for the public key.
func NewVerifier(pk *PublicKey) (*Verifier, error) {

	params := pk.params

	if params.N() == 0 {
		return nil, fmt.Errorf("sign.NewVerifier: public key has no parameters")
	}

	r := params.Ring()

	return &Verifier{
		params: params,
		pk:     pk,
		a:      ring.NewUniformSampler(r, params.GenA()).ReadVectorNew(pk.SeedA[:], params.K()),
	}, nil
}

// Open verifies the signed message sm and returns the message it carries.
// It returns [ErrSignatureTooShort], [ErrBound] or [ErrAuth] if sm is not a
// valid signed message.
func (v *Verifier) Open(sm []byte) (msg []byte, err error) {

	size := v.params.SignatureSize()

	if len(sm) < size {
		return nil, fmt.Errorf("sign.Verifier.Open: %w: %d bytes but %s signatures have %d", ErrSignatureTooShort, len(sm), v.params.Name(), size)
	}

	if err = v.verify(sm[size:], sm[:size]); err != nil {
		return nil, fmt.Errorf("sign.Verifier.Open: %w", err)
	}

	return append([]byte{}, sm[size:]...), nil
}

// Verify verifies the detached signature sig of msg.
func (v *Verifier) Verify(msg, sig []byte) (err error) {

	size := v.params.SignatureSize()

	switch {
	case len(sig) < size:
		return fmt.Errorf("sign.Verifier.Verify: %w: %d bytes but %s signatures have %d", ErrSignatureTooShort, len(sig), v.params.Name(), size)
	case len(sig) > size:
		return fmt.Errorf("sign.Verifier.Verify: invalid signature: %d bytes but %s signatures have %d", len(sig), v.params.Name(), size)
	}

	if err = v.verify(msg, sig); err != nil {
		return fmt.Errorf("sign.Verifier.Verify: %w", err)
	}

	return nil
}

func (v *Verifier) verify(msg, sig []byte) (err error) {

	params := v.params
	r := params.Ring()

	z := r.NewPoly()
	if _, err = buffer.UnpackSigned(z.Coeffs, sig[:len(sig)-CSize], params.D()); err != nil {
		return err
	}
	c := sig[len(sig)-CSize:]

	if params.TestZ(z) {
		return ErrBound
	}

	challenge := ring.EncodeChallenge(c, params.N(), params.H())

	w := make([]ring.Poly, params.K())
	tc := r.NewPoly()
	for k := range w {
		w[k] = r.NewPoly()
		r.Mul(v.a[k], z, w[k])
		ring.SparseMulMod(r, v.pk.t[k], challenge, tc)
		r.SubReduce(w[k], tc, w[k])
	}

	cPrime := params.HashH(w, params.hashMessage(msg))

	if subtle.ConstantTimeCompare(c, cPrime[:]) != 1 {
		return ErrAuth
	}

	return nil
}
