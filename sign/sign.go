// Package sign implements the qTESLA lattice-based signature scheme: the
// parameter sets, key generation, signing with rejection sampling and
// verification, over the rings of the ring package.
//
// Signatures are pack(z, D) || c, where z = y + s*c is the masked response
// and c the challenge digest. The attached form produced by [Signer.Sign]
// carries the message after the signature and is checked by [Verifier.Open].
package sign

import (
	"io"
)

// Keypair generates a new key pair for the parameters with randomness from rand.
// A nil rand uses crypto/rand.Reader.
func Keypair(params Parameters, rand io.Reader) (sk *SecretKey, pk *PublicKey, err error) {

	kgen, err := NewKeyGenerator(params, WithRandom(rand))
	if err != nil {
		return nil, nil, err
	}

	return kgen.GenKeyPair()
}

// Sign returns the signed message sm = signature || msg.
// A nil rand uses crypto/rand.Reader.
func Sign(sk *SecretKey, msg []byte, rand io.Reader) (sm []byte, err error) {

	signer, err := NewSigner(sk, WithRandom(rand))
	if err != nil {
		return nil, err
	}

	return signer.Sign(msg)
}

// Open verifies the signed message sm and returns the message it carries.
func Open(pk *PublicKey, sm []byte) (msg []byte, err error) {

	verifier, err := NewVerifier(pk)
	if err != nil {
		return nil, err
	}

	return verifier.Open(sm)
}
