// Package sampling implements the pseudorandom expansion of seeds (SHAKE and cSHAKE
// with 16-bit domain separators) and the random sources used to draw the seeds.
package sampling

import (
	"crypto/rand"
	"io"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// PRNG is an interface for secure generation of random bytes
type PRNG interface {
	io.Reader
}

// Source returns r, or the operating system's secure random source if r is nil.
func Source(r io.Reader) io.Reader {
	if r == nil {
		return rand.Reader
	}
	return r
}

// ReadSeed fills a fresh seed of the given size from r.
func ReadSeed(r io.Reader, size int) ([]byte, error) {
	seed := make([]byte, size)
	if _, err := io.ReadFull(Source(r), seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// KeyedPRNG is a deterministic random source built on the BLAKE2b XOF.
// Two instances created with the same key produce the same stream of bytes,
// which makes key generation and signing reproducible.
// WARNING: A KeyedPRNG is only as secret as its key.
type KeyedPRNG struct {
	mutex sync.Mutex
	key   []byte
	xof   blake2b.XOF
}

// NewKeyedPRNG creates a new instance of KeyedPRNG.
// A nil key is treated as the empty key, which is insecure.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	var err error
	prng := &KeyedPRNG{key: append([]byte{}, key...)}
	prng.xof, err = blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	return prng, err
}

// Key returns a copy of the key used to seed the PRNG.
func (prng *KeyedPRNG) Key() (key []byte) {
	key = make([]byte, len(prng.key))
	copy(key, prng.key)
	return
}

// Read reads bytes from the KeyedPRNG on sum.
// Concurrent calls are serialized, but their interleaving is not deterministic.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	return prng.xof.Read(sum)
}

// Reset resets the PRNG to its initial state.
func (prng *KeyedPRNG) Reset() {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	prng.xof.Reset()
}
