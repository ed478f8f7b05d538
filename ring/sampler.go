package ring

import (
	"encoding/binary"

	"github.com/tuneinsight/qtesla/utils/sampling"
)

// Sampler is an interface for random polynomial samplers.
// The coefficients are expanded from a seed and a nonce, so that a given
// (seed, nonce) pair always yields the same polynomial. Each retry of a
// rejection loop must use a fresh nonce.
type Sampler interface {
	Read(seed []byte, nonce int, pol Poly)
	ReadNew(seed []byte, nonce int) (pol Poly)
}

var (
	_ Sampler = (*BoundedSampler)(nil)
	_ Sampler = (*GaussianSampler)(nil)
)

type baseSampler struct {
	baseRing *Ring
	level    sampling.SecurityLevel
}

// nonceDomain returns the first domain separator of the stream of the given nonce.
// Only the low byte of the nonce is significant; the high byte counts the refills.
func nonceDomain(nonce int) uint16 {
	return uint16(nonce << 8)
}

// readLittleEndian returns the little-endian integer encoded on the first nbytes bytes of b.
func readLittleEndian(b []byte, nbytes int) (v uint32) {
	for i := nbytes - 1; i >= 0; i-- {
		v = v<<8 | uint32(b[i])
	}
	return
}

// wordsFromBytes decodes little-endian 64-bit words.
func wordsFromBytes(dst []int64, src []byte) {
	for i := range dst {
		dst[i] = int64(binary.LittleEndian.Uint64(src[8*i:]))
	}
}
