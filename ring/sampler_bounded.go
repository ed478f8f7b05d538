package ring

import (
	"github.com/tuneinsight/qtesla/utils/sampling"
)

// BoundedSampler keeps the state of a sampler of polynomials with coefficients
// uniformly distributed in [-B, B], with B = 2^bBits - 1.
type BoundedSampler struct {
	baseSampler
	bBits int
}

// NewBoundedSampler creates a new instance of BoundedSampler.
func NewBoundedSampler(baseRing *Ring, level sampling.SecurityLevel, bBits int) *BoundedSampler {
	return &BoundedSampler{
		baseSampler: baseSampler{baseRing: baseRing, level: level},
		bBits:       bBits,
	}
}

// Read samples a polynomial with coefficients uniform in [-B, B] from seed and nonce and writes it on pol.
// Values are drawn on bBits+1 bits and shifted by -B; the single value 2^bBits is rejected.
func (s *BoundedSampler) Read(seed []byte, nonce int, pol Poly) {

	N := s.baseRing.n
	nbytes := (s.bBits + 1 + 7) / 8
	mask := int32(1)<<(s.bBits+1) - 1
	B := int32(1)<<s.bBits - 1
	reject := int32(1) << s.bBits

	buf := make([]byte, N*nbytes)
	dmsp := nonceDomain(nonce)
	s.level.CShake(buf, dmsp, seed)
	dmsp++

	var y [4]int32
	for i, pos := 0, 0; i < N; {

		if pos+4*nbytes > len(buf) {
			buf = make([]byte, s.level.Rate())
			s.level.CShake(buf, dmsp, seed)
			dmsp++
			pos = 0
		}

		for k := range y {
			y[k] = int32(readLittleEndian(buf[pos+k*nbytes:], nbytes))&mask - B
		}
		pos += 4 * nbytes

		for k := range y {
			if i < N && y[k] != reject {
				pol.Coeffs[i] = y[k]
				i++
			}
		}
	}
}

// ReadNew samples a new polynomial from seed and nonce.
func (s *BoundedSampler) ReadNew(seed []byte, nonce int) (pol Poly) {
	pol = s.baseRing.NewPoly()
	s.Read(seed, nonce, pol)
	return
}
