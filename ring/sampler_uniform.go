package ring

import (
	"github.com/tuneinsight/qtesla/utils/sampling"
)

// UniformSampler generates the public polynomial a, uniformly distributed in the
// ring, from a public seed. It always uses cSHAKE128.
type UniformSampler struct {
	baseSampler
	genA int
}

// NewUniformSampler creates a new instance of UniformSampler that first draws genA
// cSHAKE128 blocks, then single blocks whenever the buffer runs out.
func NewUniformSampler(baseRing *Ring, genA int) *UniformSampler {
	if genA < 1 {
		genA = 1
	}
	return &UniformSampler{
		baseSampler: baseSampler{baseRing: baseRing, level: sampling.Level128},
		genA:        genA,
	}
}

// Read samples the polynomial a from seed and writes it on pol.
// The coefficients are interpreted as NTT-domain values and returned in the
// operand form expected by Ring.Mul.
func (s *UniformSampler) Read(seed []byte, pol Poly) {
	s.ReadVector(seed, []Poly{pol})
}

// ReadVector samples the polynomials a_1, ..., a_k from seed and writes them
// on pols. They are drawn one after the other from a single cSHAKE128 stream,
// so the first polynomial is the one returned by Read.
func (s *UniformSampler) ReadVector(seed []byte, pols []Poly) {

	r := s.baseRing
	q := uint32(r.modulus)
	nbytes := (r.qLog + 7) / 8
	mask := uint32(1)<<r.qLog - 1
	rate := s.level.Rate()
	total := r.n * len(pols)

	buf := make([]byte, rate*s.genA)
	var dmsp uint16
	s.level.CShake(buf, dmsp, seed)
	dmsp++

	var val [4]uint32
	for i, pos := 0, 0; i < total; {

		if pos > len(buf)-4*nbytes {
			buf = buf[:rate]
			s.level.CShake(buf, dmsp, seed)
			dmsp++
			pos = 0
		}

		for k := range val {
			val[k] = readLittleEndian(buf[pos:], nbytes) & mask
			pos += nbytes
		}

		for k := range val {
			if val[k] < q && i < total {
				pols[i/r.n].Coeffs[i%r.n] = int32(val[k])
				i++
			}
		}
	}

	for _, pol := range pols {
		r.MForm(pol.Coeffs, pol.Coeffs)
	}
}

// ReadNew samples a new polynomial from seed.
func (s *UniformSampler) ReadNew(seed []byte) (pol Poly) {
	pol = s.baseRing.NewPoly()
	s.Read(seed, pol)
	return
}

// ReadVectorNew samples k new polynomials from seed.
func (s *UniformSampler) ReadVectorNew(seed []byte, k int) (pols []Poly) {
	pols = make([]Poly, k)
	for i := range pols {
		pols[i] = s.baseRing.NewPoly()
	}
	s.ReadVector(seed, pols)
	return
}
