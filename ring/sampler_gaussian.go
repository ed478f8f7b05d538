package ring

import (
	"fmt"
	"math"
	"math/big"
	"sync"

	"github.com/tuneinsight/qtesla/utils/bignum"
	"github.com/tuneinsight/qtesla/utils/sampling"
)

// GaussianTable holds the precomputed data of the discrete Gaussian sampler
// of a parameter set: a cumulative distribution table over multi-word
// fixed-point values and the exponential tables of the Bernoulli sampler.
// The tables are opaque: they are used as given.
type GaussianTable struct {
	Name string
	// Xi is the scaling factor between the coarse distribution and the target one.
	Xi int64
	// Mask is applied to the first word of the uniform value before the CDT lookup.
	Mask uint64
	// CDT rows are compared lexicographically, most significant word first.
	CDT [][]uint64
	// Exp[i][j] = exp(-(j*32^i)/f) for the Bernoulli parameter f of the distribution.
	Exp [3][32]float64

	once sync.Once
	err  error
}

// GaussianTableByName returns the table registered under the given name.
func GaussianTableByName(name string) (*GaussianTable, error) {
	switch name {
	case gaussianTableI.Name:
		return &gaussianTableI, nil
	case gaussianTableIIISize.Name:
		return &gaussianTableIIISize, nil
	default:
		return nil, fmt.Errorf("invalid Gaussian table: %q is not one of [%q, %q]", name, gaussianTableI.Name, gaussianTableIIISize.Name)
	}
}

// wordsPerSample returns the number of 64-bit words read for one CDT lookup.
func (t *GaussianTable) wordsPerSample() int {
	return len(t.CDT[0])
}

// Check verifies the structure of the table: rows of equal width sorted in
// increasing order, an acceptance threshold compatible with the mask, and
// exponential tables consistent with a single base exp(-1/f).
// The result is computed once.
func (t *GaussianTable) Check() error {
	t.once.Do(func() { t.err = t.check() })
	return t.err
}

func (t *GaussianTable) check() error {

	if len(t.CDT) == 0 || len(t.CDT[0]) == 0 {
		return fmt.Errorf("invalid Gaussian table %s: empty CDT", t.Name)
	}

	if t.Xi <= 0 || t.Xi > 28 {
		return fmt.Errorf("invalid Gaussian table %s: Xi=%d must be in [1, 28]", t.Name, t.Xi)
	}

	L := t.wordsPerSample()
	for i, row := range t.CDT {
		if len(row) != L {
			return fmt.Errorf("invalid Gaussian table %s: row %d has %d words but expected %d", t.Name, i, len(row), L)
		}
		if i > 0 && compareWords(t.CDT[i-1], row) > 0 {
			return fmt.Errorf("invalid Gaussian table %s: row %d is not sorted", t.Name, i)
		}
	}

	if t.CDT[len(t.CDT)-1][0] > t.Mask {
		return fmt.Errorf("invalid Gaussian table %s: acceptance threshold exceeds the mask", t.Name)
	}

	const prec = 128
	base := bignum.NewFloat(t.Exp[0][1], prec)
	if t.Exp[0][1] <= 0 || t.Exp[0][1] >= 1 {
		return fmt.Errorf("invalid Gaussian table %s: Exp[0][1]=%v is not in (0, 1)", t.Name, t.Exp[0][1])
	}
	lnBase := bignum.Log(base)

	for i := range t.Exp {
		for j, v := range t.Exp[i] {
			e := new(big.Float).SetPrec(prec).Mul(lnBase, bignum.NewFloat(int64(j)<<(5*i), prec))
			if bignum.RelativeError(bignum.NewFloat(v, prec), bignum.Exp(e)) > math.Ldexp(1, -30) {
				return fmt.Errorf("invalid Gaussian table %s: Exp[%d][%d] is inconsistent with Exp[0][1]", t.Name, i, j)
			}
		}
	}

	return nil
}

func compareWords(a, b []uint64) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// GaussianSampler keeps the state of a sampler of polynomials whose
// coefficients follow a discrete Gaussian distribution, obtained by rejection
// from a CDT-sampled coarse distribution with a Bernoulli acceptance test.
type GaussianSampler struct {
	baseSampler
	table *GaussianTable
}

// NewGaussianSampler creates a new instance of GaussianSampler.
func NewGaussianSampler(baseRing *Ring, level sampling.SecurityLevel, table *GaussianTable) (*GaussianSampler, error) {
	if err := table.Check(); err != nil {
		return nil, err
	}
	return &GaussianSampler{
		baseSampler: baseSampler{baseRing: baseRing, level: level},
		table:       table,
	}, nil
}

// gaussianStream serves the 64-bit words of the cSHAKE expansion of a seed,
// refreshing the buffer with the next domain separator when it runs out.
type gaussianStream struct {
	level sampling.SecurityLevel
	seed  []byte
	dmsp  uint16
	raw   []byte
	words []int64
	j     int
}

func (s *gaussianStream) refill() {
	s.level.CShake(s.raw, s.dmsp, s.seed)
	s.dmsp++
	wordsFromBytes(s.words, s.raw)
	s.j = 0
}

func (s *gaussianStream) next() (w int64) {
	if s.j == len(s.words) {
		s.refill()
	}
	w = s.words[s.j]
	s.j++
	return
}

// Read samples a polynomial from seed and nonce and writes it on pol.
// The comparisons are branch-free with respect to the sampled values; the
// number of iterations of the rejection loops is data dependent.
func (g *GaussianSampler) Read(seed []byte, nonce int, pol Poly) {

	N := g.baseRing.n
	tab := g.table
	L := tab.wordsPerSample()
	rmax := tab.CDT[len(tab.CDT)-1][0]

	stream := &gaussianStream{
		level: g.level,
		seed:  seed,
		dmsp:  nonceDomain(nonce),
		raw:   make([]byte, N*8),
		words: make([]int64, N),
	}
	stream.refill()

	w := make([]uint64, L)

	var rbits, k, sign, z int64
	var bitsRemained int

	for x := 0; x < N; x++ {

		// A coefficient consumes at most 46 words in all but a negligible fraction of the runs.
		if stream.j+46 > N {
			stream.refill()
		}

		for {
			rbits = stream.next()
			bitsRemained = 64

			for {
				// Sample from the coarse distribution by CDT lookup.
				for {
					for l := range w {
						w[l] = uint64(stream.next())
					}
					if bitsRemained <= 64-6 {
						rbits = (rbits << 6) ^ int64((w[0]>>58)&63)
						bitsRemained += 6
					}
					w[0] &= tab.Mask
					if w[0] <= rmax {
						break
					}
				}

				y := tab.cdtLookup(w)

				// z uniform in [0, Xi)
				for {
					for {
						if bitsRemained < 6 {
							rbits = stream.next()
							bitsRemained = 64
						}
						z = rbits & 63
						rbits >>= 6
						bitsRemained -= 6
						if z != 63 {
							break
						}
					}
					if bitsRemained < 2 {
						rbits = stream.next()
						bitsRemained = 64
					}
					z = (mod7(z) << 2) + (rbits & 3)
					rbits >>= 2
					bitsRemained -= 2
					if z < tab.Xi {
						break
					}
				}

				k = tab.Xi*y + z

				if bernoulli(stream.next(), z*((k<<1)-z), &tab.Exp) != 0 {
					break
				}
			}

			rbits <<= uint(64 - bitsRemained)
			if bitsRemained == 0 {
				rbits = stream.next()
				bitsRemained = 64
			}
			sign = rbits >> 63
			rbits <<= 1
			bitsRemained--

			// Zero is accepted with half the probability of the other values.
			if k|(sign&1) != 0 {
				break
			}
		}

		if bitsRemained == 0 {
			rbits = stream.next()
			bitsRemained = 64
		}
		sign = rbits >> 63
		rbits <<= 1
		bitsRemained--

		k = ((k << 1) & sign) - k
		pol.Coeffs[x] = int32((k << 48) >> 48)
	}
}

// ReadNew samples a new polynomial from seed and nonce.
func (g *GaussianSampler) ReadNew(seed []byte, nonce int) (pol Poly) {
	pol = g.baseRing.NewPoly()
	g.Read(seed, nonce, pol)
	return
}

// cdtLookup returns the number of CDT rows smaller than or equal to w,
// comparing all rows with borrow propagation from the least significant word.
func (t *GaussianTable) cdtLookup(w []uint64) (y int64) {
	L := len(w)
	for _, row := range t.CDT {
		var b uint64
		if L > 1 {
			c := w[L-1] - row[L-1]
			b = (((c & row[L-1]) & 1) + (row[L-1] >> 1) + (c >> 1)) >> 63
			for m := L - 2; m > 0; m-- {
				c = w[m] - (row[m] + b)
				b = (((c & b) & 1) + (row[m] >> 1) + (c >> 1)) >> 63
			}
		}
		c := w[0] - (row[0] + b)
		y += int64(^(c >> 63) & 1)
	}
	return
}

// mod7 returns k mod 7 for 0 <= k < 64.
func mod7(k int64) int64 {
	i := k
	for j := 0; j < 2; j++ {
		i = (i & 7) + (i >> 3)
	}
	return ((i - 7) >> 3) & i
}

// bernoulli returns 1 with probability exp(-t/f), using 62 bits of r.
// t must be smaller than 2^15.
func bernoulli(r, t int64, exp *[3][32]float64) int64 {
	c := 4611686018427387904.0 // 2^62
	for i, s := 0, t; i < 3; i, s = i+1, s>>5 {
		c = float64(c * exp[i][s&31])
	}
	return int64((uint64(r&0x3FFFFFFFFFFFFFFF) - uint64(c+0.5)) >> 63)
}
