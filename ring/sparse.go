package ring

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Challenge is a polynomial with H non-zero coefficients in {-1, 1}, stored
// as the list of the positions of the non-zero coefficients and their signs.
type Challenge struct {
	Pos  []int
	Sign []int8
}

// H returns the number of non-zero coefficients of the challenge.
func (c Challenge) H() int {
	return len(c.Pos)
}

// Dense returns the challenge as a vector of n coefficients in {-1, 0, 1}.
func (c Challenge) Dense(n int) (dense []int8) {
	dense = make([]int8, n)
	for i, pos := range c.Pos {
		dense[pos] = c.Sign[i]
	}
	return
}

// ChallengeFromDense returns the sparse form of a vector with coefficients in {-1, 0, 1}.
func ChallengeFromDense(dense []int8) (c Challenge) {
	for pos, s := range dense {
		if s != 0 {
			c.Pos = append(c.Pos, pos)
			c.Sign = append(c.Sign, s)
		}
	}
	return
}

// Validate checks that the positions are pairwise distinct and in [0, n)
// and that the signs are in {-1, 1}.
func (c Challenge) Validate(n int) error {

	if len(c.Pos) != len(c.Sign) {
		return fmt.Errorf("invalid challenge: %d positions but %d signs", len(c.Pos), len(c.Sign))
	}

	seen := make([]bool, n)
	for i, pos := range c.Pos {
		if pos < 0 || pos >= n {
			return fmt.Errorf("invalid challenge: position %d out of range [0, %d)", pos, n)
		}
		if seen[pos] {
			return fmt.Errorf("invalid challenge: duplicate position %d", pos)
		}
		seen[pos] = true
		if c.Sign[i] != 1 && c.Sign[i] != -1 {
			return fmt.Errorf("invalid challenge: sign %d at position %d", c.Sign[i], pos)
		}
	}

	return nil
}

// SparseMul evaluates out = p * c, where p is a small polynomial stored with
// any signed integer width. The result is exact and not reduced: the caller
// must ensure that H*max|p| fits on 32 bits.
func SparseMul[T constraints.Signed](r *Ring, p []T, c Challenge, out Poly) {
	acc := make([]int64, r.n)
	sparseAccumulate(r, acc, p, c)
	for i := range acc {
		out.Coeffs[i] = int32(acc[i])
	}
}

// SparseMulMod evaluates out = p * c mod q with the result in [0, q).
func SparseMulMod[T constraints.Signed](r *Ring, p []T, c Challenge, out Poly) {
	acc := make([]int64, r.n)
	sparseAccumulate(r, acc, p, c)
	for i := range acc {
		out.Coeffs[i] = int32(BRed64(acc[i], r.modulus, r.qRec))
	}
}

// sparseAccumulate adds p * c to acc in O(N*H).
// The challenge is public: branching on its positions does not leak p.
func sparseAccumulate[T constraints.Signed](r *Ring, acc []int64, p []T, c Challenge) {
	for i, pos := range c.Pos {
		rotateAccumulate(r, acc, p, pos, int64(c.Sign[i]))
	}
}

// sexticMonomial lists, for 0 <= e <= 10, the decomposition of y^e over y^0, ..., y^5
// modulo y^6 + y^3 + 1 as (power, sign) pairs.
var sexticMonomial = [11][]struct {
	power int
	sign  int64
}{
	{{0, 1}},
	{{1, 1}},
	{{2, 1}},
	{{3, 1}},
	{{4, 1}},
	{{5, 1}},
	{{3, -1}, {0, -1}},
	{{4, -1}, {1, -1}},
	{{5, -1}, {2, -1}},
	{{0, 1}},
	{{1, 1}},
}

// rotateAccumulate adds weight * X^pos * p to acc, where X^pos is the monomial
// of index pos in the ring.
func rotateAccumulate[T constraints.Signed](r *Ring, acc []int64, p []T, pos int, weight int64) {

	if r.ringType == Standard {
		N := r.n
		for j := 0; j < pos; j++ {
			acc[j] -= weight * int64(p[j+N-pos])
		}
		for j := pos; j < N; j++ {
			acc[j] += weight * int64(p[j-pos])
		}
		return
	}

	// Sextic: X^pos = x^a * y^b with the coefficient of x^i*y^j at i + m*j.
	m := 1 << r.logM
	a, b := pos&(m-1), pos>>r.logM

	for jb := 0; jb < 6; jb++ {
		src := p[jb*m : (jb+1)*m]
		for _, mono := range sexticMonomial[b+jb] {
			dst := acc[mono.power*m : (mono.power+1)*m]
			w := weight * mono.sign
			// x^(a+ja) with x^m = -1
			for ja := 0; ja < m-a; ja++ {
				dst[ja+a] += w * int64(src[ja])
			}
			for ja := m - a; ja < m; ja++ {
				dst[ja+a-m] -= w * int64(src[ja])
			}
		}
	}
}
