package ring

import (
	"fmt"
	"math/bits"
)

type numberTheoreticTransformerBase struct {
	n       int
	modulus int64
	qInv    uint32
}

// NumberTheoreticTransformerStandard computes the standard nega-cyclic NTT in the ring Z[X]/(X^N+1)
// with Montgomery butterflies.
type NumberTheoreticTransformerStandard struct {
	numberTheoreticTransformerBase
	r             int64 // 2^32 mod q
	r2InvN        int64 // 2^64 * N^-1 mod q
	nInvR         int64 // 2^32 * N^-1 mod q
	bredConstant  int64
	rootsForward  []int32
	rootsBackward []int32
}

// NewNumberTheoreticTransformerStandard generates the twiddle tables of the nega-cyclic NTT of
// size n modulo q. The tables are derived from the primitive 2n-th root of unity obtained from the
// smallest primitive root of q.
func NewNumberTheoreticTransformerStandard(n int, q uint64) (NumberTheoreticTransformerStandard, error) {

	if n < 2 || n&(n-1) != 0 {
		return NumberTheoreticTransformerStandard{}, fmt.Errorf("invalid ring degree: %d is not a power of two larger than one", n)
	}

	if (q-1)%uint64(2*n) != 0 {
		return NumberTheoreticTransformerStandard{}, fmt.Errorf("invalid modulus: %d is not 1 mod 2N=%d", q, 2*n)
	}

	psi, err := RootOfUnity(q, uint64(2*n))
	if err != nil {
		return NumberTheoreticTransformerStandard{}, err
	}

	psiInv := ModInverse(psi, q)
	nInv := ModInverse(uint64(n), q)
	r := (uint64(1) << 32) % q
	r2 := r * r % q

	logN := bits.Len64(uint64(n)) - 1

	rootsForward := make([]int32, n-1)
	rootsBackward := make([]int32, n-1)

	// Forward: stage with m blocks uses psi^brv(m+b) for block b.
	for k := 0; k < n-1; k++ {
		rootsForward[k] = int32(ModExp(psi, uint64(bitReverse(k+1, logN)), q) * r % q)
	}

	// Backward: stages are ordered from m = N/2 blocks down to a single block.
	var idx int
	for m := n >> 1; m > 0; m >>= 1 {
		for b := 0; b < m; b++ {
			rootsBackward[idx] = int32(ModExp(psiInv, uint64(bitReverse(m+b, logN)), q) * r % q)
			idx++
		}
	}

	return NumberTheoreticTransformerStandard{
		numberTheoreticTransformerBase: numberTheoreticTransformerBase{
			n:       n,
			modulus: int64(q),
			qInv:    MRedParams(uint32(q)),
		},
		r:             int64(r),
		r2InvN:        int64(r2 * nInv % q),
		nInvR:         int64(r * nInv % q),
		bredConstant:  BRedParams(uint32(q)),
		rootsForward:  rootsForward,
		rootsBackward: rootsBackward,
	}, nil
}

// Forward writes the forward NTT in Z[X]/(X^N+1) of p1 on p2.
// Input is in natural order, output is in bit-reversed order.
func (rntt NumberTheoreticTransformerStandard) Forward(p1, p2 []int32) {
	copy(p2, p1)
	nttStandardLazy(p2, rntt.n, rntt.modulus, rntt.qInv, rntt.rootsForward)
}

// Backward writes the backward NTT in Z[X]/(X^N+1) of p1 on p2.
func (rntt NumberTheoreticTransformerStandard) Backward(p1, p2 []int32) {
	q := int32(rntt.modulus)
	for i := range p1[:rntt.n] {
		p2[i] = CRed(BRed(p1[i], q, rntt.bredConstant), q)
	}
	inttStandardLazy(p2, rntt.n, rntt.modulus, rntt.qInv, rntt.bredConstant, rntt.r, rntt.rootsBackward)
	for i := range p2[:rntt.n] {
		p2[i] = CRed(MRed(rntt.nInvR*int64(p2[i]), rntt.modulus, rntt.qInv), q)
	}
}

// BackwardLazy writes the backward NTT in Z[X]/(X^N+1) of p1 on p2.
// The factor N^-1 is expected to have been folded in by MForm.
func (rntt NumberTheoreticTransformerStandard) BackwardLazy(p1, p2 []int32) {
	copy(p2, p1)
	inttStandardLazy(p2, rntt.n, rntt.modulus, rntt.qInv, rntt.bredConstant, rntt.r, rntt.rootsBackward)
}

// MulCoeffs writes p1*p2*2^-32 on p3.
func (rntt NumberTheoreticTransformerStandard) MulCoeffs(p1, p2, p3 []int32) {
	for i := range p1[:rntt.n] {
		p3[i] = MRed(int64(p1[i])*int64(p2[i]), rntt.modulus, rntt.qInv)
	}
}

// MForm writes p1*2^32*N^-1 on p2.
func (rntt NumberTheoreticTransformerStandard) MForm(p1, p2 []int32) {
	for i := range p1[:rntt.n] {
		p2[i] = MRed(int64(p1[i])*rntt.r2InvN, rntt.modulus, rntt.qInv)
	}
}

// nttStandardLazy computes in place the Cooley-Tukey NTT of a.
// Each stage increases the magnitude of the coefficients by at most about q.
func nttStandardLazy(a []int32, N int, q int64, qInv uint32, roots []int32) {
	var jTwiddle int
	for NP := N >> 1; NP > 0; NP >>= 1 {
		for jFirst := 0; jFirst < N; jFirst += 2 * NP {
			W := int64(roots[jTwiddle])
			jTwiddle++
			for j := jFirst; j < jFirst+NP; j++ {
				t := MRed(W*int64(a[j+NP]), q, qInv)
				a[j+NP] = a[j] - t
				a[j] = a[j] + t
			}
		}
	}
}

// inttStandardLazy computes in place the Gentleman-Sande inverse NTT of a, without the N^-1 factor.
// The running sums are Barrett reduced every fifth stage to stay within 32 bits.
func inttStandardLazy(a []int32, N int, q int64, qInv uint32, bredConstant, r int64, roots []int32) {
	var jTwiddle int
	q32 := int32(q)
	for NP := 1; NP < N; NP <<= 1 {
		reduce := NP == 16 || NP == 512
		for jFirst := 0; jFirst < N; jFirst += 2 * NP {
			W := int64(roots[jTwiddle])
			jTwiddle++
			for j := jFirst; j < jFirst+NP; j++ {
				t := a[j]
				if reduce {
					a[j] = BRed(t+a[j+NP], q32, bredConstant)
				} else {
					a[j] = t + a[j+NP]
				}
				a[j+NP] = MRed(W*int64(t-a[j+NP]), q, qInv)
			}
		}
	}

	// The second half is the output of a Montgomery reduction and already small.
	for i := 0; i < N>>1; i++ {
		a[i] = MRed(r*int64(a[i]), q, qInv)
	}
}

func bitReverse(x, bitLen int) (r int) {
	for i := 0; i < bitLen; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return
}
