package ring

import (
	"fmt"
)

// NumberTheoreticTransformerSextic computes the NTT in the tensor ring
// Z_q[x, y]/(x^m + 1, y^6 + y^3 + 1) of degree n = 6m, where the coefficient
// of x^a*y^b is stored at index a + m*b.
// It is a binary NTT of size m on each of the six blocks followed by a
// 6-point transform mixing the blocks. All reductions are Barrett reductions.
type NumberTheoreticTransformerSextic struct {
	numberTheoreticTransformerBase
	logM      int
	m         int
	qRec      uint64
	gamma     int64 // primitive 2m-th root of unity
	theta     int64 // primitive 9-th root of unity
	bitRev    []int
	twiddles  []int64 // omega^k with omega = gamma^2
	thetaPow  [9]int64
	psiPhi    []int64
	invPsiPhi []int64
}

// NewNumberTheoreticTransformerSextic generates the tables of the sextic NTT of degree n = 6*2^logM modulo q.
// The roots of unity are the smallest candidates found by trial search.
func NewNumberTheoreticTransformerSextic(logM int, q uint64) (NumberTheoreticTransformerSextic, error) {

	if logM < 1 || logM > 12 {
		return NumberTheoreticTransformerSextic{}, fmt.Errorf("invalid sextic block size: logM=%d must be in [1, 12]", logM)
	}

	m := 1 << logM
	n := 6 * m

	if (q-1)%uint64(18*m) != 0 {
		return NumberTheoreticTransformerSextic{}, fmt.Errorf("invalid modulus: %d is not 1 mod 18m=%d", q, 18*m)
	}

	if !IsPrime(q) {
		return NumberTheoreticTransformerSextic{}, fmt.Errorf("invalid modulus: %d is not prime", q)
	}

	rntt := NumberTheoreticTransformerSextic{
		numberTheoreticTransformerBase: numberTheoreticTransformerBase{
			n:       n,
			modulus: int64(q),
			qInv:    MRedParams(uint32(q)),
		},
		logM: logM,
		m:    m,
		qRec: BRedParams64(q),
	}

	Q := rntt.modulus
	modq := rntt.modq

	// gamma: smallest value with gamma^(2^(logM+1)) = 1 and gamma^(2^i) != 1 for i <= logM.
	for rntt.gamma = 2; rntt.gamma < Q; rntt.gamma++ {
		ok := true
		v := rntt.gamma
		for i := 0; i <= logM; i++ {
			if v == 1 {
				ok = false
				break
			}
			v = modq(v * v)
		}
		if ok && v == 1 {
			break
		}
	}

	// theta: smallest value with theta^3 != 1 and theta^9 = 1.
	for rntt.theta = 2; rntt.theta < Q; rntt.theta++ {
		v := modq(modq(rntt.theta*rntt.theta) * rntt.theta)
		if v != 1 && modq(modq(v*v)*v) == 1 {
			break
		}
	}

	if rntt.gamma >= Q || rntt.theta >= Q {
		return NumberTheoreticTransformerSextic{}, fmt.Errorf("invalid modulus: no suitable roots of unity modulo %d", q)
	}

	rntt.bitRev = make([]int, m)
	for i := range rntt.bitRev {
		rntt.bitRev[i] = bitReverse(i, logM)
	}

	omega := modq(rntt.gamma * rntt.gamma)
	rntt.twiddles = make([]int64, m)
	rntt.twiddles[0] = 1
	for k := 1; k < m; k++ {
		rntt.twiddles[k] = modq(rntt.twiddles[k-1] * omega)
	}

	t := &rntt.thetaPow
	t[0] = 1
	for i := 1; i < 9; i++ {
		t[i] = modq(t[i-1] * rntt.theta)
	}

	// psiPhi[j] = gamma^(j mod m) * theta^(j div m)
	rntt.psiPhi = make([]int64, n)
	rntt.psiPhi[0] = 1
	for j := 1; j < m; j++ {
		rntt.psiPhi[j] = modq(rntt.psiPhi[j-1] * rntt.gamma)
	}
	for j := m; j < n; j++ {
		rntt.psiPhi[j] = modq(rntt.psiPhi[j&(m-1)] * t[j>>logM])
	}

	// invPsiPhi[j]*psiPhi[j] is the normalization (1-theta^3)/(9m), folded with the inverse of mu.
	gammaInv := modq(modq(rntt.psiPhi[m-1]*rntt.psiPhi[m-1]) * rntt.psiPhi[1])
	tInv := [6]int64{1, t[8], t[7], -t[3], -t[2], -t[1]}
	rntt.invPsiPhi = make([]int64, n)
	rntt.invPsiPhi[0] = modq((1 - t[3]) * (Q - (Q-1)/int64(9*m)))
	for j := 1; j < m; j++ {
		rntt.invPsiPhi[j] = modq(rntt.invPsiPhi[j-1] * gammaInv)
	}
	for j := m; j < n; j++ {
		rntt.invPsiPhi[j] = modq(rntt.invPsiPhi[j&(m-1)] * tInv[j>>logM])
	}

	return rntt, nil
}

func (rntt NumberTheoreticTransformerSextic) modq(v int64) int64 {
	return BRed64(v, rntt.modulus, rntt.qRec)
}

// Forward writes the forward sextic NTT of p1 on p2.
func (rntt NumberTheoreticTransformerSextic) Forward(p1, p2 []int32) {

	n, m := rntt.n, rntt.m

	fudged := make([]int32, n)
	for j := 0; j < n; j++ {
		fudged[j] = int32(rntt.modq(int64(p1[j]) * rntt.psiPhi[j]))
	}

	for o := 0; o < n; o += m {
		block := p2[o : o+m]
		for v, rv := range rntt.bitRev {
			block[rv] = fudged[o+v]
		}
		rntt.binaryNTT(block, func(k int) int { return k })
	}

	for i := 0; i < m; i++ {
		rntt.mu(p2, i)
	}
}

// Backward writes the inverse sextic NTT of p1 on p2, with values in [0, q).
func (rntt NumberTheoreticTransformerSextic) Backward(p1, p2 []int32) {

	n, m := rntt.n, rntt.m

	mixed := make([]int32, n)
	for i := 0; i < m; i++ {
		rntt.muDagger(p1, mixed, i)
	}

	for o := 0; o < n; o += m {
		block := p2[o : o+m]
		for v, rv := range rntt.bitRev {
			block[rv] = mixed[o+v]
		}
		rntt.binaryNTT(block, func(k int) int { return (-k) & (m - 1) })
	}

	for j := 0; j < n; j++ {
		p2[j] = int32(rntt.modq(int64(p2[j]) * rntt.invPsiPhi[j]))
	}
}

// BackwardLazy is identical to Backward.
func (rntt NumberTheoreticTransformerSextic) BackwardLazy(p1, p2 []int32) {
	rntt.Backward(p1, p2)
}

// MulCoeffs writes p1*p2 mod q on p3.
func (rntt NumberTheoreticTransformerSextic) MulCoeffs(p1, p2, p3 []int32) {
	for i := range p1[:rntt.n] {
		p3[i] = int32(rntt.modq(int64(p1[i]) * int64(p2[i])))
	}
}

// MForm writes p1 mod q on p2: the sextic transform does not use a Montgomery domain.
func (rntt NumberTheoreticTransformerSextic) MForm(p1, p2 []int32) {
	for i := range p1[:rntt.n] {
		p2[i] = int32(rntt.modq(int64(p1[i])))
	}
}

// binaryNTT computes in place the size-m cyclic NTT of a bit-reversed block.
// Additions are not reduced: after logM stages the magnitude is at most (logM+1)*q.
func (rntt NumberTheoreticTransformerSextic) binaryNTT(a []int32, twiddleIndex func(k int) int) {
	logM, m := rntt.logM, rntt.m
	for s := 1; s <= logM; s++ {
		t := 1 << s
		NP := 1 << (s - 1)
		for jFirst := 0; jFirst < NP; jFirst++ {
			W := rntt.twiddles[twiddleIndex(jFirst<<(logM-s))]
			for j := jFirst; j < jFirst+m; j += t {
				tmp := int32(rntt.modq(W * int64(a[j+NP])))
				a[j+NP] = a[j] - tmp
				a[j] = a[j] + tmp
			}
		}
	}
}

// mu applies in place the 6-point transform to the coefficients i, i+m, ..., i+5m of A.
func (rntt NumberTheoreticTransformerSextic) mu(A []int32, i int) {

	L := rntt.logM
	t := &rntt.thetaPow
	modq := rntt.modq

	var u [6]int64
	for k := range u {
		u[k] = int64(A[i+(k<<L)])
	}

	s0 := u[0] + u[3]
	s1 := u[1] + u[4]
	s2 := u[2] + u[5]
	s3 := (s1 - s2) * t[3]
	A[i+(0<<L)] = int32(modq(s0 + s1 + s2))
	A[i+(2<<L)] = int32(modq(s0 - s2 + s3))
	A[i+(4<<L)] = int32(modq(s0 - s3 - s1))

	s0 = u[0] + u[3]*t[3]
	s1 = u[1]*t[1] + u[4]*t[4]
	s2 = u[2]*t[2] + u[5]*t[5]
	s3 = modq(s1-s2) * t[3]
	A[i+(1<<L)] = int32(modq(s0 + s1 + s2))
	A[i+(3<<L)] = int32(modq(s0 - s2 + s3))
	A[i+(5<<L)] = int32(modq(s0 - s3 - s1))
}

// muDagger applies the inverse 6-point transform (up to scaling) to the coefficients i, i+m, ..., i+5m
// of A and writes them on a.
func (rntt NumberTheoreticTransformerSextic) muDagger(A, a []int32, i int) {

	L := rntt.logM
	t := &rntt.thetaPow
	modq := rntt.modq

	var u [6]int64
	for k := range u {
		u[k] = int64(A[i+(k<<L)])
	}

	t0 := (u[2] - u[4]) * t[3]
	t1 := modq((u[3] - u[5]) * t[3])

	s0 := u[0] + u[2] + u[4]
	s1 := u[1] + u[3] + u[5]
	a[i+(0<<L)] = int32(modq(s0 - s1*t[6]))
	a[i+(3<<L)] = int32(modq(s0 - s1))

	s0 = u[0] - u[2] - t0
	s1 = u[1] - u[3] - t1
	a[i+(1<<L)] = int32(modq(s0 - s1*t[5]))
	a[i+(4<<L)] = int32(modq(s0 - s1*t[8]))

	s0 = u[0] - u[4] + t0
	s1 = u[1] - u[5] + t1
	a[i+(2<<L)] = int32(modq(s0 - s1*t[4]))
	a[i+(5<<L)] = int32(modq(s0 - s1*t[7]))
}
