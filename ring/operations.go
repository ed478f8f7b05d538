package ring

// Add evaluates p3 = p1 + p2 coefficient-wise without reduction.
func (r *Ring) Add(p1, p2, p3 Poly) {
	for i := 0; i < r.n; i++ {
		p3.Coeffs[i] = p1.Coeffs[i] + p2.Coeffs[i]
	}
}

// Sub evaluates p3 = p1 - p2 coefficient-wise without reduction.
func (r *Ring) Sub(p1, p2, p3 Poly) {
	for i := 0; i < r.n; i++ {
		p3.Coeffs[i] = p1.Coeffs[i] - p2.Coeffs[i]
	}
}

// AddCorrect evaluates p3 = p1 + p2 with the result in [0, q).
// The sum must lie in [-q, 2q).
func (r *Ring) AddCorrect(p1, p2, p3 Poly) {
	q := int32(r.modulus)
	for i := 0; i < r.n; i++ {
		p3.Coeffs[i] = CRed(p1.Coeffs[i]+p2.Coeffs[i], q)
	}
}

// SubCorrect evaluates p3 = p1 - p2 and adds q to the negative coefficients.
// The result is in [0, q) when the difference lies in [-q, q).
func (r *Ring) SubCorrect(p1, p2, p3 Poly) {
	q := int32(r.modulus)
	for i := 0; i < r.n; i++ {
		p3.Coeffs[i] = AddQIfNegative(p1.Coeffs[i]-p2.Coeffs[i], q)
	}
}

// SubReduce evaluates p3 = p1 - p2 mod q with the result in [0, q).
func (r *Ring) SubReduce(p1, p2, p3 Poly) {
	for i := 0; i < r.n; i++ {
		p3.Coeffs[i] = int32(BRed64(int64(p1.Coeffs[i])-int64(p2.Coeffs[i]), r.modulus, r.qRec))
	}
}

// Reduce evaluates p2 = p1 mod q with the result in [0, q).
func (r *Ring) Reduce(p1, p2 Poly) {
	for i := 0; i < r.n; i++ {
		p2.Coeffs[i] = int32(BRed64(int64(p1.Coeffs[i]), r.modulus, r.qRec))
	}
}

// Center maps the coefficients of p1, which must be in [0, q), to (-q/2, q/2] and writes them on p2.
func (r *Ring) Center(p1, p2 Poly) {
	q := int32(r.modulus)
	for i := 0; i < r.n; i++ {
		p2.Coeffs[i] = CenterMod(p1.Coeffs[i], q)
	}
}

// NTT evaluates p2 = NTT(p1).
func (r *Ring) NTT(p1, p2 Poly) {
	r.Forward(p1.Coeffs, p2.Coeffs)
}

// INTT evaluates p2 = INTT(p1) with the result in [0, q).
func (r *Ring) INTT(p1, p2 Poly) {
	r.Backward(p1.Coeffs, p2.Coeffs)
}

// MFormNTT maps an NTT-domain polynomial with coefficients in [0, q) into
// the operand form expected by Mul.
func (r *Ring) MFormNTT(p1, p2 Poly) {
	r.MForm(p1.Coeffs, p2.Coeffs)
}

// Mul evaluates p3 = aHat * p2 in the ring, where aHat is in NTT and operand form
// (see MFormNTT) and p2 is in the coefficient domain. The result is in [0, q).
// p2 and p3 can be the same polynomial.
func (r *Ring) Mul(aHat, p2, p3 Poly) {
	tmp := make([]int32, r.n)
	r.Forward(p2.Coeffs, tmp)
	r.MulCoeffs(aHat.Coeffs, tmp, tmp)
	r.BackwardLazy(tmp, p3.Coeffs)
	q := int32(r.modulus)
	for i := 0; i < r.n; i++ {
		p3.Coeffs[i] = CRed(p3.Coeffs[i], q)
	}
}

// MulNaive evaluates p3 = p1 * p2 in the ring with the schoolbook algorithm.
// Both operands are in the coefficient domain; the result is in [0, q).
// It runs in O(N^2) and serves as a reference for Mul.
func (r *Ring) MulNaive(p1, p2, p3 Poly) {

	q := int32(r.modulus)

	a := make([]int32, r.n)
	b := make([]int32, r.n)
	for i := 0; i < r.n; i++ {
		a[i] = CenterMod(int32(BRed64(int64(p1.Coeffs[i]), r.modulus, r.qRec)), q)
		b[i] = CenterMod(int32(BRed64(int64(p2.Coeffs[i]), r.modulus, r.qRec)), q)
	}

	acc := make([]int64, r.n)
	for i := 0; i < r.n; i++ {
		if a[i] != 0 {
			rotateAccumulate(r, acc, b, i, int64(a[i]))
		}
	}

	for i := 0; i < r.n; i++ {
		p3.Coeffs[i] = int32(BRed64(acc[i], r.modulus, r.qRec))
	}
}
