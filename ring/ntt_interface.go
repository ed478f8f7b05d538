package ring

// NumberTheoreticTransformer is an interface to provide
// flexibility on what type of NTT is used by the struct Ring.
//
// Coefficients are signed 32-bit integers. Only Backward guarantees
// canonical outputs; the other methods return values congruent to the
// exact result and bounded so that they can be chained without overflow.
type NumberTheoreticTransformer interface {
	// Forward writes the forward NTT of p1 on p2.
	Forward(p1, p2 []int32)
	// Backward writes the exact inverse NTT of p1 on p2, with values in [0, q).
	Backward(p1, p2 []int32)
	// BackwardLazy writes the inverse NTT of p1 on p2, where p1 is the output of MulCoeffs.
	// Values are in [-q, 2q).
	BackwardLazy(p1, p2 []int32)
	// MulCoeffs writes the coefficient-wise product of p1 and p2 on p3, where p1 is in
	// the operand form returned by MForm and p2 is the output of Forward.
	MulCoeffs(p1, p2, p3 []int32)
	// MForm maps NTT-domain values in [0, q) of p1 on p2 into the operand form
	// expected by MulCoeffs.
	MForm(p1, p2 []int32)
}
