package ring

import (
	"golang.org/x/exp/slices"
)

// Poly is the structure that contains the coefficients of a polynomial.
// Whether the coefficients are in the coefficient or the NTT domain is
// tracked by the caller.
type Poly struct {
	Coeffs []int32
}

// NewPoly creates a new polynomial with N coefficients set to zero.
func NewPoly(N int) Poly {
	return Poly{Coeffs: make([]int32, N)}
}

// N returns the number of coefficients of the polynomial.
func (pol Poly) N() int {
	return len(pol.Coeffs)
}

// Zero sets all coefficients of the target polynomial to 0.
func (pol Poly) Zero() {
	for i := range pol.Coeffs {
		pol.Coeffs[i] = 0
	}
}

// CopyNew creates an exact copy of the target polynomial.
func (pol Poly) CopyNew() Poly {
	return Poly{Coeffs: slices.Clone(pol.Coeffs)}
}

// Copy copies the coefficients of p0 on pol.
// Expects the degree of both polynomials to be identical.
func (pol Poly) Copy(p0 Poly) {
	copy(pol.Coeffs, p0.Coeffs)
}

// Equal returns true if the receiver Poly is equal to the provided other Poly.
// This function checks for strict equality between the polynomial coefficients
// (i.e., it does not consider congruence as equality within the ring).
func (pol Poly) Equal(other Poly) bool {
	return slices.Equal(pol.Coeffs, other.Coeffs)
}
