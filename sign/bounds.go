package sign

import (
	"github.com/tuneinsight/qtesla/ring"
	"github.com/tuneinsight/qtesla/utils"
)

// CheckES returns true if the sum of the H largest absolute values of the
// coefficients of p exceeds bound, in which case p must be resampled.
// The selection is a fixed sequence of compare-and-swap passes that does
// not depend on the coefficients.
func (p Parameters) CheckES(pol []int16, bound int) (rejected bool) {

	list := make([]int32, len(pol))
	for i, c := range pol {
		list[i] = utils.AbsInt32(int32(c))
	}

	var sum int
	limit := len(list)
	for j := 0; j < p.h; j++ {
		for i := 0; i < limit-1; i++ {
			mask := utils.NegativeMask(list[i+1] - list[i])
			lo := utils.SelectInt32(mask, list[i+1], list[i])
			list[i+1] = utils.SelectInt32(mask, list[i], list[i+1])
			list[i] = lo
		}
		sum += int(list[limit-1])
		limit--
	}

	return sum > bound
}

// TestRejection returns true if a coefficient of z lies outside [-(B-S), B-S].
// All the coefficients are visited whatever their values.
func (p Parameters) TestRejection(z ring.Poly) (rejected bool) {
	bound := int32(p.B() - p.rejectionS)
	var valid int32
	for _, c := range z.Coeffs {
		valid |= bound - utils.AbsInt32(c)
	}
	return utils.NegativeMask(valid) != 0
}

// TestZ returns true if a coefficient of z lies outside [-(B-S), B-S].
// It is used on public signatures and returns at the first violation.
func (p Parameters) TestZ(z ring.Poly) (rejected bool) {
	bound := int32(p.B() - p.rejectionS)
	for _, c := range z.Coeffs {
		if c < -bound || c > bound {
			return true
		}
	}
	return false
}

// TestCorrectness returns true if a coefficient of w, given in [0, Q), is too
// close to a rounding boundary: either its centered value reaches Q/2 - E in
// absolute value, or its D low bits, centered, reach 2^(D-1) - E in absolute
// value. It may return early on the first failing coefficient, which leaks its
// position but not its value.
func (p Parameters) TestCorrectness(w ring.Poly) (rejected bool) {

	q := int32(p.q)
	e := int32(p.rejectionE)
	d := p.d
	half := int32(1) << (d - 1)

	for _, c := range w.Coeffs {

		val := ring.CenterMod(c, q)
		t0 := uint32(^(utils.AbsInt32(val) - (q/2 - e))) >> 31

		left := val
		val = (val + half - 1) >> d
		val = left - (val << d)
		t1 := uint32(^(utils.AbsInt32(val) - (half - e))) >> 31

		if t0|t1 == 1 {
			return true
		}
	}

	return false
}
