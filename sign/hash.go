package sign

import (
	"github.com/tuneinsight/qtesla/ring"
)

// HashH returns the challenge digest of the polynomials v_1, ..., v_K, with
// coefficients in [0, Q), and of the message digest hm. Each coefficient is
// centered and its D low bits, centered as well, are removed; the remaining
// high bits of all the polynomials are hashed with hm.
func (p Parameters) HashH(v []ring.Poly, hm []byte) (c [CSize]byte) {

	q := int32(p.q)
	d := p.d
	mask := int32(1)<<d - 1
	half := int32(1) << (d - 1)

	t := make([]byte, len(v)*p.n+len(hm))
	for k := range v {
		for i, x := range v[k].Coeffs {
			x = ring.CenterMod(x, q)
			cL := x & mask
			cL -= ((half - cL) >> 31) & (1 << d)
			t[k*p.n+i] = byte((x - cL) >> d)
		}
	}
	copy(t[len(v)*p.n:], hm)

	p.level.Shake(c[:], t)
	return
}

// hashMessage returns SHAKE(msg) on HMSize bytes.
func (p Parameters) hashMessage(msg []byte) []byte {
	hm := make([]byte, HMSize)
	p.level.Shake(hm, msg)
	return hm
}
