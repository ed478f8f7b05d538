package ring

import (
	"math/big"
	"math/bits"
)

//============================
//=== MONTGOMERY REDUCTION ===
//============================

// MRedParams computes the parameter qInv = -(q^-1) mod 2^32,
// required for MRed.
func MRedParams(q uint32) (qInv uint32) {
	qInv = 1
	x := q
	for i := 0; i < 31; i++ {
		qInv *= x
		x *= x
	}
	return -qInv
}

// MRed returns a*2^-32 mod q for a signed 64-bit input a.
// The result lies in [a/2^32, a/2^32 + q), which is [0, 2q) for a in [0, q*2^32).
// The sequence of operations does not depend on the value of a.
func MRed(a, q int64, qInv uint32) int32 {
	u := int64(uint32(a) * qInv)
	return int32((a + u*q) >> 32)
}

// MForm switches a to the Montgomery domain: it returns a*2^32 mod q,
// where r2 = 2^64 mod q.
func MForm(a, q int64, qInv uint32, r2 int64) int32 {
	return MRed(a*r2, q, qInv)
}

//==========================
//=== BARRETT REDUCTION  ===
//==========================

// BRedParams computes floor(2^32/q), required for BRed.
func BRedParams(q uint32) int64 {
	return int64((uint64(1) << 32) / uint64(q))
}

// BRedParams64 computes floor(2^64/q), required for BRed64.
func BRedParams64(q uint64) uint64 {
	rec := new(big.Int).Lsh(big.NewInt(1), 64)
	rec.Div(rec, new(big.Int).SetUint64(q))
	return rec.Uint64()
}

// BRed reduces a 32-bit signed value with a radix of 2^32.
// The result is congruent to a mod q and lies in a small window around [0, q).
func BRed(a int32, q int32, mult int64) int32 {
	u := int32((int64(a) * mult) >> 32)
	return a - u*q
}

// BRed64 reduces a 64-bit signed value with a radix of 2^64 and returns
// the canonical representative in [0, q).
func BRed64(a, q int64, rec uint64) int64 {
	hi, _ := bits.Mul64(uint64(a), rec)
	// signed high word: subtract rec when a is negative.
	hi -= rec & uint64(a>>63)
	a -= int64(hi) * q
	return a + ((a >> 63) & q) - (((q - 1 - a) >> 63) & q)
}

//===============================
//==== CONDITIONAL REDUCTION ====
//===============================

// CRed returns a mod q for a in [-q, 2q).
func CRed(a, q int32) int32 {
	a += (a >> 31) & q
	a -= q
	a += (a >> 31) & q
	return a
}

// CenterMod maps a in [0, q) to its representative in (-q/2, q/2].
func CenterMod(a, q int32) int32 {
	return a - (((q>>1 - a) >> 31) & q)
}

// AddQIfNegative returns a + q if a < 0, else a.
func AddQIfNegative(a, q int32) int32 {
	return a + ((a >> 31) & q)
}
