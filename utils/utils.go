// Package utils implements small generic helpers: branch-free integer
// selections and slice and map utilities.
package utils

// AbsInt32 returns |v| without branching on the value of v.
func AbsInt32(v int32) int32 {
	mask := v >> 31
	return (mask ^ v) - mask
}

// SelectInt32 returns a if mask is all ones and b if mask is zero.
// mask must be either 0 or -1.
func SelectInt32(mask, a, b int32) int32 {
	return (a & mask) | (b &^ mask)
}

// NegativeMask returns -1 if v < 0 and 0 otherwise.
func NegativeMask(v int32) int32 {
	return v >> 31
}
