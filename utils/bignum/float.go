// Package bignum implements arbitrary precision helpers used to validate
// fixed-point and floating-point constants.
package bignum

import (
	"fmt"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// NewFloat creates a new big.Float element with "prec" bits of precision.
// Valide types for x are: int, int64, uint64, float64, *big.Int or *big.Float.
func NewFloat(x interface{}, prec uint) (y *big.Float) {

	y = new(big.Float)
	y.SetPrec(prec)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case int:
		y.SetInt64(int64(x))
	case int64:
		y.SetInt64(x)
	case uint64:
		y.SetUint64(x)
	case float64:
		y.SetFloat64(x)
	case *big.Int:
		y.SetInt(x)
	case *big.Float:
		y.Set(x)
	default:
		panic(fmt.Errorf("invalid x.(type): valide types are int, int64, uint64, float64, *big.Int or *big.Float but is %T", x))
	}

	return
}

// Log return ln(x).
func Log(x *big.Float) (ln *big.Float) {
	return bigfloat.Log(x)
}

// Exp returns exp(x).
func Exp(x *big.Float) (exp *big.Float) {
	return bigfloat.Exp(x)
}

// RelativeError returns |x - want| / |want| as a float64.
func RelativeError(x, want *big.Float) float64 {
	diff := new(big.Float).SetPrec(want.Prec()).Sub(x, want)
	diff.Abs(diff)
	diff.Quo(diff, new(big.Float).Abs(want))
	f, _ := diff.Float64()
	return f
}
