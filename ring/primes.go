package ring

import (
	"fmt"
	"math/big"
)

// IsPrime applies the Baillie-PSW, which is 100% accurate for numbers bellow 2^64.
func IsPrime(x uint64) bool {
	return new(big.Int).SetUint64(x).ProbablyPrime(0)
}

// ModExp performs the modular exponentiation x^e mod p.
func ModExp(x, e, p uint64) (result uint64) {
	result = 1
	x %= p
	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			result = result * x % p
		}
		x = x * x % p
	}
	return result
}

// ModInverse returns x^-1 mod p for a prime p.
func ModInverse(x, p uint64) uint64 {
	return ModExp(x, p-2, p)
}

// Factors returns the distinct prime factors of m by trial division.
func Factors(m uint64) (factors []uint64) {
	for d := uint64(2); d*d <= m; d++ {
		if m%d == 0 {
			factors = append(factors, d)
			for m%d == 0 {
				m /= d
			}
		}
	}
	if m > 1 {
		factors = append(factors, m)
	}
	return
}

// PrimitiveRoot computes the smallest primitive root of the given prime q.
func PrimitiveRoot(q uint64) (g uint64, err error) {

	if !IsPrime(q) {
		return 0, fmt.Errorf("invalid modulus: %d is not prime", q)
	}

	factors := Factors(q - 1)

	for g = 2; g < q; g++ {
		if CheckPrimitiveRoot(g, q, factors) == nil {
			return g, nil
		}
	}

	return 0, fmt.Errorf("no primitive root found for %d", q)
}

// CheckPrimitiveRoot checks that g is a valid primitive root mod q,
// given the factors of q-1.
func CheckPrimitiveRoot(g, q uint64, factors []uint64) (err error) {
	for _, factor := range factors {
		if ModExp(g, (q-1)/factor, q) == 1 {
			return fmt.Errorf("invalid primitive root: %d^((q-1)/%d) = 1 mod %d", g, factor, q)
		}
	}
	return nil
}

// RootOfUnity returns a primitive nthRoot-th root of unity modulo q.
// nthRoot must divide q-1.
func RootOfUnity(q, nthRoot uint64) (uint64, error) {

	if (q-1)%nthRoot != 0 {
		return 0, fmt.Errorf("invalid modulus: %d is not 1 mod %d", q, nthRoot)
	}

	g, err := PrimitiveRoot(q)
	if err != nil {
		return 0, err
	}

	return ModExp(g, (q-1)/nthRoot, q), nil
}
