// Package ring implements the polynomial arithmetic of qTESLA: modular reduction,
// number theoretic transforms, sparse multiplication and the samplers.
package ring

import (
	"fmt"
	"math/bits"
)

// Type is the type of ring used by the cryptographic scheme.
type Type int

// Standard and Sextic are two types of rings.
// Standard is Z_q[X]/(X^N+1) with N a power of two.
// Sextic is Z_q[x, y]/(x^m+1, y^6+y^3+1) with N = 6m.
const (
	Standard = Type(0)
	Sextic   = Type(1)
)

// String returns the string representation of the ring Type.
func (rt Type) String() string {
	switch rt {
	case Standard:
		return "Standard"
	case Sextic:
		return "Sextic"
	default:
		return "Invalid"
	}
}

// Ring is a structure that keeps all the variables required to operate on a polynomial
// represented in this ring. Its tables are computed once at construction and are
// read-only afterwards, so a Ring can be shared between goroutines.
type Ring struct {
	NumberTheoreticTransformer

	ringType Type
	n        int
	logM     int
	modulus  int64
	qLog     int
	qRec     uint64
}

// NewRing creates a new Ring of degree N modulo Q.
// A power-of-two N yields a Standard ring, N = 6*2^k yields a Sextic ring.
func NewRing(N int, Q uint64) (*Ring, error) {

	if N > 0 && N&(N-1) == 0 {
		return NewRingFromType(N, Q, Standard)
	}

	return NewRingFromType(N, Q, Sextic)
}

// NewRingFromType creates a new Ring of degree N modulo Q with the given type.
func NewRingFromType(N int, Q uint64, ringType Type) (r *Ring, err error) {

	qLog := bits.Len64(Q)

	if qLog < 3 || qLog > 27 {
		return nil, fmt.Errorf("invalid modulus: %d must have between 3 and 27 bits", Q)
	}

	r = &Ring{
		ringType: ringType,
		n:        N,
		modulus:  int64(Q),
		qLog:     qLog,
		qRec:     BRedParams64(Q),
	}

	switch ringType {
	case Standard:
		if qLog > 26 {
			return nil, fmt.Errorf("invalid modulus: %d must have at most 26 bits for a standard ring", Q)
		}
		if r.NumberTheoreticTransformer, err = NewNumberTheoreticTransformerStandard(N, Q); err != nil {
			return nil, err
		}
	case Sextic:
		m := N / 6
		if N <= 0 || N%6 != 0 || m&(m-1) != 0 {
			return nil, fmt.Errorf("invalid ring degree: %d is not 6 times a power of two", N)
		}
		r.logM = bits.Len64(uint64(m)) - 1
		if r.NumberTheoreticTransformer, err = NewNumberTheoreticTransformerSextic(r.logM, Q); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("invalid ring type: %d", ringType)
	}

	return r, nil
}

// N returns the ring degree.
func (r *Ring) N() int {
	return r.n
}

// Modulus returns the ring modulus.
func (r *Ring) Modulus() int64 {
	return r.modulus
}

// QLog returns the bit length of the modulus.
func (r *Ring) QLog() int {
	return r.qLog
}

// Type returns the Type of the ring.
func (r *Ring) Type() Type {
	return r.ringType
}

// BlockSize returns m such that N = 6m for a Sextic ring, and N for a Standard ring.
func (r *Ring) BlockSize() int {
	if r.ringType == Sextic {
		return 1 << r.logM
	}
	return r.n
}

// NewPoly creates a new polynomial with all coefficients set to 0.
func (r *Ring) NewPoly() Poly {
	return NewPoly(r.n)
}

// Equal checks if p1 = p2 in the given Ring.
func (r *Ring) Equal(p1, p2 Poly) bool {
	for i := 0; i < r.n; i++ {
		if BRed64(int64(p1.Coeffs[i])-int64(p2.Coeffs[i]), r.modulus, r.qRec) != 0 {
			return false
		}
	}
	return true
}
