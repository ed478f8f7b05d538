package ring

import (
	"fmt"
	"testing"
)

func BenchmarkNTT(b *testing.B) {
	for _, tp := range testParams {
		benchNTT(tp.N, tp.Q, b)
		benchINTT(tp.N, tp.Q, b)
		benchMul(tp.N, tp.Q, b)
	}
}

func benchRing(N int, Q uint64, b *testing.B) (*Ring, Poly) {
	r, err := NewRing(N, Q)
	if err != nil {
		b.Fatal(err)
	}

	seed := make([]byte, 32)
	p := NewUniformSampler(r, 1).ReadNew(seed)
	r.INTT(p, p)

	return r, p
}

func benchNTT(N int, Q uint64, b *testing.B) {
	b.Run(fmt.Sprintf("Forward/N=%d/Q=%d", N, Q), func(b *testing.B) {
		r, p := benchRing(N, Q, b)
		out := r.NewPoly()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			r.NTT(p, out)
		}
	})
}

func benchINTT(N int, Q uint64, b *testing.B) {
	b.Run(fmt.Sprintf("Backward/N=%d/Q=%d", N, Q), func(b *testing.B) {
		r, p := benchRing(N, Q, b)
		out := r.NewPoly()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			r.INTT(p, out)
		}
	})
}

func benchMul(N int, Q uint64, b *testing.B) {
	b.Run(fmt.Sprintf("Mul/N=%d/Q=%d", N, Q), func(b *testing.B) {
		r, p := benchRing(N, Q, b)
		aHat := NewUniformSampler(r, 1).ReadNew(make([]byte, 32))
		out := r.NewPoly()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			r.Mul(aHat, p, out)
		}
	})
}
