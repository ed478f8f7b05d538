package ring

import (
	"math/bits"

	"github.com/tuneinsight/qtesla/utils/sampling"
)

// EncodeChallenge maps the hash value cBin to a challenge of degree N with h
// non-zero coefficients in {-1, 1}.
// Positions are read as big-endian 16-bit values masked to the next power of
// two of N; out-of-range and already used positions are skipped. Each
// candidate consumes three bytes of cSHAKE128 output, the third one giving
// the sign.
func EncodeChallenge(cBin []byte, N, h int) (c Challenge) {

	level := sampling.Level128
	rate := level.Rate()
	mask := 1<<bits.Len(uint(N-1)) - 1

	r := make([]byte, rate)
	var dmsp uint16
	level.CShake(r, dmsp, cBin)
	dmsp++

	c.Pos = make([]int, 0, h)
	c.Sign = make([]int8, 0, h)
	used := make([]bool, N)

	for cnt := 0; len(c.Pos) < h; cnt += 3 {

		if cnt > rate-3 {
			level.CShake(r, dmsp, cBin)
			dmsp++
			cnt = 0
		}

		pos := (int(r[cnt])<<8 | int(r[cnt+1])) & mask

		if pos < N && !used[pos] {
			used[pos] = true
			c.Pos = append(c.Pos, pos)
			if r[cnt+2]&1 == 1 {
				c.Sign = append(c.Sign, -1)
			} else {
				c.Sign = append(c.Sign, 1)
			}
		}
	}

	return
}
