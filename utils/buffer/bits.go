package buffer

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// MaxWidth is the largest coefficient width supported by the packers.
const MaxWidth = 32

// PackedSize returns the number of bytes taken by n values of w bits.
func PackedSize(n, w int) int {
	return (n*w + 7) / 8
}

// BatchSize returns the smallest number of w-bit values that fill a whole
// number of bytes, that is lcm(8, w)/w.
func BatchSize(w int) int {
	g := 8
	for b := w; b != 0; g, b = b, g%b {
	}
	return 8 / g
}

// BitWriter writes values of arbitrary width on a byte slice, least
// significant bit first.
type BitWriter struct {
	buf  []byte
	off  int
	acc  uint64
	nacc int
}

// NewBitWriter creates a new BitWriter writing on buf.
func NewBitWriter(buf []byte) *BitWriter {
	return &BitWriter{buf: buf}
}

// WriteBits appends the w least significant bits of v.
// w must be at most MaxWidth.
func (bw *BitWriter) WriteBits(v uint64, w int) {
	bw.acc |= (v & (1<<w - 1)) << bw.nacc
	bw.nacc += w
	for bw.nacc >= 8 {
		bw.buf[bw.off] = byte(bw.acc)
		bw.off++
		bw.acc >>= 8
		bw.nacc -= 8
	}
}

// Flush writes the pending bits, zero-padded to a byte boundary.
func (bw *BitWriter) Flush() {
	if bw.nacc > 0 {
		bw.buf[bw.off] = byte(bw.acc)
		bw.off++
		bw.acc = 0
		bw.nacc = 0
	}
}

// Len returns the number of bytes written so far, including a flushed partial byte.
func (bw *BitWriter) Len() int {
	return bw.off
}

// BitReader reads values of arbitrary width from a byte slice, least
// significant bit first.
type BitReader struct {
	buf  []byte
	off  int
	acc  uint64
	nacc int
}

// NewBitReader creates a new BitReader reading from buf.
func NewBitReader(buf []byte) *BitReader {
	return &BitReader{buf: buf}
}

// ReadBits returns the next w bits. Bits past the end of the slice read as zero.
// w must be at most MaxWidth.
func (br *BitReader) ReadBits(w int) (v uint64) {
	for br.nacc < w {
		if br.off < len(br.buf) {
			br.acc |= uint64(br.buf[br.off]) << br.nacc
		}
		br.off++
		br.nacc += 8
	}
	v = br.acc & (1<<w - 1)
	br.acc >>= w
	br.nacc -= w
	return
}

func checkPack(nbytes, n, w int) error {
	if w < 1 || w > MaxWidth {
		return fmt.Errorf("invalid width: %d must be in [1, %d]", w, MaxWidth)
	}
	if nbytes < PackedSize(n, w) {
		return fmt.Errorf("buffer too small: %d values of %d bits need %d bytes but have %d", n, w, PackedSize(n, w), nbytes)
	}
	return nil
}

// packBatches writes the w-bit values value(0), ..., value(n-1) on dst and
// returns the number of bytes written. Each batch of BatchSize(w) values fills
// a whole number of bytes and is written on its own byte range.
func packBatches(dst []byte, n, w int, value func(i int) uint64) int {

	b := BatchSize(w)
	size := b * w / 8

	var i, off int
	for ; i+b <= n; i += b {
		bw := NewBitWriter(dst[off : off+size])
		for j := i; j < i+b; j++ {
			bw.WriteBits(value(j), w)
		}
		off += size
	}

	bw := NewBitWriter(dst[off:])
	for ; i < n; i++ {
		bw.WriteBits(value(i), w)
	}
	bw.Flush()

	return off + bw.Len()
}

// unpackBatches reads n w-bit values from src, batch by batch, and passes
// them to set.
func unpackBatches(src []byte, n, w int, set func(i int, v uint64)) {

	b := BatchSize(w)
	size := b * w / 8

	var i, off int
	for ; i+b <= n; i += b {
		br := NewBitReader(src[off : off+size])
		for j := i; j < i+b; j++ {
			set(j, br.ReadBits(w))
		}
		off += size
	}

	br := NewBitReader(src[off:])
	for ; i < n; i++ {
		set(i, br.ReadBits(w))
	}
}

// PackSigned writes the w-bit two's complement encodings of src on dst and
// returns the number of bytes written. Values are truncated to w bits.
func PackSigned[T constraints.Signed](dst []byte, src []T, w int) (n int, err error) {
	if err = checkPack(len(dst), len(src), w); err != nil {
		return
	}
	return packBatches(dst, len(src), w, func(i int) uint64 { return uint64(int64(src[i])) }), nil
}

// UnpackSigned reads len(dst) w-bit two's complement values from src,
// sign-extended from bit w-1, and returns the number of bytes read.
func UnpackSigned[T constraints.Signed](dst []T, src []byte, w int) (n int, err error) {
	if err = checkPack(len(src), len(dst), w); err != nil {
		return
	}
	unpackBatches(src, len(dst), w, func(i int, v uint64) { dst[i] = T(int64(v<<(64-w)) >> (64 - w)) })
	return PackedSize(len(dst), w), nil
}

// PackUnsigned writes the w least significant bits of each value of src on
// dst and returns the number of bytes written.
func PackUnsigned[T constraints.Integer](dst []byte, src []T, w int) (n int, err error) {
	if err = checkPack(len(dst), len(src), w); err != nil {
		return
	}
	return packBatches(dst, len(src), w, func(i int) uint64 { return uint64(src[i]) }), nil
}

// UnpackUnsigned reads len(dst) w-bit unsigned values from src and returns
// the number of bytes read.
func UnpackUnsigned[T constraints.Integer](dst []T, src []byte, w int) (n int, err error) {
	if err = checkPack(len(src), len(dst), w); err != nil {
		return
	}
	unpackBatches(src, len(dst), w, func(i int, v uint64) { dst[i] = T(v) })
	return PackedSize(len(dst), w), nil
}
