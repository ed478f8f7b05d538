// Package buffer implements the bit-exact encoding of polynomials: an
// LSB-first bit stream over byte slices, generic packers for signed and
// unsigned coefficients of any width, and a fixed-size byte buffer used to
// serialize keys.
package buffer

import (
	"fmt"
	"io"
)

// Buffer is a simple []byte-based buffer that implements io.Writer and
// io.Reader. This type assumes that its backing slice has a fixed size and
// won't attempt to extend it. Instead, writes beyond capacity will result
// in an error.
type Buffer struct {
	buf []byte
	n   int
	off int
}

// NewBuffer creates a new Buffer struct with buff as a backing
// []byte. The read and write offset are initialized at buff[0].
// Hence, writing new data will overwrite the content of buff.
func NewBuffer(buff []byte) *Buffer {
	b := new(Buffer)
	b.buf = buff
	return b
}

// NewBufferSize creates a new Buffer with size capacity.
func NewBufferSize(size int) *Buffer {
	b := new(Buffer)
	b.buf = make([]byte, size)
	return b
}

// Write writes p into b. It returns the number of bytes written
// and an error if attempting to write passed the initial capacity
// of the buffer.
func (b *Buffer) Write(p []byte) (n int, err error) {
	if len(p)+b.n > len(b.buf) {
		return 0, fmt.Errorf("buffer too small: cannot write %d bytes, %d available", len(p), b.Available())
	}
	inc := copy(b.buf[b.n:], p)
	b.n += inc
	return inc, nil
}

// Available returns the number of bytes available for writes on the buffer.
func (b *Buffer) Available() int {
	return len(b.buf) - b.n
}

// Bytes returns the backing slice.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Reset re-initializes the read and write offsets of b.
func (b *Buffer) Reset() {
	b.n = 0
	b.off = 0
}

// Read reads len(p) bytes from the read offset of b into p. It returns the
// number n of bytes read and an error if n < len(p).
func (b *Buffer) Read(p []byte) (n int, err error) {
	n = copy(p, b.buf[b.off:])
	b.off += n
	if n < len(p) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}

// Size returns the size of the buffer available for read.
func (b *Buffer) Size() int {
	return len(b.buf) - b.off
}

// Next returns the next n bytes as a reslice of the internal buffer and
// advances the read offset. It returns an error if fewer than n bytes remain.
func (b *Buffer) Next(n int) ([]byte, error) {
	if b.off+n > len(b.buf) {
		return nil, io.ErrUnexpectedEOF
	}
	p := b.buf[b.off : b.off+n]
	b.off += n
	return p, nil
}
