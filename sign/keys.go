package sign

import (
	"crypto"
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"
	"github.com/zeebo/blake3"

	"github.com/tuneinsight/qtesla/ring"
	"github.com/tuneinsight/qtesla/utils"
	"github.com/tuneinsight/qtesla/utils/buffer"
)

// SecretKey is a type for qTESLA secret keys: the small polynomials s and
// e_1, ..., e_K and the seeds of the public polynomials a_k and of the
// signing randomness.
type SecretKey struct {
	params Parameters
	s      []int16
	e      [][]int16
	SeedA  [SeedSize]byte
	SeedY  [SeedSize]byte
}

// PublicKey is a type for qTESLA public keys: the polynomials t_k = a_k*s + e_k
// and the seed of the a_k.
type PublicKey struct {
	params Parameters
	t      [][]int32
	SeedA  [SeedSize]byte
}

// NewSecretKey allocates a new [SecretKey] with zero values.
func NewSecretKey(params Parameters) *SecretKey {
	e := make([][]int16, params.K())
	for k := range e {
		e[k] = make([]int16, params.N())
	}
	return &SecretKey{
		params: params,
		s:      make([]int16, params.N()),
		e:      e,
	}
}

// NewPublicKey allocates a new [PublicKey] with zero values.
func NewPublicKey(params Parameters) *PublicKey {
	t := make([][]int32, params.K())
	for k := range t {
		t[k] = make([]int32, params.N())
	}
	return &PublicKey{
		params: params,
		t:      t,
	}
}

// Parameters returns the parameters of the key.
func (sk *SecretKey) Parameters() Parameters {
	return sk.params
}

// Equal performs a deep equality.
func (sk *SecretKey) Equal(other *SecretKey) bool {
	return sk.params.Equal(&other.params) && cmp.Equal(sk.s, other.s) && cmp.Equal(sk.e, other.e) && sk.SeedA == other.SeedA && sk.SeedY == other.SeedY
}

// BinarySize returns the serialized size of the object in bytes.
func (sk *SecretKey) BinarySize() int {
	return sk.params.SecretKeySize()
}

// polys returns s followed by the e_k.
func (sk *SecretKey) polys() [][]int16 {
	return append([][]int16{sk.s}, sk.e...)
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
// The layout is pack(s, SBits) || pack(e_1, SBits) || ... || pack(e_K, SBits) || SeedA || SeedY.
func (sk *SecretKey) MarshalBinary() (p []byte, err error) {

	buf := buffer.NewBufferSize(sk.BinarySize())
	packed := make([]byte, buffer.PackedSize(sk.params.N(), sk.params.SBits()))

	for _, pol := range sk.polys() {
		if _, err = buffer.PackSigned(packed, pol, sk.params.SBits()); err != nil {
			return nil, err
		}
		if _, err = buf.Write(packed); err != nil {
			return nil, err
		}
	}

	for _, seed := range [][]byte{sk.SeedA[:], sk.SeedY[:]} {
		if _, err = buf.Write(seed); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a slice of bytes generated by [SecretKey.MarshalBinary] on the object.
// The receiver must have been allocated with [NewSecretKey]. It returns [ErrInvalidKey] if s
// or one of the e_k does not satisfy the keygen bounds.
func (sk *SecretKey) UnmarshalBinary(p []byte) (err error) {

	if len(p) != sk.BinarySize() {
		return fmt.Errorf("%w: secret key has %d bytes but %s requires %d", ErrInvalidKey, len(p), sk.params.Name(), sk.BinarySize())
	}

	buf := buffer.NewBuffer(p)
	size := buffer.PackedSize(sk.params.N(), sk.params.SBits())

	for _, pol := range sk.polys() {
		var packed []byte
		if packed, err = buf.Next(size); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
		if _, err = buffer.UnpackSigned(pol, packed, sk.params.SBits()); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
	}

	for _, seed := range [][]byte{sk.SeedA[:], sk.SeedY[:]} {
		if _, err = buf.Read(seed); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
	}

	if sk.params.CheckES(sk.s, sk.params.BoundS()) {
		return fmt.Errorf("%w: s exceeds the keygen bound BoundS=%d", ErrInvalidKey, sk.params.BoundS())
	}

	for k, e := range sk.e {
		if sk.params.CheckES(e, sk.params.BoundE()) {
			return fmt.Errorf("%w: e_%d exceeds the keygen bound BoundE=%d", ErrInvalidKey, k, sk.params.BoundE())
		}
	}

	return nil
}

// WriteTo writes the object on an [io.Writer] and returns the number of bytes written.
func (sk *SecretKey) WriteTo(w io.Writer) (n int64, err error) {
	return writeBinary(w, sk)
}

// ReadFrom reads on the object from an [io.Reader] and returns the number of bytes read.
func (sk *SecretKey) ReadFrom(r io.Reader) (n int64, err error) {
	return readBinary(r, sk, sk.BinarySize())
}

// PublicKey recomputes the public key t_k = a_k*s + e_k of the secret key.
func (sk *SecretKey) PublicKey() *PublicKey {

	r := sk.params.Ring()

	a := ring.NewUniformSampler(r, sk.params.GenA()).ReadVectorNew(sk.SeedA[:], sk.params.K())

	s, e := r.NewPoly(), r.NewPoly()
	utils.ConvertSlice(s.Coeffs, sk.s)

	pk := NewPublicKey(sk.params)
	for k := range a {
		utils.ConvertSlice(e.Coeffs, sk.e[k])
		t := ring.Poly{Coeffs: pk.t[k]}
		r.Mul(a[k], s, t)
		r.AddCorrect(t, e, t)
	}
	pk.SeedA = sk.SeedA

	return pk
}

// Public returns the public key of the secret key.
// It implements the [crypto.Signer] interface.
func (sk *SecretKey) Public() crypto.PublicKey {
	return sk.PublicKey()
}

// Sign signs digest as a message with randomness from rand and returns the detached signature.
// qTESLA hashes the message itself: opts.HashFunc() must be zero.
// It implements the [crypto.Signer] interface.
func (sk *SecretKey) Sign(rand io.Reader, digest []byte, opts crypto.SignerOpts) ([]byte, error) {

	if opts != nil && opts.HashFunc() != 0 {
		return nil, fmt.Errorf("sign.SecretKey.Sign: message must not be pre-hashed, got %v", opts.HashFunc())
	}

	signer, err := NewSigner(sk, WithRandom(rand))
	if err != nil {
		return nil, err
	}

	return signer.SignDetached(digest)
}

// Parameters returns the parameters of the key.
func (pk *PublicKey) Parameters() Parameters {
	return pk.params
}

// Equal performs a deep equality.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.params.Equal(&other.params) && cmp.Equal(pk.t, other.t) && pk.SeedA == other.SeedA
}

// BinarySize returns the serialized size of the object in bytes.
func (pk *PublicKey) BinarySize() int {
	return pk.params.PublicKeySize()
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
// The layout is pack(t_1 || ... || t_K, QLog) || SeedA: the K polynomials form a single
// bit stream.
func (pk *PublicKey) MarshalBinary() (p []byte, err error) {

	buf := buffer.NewBufferSize(pk.BinarySize())

	n := pk.params.N()
	coeffs := make([]int32, pk.params.K()*n)
	for k, t := range pk.t {
		copy(coeffs[k*n:], t)
	}

	packed := make([]byte, buffer.PackedSize(len(coeffs), pk.params.QLog()))
	if _, err = buffer.PackUnsigned(packed, coeffs, pk.params.QLog()); err != nil {
		return nil, err
	}

	if _, err = buf.Write(packed); err != nil {
		return nil, err
	}

	if _, err = buf.Write(pk.SeedA[:]); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a slice of bytes generated by [PublicKey.MarshalBinary] on the object.
// The receiver must have been allocated with [NewPublicKey].
func (pk *PublicKey) UnmarshalBinary(p []byte) (err error) {

	if len(p) != pk.BinarySize() {
		return fmt.Errorf("%w: public key has %d bytes but %s requires %d", ErrInvalidKey, len(p), pk.params.Name(), pk.BinarySize())
	}

	buf := buffer.NewBuffer(p)

	n := pk.params.N()
	coeffs := make([]int32, pk.params.K()*n)

	var packed []byte
	if packed, err = buf.Next(buffer.PackedSize(len(coeffs), pk.params.QLog())); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	if _, err = buffer.UnpackUnsigned(coeffs, packed, pk.params.QLog()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	q := int32(pk.params.Q())
	for i, c := range coeffs {
		if c >= q {
			return fmt.Errorf("%w: coefficient %d of t_%d is %d >= Q=%d", ErrInvalidKey, i%n, i/n, c, q)
		}
	}

	for k, t := range pk.t {
		copy(t, coeffs[k*n:(k+1)*n])
	}

	if _, err = buf.Read(pk.SeedA[:]); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	return nil
}

// WriteTo writes the object on an [io.Writer] and returns the number of bytes written.
func (pk *PublicKey) WriteTo(w io.Writer) (n int64, err error) {
	return writeBinary(w, pk)
}

// ReadFrom reads on the object from an [io.Reader] and returns the number of bytes read.
func (pk *PublicKey) ReadFrom(r io.Reader) (n int64, err error) {
	return readBinary(r, pk, pk.BinarySize())
}

// Fingerprint returns the BLAKE3-256 digest of the encoded public key.
func (pk *PublicKey) Fingerprint() [32]byte {
	p, err := pk.MarshalBinary()
	if err != nil {
		// Unreachable: the buffer is sized by BinarySize.
		panic(err)
	}
	return blake3.Sum256(p)
}

type binaryCodec interface {
	MarshalBinary() ([]byte, error)
	UnmarshalBinary([]byte) error
}

func writeBinary(w io.Writer, obj binaryCodec) (n int64, err error) {
	p, err := obj.MarshalBinary()
	if err != nil {
		return 0, err
	}
	inc, err := w.Write(p)
	return int64(inc), err
}

func readBinary(r io.Reader, obj binaryCodec, size int) (n int64, err error) {

	p := make([]byte, size)
	inc, err := io.ReadFull(r, p)
	if err != nil {
		return int64(inc), fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	return int64(inc), obj.UnmarshalBinary(p)
}
