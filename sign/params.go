package sign

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"math/bits"
	"sync"

	"github.com/google/go-cmp/cmp"

	"github.com/tuneinsight/qtesla/ring"
	"github.com/tuneinsight/qtesla/utils/buffer"
	"github.com/tuneinsight/qtesla/utils/sampling"
)

const (
	// SeedSize is the byte size of the seeds seed_e, seed_s, seed_a and seed_y.
	SeedSize = 32
	// RandomSize is the byte size of the randomness drawn by key generation and signing.
	RandomSize = 32
	// CSize is the byte size of the challenge digest c.
	CSize = 32
	// HMSize is the byte size of the message digest.
	HMSize = 64
	// MaxK is the largest supported number of public polynomials.
	MaxK = 8
)

// ParametersLiteral is a literal representation of qTESLA parameters. It has public fields and
// is used to express unchecked user-defined parameters literally into Go programs.
// The [NewParametersFromLiteral] function is used to generate the actual checked parameters
// from the literal representation.
//
// Exactly one of LogN (power-of-two ring of degree 2^LogN) and LogM (sextic ring
// of degree 6*2^LogM) must be set. The rejection bounds default to the keygen
// bounds for a power-of-two ring and to twice the keygen bounds for a sextic ring.
//
// K is the number of public polynomials a_k, each with its own error e_k and
// public polynomial t_k = a_k*s + e_k. It defaults to 1.
//
// Sigma and Xi are informative: the Gaussian sampler is fully defined by the
// table named by Gaussian. A literal without Gaussian table describes a ring-only
// parameter set that supports the polynomial arithmetic and the sampling of a, y
// and of the challenges but cannot generate keys.
type ParametersLiteral struct {
	Name          string
	LogN          int `json:",omitempty"`
	LogM          int `json:",omitempty"`
	Q             uint64
	BBits         int
	SBits         int
	H             int
	D             int
	GenA          int
	K             int `json:",omitempty"`
	BoundE        int
	BoundS        int
	RejectionE    int     `json:",omitempty"`
	RejectionS    int     `json:",omitempty"`
	Sigma         float64 `json:",omitempty"`
	Xi            int     `json:",omitempty"`
	Gaussian      string  `json:",omitempty"`
	SecurityLevel int
}

// Parameters represents a set of qTESLA parameters. Its fields are private and
// immutable. See [ParametersLiteral] for user-specified parameters.
type Parameters struct {
	name       string
	n          int
	logN       int
	logM       int
	ringType   ring.Type
	q          uint64
	qLog       int
	bBits      int
	sBits      int
	h          int
	d          int
	genA       int
	k          int
	boundE     int
	boundS     int
	rejectionE int
	rejectionS int
	sigma      float64
	xi         int
	gaussian   *ring.GaussianTable
	level      sampling.SecurityLevel
	ringQ      *ringHolder
}

// ringHolder builds the ring of a parameter set on first use. It is shared by
// all the copies of a Parameters value.
type ringHolder struct {
	once   sync.Once
	ringQ  *ring.Ring
	err    error
	builds int
}

// NewParametersFromLiteral instantiates a set of qTESLA parameters from a [ParametersLiteral] specification.
// It returns the empty parameters [Parameters]{} and a non-nil error if the specified parameters are invalid.
func NewParametersFromLiteral(pl ParametersLiteral) (params Parameters, err error) {

	params = Parameters{
		name:       pl.Name,
		logN:       pl.LogN,
		logM:       pl.LogM,
		q:          pl.Q,
		qLog:       bits.Len64(pl.Q),
		bBits:      pl.BBits,
		sBits:      pl.SBits,
		h:          pl.H,
		d:          pl.D,
		genA:       pl.GenA,
		k:          pl.K,
		boundE:     pl.BoundE,
		boundS:     pl.BoundS,
		rejectionE: pl.RejectionE,
		rejectionS: pl.RejectionS,
		sigma:      pl.Sigma,
		xi:         pl.Xi,
		level:      sampling.SecurityLevel(pl.SecurityLevel),
		ringQ:      new(ringHolder),
	}

	switch {
	case pl.LogN != 0 && pl.LogM != 0:
		return Parameters{}, fmt.Errorf("sign.NewParametersFromLiteral: both LogN and LogM fields are set")
	case pl.LogN != 0:
		if pl.LogN < 1 || pl.LogN > 16 {
			return Parameters{}, fmt.Errorf("sign.NewParametersFromLiteral: LogN=%d must be in [1, 16]", pl.LogN)
		}
		params.ringType = ring.Standard
		params.n = 1 << pl.LogN
	case pl.LogM != 0:
		if pl.LogM < 1 || pl.LogM > 12 {
			return Parameters{}, fmt.Errorf("sign.NewParametersFromLiteral: LogM=%d must be in [1, 12]", pl.LogM)
		}
		params.ringType = ring.Sextic
		params.n = 6 << pl.LogM
	default:
		return Parameters{}, fmt.Errorf("sign.NewParametersFromLiteral: both LogN and LogM fields are empty")
	}

	if params.k == 0 {
		params.k = 1
	}

	if params.rejectionE == 0 {
		params.rejectionE = params.boundE * params.rejectionFactor()
	}

	if params.rejectionS == 0 {
		params.rejectionS = params.boundS * params.rejectionFactor()
	}

	if err = params.checkModulus(); err != nil {
		return Parameters{}, fmt.Errorf("sign.NewParametersFromLiteral: %w", err)
	}

	if err = params.checkWidths(); err != nil {
		return Parameters{}, fmt.Errorf("sign.NewParametersFromLiteral: %w", err)
	}

	if err = params.checkBounds(); err != nil {
		return Parameters{}, fmt.Errorf("sign.NewParametersFromLiteral: %w", err)
	}

	if err = params.level.Validate(); err != nil {
		return Parameters{}, fmt.Errorf("sign.NewParametersFromLiteral: %w", err)
	}

	if pl.Gaussian != "" {
		if params.gaussian, err = ring.GaussianTableByName(pl.Gaussian); err != nil {
			return Parameters{}, fmt.Errorf("sign.NewParametersFromLiteral: %w", err)
		}
		if err = params.gaussian.Check(); err != nil {
			return Parameters{}, fmt.Errorf("sign.NewParametersFromLiteral: %w", err)
		}
	}

	return params, nil
}

// rejectionFactor returns the largest number of coefficients of a polynomial that
// contribute to a single coefficient of its product with a monomial.
func (p Parameters) rejectionFactor() int {
	if p.ringType == ring.Sextic {
		return 2
	}
	return 1
}

func (p Parameters) checkModulus() error {

	if p.qLog < 3 || p.qLog > 27 || (p.ringType == ring.Standard && p.qLog > 26) {
		return fmt.Errorf("invalid modulus: Q=%d has %d bits, which is not supported for a %s ring", p.q, p.qLog, p.ringType)
	}

	if !ring.IsPrime(p.q) {
		return fmt.Errorf("invalid modulus: Q=%d is not prime", p.q)
	}

	var order uint64
	if p.ringType == ring.Standard {
		order = uint64(2 * p.n)
	} else {
		order = uint64(18 * (p.n / 6))
	}

	if (p.q-1)%order != 0 {
		return fmt.Errorf("invalid modulus: Q=%d is not 1 mod %d", p.q, order)
	}

	return nil
}

func (p Parameters) checkWidths() error {

	if p.h <= 0 || p.h > p.n {
		return fmt.Errorf("invalid challenge weight: H=%d must be in [1, N=%d]", p.h, p.n)
	}

	if p.bBits < 1 || p.bBits+1 > p.d {
		return fmt.Errorf("invalid BBits: BBits+1=%d must be in [2, D=%d]", p.bBits+1, p.d)
	}

	if p.d >= p.qLog {
		return fmt.Errorf("invalid D: D=%d must be smaller than QLog=%d", p.d, p.qLog)
	}

	if p.sBits < 2 || p.sBits > 16 {
		return fmt.Errorf("invalid SBits: SBits=%d must be in [2, 16]", p.sBits)
	}

	if p.genA < 1 {
		return fmt.Errorf("invalid GenA: GenA=%d must be positive", p.genA)
	}

	if p.k < 1 || p.k > MaxK {
		return fmt.Errorf("invalid K: K=%d must be in [1, %d]", p.k, MaxK)
	}

	return nil
}

func (p Parameters) checkBounds() error {

	if p.boundE <= 0 || p.boundS <= 0 {
		return fmt.Errorf("invalid keygen bounds: BoundE=%d and BoundS=%d must be positive", p.boundE, p.boundS)
	}

	factor := p.rejectionFactor()

	if p.rejectionE < factor*p.boundE || p.rejectionS < factor*p.boundS {
		return fmt.Errorf("invalid rejection bounds: RejectionE=%d and RejectionS=%d must be at least %d times the keygen bounds", p.rejectionE, p.rejectionS, factor)
	}

	if p.rejectionS >= p.B() {
		return fmt.Errorf("invalid rejection bound: RejectionS=%d must be smaller than B=%d", p.rejectionS, p.B())
	}

	if p.rejectionE >= 1<<(p.d-1) {
		return fmt.Errorf("invalid rejection bound: RejectionE=%d must be smaller than 2^(D-1)=%d", p.rejectionE, 1<<(p.d-1))
	}

	return nil
}

// ParametersLiteral returns the [ParametersLiteral] of the target [Parameters].
func (p Parameters) ParametersLiteral() ParametersLiteral {
	pl := ParametersLiteral{
		Name:          p.name,
		LogN:          p.logN,
		LogM:          p.logM,
		Q:             p.q,
		BBits:         p.bBits,
		SBits:         p.sBits,
		H:             p.h,
		D:             p.d,
		GenA:          p.genA,
		K:             p.k,
		BoundE:        p.boundE,
		BoundS:        p.boundS,
		RejectionE:    p.rejectionE,
		RejectionS:    p.rejectionS,
		Sigma:         p.sigma,
		Xi:            p.xi,
		SecurityLevel: int(p.level),
	}
	if p.gaussian != nil {
		pl.Gaussian = p.gaussian.Name
	}
	return pl
}

// Name returns the name of the parameter set.
func (p Parameters) Name() string {
	return p.name
}

// N returns the ring degree.
func (p Parameters) N() int {
	return p.n
}

// RingType returns the type of the ring.
func (p Parameters) RingType() ring.Type {
	return p.ringType
}

// Q returns the modulus.
func (p Parameters) Q() uint64 {
	return p.q
}

// QLog returns the bit length of the modulus.
func (p Parameters) QLog() int {
	return p.qLog
}

// QInv returns -Q^-1 mod 2^32.
func (p Parameters) QInv() uint32 {
	return ring.MRedParams(uint32(p.q))
}

// R returns the Montgomery constant 2^32 mod Q.
func (p Parameters) R() uint64 {
	return (uint64(1) << 32) % p.q
}

// R2InvN returns 2^64 * N^-1 mod Q.
func (p Parameters) R2InvN() uint64 {
	Q := new(big.Int).SetUint64(p.q)
	r2 := new(big.Int).Lsh(big.NewInt(1), 64)
	nInv := new(big.Int).ModInverse(big.NewInt(int64(p.n)), Q)
	r2.Mul(r2, nInv)
	return r2.Mod(r2, Q).Uint64()
}

// BarrettMult returns floor(2^32/Q).
func (p Parameters) BarrettMult() int64 {
	return ring.BRedParams(uint32(p.q))
}

// QRec returns floor(2^64/Q).
func (p Parameters) QRec() uint64 {
	return ring.BRedParams64(p.q)
}

// B returns the bound 2^BBits - 1 on the coefficients of y.
func (p Parameters) B() int {
	return 1<<p.bBits - 1
}

// BBits returns the bit size of the bound B.
func (p Parameters) BBits() int {
	return p.bBits
}

// SBits returns the width of the coefficients of s and e in the secret key encoding.
func (p Parameters) SBits() int {
	return p.sBits
}

// H returns the number of non-zero coefficients of a challenge.
func (p Parameters) H() int {
	return p.h
}

// D returns the number of rounded bits.
func (p Parameters) D() int {
	return p.d
}

// GenA returns the number of XOF blocks initially drawn to sample a.
func (p Parameters) GenA() int {
	return p.genA
}

// K returns the number of public polynomials.
func (p Parameters) K() int {
	return p.k
}

// BoundE returns the keygen bound on the sum of the H largest coefficients of e.
func (p Parameters) BoundE() int {
	return p.boundE
}

// BoundS returns the keygen bound on the sum of the H largest coefficients of s.
func (p Parameters) BoundS() int {
	return p.boundS
}

// RejectionE returns the bound on the coefficients of e*c used by the correctness test.
func (p Parameters) RejectionE() int {
	return p.rejectionE
}

// RejectionS returns the bound on the coefficients of s*c used by the rejection test.
func (p Parameters) RejectionS() int {
	return p.rejectionS
}

// Sigma returns the standard deviation of the Gaussian distribution.
func (p Parameters) Sigma() float64 {
	return p.sigma
}

// SecurityLevel returns the security level selecting the SHAKE and cSHAKE instances.
func (p Parameters) SecurityLevel() sampling.SecurityLevel {
	return p.level
}

// GaussianTable returns the table of the Gaussian sampler, or nil for a ring-only parameter set.
func (p Parameters) GaussianTable() *ring.GaussianTable {
	return p.gaussian
}

// CanSign returns true if the parameter set defines a Gaussian sampler and thus supports
// key generation and signing.
func (p Parameters) CanSign() bool {
	return p.gaussian != nil
}

// SecretKeySize returns the byte size of an encoded secret key.
func (p Parameters) SecretKeySize() int {
	return (1+p.k)*buffer.PackedSize(p.n, p.sBits) + 2*SeedSize
}

// PublicKeySize returns the byte size of an encoded public key.
func (p Parameters) PublicKeySize() int {
	return buffer.PackedSize(p.k*p.n, p.qLog) + SeedSize
}

// SignatureSize returns the byte size of a detached signature.
func (p Parameters) SignatureSize() int {
	return buffer.PackedSize(p.n, p.d) + CSize
}

// Ring returns the ring of the parameter set. It is built on the first call and
// shared by all the copies of the receiver. It is safe for concurrent use.
func (p Parameters) Ring() *ring.Ring {
	h := p.ringQ
	h.once.Do(func() {
		h.builds++
		h.ringQ, h.err = ring.NewRingFromType(p.n, p.q, p.ringType)
	})
	if h.err != nil {
		// Unreachable for parameters returned by NewParametersFromLiteral.
		panic(fmt.Errorf("sign.Parameters.Ring: %w", h.err))
	}
	return h.ringQ
}

// Equal returns true if the receiver and other define the same parameter set.
func (p Parameters) Equal(other *Parameters) bool {
	return cmp.Equal(p.ParametersLiteral(), other.ParametersLiteral())
}

// MarshalBinary returns a []byte representation of the parameter set.
// This representation corresponds to the [Parameters.MarshalJSON] representation.
func (p Parameters) MarshalBinary() ([]byte, error) {
	return p.MarshalJSON()
}

// UnmarshalBinary decodes a slice of bytes on the target Parameters.
func (p *Parameters) UnmarshalBinary(data []byte) (err error) {
	return p.UnmarshalJSON(data)
}

// MarshalJSON returns a JSON representation of this parameter set. See Marshal from the [encoding/json] package.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameter. See Unmarshal from the [encoding/json] package.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var pl ParametersLiteral
	if err = json.Unmarshal(data, &pl); err != nil {
		return err
	}
	*p, err = NewParametersFromLiteral(pl)
	return
}

// WriteTo writes the JSON representation of the parameter set on w.
func (p Parameters) WriteTo(w io.Writer) (n int64, err error) {
	data, err := p.MarshalJSON()
	if err != nil {
		return 0, err
	}
	inc, err := w.Write(data)
	return int64(inc), err
}

// String returns the name of the parameter set and its main dimensions.
func (p Parameters) String() string {
	return fmt.Sprintf("%s(N=%d, Q=%d, H=%d, D=%d, K=%d)", p.name, p.n, p.q, p.h, p.d, p.k)
}
