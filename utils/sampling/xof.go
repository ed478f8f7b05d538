package sampling

import (
	"fmt"

	"golang.org/x/crypto/sha3"
)

// SecurityLevel selects the SHAKE and cSHAKE instances used for the
// pseudorandom expansion of seeds.
type SecurityLevel int

const (
	// Level128 uses SHAKE128 and cSHAKE128.
	Level128 = SecurityLevel(128)
	// Level256 uses SHAKE256 and cSHAKE256.
	Level256 = SecurityLevel(256)
)

// Validate returns an error if the security level is neither 128 nor 256.
func (l SecurityLevel) Validate() error {
	if l != Level128 && l != Level256 {
		return fmt.Errorf("invalid security level: %d must be 128 or 256", int(l))
	}
	return nil
}

// Rate returns the rate in bytes of the underlying Keccak sponge.
func (l SecurityLevel) Rate() int {
	if l == Level256 {
		return 136
	}
	return 168
}

// NewShake returns a fresh SHAKE instance.
func (l SecurityLevel) NewShake() sha3.ShakeHash {
	if l == Level256 {
		return sha3.NewShake256()
	}
	return sha3.NewShake128()
}

// NewCShake returns a fresh cSHAKE instance with an empty function name and the
// 16-bit domain separator dmsp, little-endian, as customization string.
func (l SecurityLevel) NewCShake(dmsp uint16) sha3.ShakeHash {
	S := []byte{byte(dmsp), byte(dmsp >> 8)}
	if l == Level256 {
		return sha3.NewCShake256(nil, S)
	}
	return sha3.NewCShake128(nil, S)
}

// Shake fills out with SHAKE(in[0] || in[1] || ...).
func (l SecurityLevel) Shake(out []byte, in ...[]byte) {
	h := l.NewShake()
	for _, b := range in {
		// sha3 hashes never return an error on Write
		_, _ = h.Write(b)
	}
	_, _ = h.Read(out)
}

// CShake fills out with cSHAKE(seed) under the domain separator dmsp.
func (l SecurityLevel) CShake(out []byte, dmsp uint16, seed []byte) {
	h := l.NewCShake(dmsp)
	_, _ = h.Write(seed)
	_, _ = h.Read(out)
}
