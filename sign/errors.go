package sign

import "errors"

var (
	// ErrSignatureTooShort is returned when a signed message is shorter than a signature.
	ErrSignatureTooShort = errors.New("signature too short")
	// ErrBound is returned when a coefficient of z lies outside [-(B-S), B-S].
	ErrBound = errors.New("signature out of bounds")
	// ErrAuth is returned when the recomputed challenge digest differs from the signed one.
	ErrAuth = errors.New("signature verification failed")
	// ErrInvalidKey is returned when key bytes cannot be decoded.
	ErrInvalidKey = errors.New("invalid key")
)
