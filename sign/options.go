package sign

import (
	"github.com/tuneinsight/qtesla/utils/sampling"
)

// Option configures a [KeyGenerator] or a [Signer].
type Option func(*options)

type options struct {
	random   sampling.PRNG
	observer Observer
}

func newOptions(opts []Option) options {
	o := options{observer: NopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	o.random = sampling.Source(o.random)
	return o
}

// WithRandom sets the source of the randomness drawn by key generation and
// signing. The default is crypto/rand.Reader.
func WithRandom(prng sampling.PRNG) Option {
	return func(o *options) {
		o.random = prng
	}
}

// WithObserver sets the observer notified of the retries.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}
