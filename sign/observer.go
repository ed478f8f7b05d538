package sign

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/montanaflynn/stats"
)

// RetryReason identifies the test that caused a rejection loop to restart.
type RetryReason int

const (
	// RetryE is a key generation retry: e failed the BoundE check.
	RetryE = RetryReason(iota)
	// RetryS is a key generation retry: s failed the BoundS check.
	RetryS
	// RetryRejection is a signing retry: z left the interval [-(B-S), B-S].
	RetryRejection
	// RetryCorrectness is a signing retry: w = v - e*c failed the correctness test.
	RetryCorrectness
)

// String returns the name of the reason.
func (r RetryReason) String() string {
	switch r {
	case RetryE:
		return "e"
	case RetryS:
		return "s"
	case RetryRejection:
		return "rejection"
	case RetryCorrectness:
		return "correctness"
	default:
		return "unknown"
	}
}

// Observer is notified of the internal retries of key generation and signing.
// Retries are not errors. Implementations must be safe for concurrent use
// when shared by concurrent calls.
type Observer interface {
	OnKeygenRetry(reason RetryReason)
	OnSignRetry(reason RetryReason)
	OnSigned(attempts int)
}

// NopObserver ignores all notifications.
type NopObserver struct{}

// OnKeygenRetry does nothing.
func (NopObserver) OnKeygenRetry(RetryReason) {}

// OnSignRetry does nothing.
func (NopObserver) OnSignRetry(RetryReason) {}

// OnSigned does nothing.
func (NopObserver) OnSigned(int) {}

// CounterObserver counts the retries and records the number of attempts of each signature.
type CounterObserver struct {
	RetriesE           atomic.Int64
	RetriesS           atomic.Int64
	RetriesRejection   atomic.Int64
	RetriesCorrectness atomic.Int64
	Signatures         atomic.Int64

	mu       sync.Mutex
	attempts []float64
}

// NewCounterObserver creates a new CounterObserver.
func NewCounterObserver() *CounterObserver {
	return &CounterObserver{}
}

func (o *CounterObserver) count(reason RetryReason) {
	switch reason {
	case RetryE:
		o.RetriesE.Add(1)
	case RetryS:
		o.RetriesS.Add(1)
	case RetryRejection:
		o.RetriesRejection.Add(1)
	case RetryCorrectness:
		o.RetriesCorrectness.Add(1)
	}
}

// OnKeygenRetry increments the counter of the reason.
func (o *CounterObserver) OnKeygenRetry(reason RetryReason) {
	o.count(reason)
}

// OnSignRetry increments the counter of the reason.
func (o *CounterObserver) OnSignRetry(reason RetryReason) {
	o.count(reason)
}

// OnSigned records the number of attempts of a signature.
func (o *CounterObserver) OnSigned(attempts int) {
	o.Signatures.Add(1)
	o.mu.Lock()
	o.attempts = append(o.attempts, float64(attempts))
	o.mu.Unlock()
}

// AttemptStats summarizes the number of attempts per signature.
type AttemptStats struct {
	Count  int
	Mean   float64
	Median float64
	P95    float64
	Max    float64
}

// Summary returns the statistics of the recorded numbers of attempts.
// It returns an error if no signature was recorded.
func (o *CounterObserver) Summary() (s AttemptStats, err error) {

	o.mu.Lock()
	data := stats.Float64Data(append([]float64{}, o.attempts...))
	o.mu.Unlock()

	s.Count = data.Len()

	if s.Mean, err = data.Mean(); err != nil {
		return
	}

	if s.Median, err = data.Median(); err != nil {
		return
	}

	if s.P95, err = data.Percentile(95); err != nil {
		return
	}

	s.Max, err = data.Max()

	return
}

// LogObserver writes the notifications on a structured logger at debug level.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates a new LogObserver writing on logger, or on the
// default logger if logger is nil.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger.With("component", "qtesla")}
}

// OnKeygenRetry logs the retry.
func (o *LogObserver) OnKeygenRetry(reason RetryReason) {
	o.logger.LogAttrs(context.Background(), slog.LevelDebug, "keygen retry", slog.String("reason", reason.String()))
}

// OnSignRetry logs the retry.
func (o *LogObserver) OnSignRetry(reason RetryReason) {
	o.logger.LogAttrs(context.Background(), slog.LevelDebug, "sign retry", slog.String("reason", reason.String()))
}

// OnSigned logs the number of attempts.
func (o *LogObserver) OnSigned(attempts int) {
	o.logger.LogAttrs(context.Background(), slog.LevelDebug, "signed", slog.Int("attempts", attempts))
}
