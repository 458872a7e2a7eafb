package deadline

import (
	"time"
)

// Mode selects how a timeout is distributed across waits.
type Mode int

const (
	// ModeElapsed bounds the whole logical call by the timeout.
	ModeElapsed Mode = iota

	// ModePerWait applies the full timeout to every wait.
	ModePerWait
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeElapsed:
		return "ELAPSED"
	case ModePerWait:
		return "PER_WAIT"
	default:
		return "UNKNOWN"
	}
}

// Kind identifies what a wait is for. It selects the timeout error.
type Kind int

const (
	KindConnect Kind = iota
	KindRead
	KindWrite
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindConnect:
		return "connect"
	case KindRead:
		return "read"
	case KindWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Err returns the timeout error for this kind of wait.
func (k Kind) Err() error {
	switch k {
	case KindConnect:
		return ErrConnectTimeout
	case KindWrite:
		return ErrWriteTimeout
	default:
		return ErrReadTimeout
	}
}

// Clock returns the current time. Tests substitute a fake clock.
type Clock func() time.Time

// Option configures a Budget.
type Option func(*Budget)

// WithClock overrides the wall clock.
func WithClock(clock Clock) Option {
	return func(b *Budget) {
		if clock != nil {
			b.now = clock
		}
	}
}

// Budget tracks the time left for one logical operation.
// A Budget is not safe for concurrent use.
type Budget struct {
	timeout time.Duration
	mode    Mode
	start   time.Time
	now     Clock
	expired bool
}

// New starts a budget of the given timeout. The clock starts immediately.
func New(timeout time.Duration, mode Mode, opts ...Option) *Budget {
	b := &Budget{
		timeout: timeout,
		mode:    mode,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.start = b.now()
	return b
}

// Unbounded reports whether waits may last indefinitely.
func (b *Budget) Unbounded() bool {
	return b.timeout <= 0
}

// Timeout returns the configured timeout.
func (b *Budget) Timeout() time.Duration {
	return b.timeout
}

// Mode returns the accounting mode.
func (b *Budget) Mode() Mode {
	return b.mode
}

// Elapsed returns the time since the budget started.
func (b *Budget) Elapsed() time.Duration {
	return b.now().Sub(b.start)
}

// Remaining returns what is left of the timeout, never negative.
// For an unbounded budget it returns 0.
func (b *Budget) Remaining() time.Duration {
	if b.Unbounded() || b.expired {
		return 0
	}
	rem := b.timeout - b.Elapsed()
	if rem <= 0 {
		b.expired = true
		return 0
	}
	return rem
}

// Expired reports whether the budget is spent. Per-wait budgets never expire
// as a whole; each wait is bounded on its own.
func (b *Budget) Expired() bool {
	if b.Unbounded() || b.mode == ModePerWait {
		return false
	}
	return b.Remaining() == 0
}

// Next returns the bound for the next wait of the given kind.
// A zero bound with a nil error means the wait is unbounded.
func (b *Budget) Next(kind Kind) (time.Duration, error) {
	if b.Unbounded() {
		return 0, nil
	}
	if b.mode == ModePerWait {
		return b.timeout, nil
	}
	rem := b.Remaining()
	if rem == 0 {
		return 0, kind.Err()
	}
	return rem, nil
}

// Deadline converts the next wait bound into an absolute point in time.
// The zero time means no deadline.
func (b *Budget) Deadline(kind Kind) (time.Time, error) {
	bound, err := b.Next(kind)
	if err != nil {
		return time.Time{}, err
	}
	if bound == 0 {
		return time.Time{}, nil
	}
	return b.now().Add(bound), nil
}
