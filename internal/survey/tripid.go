package survey

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// DefaultTripIDPrefix is used when no prefix is configured.
const DefaultTripIDPrefix = "TRP"

// Minter issues trip identifiers.
type Minter interface {
	Mint() string
}

// MinterFunc adapts a function into a Minter.
type MinterFunc func() string

// Mint executes f().
func (f MinterFunc) Mint() string {
	return f()
}

// SequenceMinter builds identifiers from a prefix, the low six digits of the
// clock in milliseconds, and a per-minter sequence number. The sequence keeps
// identifiers distinct even when the clock does not advance between calls.
type SequenceMinter struct {
	prefix string
	clock  func() time.Time
	seq    atomic.Uint64
}

// MinterOption customizes a SequenceMinter.
type MinterOption func(*SequenceMinter)

// WithClock injects a deterministic clock (primarily for tests).
func WithClock(clock func() time.Time) MinterOption {
	return func(m *SequenceMinter) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// NewSequenceMinter returns a minter for the given prefix.
func NewSequenceMinter(prefix string, opts ...MinterOption) *SequenceMinter {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultTripIDPrefix
	}
	m := &SequenceMinter{
		prefix: strings.ToUpper(prefix),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Prefix returns the prefix every identifier starts with.
func (m *SequenceMinter) Prefix() string {
	return m.prefix
}

// Mint returns the next identifier, e.g. TRP482913-0001.
func (m *SequenceMinter) Mint() string {
	n := m.seq.Add(1)
	stamp := m.clock().UnixMilli() % 1_000_000
	if stamp < 0 {
		stamp = -stamp
	}
	return fmt.Sprintf("%s%06d-%04d", m.prefix, stamp, n)
}
