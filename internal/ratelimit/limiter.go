package ratelimit

import (
	"sync"
	"time"
)

// Defaults used by New when no option overrides them.
const (
	DefaultMaxAttempts = 5
	DefaultWindow      = time.Minute
)

// Decision is the outcome of one attempt under a key.
type Decision struct {
	Allowed   bool
	Count     int // attempts inside the window, including this one when allowed
	Limit     int
	Remaining int
	// RetryAfter is how long until another attempt would be allowed.
	// Zero when Allowed.
	RetryAfter time.Duration
}

// Limiter is what callers throttle with. SlidingWindow implements it.
type Limiter interface {
	// IsAllowed records an attempt under key and reports whether it may proceed.
	IsAllowed(key string) bool
	// Decide is IsAllowed with the counts and retry delay behind the answer.
	Decide(key string) Decision
	// Reset forgets every attempt recorded for key.
	Reset(key string)
}

// SlidingWindow caps attempts per key over the most recent window, measured
// from the time of each call. Rejected attempts are not recorded. Keys are
// independent of each other.
type SlidingWindow struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	now         func() time.Time
	attempts    map[string][]time.Time // chronological per key
}

// Option configures a SlidingWindow built by New.
type Option func(*SlidingWindow)

// WithMaxAttempts sets how many attempts fit in one window. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(l *SlidingWindow) {
		if n > 0 {
			l.maxAttempts = n
		}
	}
}

// WithWindow sets the window length. Non-positive values are ignored.
func WithWindow(d time.Duration) Option {
	return func(l *SlidingWindow) {
		if d > 0 {
			l.window = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *SlidingWindow) {
		if now != nil {
			l.now = now
		}
	}
}

// New returns a SlidingWindow allowing DefaultMaxAttempts per DefaultWindow
// unless opts say otherwise.
func New(opts ...Option) *SlidingWindow {
	l := &SlidingWindow{
		maxAttempts: DefaultMaxAttempts,
		window:      DefaultWindow,
		now:         time.Now,
		attempts:    make(map[string][]time.Time),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsAllowed records an attempt under key when it fits in the window and
// reports whether it did.
func (l *SlidingWindow) IsAllowed(key string) bool {
	return l.Decide(key).Allowed
}

// Decide evicts expired attempts for key, then allows and records the new
// attempt if fewer than the maximum remain. A rejected attempt is not
// recorded and carries the delay until the oldest blocking attempt expires.
func (l *SlidingWindow) Decide(key string) Decision {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.recent(key, now)
	if len(recent) >= l.maxAttempts {
		// Store the filtered slice so stale entries don't accumulate.
		l.attempts[key] = recent
		// The entry whose expiry brings the count below the limit.
		gate := recent[len(recent)-l.maxAttempts]
		return Decision{
			Allowed:    false,
			Count:      len(recent),
			Limit:      l.maxAttempts,
			Remaining:  0,
			RetryAfter: l.window - now.Sub(gate),
		}
	}

	recent = append(recent, now)
	l.attempts[key] = recent
	return Decision{
		Allowed:   true,
		Count:     len(recent),
		Limit:     l.maxAttempts,
		Remaining: l.maxAttempts - len(recent),
	}
}

// Reset forgets every attempt recorded for key.
func (l *SlidingWindow) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}

// Prune drops keys whose attempts have all left the window. Returns the
// number of keys removed.
func (l *SlidingWindow) Prune() int {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key := range l.attempts {
		if recent := l.recent(key, now); len(recent) == 0 {
			delete(l.attempts, key)
			removed++
		} else {
			l.attempts[key] = recent
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (l *SlidingWindow) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.attempts)
}

// recent returns the key's attempts still inside the window. Caller holds mu.
func (l *SlidingWindow) recent(key string, now time.Time) []time.Time {
	all := l.attempts[key]
	i := 0
	for i < len(all) && now.Sub(all[i]) >= l.window {
		i++
	}
	if i == 0 {
		return all
	}
	kept := make([]time.Time, len(all)-i)
	copy(kept, all[i:])
	return kept
}
