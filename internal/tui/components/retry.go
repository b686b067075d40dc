package components

// DefaultMaxRetries caps user-initiated retries.
const DefaultMaxRetries = 3

// RetryGuard counts retry requests and refuses them once the cap is reached.
type RetryGuard struct {
	max      int
	attempts int
}

// NewRetryGuard allows up to max retries.
func NewRetryGuard(max int) RetryGuard {
	if max <= 0 {
		max = DefaultMaxRetries
	}
	return RetryGuard{max: max}
}

// Visible reports whether the retry control should be shown.
func (g RetryGuard) Visible() bool {
	return g.attempts < g.limit()
}

// Attempts returns how many retries have run.
func (g RetryGuard) Attempts() int {
	return g.attempts
}

// Remaining returns the retries left.
func (g RetryGuard) Remaining() int {
	return g.limit() - g.attempts
}

// Try runs fn and counts the attempt unless the cap is reached.
func (g *RetryGuard) Try(fn func()) bool {
	if !g.Visible() {
		return false
	}
	g.attempts++
	if fn != nil {
		fn()
	}
	return true
}

// Reset forgets previous attempts.
func (g *RetryGuard) Reset() {
	g.attempts = 0
}

func (g RetryGuard) limit() int {
	if g.max <= 0 {
		return DefaultMaxRetries
	}
	return g.max
}
