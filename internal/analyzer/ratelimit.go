package analyzer

import "time"

// rateLimiter is a sliding-window counter: at most max accepted captures
// within any trailing window. It is mutated only from the analyzer's
// single cycle path.
type rateLimiter struct {
	window  time.Duration
	max     int
	accepts []time.Time
}

func newRateLimiter(max int, window time.Duration) *rateLimiter {
	return &rateLimiter{window: window, max: max}
}

// Allow reports whether another capture fits in the window ending at now.
// It does not record; callers record only when a capture is actually
// attempted, so skipped cycles carry no penalty.
func (r *rateLimiter) Allow(now time.Time) bool {
	r.prune(now)
	return len(r.accepts) < r.max
}

// Record counts one capture attempt at now.
func (r *rateLimiter) Record(now time.Time) {
	r.prune(now)
	r.accepts = append(r.accepts, now)
}

// Count returns the number of captures in the window ending at now.
func (r *rateLimiter) Count(now time.Time) int {
	r.prune(now)
	return len(r.accepts)
}

func (r *rateLimiter) prune(now time.Time) {
	cutoff := now.Add(-r.window)
	kept := r.accepts[:0]
	for _, t := range r.accepts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	r.accepts = kept
}
