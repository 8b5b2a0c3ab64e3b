package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestRateLimiterAllowsUpToMax(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := newRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow(now), "capture %d should be allowed", i)
		rl.Record(now)
	}

	assert.False(t, rl.Allow(now), "fourth capture in the same window should be denied")
	assert.Equal(t, 3, rl.Count(now))
}

func TestRateLimiterWindowSlides(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := newRateLimiter(2, time.Minute)

	rl.Record(now)
	rl.Record(now.Add(30 * time.Second))
	assert.False(t, rl.Allow(now.Add(45*time.Second)))

	// First record ages out 61s after it was made.
	later := now.Add(61 * time.Second)
	assert.True(t, rl.Allow(later))
	assert.Equal(t, 1, rl.Count(later))
}

func TestRateLimiterAllowDoesNotRecord(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := newRateLimiter(1, time.Minute)

	for i := 0; i < 10; i++ {
		assert.True(t, rl.Allow(now), "peek %d should not consume the budget", i)
	}
	assert.Equal(t, 0, rl.Count(now))

	rl.Record(now)
	assert.False(t, rl.Allow(now))
}

// The sliding-window invariant: no matter how attempts are spaced, the
// number of accepted captures inside any trailing window never exceeds
// the budget.
func TestRateLimiterNeverExceedsBudget(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		max := rapid.IntRange(1, 10).Draw(t, "max")
		rl := newRateLimiter(max, time.Minute)

		now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		var accepted []time.Time

		steps := rapid.IntRange(1, 200).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			gap := rapid.Int64Range(0, 20_000).Draw(t, "gapMillis")
			now = now.Add(time.Duration(gap) * time.Millisecond)

			if rl.Allow(now) {
				rl.Record(now)
				accepted = append(accepted, now)
			}

			inWindow := 0
			cutoff := now.Add(-time.Minute)
			for _, at := range accepted {
				if at.After(cutoff) {
					inWindow++
				}
			}
			if inWindow > max {
				t.Fatalf("window holds %d accepted captures, budget is %d", inWindow, max)
			}
		}
	})
}
