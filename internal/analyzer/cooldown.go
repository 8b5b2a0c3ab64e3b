package analyzer

import (
	"time"

	"github.com/benedict-anokye-davies/glance/internal/models"
)

// cooldownTracker suppresses repeated suggestion emissions. The key is the
// suggestion type, not its content: two differently-worded suggestions of
// the same type inside the window suppress each other. That mirrors the
// intended anti-spam behavior.
type cooldownTracker struct {
	window   time.Duration
	lastEmit map[models.SuggestionType]time.Time
}

func newCooldownTracker(window time.Duration) *cooldownTracker {
	return &cooldownTracker{
		window:   window,
		lastEmit: make(map[models.SuggestionType]time.Time),
	}
}

// ShouldEmit reports whether a suggestion of this type may be emitted at
// now, and when it may, records the emission (resetting the type's timer).
func (c *cooldownTracker) ShouldEmit(t models.SuggestionType, now time.Time) bool {
	if last, ok := c.lastEmit[t]; ok && now.Sub(last) < c.window {
		return false
	}
	c.lastEmit[t] = now
	return true
}
