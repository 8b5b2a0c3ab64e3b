package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/benedict-anokye-davies/glance/internal/models"
)

func TestCooldownSuppressesRepeatedType(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := newCooldownTracker(5 * time.Minute)

	assert.True(t, c.ShouldEmit(models.SuggestionFixError, now))
	assert.False(t, c.ShouldEmit(models.SuggestionFixError, now.Add(time.Minute)))
	assert.False(t, c.ShouldEmit(models.SuggestionFixError, now.Add(4*time.Minute)))
}

func TestCooldownKeyedByTypeNotContent(t *testing.T) {
	// Two suggestions of the same type with completely different wording
	// still share one cooldown slot. The tracker never sees titles at
	// all, which is the point: it throttles categories, not messages.
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := newCooldownTracker(5 * time.Minute)

	assert.True(t, c.ShouldEmit(models.SuggestionRefactor, now))
	assert.False(t, c.ShouldEmit(models.SuggestionRefactor, now.Add(time.Second)),
		"second refactor suggestion inside the window must be suppressed regardless of wording")
}

func TestCooldownIndependentPerType(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := newCooldownTracker(5 * time.Minute)

	assert.True(t, c.ShouldEmit(models.SuggestionFixError, now))
	assert.True(t, c.ShouldEmit(models.SuggestionWorkflow, now))
	assert.True(t, c.ShouldEmit(models.SuggestionResearch, now))
}

func TestCooldownExpires(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := newCooldownTracker(5 * time.Minute)

	assert.True(t, c.ShouldEmit(models.SuggestionFixError, now))
	assert.True(t, c.ShouldEmit(models.SuggestionFixError, now.Add(5*time.Minute)))
}

func TestCooldownSuppressedAttemptDoesNotResetTimer(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := newCooldownTracker(5 * time.Minute)

	assert.True(t, c.ShouldEmit(models.SuggestionFixError, now))
	assert.False(t, c.ShouldEmit(models.SuggestionFixError, now.Add(4*time.Minute)))

	// 6 minutes after the last emission (not the suppressed attempt).
	assert.True(t, c.ShouldEmit(models.SuggestionFixError, now.Add(6*time.Minute)))
}
