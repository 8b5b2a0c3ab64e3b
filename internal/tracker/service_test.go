package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-anokye-davies/glance/internal/contextbuilder"
	"github.com/benedict-anokye-davies/glance/internal/events"
	"github.com/benedict-anokye-davies/glance/internal/models"
)

func startTracker(t *testing.T) (*events.Bus, *contextbuilder.Builder, *Service) {
	t.Helper()

	bus := events.NewBus()
	builder := contextbuilder.New(10)
	svc := NewService(bus, builder, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Start(context.Background())
	}()
	t.Cleanup(func() {
		svc.Stop()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("tracker did not stop")
		}
	})

	// Wait until the tracker has subscribed.
	require.Eventually(t, svc.IsRunning, time.Second, 5*time.Millisecond)
	return bus, builder, svc
}

func TestTrackerFeedsContextBuilder(t *testing.T) {
	bus, builder, _ := startTracker(t)

	bus.Publish(events.ContextUpdated{
		Timestamp: time.Now(),
		Result: &models.ScreenAnalysisResult{
			App:              &models.ApplicationContext{AppName: "Code", Type: models.AppTypeIDE},
			SceneDescription: "an editor",
		},
	})

	require.Eventually(t, func() bool {
		return builder.Current() != nil
	}, 2*time.Second, 5*time.Millisecond)

	assert.Contains(t, builder.Summary(), "The user is using Code (ide).")
}

func TestTrackerHandlesAppChanged(t *testing.T) {
	bus, builder, _ := startTracker(t)

	bus.Publish(events.AppChanged{
		Timestamp: time.Now(),
		Current:   &models.ApplicationContext{AppName: "kitty", Type: models.AppTypeTerminal},
	})

	require.Eventually(t, func() bool {
		ctx := builder.Current()
		return ctx != nil && ctx.ActiveApp != nil && ctx.ActiveApp.AppName == "kitty"
	}, 2*time.Second, 5*time.Millisecond)
}

func TestTrackerStartTwiceFails(t *testing.T) {
	_, _, svc := startTracker(t)
	assert.Error(t, svc.Start(context.Background()))
}

func TestTrackerStopsOnContextCancel(t *testing.T) {
	bus := events.NewBus()
	svc := NewService(bus, contextbuilder.New(10), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	require.Eventually(t, svc.IsRunning, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("tracker did not stop on context cancellation")
	}
	assert.False(t, svc.IsRunning())
}
