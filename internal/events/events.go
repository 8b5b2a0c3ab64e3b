// Package events defines the closed set of pipeline events and a typed
// publish/subscribe bus. Consumers receive the Event sum type over a
// channel and switch on the concrete payload, so every event kind is
// handled explicitly rather than matched by name.
package events

import (
	"time"

	"github.com/benedict-anokye-davies/glance/internal/models"
)

// Event is the sealed sum of everything the pipeline can emit.
type Event interface {
	When() time.Time
	isEvent()
}

// CaptureCompleted fires when a screen capture succeeds.
type CaptureCompleted struct {
	Timestamp time.Time
	Capture   *models.ScreenCapture
}

// AnalysisStarted fires before OCR and the analysis-service call begin.
type AnalysisStarted struct {
	Timestamp time.Time
	CaptureID string
}

// AnalysisCompleted fires when a cycle's full analysis result exists.
type AnalysisCompleted struct {
	Timestamp time.Time
	Result    *models.ScreenAnalysisResult
}

// IssueDetected fires once per issue in a cycle's result.
type IssueDetected struct {
	Timestamp time.Time
	App       *models.ApplicationContext
	Issue     models.DetectedIssue
}

// SuggestionCreated fires for suggestions that pass the per-type cooldown.
type SuggestionCreated struct {
	Timestamp  time.Time
	Suggestion models.ProactiveSuggestion
}

// AppChanged fires when the (name, title) tuple of the foreground app
// differs from the previous detection.
type AppChanged struct {
	Timestamp time.Time
	Previous  *models.ApplicationContext
	Current   *models.ApplicationContext
}

// ContextUpdated fires whenever the rolling conversation context has been
// rebuilt.
type ContextUpdated struct {
	Timestamp time.Time
	Result    *models.ScreenAnalysisResult
}

func (e CaptureCompleted) When() time.Time   { return e.Timestamp }
func (e AnalysisStarted) When() time.Time    { return e.Timestamp }
func (e AnalysisCompleted) When() time.Time  { return e.Timestamp }
func (e IssueDetected) When() time.Time      { return e.Timestamp }
func (e SuggestionCreated) When() time.Time  { return e.Timestamp }
func (e AppChanged) When() time.Time         { return e.Timestamp }
func (e ContextUpdated) When() time.Time     { return e.Timestamp }

func (CaptureCompleted) isEvent()  {}
func (AnalysisStarted) isEvent()   {}
func (AnalysisCompleted) isEvent() {}
func (IssueDetected) isEvent()     {}
func (SuggestionCreated) isEvent() {}
func (AppChanged) isEvent()        {}
func (ContextUpdated) isEvent()    {}
