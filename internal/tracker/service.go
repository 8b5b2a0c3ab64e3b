// Package tracker consumes the pipeline's event stream, keeps the
// conversation context current and persists activity when the sink is
// enabled.
package tracker

import (
	"context"
	"fmt"
	"log"

	"github.com/benedict-anokye-davies/glance/internal/contextbuilder"
	"github.com/benedict-anokye-davies/glance/internal/database"
	"github.com/benedict-anokye-davies/glance/internal/events"
	"github.com/benedict-anokye-davies/glance/internal/models"
)

// Service subscribes to the event bus and fans events into the context
// builder and the optional repository.
type Service struct {
	builder *contextbuilder.Builder
	repo    *database.Repository // nil when persistence is disabled
	bus     *events.Bus

	stopChan chan struct{}
	running  bool
}

func NewService(bus *events.Bus, builder *contextbuilder.Builder, repo *database.Repository) *Service {
	return &Service{
		builder:  builder,
		repo:     repo,
		bus:      bus,
		stopChan: make(chan struct{}),
	}
}

// Start consumes events until ctx is done or Stop is called.
func (s *Service) Start(ctx context.Context) error {
	if s.running {
		return fmt.Errorf("tracker is already running")
	}
	s.running = true

	ch, cancel := s.bus.Subscribe(0)
	defer cancel()

	log.Println("tracker started")

	for {
		select {
		case <-ctx.Done():
			log.Println("tracker stopped by context")
			s.running = false
			return ctx.Err()

		case <-s.stopChan:
			log.Println("tracker stopped")
			s.running = false
			return nil

		case ev, ok := <-ch:
			if !ok {
				s.running = false
				return nil
			}
			s.handle(ev)
		}
	}
}

func (s *Service) Stop() {
	if s.running {
		close(s.stopChan)
	}
}

func (s *Service) IsRunning() bool {
	return s.running
}

// handle switches over the closed event sum. Every kind is named so a new
// event type fails to compile here until handled.
func (s *Service) handle(ev events.Event) {
	switch e := ev.(type) {
	case events.CaptureCompleted:
		log.Printf("captured display %s (%d bytes, %s)",
			e.Capture.DisplayID, len(e.Capture.Data), e.Capture.Format)

	case events.AnalysisStarted:
		// nothing to aggregate yet

	case events.AnalysisCompleted:
		s.persistActivity(e.Result)

	case events.ContextUpdated:
		s.builder.UpdateAnalysis(e.Result)

	case events.AppChanged:
		if e.Current != nil {
			log.Printf("app changed: %s (%s)", e.Current.AppName, e.Current.WindowTitle)
		}
		s.builder.UpdateApp(e.Current)

	case events.IssueDetected:
		s.persistIssue(e)

	case events.SuggestionCreated:
		log.Printf("suggestion [%s/%s]: %s", e.Suggestion.Type, e.Suggestion.Priority, e.Suggestion.Title)
	}
}

func (s *Service) persistActivity(result *models.ScreenAnalysisResult) {
	if s.repo == nil || result == nil {
		return
	}

	record := &models.ActivityRecord{
		Timestamp:       result.Timestamp,
		WindowTitle:     windowTitle(result.App),
		AppName:         appName(result.App),
		AppType:         appType(result.App),
		IssueCount:      len(result.Issues),
		SuggestionCount: len(result.Suggestions),
		Summary:         result.Summary,
	}

	if err := s.repo.CreateActivity(record); err != nil {
		log.Printf("failed to persist activity record: %v", err)
	}
}

func (s *Service) persistIssue(e events.IssueDetected) {
	if s.repo == nil {
		return
	}

	record := &models.IssueRecord{
		Timestamp: e.Timestamp,
		AppName:   appName(e.App),
		IssueType: string(e.Issue.Type),
		Severity:  string(e.Issue.Severity),
		Title:     e.Issue.Title,
	}

	if err := s.repo.CreateIssue(record); err != nil {
		log.Printf("failed to persist issue record: %v", err)
	}
}

func appName(app *models.ApplicationContext) string {
	if app == nil {
		return "unknown"
	}
	return app.AppName
}

func appType(app *models.ApplicationContext) string {
	if app == nil {
		return string(models.AppTypeOther)
	}
	return string(app.Type)
}

func windowTitle(app *models.ApplicationContext) string {
	if app == nil {
		return ""
	}
	return app.WindowTitle
}
