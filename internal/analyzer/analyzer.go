// Package analyzer owns the capture scheduling loop: rate limiting, the
// privacy exclusion gate, display resolution, OCR plus analysis-service
// orchestration, bounded result history and suggestion cooldowns.
package analyzer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/benedict-anokye-davies/glance/internal/analysis"
	"github.com/benedict-anokye-davies/glance/internal/appdetect"
	"github.com/benedict-anokye-davies/glance/internal/capture"
	"github.com/benedict-anokye-davies/glance/internal/config"
	"github.com/benedict-anokye-davies/glance/internal/events"
	"github.com/benedict-anokye-davies/glance/internal/models"
	"github.com/benedict-anokye-davies/glance/internal/ocr"
)

// rateWindow is the trailing window the capture budget applies to.
const rateWindow = time.Minute

// Analyzer drives the capture/analysis pipeline. Start and Stop are
// idempotent. Cycles never overlap: the next one is scheduled only after
// the current one has fully settled.
type Analyzer struct {
	captureCfg  config.CaptureConfig
	analysisCfg config.AnalysisConfig

	source  capture.Source
	engine  ocr.Engine
	service analysis.Service
	apps    *appdetect.Detector
	bus     *events.Bus

	now func() time.Time

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}

	// cycleMu serializes the scheduled loop and on-demand calls; all
	// pipeline state below is touched only while holding it.
	cycleMu  sync.Mutex
	limiter  *rateLimiter
	history  *history
	cooldown *cooldownTracker

	exclMu   sync.RWMutex
	excluded map[string]struct{}
}

// New wires an analyzer from its collaborators. Any of source, engine and
// service may be nil; the corresponding stage degrades per config.
func New(cfg *config.Config, source capture.Source, engine ocr.Engine, service analysis.Service, apps *appdetect.Detector, bus *events.Bus) *Analyzer {
	a := &Analyzer{
		captureCfg:  cfg.Capture,
		analysisCfg: cfg.Analysis,
		source:      source,
		engine:      engine,
		service:     service,
		apps:        apps,
		bus:         bus,
		now:         time.Now,
		limiter:     newRateLimiter(cfg.Capture.MaxPerMinute, rateWindow),
		history:     newHistory(cfg.Analysis.HistorySize),
		cooldown:    newCooldownTracker(cfg.Analysis.SuggestionCooldown),
	}
	a.SetExcludedApps(cfg.Privacy.ExcludedApps)
	return a
}

// SetExcludedApps replaces the privacy exclusion list. Safe to call while
// the loop runs; the next cycle sees the new list.
func (a *Analyzer) SetExcludedApps(names []string) {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}

	a.exclMu.Lock()
	a.excluded = set
	a.exclMu.Unlock()
}

func (a *Analyzer) isExcluded(appName string) bool {
	a.exclMu.RLock()
	defer a.exclMu.RUnlock()
	_, ok := a.excluded[strings.ToLower(appName)]
	return ok
}

// Start launches the capture loop. Calling Start on a running analyzer is
// a no-op.
func (a *Analyzer) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running {
		return
	}
	a.running = true
	a.stop = make(chan struct{})
	a.done = make(chan struct{})

	go a.loop(a.stop, a.done)
	log.Printf("screen analyzer started (interval %v, max %d captures/min)",
		a.captureCfg.Interval, a.captureCfg.MaxPerMinute)
}

// Stop halts the loop. The in-flight cycle, if any, completes; it is just
// never rescheduled. Calling Stop on a stopped analyzer is a no-op.
func (a *Analyzer) Stop() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.running = false
	close(a.stop)
	done := a.done
	a.mu.Unlock()

	<-done
	log.Println("screen analyzer stopped")
}

// Running reports whether the loop is active.
func (a *Analyzer) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// loop re-arms a timer after each cycle finishes, so cycles are strictly
// sequential regardless of how long a cycle's I/O takes.
func (a *Analyzer) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	timer := time.NewTimer(a.captureCfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		case <-timer.C:
			a.RunCycle()
			timer.Reset(a.captureCfg.Interval)
		}
	}
}

// RunCycle executes one scheduled capture cycle: rate gate first, then the
// shared pipeline.
func (a *Analyzer) RunCycle() {
	a.cycleMu.Lock()
	defer a.cycleMu.Unlock()

	now := a.now()
	if !a.limiter.Allow(now) {
		log.Printf("capture budget reached (%d in the last minute), skipping cycle", a.limiter.Count(now))
		return
	}

	a.executeCycle(context.Background(), true)
}

// CaptureAndAnalyze runs the pipeline once on demand, outside the
// scheduler and without touching the rate budget. It returns nil without
// error when the cycle is skipped (excluded app) or produced nothing.
func (a *Analyzer) CaptureAndAnalyze(ctx context.Context) (*models.ScreenAnalysisResult, error) {
	a.cycleMu.Lock()
	defer a.cycleMu.Unlock()

	return a.executeCycle(ctx, false)
}

// executeCycle is the body shared by scheduled and on-demand entry points:
// exclusion gate, display resolution, capture, analysis, history append
// and event emission. Callers hold cycleMu.
func (a *Analyzer) executeCycle(ctx context.Context, countCapture bool) (*models.ScreenAnalysisResult, error) {
	// App change detection rides on the same probe as the exclusion gate.
	changed, previous := a.apps.CheckForAppChange()
	app := a.apps.Last()
	if changed != nil {
		a.bus.Publish(events.AppChanged{Timestamp: a.now(), Previous: previous, Current: changed})
	}

	// The gate runs before any pixels are read: excluded apps are never
	// captured, not even transiently.
	if app != nil && a.isExcluded(app.AppName) {
		log.Printf("active app %q is excluded, skipping capture", app.AppName)
		return nil, nil
	}

	if a.source == nil {
		log.Println("no capture source available, skipping cycle")
		return nil, nil
	}

	display, err := a.resolveDisplay()
	if err != nil {
		log.Printf("display resolution failed: %v", err)
		return nil, nil
	}

	if countCapture {
		a.limiter.Record(a.now())
	}

	data, err := a.source.Capture(display, models.CaptureFormat(a.captureCfg.Format), a.captureCfg.Quality)
	if err != nil {
		log.Printf("capture failed: %v", err)
		return nil, nil
	}

	shot := &models.ScreenCapture{
		ID:        uuid.NewString(),
		Timestamp: a.now(),
		DisplayID: display.ID,
		Bounds:    display.Bounds,
		Data:      data,
		Format:    models.CaptureFormat(a.captureCfg.Format),
		Quality:   a.captureCfg.Quality,
	}
	a.bus.Publish(events.CaptureCompleted{Timestamp: shot.Timestamp, Capture: shot})
	a.bus.Publish(events.AnalysisStarted{Timestamp: a.now(), CaptureID: shot.ID})

	result := a.analyze(ctx, shot, app)
	a.history.Push(result)

	a.bus.Publish(events.AnalysisCompleted{Timestamp: a.now(), Result: result})
	a.bus.Publish(events.ContextUpdated{Timestamp: a.now(), Result: result})

	for _, issue := range result.Issues {
		a.bus.Publish(events.IssueDetected{Timestamp: a.now(), App: app, Issue: issue})
	}

	if a.analysisCfg.SuggestionsEnabled {
		for _, suggestion := range result.Suggestions {
			if !a.cooldown.ShouldEmit(suggestion.Type, a.now()) {
				continue
			}
			a.bus.Publish(events.SuggestionCreated{Timestamp: a.now(), Suggestion: suggestion})
		}
	}

	return result, nil
}

// resolveDisplay locates the configured target display, falling back to
// the primary when the target is missing.
func (a *Analyzer) resolveDisplay() (capture.Display, error) {
	displays, err := a.source.Displays()
	if err != nil {
		return capture.Display{}, fmt.Errorf("display enumeration failed: %w", err)
	}
	if len(displays) == 0 {
		return capture.Display{}, fmt.Errorf("no displays available")
	}

	display, found := capture.ResolveDisplay(displays, a.captureCfg.TargetDisplayID)
	if !found && a.captureCfg.TargetDisplayID != "" {
		log.Printf("target display %q not found, using primary %q",
			a.captureCfg.TargetDisplayID, display.ID)
	}
	return display, nil
}

// analyze runs OCR and the analysis-service call for one capture. Both
// stages degrade independently; no failure escapes the cycle.
func (a *Analyzer) analyze(ctx context.Context, shot *models.ScreenCapture, app *models.ApplicationContext) *models.ScreenAnalysisResult {
	actx, cancel := context.WithTimeout(ctx, a.analysisCfg.Timeout)
	defer cancel()

	var text []models.TextRegion
	if a.analysisCfg.OCREnabled && a.engine != nil {
		regions, err := a.engine.Recognize(actx, shot.Data)
		if err != nil {
			log.Printf("OCR failed: %v", err)
		} else {
			text = regions
		}
	}

	var payload analysis.Payload
	if a.analysisCfg.AnalysisEnabled && a.service != nil {
		raw, err := a.service.Complete(actx, analysis.BuildPrompt(app, text), analysis.SystemPrompt,
			analysis.Options{Temperature: 0.3, MaxTokens: 1024})
		if err != nil {
			log.Printf("analysis service call failed: %v", err)
			payload = analysis.Payload{SceneDescription: "screen analysis unavailable"}
		} else {
			payload = analysis.ParseResponse(raw)
		}
	}

	result := &models.ScreenAnalysisResult{
		ID:               shot.ID,
		Timestamp:        shot.Timestamp,
		App:              app,
		OCRText:          text,
		SceneDescription: payload.SceneDescription,
		Issues:           payload.Issues,
		Suggestions:      payload.Suggestions,
		Entities:         payload.Entities,
	}
	result.Summary = buildResultSummary(result)
	return result
}

func buildResultSummary(r *models.ScreenAnalysisResult) string {
	var parts []string

	if r.App != nil {
		parts = append(parts, fmt.Sprintf("Active: %s (%s)", r.App.AppName, r.App.Type))
	}
	if r.SceneDescription != "" {
		parts = append(parts, r.SceneDescription)
	}
	if n := len(r.Issues); n > 0 {
		parts = append(parts, fmt.Sprintf("%d issue(s) detected", n))
	}
	if len(parts) == 0 {
		return "no context available"
	}
	return strings.Join(parts, ". ")
}

// Latest returns the most recent analysis result, nil when none exists.
func (a *Analyzer) Latest() *models.ScreenAnalysisResult {
	a.cycleMu.Lock()
	defer a.cycleMu.Unlock()
	return a.history.Latest()
}

// History returns a most-recent-first copy of the result buffer.
func (a *Analyzer) History() []*models.ScreenAnalysisResult {
	a.cycleMu.Lock()
	defer a.cycleMu.Unlock()
	return a.history.Snapshot()
}
