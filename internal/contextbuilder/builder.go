// Package contextbuilder aggregates detector and analyzer outputs into a
// rolling natural-language summary of what the user is doing.
package contextbuilder

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/benedict-anokye-davies/glance/internal/models"
	"github.com/benedict-anokye-davies/glance/pkg/utils"
)

const maxSummaryScene = 300

// Builder maintains recency lists and the current ConversationContext.
// The context is rebuilt wholesale on every update and swapped in under
// the lock, so concurrent readers never see a partially updated value.
type Builder struct {
	mu sync.RWMutex

	recentApps  *recencyList
	recentFiles *recencyList
	recentURLs  *recencyList

	lastApp    *models.ApplicationContext
	lastResult *models.ScreenAnalysisResult

	current *models.ConversationContext

	now func() time.Time
}

// New creates a builder whose recency lists hold at most maxRecent
// entries each.
func New(maxRecent int) *Builder {
	return &Builder{
		recentApps:  newRecencyList(maxRecent),
		recentFiles: newRecencyList(maxRecent),
		recentURLs:  newRecencyList(maxRecent),
		now:         time.Now,
	}
}

// UpdateApp folds a fresh application context into the rolling state.
func (b *Builder) UpdateApp(app *models.ApplicationContext) {
	if app == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastApp = app
	b.recentApps.Add(app.AppName)
	b.absorbMetadata(app.Metadata)
	b.rebuild()
}

// UpdateAnalysis folds a fresh analysis result into the rolling state.
func (b *Builder) UpdateAnalysis(result *models.ScreenAnalysisResult) {
	if result == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastResult = result
	if result.App != nil {
		b.lastApp = result.App
		b.recentApps.Add(result.App.AppName)
		b.absorbMetadata(result.App.Metadata)
	}
	for _, entity := range result.Entities {
		switch entity.Type {
		case "file":
			b.recentFiles.Add(entity.Value)
		case "url":
			b.recentURLs.Add(entity.Value)
		}
	}
	b.rebuild()
}

func (b *Builder) absorbMetadata(meta models.AppMetadata) {
	switch m := meta.(type) {
	case models.IDEMetadata:
		b.recentFiles.Add(m.File)
	case models.BrowserMetadata:
		b.recentURLs.Add(m.URL)
	}
}

// rebuild constructs a fresh ConversationContext from current state.
// Callers hold the write lock.
func (b *Builder) rebuild() {
	ctx := &models.ConversationContext{
		Timestamp:   b.now(),
		ActiveApp:   b.lastApp,
		RecentApps:  b.recentApps.Snapshot(),
		RecentFiles: b.recentFiles.Snapshot(),
		RecentURLs:  b.recentURLs.Snapshot(),
	}

	if b.lastApp != nil {
		ctx.AppContext = appContextFragment(b.lastApp)
	}

	if b.lastResult != nil {
		ctx.SceneDescription = b.lastResult.SceneDescription
		ctx.ActiveIssues = b.lastResult.Issues
		ctx.PendingSuggestions = pendingOnly(b.lastResult.Suggestions)
		ctx.Entities = b.lastResult.Entities
		for _, region := range b.lastResult.OCRText {
			ctx.VisibleText = append(ctx.VisibleText, region.Text)
		}
	}

	ctx.Summary = composeSummary(ctx)
	b.current = ctx
}

func pendingOnly(suggestions []models.ProactiveSuggestion) []models.ProactiveSuggestion {
	var pending []models.ProactiveSuggestion
	for _, s := range suggestions {
		if !s.Dismissed && !s.Accepted {
			pending = append(pending, s)
		}
	}
	return pending
}

// appContextFragment renders the app-type-specific context line.
func appContextFragment(app *models.ApplicationContext) string {
	switch meta := app.Metadata.(type) {
	case models.IDEMetadata:
		var parts []string
		if meta.File != "" {
			parts = append(parts, fmt.Sprintf("Editing: %s.", meta.File))
		}
		if meta.Language != "" {
			parts = append(parts, fmt.Sprintf("Language: %s.", meta.Language))
		}
		if meta.Project != "" {
			parts = append(parts, fmt.Sprintf("Project: %s.", meta.Project))
		}
		return strings.Join(parts, " ")
	case models.BrowserMetadata:
		if meta.URL != "" {
			return fmt.Sprintf("Browsing: %s.", meta.URL)
		}
		if meta.PageTitle != "" {
			return fmt.Sprintf("Reading: %s.", meta.PageTitle)
		}
	case models.TerminalMetadata:
		if meta.Directory != "" {
			return fmt.Sprintf("Working in: %s.", meta.Directory)
		}
	}
	return ""
}

// composeSummary concatenates the active-app line, the app fragment, the
// scene description, a severity-prefixed issue list and the recent-files
// line.
func composeSummary(ctx *models.ConversationContext) string {
	var b strings.Builder

	if ctx.ActiveApp != nil {
		fmt.Fprintf(&b, "The user is using %s (%s).", ctx.ActiveApp.AppName, ctx.ActiveApp.Type)
	} else {
		b.WriteString("No active application detected.")
	}

	if ctx.AppContext != "" {
		b.WriteString(" " + ctx.AppContext)
	}

	if ctx.SceneDescription != "" {
		b.WriteString(" " + utils.Truncate(ctx.SceneDescription, maxSummaryScene))
	}

	if len(ctx.ActiveIssues) > 0 {
		b.WriteString("\nActive issues:")
		for _, issue := range ctx.ActiveIssues {
			fmt.Fprintf(&b, "\n- [%s] %s", strings.ToUpper(string(issue.Severity)), issue.Title)
		}
	}

	if len(ctx.RecentFiles) > 0 {
		fmt.Fprintf(&b, "\nRecent files: %s", strings.Join(ctx.RecentFiles, ", "))
	}

	return b.String()
}

// Current returns the latest ConversationContext, nil before the first
// update.
func (b *Builder) Current() *models.ConversationContext {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// Summary returns the current summary, or a no-context line before any
// update has arrived.
func (b *Builder) Summary() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.current == nil {
		return "no context available"
	}
	return b.current.Summary
}

// SummaryForQuery appends extra detail when the query's wording asks for
// it: file entities for file/code questions, full error descriptions for
// error/fix questions. Matching is plain keyword testing.
func (b *Builder) SummaryForQuery(query string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.current == nil {
		return "no context available"
	}

	summary := b.current.Summary
	q := strings.ToLower(query)

	if containsAny(q, "file", "code") {
		var files []string
		for _, entity := range b.current.Entities {
			if entity.Type == "file" {
				files = append(files, entity.Value)
			}
		}
		if len(files) > 0 {
			summary += fmt.Sprintf("\nVisible files: %s", strings.Join(files, ", "))
		}
	}

	if containsAny(q, "error", "fix", "problem") {
		for _, issue := range b.current.ActiveIssues {
			if issue.Description != "" {
				summary += fmt.Sprintf("\n%s: %s", issue.Title, issue.Description)
			}
		}
	}

	return summary
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
