package contextbuilder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-anokye-davies/glance/internal/models"
)

func ideApp() *models.ApplicationContext {
	return &models.ApplicationContext{
		AppName:     "Code",
		WindowTitle: "main.go - glance - Visual Studio Code",
		Type:        models.AppTypeIDE,
		Metadata:    models.IDEMetadata{File: "main.go", Language: "Go", Project: "glance"},
	}
}

func TestSummaryBeforeAnyUpdate(t *testing.T) {
	b := New(10)

	assert.Nil(t, b.Current())
	assert.Equal(t, "no context available", b.Summary())
	assert.Equal(t, "no context available", b.SummaryForQuery("what file am I in?"))
}

func TestUpdateAppComposesSummary(t *testing.T) {
	b := New(10)
	b.UpdateApp(ideApp())

	ctx := b.Current()
	require.NotNil(t, ctx)
	assert.Equal(t, "Code", ctx.ActiveApp.AppName)
	assert.Equal(t, []string{"Code"}, ctx.RecentApps)
	assert.Equal(t, []string{"main.go"}, ctx.RecentFiles)

	summary := b.Summary()
	assert.Contains(t, summary, "The user is using Code (ide).")
	assert.Contains(t, summary, "Editing: main.go.")
	assert.Contains(t, summary, "Language: Go.")
	assert.Contains(t, summary, "Project: glance.")
	assert.Contains(t, summary, "Recent files: main.go")
}

func TestUpdateAppNilIsNoop(t *testing.T) {
	b := New(10)
	b.UpdateApp(nil)
	assert.Nil(t, b.Current())
}

func TestUpdateAnalysisAbsorbsEntitiesAndIssues(t *testing.T) {
	b := New(10)
	b.UpdateAnalysis(&models.ScreenAnalysisResult{
		App:              ideApp(),
		SceneDescription: "editor with a failing test in the terminal pane",
		Issues: []models.DetectedIssue{
			{Severity: models.SeverityError, Title: "TestParse fails", Description: "want 3, got 2"},
		},
		Entities: []models.Entity{
			{Type: "file", Value: "parse.go"},
			{Type: "url", Value: "https://pkg.go.dev/testing"},
			{Type: "command", Value: "go test ./..."},
		},
		OCRText: []models.TextRegion{{Text: "FAIL glance/internal/parse"}},
	})

	ctx := b.Current()
	require.NotNil(t, ctx)
	assert.Contains(t, ctx.RecentFiles, "parse.go")
	assert.Contains(t, ctx.RecentFiles, "main.go") // from the IDE metadata
	assert.Equal(t, []string{"https://pkg.go.dev/testing"}, ctx.RecentURLs)
	assert.Equal(t, []string{"FAIL glance/internal/parse"}, ctx.VisibleText)

	summary := b.Summary()
	assert.Contains(t, summary, "Active issues:")
	assert.Contains(t, summary, "- [ERROR] TestParse fails")
	assert.Contains(t, summary, "editor with a failing test")
}

func TestSummarySceneTruncated(t *testing.T) {
	b := New(10)
	b.UpdateAnalysis(&models.ScreenAnalysisResult{
		App:              ideApp(),
		SceneDescription: strings.Repeat("x", 1000),
	})

	assert.Contains(t, b.Summary(), strings.Repeat("x", 300)+"...")
	assert.NotContains(t, b.Summary(), strings.Repeat("x", 301))
}

func TestPendingSuggestionsFiltered(t *testing.T) {
	b := New(10)
	b.UpdateAnalysis(&models.ScreenAnalysisResult{
		Suggestions: []models.ProactiveSuggestion{
			{ID: "keep", Title: "fix it"},
			{ID: "dismissed", Dismissed: true},
			{ID: "accepted", Accepted: true},
		},
	})

	ctx := b.Current()
	require.NotNil(t, ctx)
	require.Len(t, ctx.PendingSuggestions, 1)
	assert.Equal(t, "keep", ctx.PendingSuggestions[0].ID)
}

func TestSummaryForQueryFiles(t *testing.T) {
	b := New(10)
	b.UpdateAnalysis(&models.ScreenAnalysisResult{
		App: ideApp(),
		Entities: []models.Entity{
			{Type: "file", Value: "parse.go"},
			{Type: "file", Value: "lexer.go"},
			{Type: "url", Value: "https://example.com"},
		},
	})

	withFiles := b.SummaryForQuery("what file is open?")
	assert.Contains(t, withFiles, "Visible files: parse.go, lexer.go")
	assert.NotContains(t, withFiles, "example.com")

	plain := b.SummaryForQuery("what am I doing?")
	assert.NotContains(t, plain, "Visible files:")
}

func TestSummaryForQueryErrors(t *testing.T) {
	b := New(10)
	b.UpdateAnalysis(&models.ScreenAnalysisResult{
		App: ideApp(),
		Issues: []models.DetectedIssue{
			{Severity: models.SeverityError, Title: "undefined: foo", Description: "main.go:10:2"},
		},
	})

	detailed := b.SummaryForQuery("how do I fix this error?")
	assert.Contains(t, detailed, "undefined: foo: main.go:10:2")

	plain := b.SummaryForQuery("summarize my screen")
	assert.NotContains(t, plain, "main.go:10:2")
}

func TestBrowserAndTerminalFragments(t *testing.T) {
	b := New(10)

	b.UpdateApp(&models.ApplicationContext{
		AppName:  "Firefox",
		Type:     models.AppTypeBrowser,
		Metadata: models.BrowserMetadata{URL: "https://go.dev/blog"},
	})
	assert.Contains(t, b.Summary(), "Browsing: https://go.dev/blog.")

	b.UpdateApp(&models.ApplicationContext{
		AppName:  "kitty",
		Type:     models.AppTypeTerminal,
		Metadata: models.TerminalMetadata{Directory: "/home/dev/src"},
	})
	assert.Contains(t, b.Summary(), "Working in: /home/dev/src.")
}

func TestRebuildReplacesContextWholesale(t *testing.T) {
	b := New(10)
	b.UpdateApp(ideApp())
	first := b.Current()

	b.UpdateApp(&models.ApplicationContext{AppName: "kitty", Type: models.AppTypeTerminal})
	second := b.Current()

	require.NotSame(t, first, second, "each update must swap in a fresh context value")
	assert.Equal(t, "Code", first.ActiveApp.AppName, "old snapshots stay intact")
	assert.True(t, second.Timestamp.After(first.Timestamp) || second.Timestamp.Equal(first.Timestamp))
}

func TestRecentAppsOrdering(t *testing.T) {
	b := New(10)

	for _, name := range []string{"Code", "Firefox", "kitty", "Code"} {
		b.UpdateApp(&models.ApplicationContext{AppName: name, Type: models.AppTypeOther})
	}

	assert.Equal(t, []string{"Code", "kitty", "Firefox"}, b.Current().RecentApps)
}
