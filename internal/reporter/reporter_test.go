package reporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-anokye-davies/glance/internal/models"
)

func TestPeriodFor(t *testing.T) {
	ref := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		periodType string
		wantType   string
		wantStart  time.Time
	}{
		{"day", "day", ref.AddDate(0, 0, -1)},
		{"", "day", ref.AddDate(0, 0, -1)},
		{"week", "week", ref.AddDate(0, 0, -7)},
		{"month", "month", ref.AddDate(0, -1, 0)},
	}

	for _, tt := range tests {
		t.Run("period "+tt.wantType, func(t *testing.T) {
			p, err := PeriodFor(tt.periodType, ref)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, p.Type)
			assert.True(t, p.Start.Equal(tt.wantStart))
			assert.True(t, p.End.Equal(ref))
		})
	}
}

func TestPeriodForUnknown(t *testing.T) {
	_, err := PeriodFor("fortnight", time.Now())
	assert.Error(t, err)
}

func TestAggregate(t *testing.T) {
	period := models.ReportPeriod{Type: "day"}
	apps := []models.AppUsageSummary{
		{AppName: "code", CycleCount: 60, IssueCount: 3},
		{AppName: "firefox", CycleCount: 30},
		{AppName: "kitty", CycleCount: 10},
	}
	issues := []models.IssueFrequency{
		{IssueType: "compilation-error", Severity: "error", Count: 2},
		{IssueType: "test-failure", Severity: "warning", Count: 1},
	}

	report := Aggregate(period, apps, issues)

	assert.Equal(t, 100, report.TotalCycles)
	assert.Equal(t, 3, report.TotalIssues)
	assert.InDelta(t, 60.0, report.Apps[0].Percentage, 0.001)
	assert.InDelta(t, 30.0, report.Apps[1].Percentage, 0.001)
	assert.InDelta(t, 10.0, report.Apps[2].Percentage, 0.001)
}

func TestAggregateEmpty(t *testing.T) {
	report := Aggregate(models.ReportPeriod{Type: "week"}, nil, nil)

	assert.Equal(t, 0, report.TotalCycles)
	assert.Equal(t, 0, report.TotalIssues)
	assert.Empty(t, report.Apps)
}

func TestFormatText(t *testing.T) {
	report := Aggregate(
		models.ReportPeriod{
			Type:  "day",
			Start: time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC),
		},
		[]models.AppUsageSummary{{AppName: "code", CycleCount: 4, IssueCount: 1}},
		[]models.IssueFrequency{{IssueType: "test-failure", Severity: "error", Count: 1}},
	)

	text := FormatText(report)

	assert.Contains(t, text, "Activity report (day)")
	assert.Contains(t, text, "2026-03-14 18:00 - 2026-03-15 18:00")
	assert.Contains(t, text, "Capture cycles: 4, issues seen: 1")
	assert.Contains(t, text, "code")
	assert.Contains(t, text, "100.0%")
	assert.Contains(t, text, "test-failure")
	assert.Contains(t, text, "[error] 1")
}
