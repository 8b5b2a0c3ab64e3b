// Package reporter aggregates persisted activity into period reports.
package reporter

import (
	"fmt"
	"strings"
	"time"

	"github.com/benedict-anokye-davies/glance/internal/database"
	"github.com/benedict-anokye-davies/glance/internal/models"
)

// Reporter handles report generation
type Reporter struct {
	repo *database.Repository
}

// New creates a new reporter
func New(repo *database.Repository) *Reporter {
	return &Reporter{repo: repo}
}

// GenerateReport generates a report for the specified period ("day",
// "week" or "month")
func (r *Reporter) GenerateReport(periodType string) (*models.Report, error) {
	period, err := PeriodFor(periodType, time.Now())
	if err != nil {
		return nil, err
	}

	apps, err := r.repo.GetAppUsageSince(period.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to get app usage: %w", err)
	}

	issues, err := r.repo.GetIssueFrequencySince(period.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to get issue frequency: %w", err)
	}

	return Aggregate(*period, apps, issues), nil
}

// PeriodFor resolves a period type to a concrete window ending at ref.
func PeriodFor(periodType string, ref time.Time) (*models.ReportPeriod, error) {
	var start time.Time

	switch periodType {
	case "", "day":
		periodType = "day"
		start = ref.AddDate(0, 0, -1)
	case "week":
		start = ref.AddDate(0, 0, -7)
	case "month":
		start = ref.AddDate(0, -1, 0)
	default:
		return nil, fmt.Errorf("unknown report period %q (want day, week or month)", periodType)
	}

	return &models.ReportPeriod{Start: start, End: ref, Type: periodType}, nil
}

// Aggregate derives totals and percentages over the raw summaries. Pure:
// the database does the grouping, this does the arithmetic.
func Aggregate(period models.ReportPeriod, apps []models.AppUsageSummary, issues []models.IssueFrequency) *models.Report {
	report := &models.Report{
		Period: period,
		Apps:   apps,
		Issues: issues,
	}

	for _, app := range apps {
		report.TotalCycles += app.CycleCount
	}
	for _, issue := range issues {
		report.TotalIssues += issue.Count
	}

	if report.TotalCycles > 0 {
		for i := range report.Apps {
			report.Apps[i].Percentage = float64(report.Apps[i].CycleCount) / float64(report.TotalCycles) * 100.0
		}
	}

	return report
}

// FormatText renders a report for terminal output.
func FormatText(report *models.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Activity report (%s): %s - %s\n",
		report.Period.Type,
		report.Period.Start.Format("2006-01-02 15:04"),
		report.Period.End.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Capture cycles: %d, issues seen: %d\n", report.TotalCycles, report.TotalIssues)

	if len(report.Apps) > 0 {
		b.WriteString("\nApplications:\n")
		for _, app := range report.Apps {
			fmt.Fprintf(&b, "  %-24s %5d cycles (%.1f%%), %d issues\n",
				app.AppName, app.CycleCount, app.Percentage, app.IssueCount)
		}
	}

	if len(report.Issues) > 0 {
		b.WriteString("\nIssues:\n")
		for _, issue := range report.Issues {
			fmt.Fprintf(&b, "  %-24s [%s] %d\n", issue.IssueType, issue.Severity, issue.Count)
		}
	}

	return b.String()
}
