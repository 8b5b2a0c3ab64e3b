package models

import (
	"time"

	"gorm.io/gorm"
)

// ActivityRecord is the persisted trace of one capture cycle, used by the
// reporter and the status API. The raw image is never stored.
type ActivityRecord struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Timestamp       time.Time      `gorm:"not null;index" json:"timestamp"`
	AppName         string         `gorm:"not null;index" json:"app_name"`
	WindowTitle     string         `gorm:"not null" json:"window_title"`
	AppType         string         `gorm:"not null" json:"app_type"`
	IssueCount      int            `gorm:"not null;default:0" json:"issue_count"`
	SuggestionCount int            `gorm:"not null;default:0" json:"suggestion_count"`
	Summary         string         `json:"summary"`
	CreatedAt       time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// IssueRecord is the persisted trace of one detected issue.
type IssueRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	AppName   string         `gorm:"not null;index" json:"app_name"`
	IssueType string         `gorm:"not null;index" json:"issue_type"`
	Severity  string         `gorm:"not null" json:"severity"`
	Title     string         `gorm:"not null" json:"title"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AppUsageSummary is an aggregated view over activity records.
type AppUsageSummary struct {
	AppName      string  `json:"app_name"`
	CycleCount   int     `json:"cycle_count"`
	IssueCount   int     `json:"issue_count"`
	Percentage   float64 `json:"percentage,omitempty"`
}

// IssueFrequency is an aggregated view over issue records.
type IssueFrequency struct {
	IssueType string `json:"issue_type"`
	Severity  string `json:"severity"`
	Count     int    `json:"count"`
}

// ReportPeriod delimits a reporting window.
type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Type  string    `json:"type"` // "day", "week", "month"
}

// Report is the aggregated activity/issue report for one period.
type Report struct {
	Period      ReportPeriod      `json:"period"`
	Apps        []AppUsageSummary `json:"apps"`
	Issues      []IssueFrequency  `json:"issues"`
	TotalCycles int               `json:"total_cycles"`
	TotalIssues int               `json:"total_issues"`
}
