package database

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/benedict-anokye-davies/glance/internal/models"
)

// Repository handles all database operations for activity and issue
// records
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// CreateActivity inserts one per-cycle activity record
func (r *Repository) CreateActivity(record *models.ActivityRecord) error {
	record.AppName = strings.ToLower(record.AppName)
	result := r.db.Create(record)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert activity record")
	}
	return nil
}

// CreateIssue inserts one detected-issue record
func (r *Repository) CreateIssue(record *models.IssueRecord) error {
	record.AppName = strings.ToLower(record.AppName)
	result := r.db.Create(record)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert issue record")
	}
	return nil
}

// GetActivitiesSince retrieves activity records since a given time,
// oldest first
func (r *Repository) GetActivitiesSince(since time.Time) ([]*models.ActivityRecord, error) {
	var records []*models.ActivityRecord
	result := r.db.Where("timestamp >= ?", since).Order("timestamp ASC").Find(&records)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query activity records")
	}
	return records, nil
}

// GetLatestActivity retrieves the most recent activity record, nil when
// the table is empty
func (r *Repository) GetLatestActivity() (*models.ActivityRecord, error) {
	var record models.ActivityRecord
	result := r.db.Order("timestamp DESC").First(&record)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to get latest activity")
	}
	return &record, nil
}

// GetAppUsageSince returns per-app cycle and issue counts since a given
// time, busiest first. SQL does the grouping; the reporter derives
// percentages.
func (r *Repository) GetAppUsageSince(since time.Time) ([]models.AppUsageSummary, error) {
	var summaries []models.AppUsageSummary

	result := r.db.Model(&models.ActivityRecord{}).
		Select("app_name, COUNT(*) as cycle_count, SUM(issue_count) as issue_count").
		Where("timestamp >= ?", since).
		Group("app_name").
		Order("cycle_count DESC").
		Scan(&summaries)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query app usage")
	}

	return summaries, nil
}

// GetIssueFrequencySince returns per-type issue counts since a given time
func (r *Repository) GetIssueFrequencySince(since time.Time) ([]models.IssueFrequency, error) {
	var frequencies []models.IssueFrequency

	result := r.db.Model(&models.IssueRecord{}).
		Select("issue_type, severity, COUNT(*) as count").
		Where("timestamp >= ?", since).
		Group("issue_type, severity").
		Order("count DESC").
		Scan(&frequencies)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query issue frequency")
	}

	return frequencies, nil
}

// DeleteOldRecords deletes records older than a specified date (soft
// delete)
func (r *Repository) DeleteOldRecords(before time.Time) (int64, error) {
	result := r.db.Where("timestamp < ?", before).Delete(&models.ActivityRecord{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete old activity records")
	}
	deleted := result.RowsAffected

	result = r.db.Where("timestamp < ?", before).Delete(&models.IssueRecord{})
	if result.Error != nil {
		return deleted, errors.Wrap(result.Error, "failed to delete old issue records")
	}
	return deleted + result.RowsAffected, nil
}

// Clear removes all records from the database
func (r *Repository) Clear() error {
	if result := r.db.Exec("DELETE FROM activity_records"); result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear activity records")
	}
	if result := r.db.Exec("DELETE FROM issue_records"); result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear issue records")
	}
	return nil
}
