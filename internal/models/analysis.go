package models

import "time"

// IssueType categorizes a problem spotted on screen.
type IssueType string

const (
	IssueCompilationError IssueType = "compilation-error"
	IssueRuntimeError     IssueType = "runtime-error"
	IssueLintWarning      IssueType = "lint-warning"
	IssueTestFailure      IssueType = "test-failure"
	IssueDependencyError  IssueType = "dependency-error"
	IssueOther            IssueType = "other"
)

// IssueSeverity ranks how urgent a detected issue is.
type IssueSeverity string

const (
	SeverityInfo     IssueSeverity = "info"
	SeverityWarning  IssueSeverity = "warning"
	SeverityError    IssueSeverity = "error"
	SeverityCritical IssueSeverity = "critical"
)

// SuggestedFix is an optional remedy attached to a detected issue.
type SuggestedFix struct {
	Description string  `json:"description"`
	Automated   bool    `json:"automated"`
	Confidence  float64 `json:"confidence"`
}

// DetectedIssue is one problem extracted from the screen. Immutable once
// produced.
type DetectedIssue struct {
	ID          string        `json:"id"`
	Type        IssueType     `json:"type"`
	Severity    IssueSeverity `json:"severity"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Fix         *SuggestedFix `json:"suggested_fix,omitempty"`
	Confidence  float64       `json:"confidence"`
}

// SuggestionType categorizes proactive suggestions. The emission cooldown
// is keyed by this type, not by the suggestion's content.
type SuggestionType string

const (
	SuggestionFixError     SuggestionType = "fix-error"
	SuggestionRefactor     SuggestionType = "refactor"
	SuggestionDocumentation SuggestionType = "documentation"
	SuggestionWorkflow     SuggestionType = "workflow"
	SuggestionResearch     SuggestionType = "research"
	SuggestionOtherAction  SuggestionType = "other"
)

// SuggestionPriority ranks proactive suggestions.
type SuggestionPriority string

const (
	PriorityLow    SuggestionPriority = "low"
	PriorityMedium SuggestionPriority = "medium"
	PriorityHigh   SuggestionPriority = "high"
)

// SuggestionAction is a single concrete step a consumer can take.
type SuggestionAction struct {
	Label   string `json:"label"`
	Command string `json:"command,omitempty"`
}

// ProactiveSuggestion is an actionable recommendation surfaced to the
// consumer. Dismissed/Accepted are flipped only by the consumer, never by
// the pipeline.
type ProactiveSuggestion struct {
	ID          string             `json:"id"`
	Type        SuggestionType     `json:"type"`
	Priority    SuggestionPriority `json:"priority"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Actions     []SuggestionAction `json:"actions,omitempty"`
	Dismissed   bool               `json:"dismissed"`
	Accepted    bool               `json:"accepted"`
	CreatedAt   time.Time          `json:"created_at"`
	ExpiresAt   *time.Time         `json:"expires_at,omitempty"`
}

// Entity is a named thing spotted on screen (a file, url, command, ...).
type Entity struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ScreenAnalysisResult aggregates everything one capture cycle produced.
// Results are appended to a bounded most-recent-first history and evicted
// oldest-first, never mutated.
type ScreenAnalysisResult struct {
	ID               string                `json:"id"`
	Timestamp        time.Time             `json:"timestamp"`
	App              *ApplicationContext   `json:"app,omitempty"`
	OCRText          []TextRegion          `json:"ocr_text,omitempty"`
	SceneDescription string                `json:"scene_description"`
	Issues           []DetectedIssue       `json:"issues"`
	Suggestions      []ProactiveSuggestion `json:"suggestions"`
	Entities         []Entity              `json:"entities"`
	Summary          string                `json:"summary"`
}
