package models

import "time"

// ConversationContext is a point-in-time aggregation of what the user is
// doing, built for consumption by a conversational agent. It is rebuilt
// wholesale on every update so concurrent readers never observe a torn
// value.
type ConversationContext struct {
	Timestamp          time.Time             `json:"timestamp"`
	ActiveApp          *ApplicationContext   `json:"active_app,omitempty"`
	AppContext         string                `json:"app_context,omitempty"`
	SceneDescription   string                `json:"scene_description,omitempty"`
	VisibleText        []string              `json:"visible_text,omitempty"`
	ActiveIssues       []DetectedIssue       `json:"active_issues,omitempty"`
	PendingSuggestions []ProactiveSuggestion `json:"pending_suggestions,omitempty"`
	Entities           []Entity              `json:"entities,omitempty"`
	RecentApps         []string              `json:"recent_apps,omitempty"`
	RecentFiles        []string              `json:"recent_files,omitempty"`
	RecentURLs         []string              `json:"recent_urls,omitempty"`
	Summary            string                `json:"summary"`
}
