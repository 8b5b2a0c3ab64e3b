package analysis

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/benedict-anokye-davies/glance/internal/models"
	"github.com/benedict-anokye-davies/glance/pkg/utils"
)

// maxSceneLen bounds the raw-text fallback scene description.
const maxSceneLen = 500

// Payload is the structured content extracted from one service reply.
type Payload struct {
	SceneDescription string
	Issues           []models.DetectedIssue
	Suggestions      []models.ProactiveSuggestion
	Entities         []models.Entity
}

// wire mirrors the JSON shape the service is asked to embed in its reply.
type wire struct {
	SceneDescription string `json:"scene_description"`
	Issues           []struct {
		Type        string  `json:"type"`
		Severity    string  `json:"severity"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Confidence  float64 `json:"confidence"`
		SuggestedFix *struct {
			Description string  `json:"description"`
			Automated   bool    `json:"automated"`
			Confidence  float64 `json:"confidence"`
		} `json:"suggested_fix"`
	} `json:"issues"`
	Suggestions []struct {
		Type        string `json:"type"`
		Priority    string `json:"priority"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Actions     []struct {
			Label   string `json:"label"`
			Command string `json:"command"`
		} `json:"actions"`
	} `json:"suggestions"`
	Entities []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"entities"`
}

// ParseResponse extracts the one structured payload the reply is expected
// to contain. Extraction is tolerant: when no well-formed JSON object is
// found the raw text becomes the scene description with empty lists.
func ParseResponse(raw string) Payload {
	if obj := extractJSONObject(raw); obj != "" {
		var w wire
		if err := json.Unmarshal([]byte(obj), &w); err == nil && !w.empty() {
			return w.toPayload()
		}
	}

	return Payload{SceneDescription: utils.Truncate(strings.TrimSpace(raw), maxSceneLen)}
}

func (w *wire) empty() bool {
	return w.SceneDescription == "" && len(w.Issues) == 0 &&
		len(w.Suggestions) == 0 && len(w.Entities) == 0
}

func (w *wire) toPayload() Payload {
	p := Payload{SceneDescription: w.SceneDescription}

	for _, i := range w.Issues {
		issue := models.DetectedIssue{
			ID:          uuid.NewString(),
			Type:        issueType(i.Type),
			Severity:    issueSeverity(i.Severity),
			Title:       i.Title,
			Description: i.Description,
			Confidence:  i.Confidence,
		}
		if i.SuggestedFix != nil {
			issue.Fix = &models.SuggestedFix{
				Description: i.SuggestedFix.Description,
				Automated:   i.SuggestedFix.Automated,
				Confidence:  i.SuggestedFix.Confidence,
			}
		}
		p.Issues = append(p.Issues, issue)
	}

	for _, s := range w.Suggestions {
		suggestion := models.ProactiveSuggestion{
			ID:          uuid.NewString(),
			Type:        suggestionType(s.Type),
			Priority:    suggestionPriority(s.Priority),
			Title:       s.Title,
			Description: s.Description,
		}
		for _, a := range s.Actions {
			suggestion.Actions = append(suggestion.Actions, models.SuggestionAction{
				Label:   a.Label,
				Command: a.Command,
			})
		}
		p.Suggestions = append(p.Suggestions, suggestion)
	}

	for _, e := range w.Entities {
		if e.Value == "" {
			continue
		}
		p.Entities = append(p.Entities, models.Entity{Type: e.Type, Value: e.Value})
	}

	return p
}

// extractJSONObject returns the first balanced top-level {...} block in s,
// respecting string literals and escapes. Empty when none exists.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}

func issueType(s string) models.IssueType {
	switch models.IssueType(strings.ToLower(s)) {
	case models.IssueCompilationError, models.IssueRuntimeError,
		models.IssueLintWarning, models.IssueTestFailure, models.IssueDependencyError:
		return models.IssueType(strings.ToLower(s))
	default:
		return models.IssueOther
	}
}

func issueSeverity(s string) models.IssueSeverity {
	switch models.IssueSeverity(strings.ToLower(s)) {
	case models.SeverityInfo, models.SeverityWarning, models.SeverityCritical:
		return models.IssueSeverity(strings.ToLower(s))
	default:
		return models.SeverityError
	}
}

func suggestionType(s string) models.SuggestionType {
	switch models.SuggestionType(strings.ToLower(s)) {
	case models.SuggestionFixError, models.SuggestionRefactor,
		models.SuggestionDocumentation, models.SuggestionWorkflow, models.SuggestionResearch:
		return models.SuggestionType(strings.ToLower(s))
	default:
		return models.SuggestionOtherAction
	}
}

func suggestionPriority(s string) models.SuggestionPriority {
	switch models.SuggestionPriority(strings.ToLower(s)) {
	case models.PriorityLow, models.PriorityHigh:
		return models.SuggestionPriority(strings.ToLower(s))
	default:
		return models.PriorityMedium
	}
}
