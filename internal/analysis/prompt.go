package analysis

import (
	"fmt"
	"strings"

	"github.com/benedict-anokye-davies/glance/internal/models"
)

// SystemPrompt instructs the service to embed one JSON payload in its
// reply; ParseResponse tolerates replies that ignore it.
const SystemPrompt = `You analyze a snapshot of a user's screen. Reply with a single JSON object:
{"scene_description": string,
 "issues": [{"type", "severity", "title", "description", "confidence", "suggested_fix": {"description", "automated", "confidence"}}],
 "suggestions": [{"type", "priority", "title", "description", "actions": [{"label", "command"}]}],
 "entities": [{"type", "value"}]}
Issue types: compilation-error, runtime-error, lint-warning, test-failure, dependency-error, other.
Severities: info, warning, error, critical. Suggestion types: fix-error, refactor, documentation, workflow, research, other.
Entity types: file, url, command, identifier. Report only what is visible.`

// BuildPrompt assembles the user prompt from the detected app context and
// the recognized screen text.
func BuildPrompt(app *models.ApplicationContext, text []models.TextRegion) string {
	var b strings.Builder

	if app != nil {
		fmt.Fprintf(&b, "Active application: %s (%s)\n", app.AppName, app.Type)
		if app.WindowTitle != "" {
			fmt.Fprintf(&b, "Window title: %s\n", app.WindowTitle)
		}
	}

	if len(text) > 0 {
		b.WriteString("\nText visible on screen:\n")
		for _, region := range text {
			b.WriteString(region.Text)
			b.WriteByte('\n')
		}
	} else {
		b.WriteString("\nNo screen text was recognized.\n")
	}

	b.WriteString("\nDescribe what the user is doing and extract any issues, suggestions and entities.")
	return b.String()
}
