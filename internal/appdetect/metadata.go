package appdetect

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/benedict-anokye-davies/glance/internal/models"
)

// Title parsing is heuristic by nature. Each app type gets its own pure
// extraction function so a single editor/browser format change only
// touches one pattern set.

var (
	// "<file> - <project> - <editor>", separators "-", "–" or "—"
	ideTitleRe = regexp.MustCompile(`^(.+?)\s+[-–—]\s+(.+?)\s+[-–—]\s+(.+)$`)

	// "<file> - <editor>" two-part fallback
	ideShortTitleRe = regexp.MustCompile(`^(.+?)\s+[-–—]\s+(.+)$`)

	// "<page title> - <browser>"
	browserTitleRe = regexp.MustCompile(`^(.+)\s+[-–—]\s+[^-–—]+$`)

	// a URL visible in the title
	urlRe = regexp.MustCompile(`https?://[^\s"]+`)

	// windows drive-letter path
	drivePathRe = regexp.MustCompile(`[A-Za-z]:[\\/][^\s"']*`)

	// unix path, possibly ~-relative
	unixPathRe = regexp.MustCompile(`(?:~|/)[\w./@+-]*`)
)

var languageByExt = map[string]string{
	".go":   "Go",
	".rs":   "Rust",
	".py":   "Python",
	".js":   "JavaScript",
	".jsx":  "JavaScript",
	".ts":   "TypeScript",
	".tsx":  "TypeScript",
	".java": "Java",
	".kt":   "Kotlin",
	".c":    "C",
	".h":    "C",
	".cc":   "C++",
	".cpp":  "C++",
	".cs":   "C#",
	".rb":   "Ruby",
	".php":  "PHP",
	".swift": "Swift",
	".sh":   "Shell",
	".sql":  "SQL",
	".html": "HTML",
	".css":  "CSS",
	".md":   "Markdown",
	".json": "JSON",
	".yaml": "YAML",
	".yml":  "YAML",
	".toml": "TOML",
}

// ExtractMetadata derives app-type-specific metadata from the window
// title. Best-effort: when no pattern matches it returns nil and the
// context simply carries no metadata.
func ExtractMetadata(appType models.AppType, title string) models.AppMetadata {
	switch appType {
	case models.AppTypeIDE:
		return extractIDEMetadata(title)
	case models.AppTypeBrowser:
		return extractBrowserMetadata(title)
	case models.AppTypeTerminal:
		return extractTerminalMetadata(title)
	default:
		return nil
	}
}

func extractIDEMetadata(title string) models.AppMetadata {
	title = strings.TrimPrefix(strings.TrimSpace(title), "● ") // unsaved marker

	if m := ideTitleRe.FindStringSubmatch(title); m != nil {
		file := strings.TrimSpace(m[1])
		return models.IDEMetadata{
			File:     file,
			Language: LanguageForFile(file),
			Project:  strings.TrimSpace(m[2]),
		}
	}

	if m := ideShortTitleRe.FindStringSubmatch(title); m != nil {
		file := strings.TrimSpace(m[1])
		if lang := LanguageForFile(file); lang != "" {
			return models.IDEMetadata{File: file, Language: lang}
		}
	}

	return nil
}

func extractBrowserMetadata(title string) models.AppMetadata {
	title = strings.TrimSpace(title)

	meta := models.BrowserMetadata{}
	if url := urlRe.FindString(title); url != "" {
		meta.URL = url
	}
	if m := browserTitleRe.FindStringSubmatch(title); m != nil {
		meta.PageTitle = strings.TrimSpace(m[1])
	}

	if meta.URL == "" && meta.PageTitle == "" {
		return nil
	}
	return meta
}

func extractTerminalMetadata(title string) models.AppMetadata {
	title = strings.TrimSpace(title)

	if path := drivePathRe.FindString(title); path != "" {
		return models.TerminalMetadata{Directory: path}
	}
	if path := unixPathRe.FindString(title); path != "" && len(path) > 1 {
		return models.TerminalMetadata{Directory: path}
	}
	return nil
}

// LanguageForFile maps a filename to a language by extension; empty when
// unknown.
func LanguageForFile(file string) string {
	return languageByExt[strings.ToLower(filepath.Ext(file))]
}
