package appdetect

import (
	"regexp"
	"strings"

	"github.com/benedict-anokye-davies/glance/internal/models"
)

// classifyRule maps process-name/path patterns to an app type. Rules are
// tested in order; the first match wins.
type classifyRule struct {
	appType  models.AppType
	patterns []*regexp.Regexp
}

var classifyRules = []classifyRule{
	{models.AppTypeIDE, compileAll(
		`(?i)\b(code|codium|vscodium)\b`,
		`(?i)(intellij|goland|pycharm|webstorm|clion|rider|rubymine|phpstorm|datagrip)`,
		`(?i)\b(nvim|neovide|gvim|emacs)\b`,
		`(?i)(sublime_text|subl)`,
		`(?i)\bzed\b`,
		`(?i)(android.?studio|xcode)`,
	)},
	{models.AppTypeBrowser, compileAll(
		`(?i)(firefox|librewolf|waterfox)`,
		`(?i)(chrome|chromium|brave|vivaldi|opera)`,
		`(?i)\b(safari|epiphany|edge|msedge)\b`,
	)},
	{models.AppTypeTerminal, compileAll(
		`(?i)(kitty|alacritty|wezterm|foot|ghostty)`,
		`(?i)(gnome-terminal|konsole|xterm|urxvt|st)$`,
		`(?i)(iterm2?|terminal|windowsterminal|cmd|powershell|pwsh)`,
	)},
	{models.AppTypeOffice, compileAll(
		`(?i)(libreoffice|soffice|onlyoffice)`,
		`(?i)(winword|excel|powerpnt|outlook)`,
		`(?i)(obsidian|notion|logseq)`,
	)},
	{models.AppTypeCommunication, compileAll(
		`(?i)(slack|discord|element|signal|telegram)`,
		`(?i)(thunderbird|evolution|geary)`,
		`(?i)(zoom|teams|skype)`,
	)},
	{models.AppTypeDesign, compileAll(
		`(?i)(gimp|inkscape|krita|blender)`,
		`(?i)(figma|penpot|aseprite)`,
	)},
	{models.AppTypeMedia, compileAll(
		`(?i)\b(vlc|mpv|celluloid|totem)\b`,
		`(?i)(spotify|rhythmbox|audacity|obs)`,
	)},
	{models.AppTypeFileManager, compileAll(
		`(?i)(nautilus|dolphin|thunar|nemo|pcmanfm)`,
		`(?i)\b(finder|explorer|ranger|yazi)\b`,
	)},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// Classify maps a process name (and optionally its executable path) to an
// app type. Unrecognized processes classify as "other".
func Classify(processName, execPath string) models.AppType {
	subject := strings.ToLower(strings.TrimSpace(processName))
	if execPath != "" {
		subject += " " + strings.ToLower(execPath)
	}
	if subject == "" {
		return models.AppTypeOther
	}

	for _, rule := range classifyRules {
		for _, pattern := range rule.patterns {
			if pattern.MatchString(subject) {
				return rule.appType
			}
		}
	}
	return models.AppTypeOther
}
