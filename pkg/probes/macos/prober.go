package macos

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/benedict-anokye-davies/glance/pkg/window"
)

// activeWindowScript asks System Events for the frontmost process and its
// front window title. Output: "<name>|||<pid>|||<title>".
const activeWindowScript = `
tell application "System Events"
	set frontApp to first application process whose frontmost is true
	set appName to name of frontApp
	set appPid to unix id of frontApp
	set winTitle to ""
	try
		set winTitle to name of front window of frontApp
	end try
end tell
return appName & "|||" & appPid & "|||" & winTitle
`

// visibleWindowsScript lists every visible process's window titles.
// One line per window: "<app>|||<title>".
const visibleWindowsScript = `
set output to ""
tell application "System Events"
	repeat with proc in (application processes whose visible is true)
		set procName to name of proc
		repeat with win in windows of proc
			set output to output & procName & "|||" & (name of win) & linefeed
		end repeat
	end repeat
end tell
return output
`

// Prober implements window.Prober for macOS via osascript
type Prober struct {
	hasOsascript bool
}

// NewProber creates a new macOS prober
func NewProber() *Prober {
	_, err := exec.LookPath("osascript")
	return &Prober{hasOsascript: err == nil}
}

// IsAvailable checks if macOS probing is available
func (p *Prober) IsAvailable() bool {
	return p.hasOsascript
}

// Platform returns "macos"
func (p *Prober) Platform() string {
	return "macos"
}

// ActiveWindow returns information about the current foreground window
func (p *Prober) ActiveWindow() (*window.ActiveWindowInfo, error) {
	if !p.hasOsascript {
		return nil, fmt.Errorf("osascript not available")
	}

	out, err := exec.Command("osascript", "-e", activeWindowScript).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to query frontmost app: %w", err)
	}

	return ParseActiveWindow(string(out))
}

// ParseActiveWindow parses the "<name>|||<pid>|||<title>" osascript reply
func ParseActiveWindow(output string) (*window.ActiveWindowInfo, error) {
	parts := strings.SplitN(strings.TrimSpace(output), "|||", 3)
	if len(parts) < 3 || parts[0] == "" {
		return nil, fmt.Errorf("unexpected osascript output: %q", output)
	}

	pid, _ := strconv.Atoi(strings.TrimSpace(parts[1]))

	return &window.ActiveWindowInfo{
		AppName:     parts[0],
		ProcessName: parts[0],
		PID:         pid,
		Title:       parts[2],
	}, nil
}

// VisibleWindows enumerates all visible windows
func (p *Prober) VisibleWindows() ([]window.Info, error) {
	if !p.hasOsascript {
		return nil, fmt.Errorf("osascript not available")
	}

	out, err := exec.Command("osascript", "-e", visibleWindowsScript).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate windows: %w", err)
	}

	return ParseWindowList(string(out)), nil
}

// ParseWindowList parses one "<app>|||<title>" line per window
func ParseWindowList(output string) []window.Info {
	var windows []window.Info
	for i, line := range strings.Split(strings.TrimSpace(output), "\n") {
		parts := strings.SplitN(line, "|||", 2)
		if len(parts) != 2 || parts[0] == "" {
			continue
		}
		windows = append(windows, window.Info{
			ID:      fmt.Sprintf("%s-%d", parts[0], i),
			AppName: parts[0],
			Title:   parts[1],
			ZOrder:  i,
		})
	}
	return windows
}

// Close cleans up resources
func (p *Prober) Close() error {
	return nil
}
