package windows

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/benedict-anokye-davies/glance/pkg/window"
)

// activeWindowScript resolves the foreground window handle to its title
// and owning process, emitted as a single JSON object.
const activeWindowScript = `
Add-Type @"
using System;
using System.Runtime.InteropServices;
public class FG {
	[DllImport("user32.dll")] public static extern IntPtr GetForegroundWindow();
	[DllImport("user32.dll")] public static extern int GetWindowThreadProcessId(IntPtr hWnd, out int lpdwProcessId);
}
"@
$hwnd = [FG]::GetForegroundWindow()
$procId = 0
[FG]::GetWindowThreadProcessId($hwnd, [ref]$procId) | Out-Null
$proc = Get-Process -Id $procId
[PSCustomObject]@{
	title = $proc.MainWindowTitle
	name  = $proc.ProcessName
	pid   = $procId
	path  = $proc.Path
} | ConvertTo-Json -Compress
`

// visibleWindowsScript lists every process with a main window title.
const visibleWindowsScript = `
Get-Process | Where-Object { $_.MainWindowTitle -ne "" } | ForEach-Object {
	[PSCustomObject]@{ title = $_.MainWindowTitle; name = $_.ProcessName; pid = $_.Id }
} | ConvertTo-Json -Compress -AsArray
`

// Prober implements window.Prober for Windows via powershell
type Prober struct {
	hasPowershell bool
}

// NewProber creates a new Windows prober
func NewProber() *Prober {
	_, err := exec.LookPath("powershell")
	return &Prober{hasPowershell: err == nil}
}

// IsAvailable checks if Windows probing is available
func (p *Prober) IsAvailable() bool {
	return runtime.GOOS == "windows" && p.hasPowershell
}

// Platform returns "windows"
func (p *Prober) Platform() string {
	return "windows"
}

type psWindow struct {
	Title string `json:"title"`
	Name  string `json:"name"`
	PID   int    `json:"pid"`
	Path  string `json:"path"`
}

// ActiveWindow returns information about the current foreground window
func (p *Prober) ActiveWindow() (*window.ActiveWindowInfo, error) {
	if !p.hasPowershell {
		return nil, fmt.Errorf("powershell not available")
	}

	out, err := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", activeWindowScript).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to query foreground window: %w", err)
	}

	return ParseActiveWindow(string(out))
}

// ParseActiveWindow parses the JSON object emitted by the foreground query
func ParseActiveWindow(output string) (*window.ActiveWindowInfo, error) {
	var w psWindow
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &w); err != nil {
		return nil, fmt.Errorf("failed to parse powershell output: %w", err)
	}
	if w.Name == "" {
		return nil, fmt.Errorf("foreground process has no name")
	}

	return &window.ActiveWindowInfo{
		Title:       w.Title,
		AppName:     w.Name,
		ProcessName: w.Name,
		PID:         w.PID,
		ExecPath:    w.Path,
	}, nil
}

// VisibleWindows enumerates all processes with a main window
func (p *Prober) VisibleWindows() ([]window.Info, error) {
	if !p.hasPowershell {
		return nil, fmt.Errorf("powershell not available")
	}

	out, err := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", visibleWindowsScript).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate windows: %w", err)
	}

	var entries []psWindow
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(out))), &entries); err != nil {
		return nil, fmt.Errorf("failed to parse powershell window list: %w", err)
	}

	windows := make([]window.Info, 0, len(entries))
	for i, e := range entries {
		windows = append(windows, window.Info{
			ID:      fmt.Sprintf("%d", e.PID),
			Title:   e.Title,
			AppName: e.Name,
			ZOrder:  i,
		})
	}
	return windows, nil
}

// Close cleans up resources
func (p *Prober) Close() error {
	return nil
}
