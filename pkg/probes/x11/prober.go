package x11

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/benedict-anokye-davies/glance/pkg/window"
)

// Prober implements window.Prober for X11
type Prober struct {
	hasXdotool bool
	hasWmctrl  bool
	hasXprop   bool
}

// NewProber creates a new X11 prober
func NewProber() *Prober {
	p := &Prober{}
	p.hasXdotool = commandExists("xdotool")
	p.hasWmctrl = commandExists("wmctrl")
	p.hasXprop = commandExists("xprop")
	return p
}

func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// IsAvailable checks if X11 probing is available
func (p *Prober) IsAvailable() bool {
	return p.hasXdotool || p.hasWmctrl
}

// Platform returns "x11"
func (p *Prober) Platform() string {
	return "x11"
}

// ActiveWindow returns information about the current foreground window
func (p *Prober) ActiveWindow() (*window.ActiveWindowInfo, error) {
	if !p.hasXdotool {
		return nil, fmt.Errorf("xdotool not available")
	}

	out, err := exec.Command("xdotool", "getactivewindow").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to get active x11 window ID: %w", err)
	}
	windowID := strings.TrimSpace(string(out))

	titleOut, err := exec.Command("xdotool", "getwindowname", windowID).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to get window name: %w", err)
	}

	info := &window.ActiveWindowInfo{
		Title: strings.TrimSpace(string(titleOut)),
	}

	// WM_CLASS works even for sandboxed apps where the PID probe fails
	if p.hasXprop {
		if classOut, err := exec.Command("xprop", "-id", windowID, "WM_CLASS").Output(); err == nil {
			info.AppName = ParseWMClass(string(classOut))
		}
	}

	if pidOut, err := exec.Command("xdotool", "getwindowpid", windowID).Output(); err == nil {
		pidStr := strings.TrimSpace(string(pidOut))
		if pid, err := strconv.Atoi(pidStr); err == nil {
			info.PID = pid
		}

		if psOut, err := exec.Command("ps", "-p", pidStr, "-o", "comm=").Output(); err == nil {
			info.ProcessName = strings.TrimSpace(string(psOut))
		}
		if exeOut, err := exec.Command("readlink", "-f", "/proc/"+pidStr+"/exe").Output(); err == nil {
			info.ExecPath = strings.TrimSpace(string(exeOut))
		}
	}

	if info.AppName == "" {
		info.AppName = info.ProcessName
	}
	if info.AppName == "" {
		return nil, fmt.Errorf("could not identify active window owner")
	}

	return info, nil
}

// VisibleWindows enumerates all visible windows via wmctrl
func (p *Prober) VisibleWindows() ([]window.Info, error) {
	if !p.hasWmctrl {
		return nil, fmt.Errorf("wmctrl not available")
	}

	out, err := exec.Command("wmctrl", "-l", "-p", "-G").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to execute wmctrl: %w", err)
	}

	activeID := ""
	if p.hasXdotool {
		if activeOut, err := exec.Command("xdotool", "getactivewindow").Output(); err == nil {
			if n, err := strconv.ParseInt(strings.TrimSpace(string(activeOut)), 10, 64); err == nil {
				activeID = fmt.Sprintf("0x%08x", n)
			}
		}
	}

	return ParseWmctrlList(string(out), activeID), nil
}

// ParseWmctrlList parses `wmctrl -l -p -G` output. Each line is
// "<id> <desktop> <pid> <x> <y> <w> <h> <host> <title...>". Window
// stacking order follows line order, bottom to top.
func ParseWmctrlList(output, activeID string) []window.Info {
	var windows []window.Info

	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 8 {
			continue
		}

		x, _ := strconv.Atoi(fields[3])
		y, _ := strconv.Atoi(fields[4])
		w, _ := strconv.Atoi(fields[5])
		h, _ := strconv.Atoi(fields[6])

		title := ""
		if len(fields) > 8 {
			title = strings.Join(fields[8:], " ")
		}

		windows = append(windows, window.Info{
			ID:     fields[0],
			Title:  title,
			Bounds: window.Bounds{X: x, Y: y, Width: w, Height: h},
			Active: activeID != "" && strings.EqualFold(fields[0], activeID),
			ZOrder: len(lines) - i,
		})
	}

	return windows
}

// ParseWMClass extracts the class name from an xprop WM_CLASS line
func ParseWMClass(output string) string {
	parts := strings.SplitN(output, "=", 2)
	if len(parts) < 2 {
		return ""
	}

	classes := strings.Split(strings.TrimSpace(parts[1]), ",")
	if len(classes) == 0 {
		return ""
	}

	// The second WM_CLASS entry is the class proper; the first is the
	// instance name.
	name := strings.TrimSpace(classes[len(classes)-1])
	return strings.Trim(name, `" `)
}

// Close cleans up resources
func (p *Prober) Close() error {
	return nil
}
