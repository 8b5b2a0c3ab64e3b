// Package probes selects the platform window prober once at construction.
// Callers hold the window.Prober interface; no per-call OS dispatch.
package probes

import (
	"fmt"
	"os"
	"runtime"

	"github.com/benedict-anokye-davies/glance/pkg/probes/macos"
	"github.com/benedict-anokye-davies/glance/pkg/probes/wayland"
	"github.com/benedict-anokye-davies/glance/pkg/probes/windows"
	"github.com/benedict-anokye-davies/glance/pkg/probes/x11"
	"github.com/benedict-anokye-davies/glance/pkg/window"
)

// New returns the prober for the current platform, or an error when no
// probe can run here. The choice is made exactly once.
func New() (window.Prober, error) {
	switch runtime.GOOS {
	case "linux":
		return newLinuxProber()
	case "darwin":
		if p := macos.NewProber(); p.IsAvailable() {
			return p, nil
		}
		return nil, fmt.Errorf("osascript not found")
	case "windows":
		if p := windows.NewProber(); p.IsAvailable() {
			return p, nil
		}
		return nil, fmt.Errorf("powershell not found")
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

func newLinuxProber() (window.Prober, error) {
	switch DetectDisplayServer() {
	case "wayland":
		if p := wayland.NewProber(); p.IsAvailable() {
			return p, nil
		}
		// Xwayland often leaves the X11 tools usable
		if p := x11.NewProber(); p.IsAvailable() {
			return p, nil
		}
		return nil, fmt.Errorf("no usable wayland or x11 probe found")
	case "x11":
		if p := x11.NewProber(); p.IsAvailable() {
			return p, nil
		}
		return nil, fmt.Errorf("no usable x11 probe found (xdotool or wmctrl required)")
	default:
		return nil, fmt.Errorf("no display server detected")
	}
}

// DetectDisplayServer inspects the session environment.
func DetectDisplayServer() string {
	sessionType := os.Getenv("XDG_SESSION_TYPE")
	waylandDisplay := os.Getenv("WAYLAND_DISPLAY")
	x11Display := os.Getenv("DISPLAY")

	if sessionType == "wayland" || waylandDisplay != "" {
		return "wayland"
	}

	if sessionType == "x11" || x11Display != "" {
		return "x11"
	}

	return "unknown"
}
