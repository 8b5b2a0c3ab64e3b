// Package capture abstracts the OS screen-capture primitive behind a
// small Source contract with display enumeration and encoded capture.
package capture

import (
	"fmt"
	"runtime"

	"github.com/benedict-anokye-davies/glance/internal/models"
	"github.com/benedict-anokye-davies/glance/pkg/window"
)

// Display is one enumerated output.
type Display struct {
	ID      string
	Primary bool
	Bounds  window.Bounds
}

// Source is the capture primitive. Capture returns encoded image bytes for
// the display's bounds, or an error when no source is available; the
// caller treats failure as a skipped cycle, never as fatal.
type Source interface {
	// Displays enumerates the currently attached displays.
	Displays() ([]Display, error)

	// Capture grabs the display's pixels encoded per format/quality.
	Capture(d Display, format models.CaptureFormat, quality int) ([]byte, error)

	// Close releases the source's resources.
	Close() error
}

// New returns the capture source for the current platform.
func New() (Source, error) {
	switch runtime.GOOS {
	case "linux":
		s, err := NewX11Source()
		if err != nil {
			return nil, err
		}
		return s, nil
	case "darwin":
		s, err := NewMacSource()
		if err != nil {
			return nil, err
		}
		return s, nil
	case "windows":
		s, err := NewWindowsSource()
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("no capture source for platform %s", runtime.GOOS)
	}
}

// ResolveDisplay picks the configured target among displays, falling back
// to the primary when the target is absent or unset. The second return
// reports whether a configured target was actually found.
func ResolveDisplay(displays []Display, targetID string) (Display, bool) {
	if len(displays) == 0 {
		return Display{}, false
	}

	primary := displays[0]
	for _, d := range displays {
		if d.Primary {
			primary = d
			break
		}
	}

	if targetID == "" {
		return primary, true
	}
	for _, d := range displays {
		if d.ID == targetID {
			return d, true
		}
	}
	return primary, false
}
