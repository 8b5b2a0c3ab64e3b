// Package appdetect resolves the foreground application and classifies
// what kind of work it represents.
package appdetect

import (
	"log"

	"github.com/benedict-anokye-davies/glance/internal/models"
	"github.com/benedict-anokye-davies/glance/pkg/window"
)

// Detector wraps a platform prober and adds classification, metadata
// extraction and app-change tracking. All OS queries are best-effort and
// degrade to nil/empty with a logged warning.
type Detector struct {
	prober window.Prober

	// last is updated unconditionally on every change check, including
	// to nil, so a run of failed probes cannot signal a spurious change.
	last *models.ApplicationContext
}

// New creates a detector over the given prober.
func New(prober window.Prober) *Detector {
	return &Detector{prober: prober}
}

// GetActiveApp returns the classified foreground application, or nil when
// the probe fails.
func (d *Detector) GetActiveApp() *models.ApplicationContext {
	if d.prober == nil {
		return nil
	}

	info, err := d.prober.ActiveWindow()
	if err != nil {
		log.Printf("active window probe failed: %v", err)
		return nil
	}
	if info == nil || info.AppName == "" {
		return nil
	}

	appType := Classify(firstNonEmpty(info.ProcessName, info.AppName), info.ExecPath)

	return &models.ApplicationContext{
		AppName:     info.AppName,
		PID:         info.PID,
		WindowTitle: info.Title,
		Type:        appType,
		Metadata:    ExtractMetadata(appType, info.Title),
	}
}

// VisibleWindows enumerates visible windows; empty on failure.
func (d *Detector) VisibleWindows() []window.Info {
	if d.prober == nil {
		return nil
	}

	windows, err := d.prober.VisibleWindows()
	if err != nil {
		log.Printf("window enumeration failed: %v", err)
		return nil
	}
	return windows
}

// CheckForAppChange detects a change in the (name, title) tuple since the
// previous check. It returns the new context when either differs, nil
// otherwise. The remembered value is always replaced, even by nil.
func (d *Detector) CheckForAppChange() (changed *models.ApplicationContext, previous *models.ApplicationContext) {
	current := d.GetActiveApp()
	previous = d.last
	d.last = current

	if current == nil {
		return nil, previous
	}
	if current.SameActivity(previous) {
		return nil, previous
	}
	return current, previous
}

// Last returns the most recently remembered application context.
func (d *Detector) Last() *models.ApplicationContext {
	return d.last
}

// Close releases the underlying prober.
func (d *Detector) Close() error {
	if d.prober == nil {
		return nil
	}
	return d.prober.Close()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
