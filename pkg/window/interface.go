package window

// Bounds is a rectangle in screen coordinates.
type Bounds struct {
	X      int
	Y      int
	Width  int
	Height int
}

// ActiveWindowInfo describes the OS's current foreground window.
type ActiveWindowInfo struct {
	Title       string
	AppName     string
	ProcessName string
	PID         int
	ExecPath    string
}

// Info is a snapshot of one visible window. Enumeration rebuilds the whole
// list every query; entries are never updated in place.
type Info struct {
	ID        string
	Title     string
	AppName   string
	Bounds    Bounds
	Active    bool
	Minimized bool
	ZOrder    int
}

// Prober is the interface all platform window probes must satisfy.
// Probes are best-effort: a failed query returns an error and the caller
// degrades to nil/empty instead of propagating.
type Prober interface {
	// ActiveWindow returns information about the current foreground window
	ActiveWindow() (*ActiveWindowInfo, error)

	// VisibleWindows enumerates all currently visible windows
	VisibleWindows() ([]Info, error)

	// IsAvailable checks if this prober can run on the current system
	IsAvailable() bool

	// Platform returns the platform identifier ("x11", "wayland", "macos" or "windows")
	Platform() string

	// Close cleans up any resources used by the prober
	Close() error
}
