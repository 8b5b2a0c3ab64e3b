package wayland

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/benedict-anokye-davies/glance/pkg/window"
)

// Prober implements window.Prober for Wayland compositors. Sway and
// Hyprland expose structured IPC; everything else is unsupported and
// reported as unavailable.
type Prober struct {
	compositor  string
	hasSwaymsg  bool
	hasHyprctl  bool
}

// NewProber creates a new Wayland prober
func NewProber() *Prober {
	p := &Prober{}
	p.hasSwaymsg = commandExists("swaymsg")
	p.hasHyprctl = commandExists("hyprctl")
	p.detectCompositor()
	return p
}

func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

func (p *Prober) detectCompositor() {
	compositors := map[string]string{
		"sway":     "sway",
		"Hyprland": "hyprland",
	}

	for process, name := range compositors {
		if err := exec.Command("pgrep", "-x", process).Run(); err == nil {
			p.compositor = name
			return
		}
	}

	p.compositor = "unknown"
}

// IsAvailable checks if Wayland probing is available
func (p *Prober) IsAvailable() bool {
	switch p.compositor {
	case "sway":
		return p.hasSwaymsg
	case "hyprland":
		return p.hasHyprctl
	default:
		return false
	}
}

// Platform returns "wayland"
func (p *Prober) Platform() string {
	return "wayland"
}

// ActiveWindow returns information about the current foreground window
func (p *Prober) ActiveWindow() (*window.ActiveWindowInfo, error) {
	switch p.compositor {
	case "sway":
		return p.activeWindowSway()
	case "hyprland":
		return p.activeWindowHyprland()
	default:
		return nil, fmt.Errorf("unsupported wayland compositor: %s", p.compositor)
	}
}

// swayNode is the subset of the sway tree we care about.
type swayNode struct {
	Name    string `json:"name"`
	AppID   string `json:"app_id"`
	PID     int    `json:"pid"`
	Focused bool   `json:"focused"`
	Visible bool   `json:"visible"`
	Type    string `json:"type"`
	Rect    struct {
		X      int `json:"x"`
		Y      int `json:"y"`
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"rect"`
	WindowProperties *struct {
		Class string `json:"class"`
	} `json:"window_properties"`
	Nodes         []swayNode `json:"nodes"`
	FloatingNodes []swayNode `json:"floating_nodes"`
}

func (p *Prober) activeWindowSway() (*window.ActiveWindowInfo, error) {
	out, err := exec.Command("swaymsg", "-t", "get_tree").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to execute swaymsg: %w", err)
	}

	var root swayNode
	if err := json.Unmarshal(out, &root); err != nil {
		return nil, fmt.Errorf("failed to parse sway tree: %w", err)
	}

	focused := findFocused(&root)
	if focused == nil {
		return nil, fmt.Errorf("no focused window in sway tree")
	}

	appName := focused.AppID
	if appName == "" && focused.WindowProperties != nil {
		appName = focused.WindowProperties.Class
	}
	if appName == "" {
		return nil, fmt.Errorf("focused sway window has no app id")
	}

	return &window.ActiveWindowInfo{
		Title:       focused.Name,
		AppName:     appName,
		ProcessName: processName(focused.PID),
		PID:         focused.PID,
	}, nil
}

func findFocused(node *swayNode) *swayNode {
	if node.Focused && node.Type != "workspace" && node.Type != "output" && node.Type != "root" {
		return node
	}
	for i := range node.Nodes {
		if found := findFocused(&node.Nodes[i]); found != nil {
			return found
		}
	}
	for i := range node.FloatingNodes {
		if found := findFocused(&node.FloatingNodes[i]); found != nil {
			return found
		}
	}
	return nil
}

// hyprWindow is the shape of `hyprctl activewindow -j` / `hyprctl clients -j`.
type hyprWindow struct {
	Address string `json:"address"`
	Title   string `json:"title"`
	Class   string `json:"class"`
	PID     int    `json:"pid"`
	At      [2]int `json:"at"`
	Size    [2]int `json:"size"`
	Hidden  bool   `json:"hidden"`
}

func (p *Prober) activeWindowHyprland() (*window.ActiveWindowInfo, error) {
	out, err := exec.Command("hyprctl", "activewindow", "-j").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to execute hyprctl: %w", err)
	}

	var w hyprWindow
	if err := json.Unmarshal(out, &w); err != nil {
		return nil, fmt.Errorf("failed to parse hyprctl output: %w", err)
	}
	if w.Class == "" {
		return nil, fmt.Errorf("no active hyprland window")
	}

	return &window.ActiveWindowInfo{
		Title:       w.Title,
		AppName:     w.Class,
		ProcessName: processName(w.PID),
		PID:         w.PID,
	}, nil
}

// VisibleWindows enumerates all visible windows
func (p *Prober) VisibleWindows() ([]window.Info, error) {
	switch p.compositor {
	case "sway":
		return p.visibleWindowsSway()
	case "hyprland":
		return p.visibleWindowsHyprland()
	default:
		return nil, fmt.Errorf("unsupported wayland compositor: %s", p.compositor)
	}
}

func (p *Prober) visibleWindowsSway() ([]window.Info, error) {
	out, err := exec.Command("swaymsg", "-t", "get_tree").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to execute swaymsg: %w", err)
	}

	var root swayNode
	if err := json.Unmarshal(out, &root); err != nil {
		return nil, fmt.Errorf("failed to parse sway tree: %w", err)
	}

	var windows []window.Info
	collectSwayWindows(&root, &windows)
	return windows, nil
}

func collectSwayWindows(node *swayNode, out *[]window.Info) {
	isWindow := node.PID > 0 && (node.AppID != "" || node.WindowProperties != nil)
	if isWindow {
		appName := node.AppID
		if appName == "" && node.WindowProperties != nil {
			appName = node.WindowProperties.Class
		}
		*out = append(*out, window.Info{
			ID:      fmt.Sprintf("%d", node.PID),
			Title:   node.Name,
			AppName: appName,
			Bounds: window.Bounds{
				X: node.Rect.X, Y: node.Rect.Y,
				Width: node.Rect.Width, Height: node.Rect.Height,
			},
			Active:    node.Focused,
			Minimized: !node.Visible,
			ZOrder:    len(*out),
		})
	}
	for i := range node.Nodes {
		collectSwayWindows(&node.Nodes[i], out)
	}
	for i := range node.FloatingNodes {
		collectSwayWindows(&node.FloatingNodes[i], out)
	}
}

func (p *Prober) visibleWindowsHyprland() ([]window.Info, error) {
	out, err := exec.Command("hyprctl", "clients", "-j").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to execute hyprctl: %w", err)
	}

	var clients []hyprWindow
	if err := json.Unmarshal(out, &clients); err != nil {
		return nil, fmt.Errorf("failed to parse hyprctl clients: %w", err)
	}

	windows := make([]window.Info, 0, len(clients))
	for i, c := range clients {
		windows = append(windows, window.Info{
			ID:      c.Address,
			Title:   c.Title,
			AppName: c.Class,
			Bounds: window.Bounds{
				X: c.At[0], Y: c.At[1],
				Width: c.Size[0], Height: c.Size[1],
			},
			Minimized: c.Hidden,
			ZOrder:    i,
		})
	}
	return windows, nil
}

func processName(pid int) string {
	if pid <= 0 {
		return ""
	}
	out, err := exec.Command("ps", "-p", fmt.Sprintf("%d", pid), "-o", "comm=").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// Close cleans up resources
func (p *Prober) Close() error {
	return nil
}
