package capture

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/benedict-anokye-davies/glance/internal/models"
	"github.com/benedict-anokye-davies/glance/pkg/window"
)

// captureScript copies one screen into a bitmap and saves it; the screen
// index, output path and image format are substituted in.
const captureScript = `
Add-Type -AssemblyName System.Windows.Forms
Add-Type -AssemblyName System.Drawing
$bounds = [System.Windows.Forms.Screen]::AllScreens[%d].Bounds
$bitmap = New-Object System.Drawing.Bitmap $bounds.Width, $bounds.Height
$graphics = [System.Drawing.Graphics]::FromImage($bitmap)
$graphics.CopyFromScreen($bounds.Location, [System.Drawing.Point]::Empty, $bounds.Size)
$bitmap.Save("%s", [System.Drawing.Imaging.ImageFormat]::%s)
$graphics.Dispose()
$bitmap.Dispose()
`

const displaysScript = `
Add-Type -AssemblyName System.Windows.Forms
[System.Windows.Forms.Screen]::AllScreens | ForEach-Object {
	"{0}|{1}|{2}|{3}|{4}|{5}" -f $_.DeviceName, $_.Primary, $_.Bounds.X, $_.Bounds.Y, $_.Bounds.Width, $_.Bounds.Height
}
`

// WindowsSource shells out to powershell for enumeration and capture.
type WindowsSource struct{}

// NewWindowsSource verifies powershell exists.
func NewWindowsSource() (*WindowsSource, error) {
	if _, err := exec.LookPath("powershell"); err != nil {
		return nil, fmt.Errorf("powershell not found: %w", err)
	}
	return &WindowsSource{}, nil
}

// Displays enumerates screens via System.Windows.Forms.
func (s *WindowsSource) Displays() ([]Display, error) {
	out, err := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", displaysScript).Output()
	if err != nil {
		return nil, fmt.Errorf("display enumeration failed: %w", err)
	}

	displays := parseDisplayList(string(out))
	if len(displays) == 0 {
		return nil, fmt.Errorf("no displays reported")
	}
	return displays, nil
}

// Capture grabs the indexed screen and returns the encoded bytes.
func (s *WindowsSource) Capture(d Display, format models.CaptureFormat, quality int) ([]byte, error) {
	index := 0
	if _, err := fmt.Sscanf(d.ID, "display-%d", &index); err != nil {
		index = 0
	}

	imageFormat := "Png"
	ext := "png"
	if format == models.FormatJPEG {
		imageFormat = "Jpeg"
		ext = "jpg"
	}

	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("glance-capture-%d.%s", os.Getpid(), ext))
	defer os.Remove(tmp)

	script := fmt.Sprintf(captureScript, index, tmp, imageFormat)
	if err := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script).Run(); err != nil {
		return nil, fmt.Errorf("screen capture failed: %w", err)
	}

	data, err := os.ReadFile(tmp)
	if err != nil {
		return nil, fmt.Errorf("failed to read captured image: %w", err)
	}
	return data, nil
}

// parseDisplayList parses "name|primary|x|y|w|h" lines. Display IDs are
// synthesized as "display-<index>" matching the AllScreens order the
// capture script indexes into.
func parseDisplayList(output string) []Display {
	var displays []Display
	for i, line := range strings.Split(strings.TrimSpace(output), "\n") {
		fields := strings.Split(strings.TrimSpace(line), "|")
		if len(fields) != 6 {
			continue
		}

		x, _ := strconv.Atoi(fields[2])
		y, _ := strconv.Atoi(fields[3])
		w, _ := strconv.Atoi(fields[4])
		h, _ := strconv.Atoi(fields[5])

		displays = append(displays, Display{
			ID:      fmt.Sprintf("display-%d", i),
			Primary: strings.EqualFold(fields[1], "true"),
			Bounds:  window.Bounds{X: x, Y: y, Width: w, Height: h},
		})
	}
	return displays
}

// Close is a no-op for the shell-out source.
func (s *WindowsSource) Close() error {
	return nil
}
