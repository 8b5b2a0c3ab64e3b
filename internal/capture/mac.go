package capture

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/benedict-anokye-davies/glance/internal/models"
)

// MacSource shells out to the system screencapture utility. Display
// enumeration counts attached displays via system_profiler; bounds are
// not reported, the utility resolves them itself.
type MacSource struct{}

// NewMacSource verifies the screencapture utility exists.
func NewMacSource() (*MacSource, error) {
	if _, err := exec.LookPath("screencapture"); err != nil {
		return nil, fmt.Errorf("screencapture utility not found: %w", err)
	}
	return &MacSource{}, nil
}

// Displays counts attached displays; the first is primary.
func (s *MacSource) Displays() ([]Display, error) {
	count := 1
	if out, err := exec.Command("system_profiler", "SPDisplaysDataType").Output(); err == nil {
		if n := strings.Count(string(out), "Resolution:"); n > 0 {
			count = n
		}
	}

	displays := make([]Display, 0, count)
	for i := 0; i < count; i++ {
		displays = append(displays, Display{
			ID:      strconv.Itoa(i + 1), // screencapture -D is 1-based
			Primary: i == 0,
		})
	}
	return displays, nil
}

// Capture invokes screencapture for the given display.
func (s *MacSource) Capture(d Display, format models.CaptureFormat, quality int) ([]byte, error) {
	ext := "png"
	if format == models.FormatJPEG {
		ext = "jpg"
	}

	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("glance-capture-%d.%s", os.Getpid(), ext))
	defer os.Remove(tmp)

	args := []string{"-x", "-t", string(format)}
	if d.ID != "" {
		args = append(args, "-D", d.ID)
	}
	args = append(args, tmp)

	if err := exec.Command("screencapture", args...).Run(); err != nil {
		return nil, fmt.Errorf("screencapture failed: %w", err)
	}

	data, err := os.ReadFile(tmp)
	if err != nil {
		return nil, fmt.Errorf("failed to read captured image: %w", err)
	}
	return data, nil
}

// Close is a no-op for the shell-out source.
func (s *MacSource) Close() error {
	return nil
}
