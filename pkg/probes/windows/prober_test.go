package windows

import (
	"testing"

	"github.com/benedict-anokye-davies/glance/pkg/window"
)

func TestParseActiveWindow(t *testing.T) {
	output := `{"title": "main.go - glance - Visual Studio Code", "name": "Code", "pid": 4321, "path": "C:\\Program Files\\VS Code\\Code.exe"}`

	info, err := ParseActiveWindow(output)
	if err != nil {
		t.Fatalf("ParseActiveWindow() error: %v", err)
	}

	if info.AppName != "Code" {
		t.Errorf("AppName = %q, want Code", info.AppName)
	}
	if info.ProcessName != "Code" {
		t.Errorf("ProcessName = %q, want Code", info.ProcessName)
	}
	if info.PID != 4321 {
		t.Errorf("PID = %d, want 4321", info.PID)
	}
	if info.Title != "main.go - glance - Visual Studio Code" {
		t.Errorf("Title = %q", info.Title)
	}
	if info.ExecPath != `C:\Program Files\VS Code\Code.exe` {
		t.Errorf("ExecPath = %q", info.ExecPath)
	}
}

func TestParseActiveWindowMalformed(t *testing.T) {
	tests := []string{
		"",
		"not json",
		`{"title": "x"}`, // no process name
	}

	for _, input := range tests {
		if _, err := ParseActiveWindow(input); err == nil {
			t.Errorf("ParseActiveWindow(%q) should fail", input)
		}
	}
}

func TestParseActiveWindowTrimsWhitespace(t *testing.T) {
	info, err := ParseActiveWindow("\n  {\"title\": \"t\", \"name\": \"n\", \"pid\": 1}  \n")
	if err != nil {
		t.Fatalf("ParseActiveWindow() error: %v", err)
	}
	if info.AppName != "n" {
		t.Errorf("AppName = %q, want n", info.AppName)
	}
}

func TestProberInterface(t *testing.T) {
	var _ window.Prober = (*Prober)(nil)
}
