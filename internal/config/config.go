package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Capture configuration
	Capture CaptureConfig

	// Analysis configuration
	Analysis AnalysisConfig

	// Privacy configuration
	Privacy PrivacyConfig

	// Database configuration
	Database DatabaseConfig

	// Daemon configuration
	Daemon DaemonConfig

	// Web server configuration
	Web WebConfig
}

// CaptureConfig holds capture scheduling and encoding configuration
type CaptureConfig struct {
	Interval        time.Duration // How often a capture cycle runs
	MinInterval     time.Duration // Minimum allowed capture interval
	Format          string        // "png" or "jpeg"
	Quality         int           // JPEG quality 1-100 (ignored for png)
	TargetDisplayID string        // Empty means primary display
	MaxPerMinute    int           // Max accepted captures per rolling minute
}

// AnalysisConfig holds OCR and analysis-service configuration
type AnalysisConfig struct {
	OCREnabled         bool
	AnalysisEnabled    bool
	SuggestionsEnabled bool
	BaseURL            string        // Analysis service endpoint
	Model              string        // Model name sent to the service
	APIKeyEnv          string        // Name of the env var holding the API key
	Timeout            time.Duration // Deadline for one analysis call
	SuggestionCooldown time.Duration // Min gap between suggestions of one type
	HistorySize        int           // Bounded analysis-result history length
	MaxRecent          int           // Cap for recency lists (apps/files/urls)
}

// PrivacyConfig holds the capture exclusion list
type PrivacyConfig struct {
	ExcludedApps  []string // App names that must never be captured
	ExclusionFile string   // Optional JSON file watched for live updates
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Enabled bool   // Whether activity records are persisted at all
	Path    string // Path to SQLite database file
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string // Path to PID file for daemon management
}

// WebConfig holds web server configuration
type WebConfig struct {
	Host string // Host to bind web server to
	Port int    // Port for web server
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Capture: CaptureConfig{
			Interval:     10 * time.Second,
			MinInterval:  1 * time.Second,
			Format:       "jpeg",
			Quality:      80,
			MaxPerMinute: 20,
		},
		Analysis: AnalysisConfig{
			OCREnabled:         true,
			AnalysisEnabled:    true,
			SuggestionsEnabled: true,
			BaseURL:            "http://localhost:11434/v1",
			Model:              "llava",
			APIKeyEnv:          "GLANCE_API_KEY",
			Timeout:            30 * time.Second,
			SuggestionCooldown: 5 * time.Minute,
			HistorySize:        10,
			MaxRecent:          10,
		},
		Privacy: PrivacyConfig{
			ExcludedApps: []string{"1password", "keepassxc", "bitwarden"},
		},
		Database: DatabaseConfig{
			Enabled: true,
			Path:    "", // Empty means use default ~/.config/glance/glance.db
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/glance-%d.pid", os.Getuid()),
		},
		Web: WebConfig{
			Host: "localhost",
			Port: 10100 + os.Getuid(),
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Capture.Interval < c.Capture.MinInterval {
		return fmt.Errorf("capture interval (%v) cannot be less than minimum (%v)",
			c.Capture.Interval, c.Capture.MinInterval)
	}

	if c.Capture.Format != "png" && c.Capture.Format != "jpeg" {
		return fmt.Errorf("capture format must be png or jpeg, got %q", c.Capture.Format)
	}

	if c.Capture.Quality < 1 || c.Capture.Quality > 100 {
		return fmt.Errorf("capture quality must be between 1 and 100, got %d", c.Capture.Quality)
	}

	if c.Capture.MaxPerMinute < 1 {
		return fmt.Errorf("max captures per minute must be at least 1, got %d", c.Capture.MaxPerMinute)
	}

	if c.Analysis.Timeout <= 0 {
		return fmt.Errorf("analysis timeout must be positive, got %v", c.Analysis.Timeout)
	}

	if c.Analysis.SuggestionCooldown < 0 {
		return fmt.Errorf("suggestion cooldown cannot be negative")
	}

	if c.Analysis.HistorySize < 1 {
		return fmt.Errorf("history size must be at least 1, got %d", c.Analysis.HistorySize)
	}

	if c.Analysis.MaxRecent < 1 {
		return fmt.Errorf("recency list size must be at least 1, got %d", c.Analysis.MaxRecent)
	}

	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("web port must be between 1 and 65535, got %d", c.Web.Port)
	}

	if c.Web.Host == "" {
		return fmt.Errorf("web host cannot be empty")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	return nil
}

// SetCaptureInterval sets the capture interval with validation
func (c *Config) SetCaptureInterval(interval time.Duration) error {
	if interval < c.Capture.MinInterval {
		return fmt.Errorf("capture interval cannot be less than %v", c.Capture.MinInterval)
	}
	c.Capture.Interval = interval
	return nil
}

// IsExcluded reports whether the given app name is on the exclusion list.
// Matching is case-insensitive on the exact name.
func (c *Config) IsExcluded(appName string) bool {
	for _, name := range c.Privacy.ExcludedApps {
		if strings.EqualFold(name, appName) {
			return true
		}
	}
	return false
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Capture:
    Interval: %v
    Format: %s (quality %d)
    Target Display: %s
    Max Per Minute: %d
  Analysis:
    OCR: %v
    Analysis Service: %v (%s, model %s)
    Suggestions: %v (cooldown %v)
    Timeout: %v
    History Size: %d
  Privacy:
    Excluded Apps: %d entries
  Database:
    Enabled: %v
    Path: %s
  Daemon:
    PID File: %s
  Web:
    Host: %s
    Port: %d`,
		c.Capture.Interval,
		c.Capture.Format,
		c.Capture.Quality,
		displayOrPrimary(c.Capture.TargetDisplayID),
		c.Capture.MaxPerMinute,
		c.Analysis.OCREnabled,
		c.Analysis.AnalysisEnabled,
		c.Analysis.BaseURL,
		c.Analysis.Model,
		c.Analysis.SuggestionsEnabled,
		c.Analysis.SuggestionCooldown,
		c.Analysis.Timeout,
		c.Analysis.HistorySize,
		len(c.Privacy.ExcludedApps),
		c.Database.Enabled,
		c.Database.Path,
		c.Daemon.PIDFile,
		c.Web.Host,
		c.Web.Port,
	)
}

func displayOrPrimary(id string) string {
	if id == "" {
		return "(primary)"
	}
	return id
}
