package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override default values
func LoadFromEnv(cfg *Config) {
	// Capture configuration
	if interval := os.Getenv("GLANCE_CAPTURE_INTERVAL"); interval != "" {
		if seconds, err := strconv.Atoi(interval); err == nil && seconds > 0 {
			d := time.Duration(seconds) * time.Second
			if d >= cfg.Capture.MinInterval {
				cfg.Capture.Interval = d
			}
		}
	}

	if format := os.Getenv("GLANCE_CAPTURE_FORMAT"); format == "png" || format == "jpeg" {
		cfg.Capture.Format = format
	}

	if quality := os.Getenv("GLANCE_CAPTURE_QUALITY"); quality != "" {
		if q, err := strconv.Atoi(quality); err == nil && q >= 1 && q <= 100 {
			cfg.Capture.Quality = q
		}
	}

	if display := os.Getenv("GLANCE_TARGET_DISPLAY"); display != "" {
		cfg.Capture.TargetDisplayID = display
	}

	if maxPerMin := os.Getenv("GLANCE_MAX_CAPTURES_PER_MINUTE"); maxPerMin != "" {
		if n, err := strconv.Atoi(maxPerMin); err == nil && n > 0 {
			cfg.Capture.MaxPerMinute = n
		}
	}

	// Analysis configuration
	if ocr := os.Getenv("GLANCE_OCR_ENABLED"); ocr != "" {
		if val, err := strconv.ParseBool(ocr); err == nil {
			cfg.Analysis.OCREnabled = val
		}
	}

	if analysis := os.Getenv("GLANCE_ANALYSIS_ENABLED"); analysis != "" {
		if val, err := strconv.ParseBool(analysis); err == nil {
			cfg.Analysis.AnalysisEnabled = val
		}
	}

	if suggestions := os.Getenv("GLANCE_SUGGESTIONS_ENABLED"); suggestions != "" {
		if val, err := strconv.ParseBool(suggestions); err == nil {
			cfg.Analysis.SuggestionsEnabled = val
		}
	}

	if baseURL := os.Getenv("GLANCE_ANALYSIS_URL"); baseURL != "" {
		cfg.Analysis.BaseURL = baseURL
	}

	if model := os.Getenv("GLANCE_ANALYSIS_MODEL"); model != "" {
		cfg.Analysis.Model = model
	}

	if timeout := os.Getenv("GLANCE_ANALYSIS_TIMEOUT"); timeout != "" {
		if seconds, err := strconv.Atoi(timeout); err == nil && seconds > 0 {
			cfg.Analysis.Timeout = time.Duration(seconds) * time.Second
		}
	}

	if cooldown := os.Getenv("GLANCE_SUGGESTION_COOLDOWN"); cooldown != "" {
		if seconds, err := strconv.Atoi(cooldown); err == nil && seconds >= 0 {
			cfg.Analysis.SuggestionCooldown = time.Duration(seconds) * time.Second
		}
	}

	if histSize := os.Getenv("GLANCE_HISTORY_SIZE"); histSize != "" {
		if n, err := strconv.Atoi(histSize); err == nil && n > 0 {
			cfg.Analysis.HistorySize = n
		}
	}

	// Privacy configuration
	if excluded := os.Getenv("GLANCE_EXCLUDED_APPS"); excluded != "" {
		var apps []string
		for _, name := range strings.Split(excluded, ",") {
			if name = strings.TrimSpace(name); name != "" {
				apps = append(apps, name)
			}
		}
		if len(apps) > 0 {
			cfg.Privacy.ExcludedApps = apps
		}
	}

	if exclusionFile := os.Getenv("GLANCE_EXCLUSION_FILE"); exclusionFile != "" {
		cfg.Privacy.ExclusionFile = exclusionFile
	}

	// Database configuration
	if dbEnabled := os.Getenv("GLANCE_DB_ENABLED"); dbEnabled != "" {
		if val, err := strconv.ParseBool(dbEnabled); err == nil {
			cfg.Database.Enabled = val
		}
	}

	if dbPath := os.Getenv("GLANCE_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	// Daemon configuration
	if pidFile := os.Getenv("GLANCE_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	// Web configuration
	if webHost := os.Getenv("GLANCE_WEB_HOST"); webHost != "" {
		cfg.Web.Host = webHost
	}

	if webPort := os.Getenv("GLANCE_WEB_PORT"); webPort != "" {
		if port, err := strconv.Atoi(webPort); err == nil && port > 0 && port <= 65535 {
			cfg.Web.Port = port
		}
	}
}

// New creates a new Config with default values and loads from environment
func New() *Config {
	cfg := Default()
	LoadFromEnv(cfg)
	return cfg
}
