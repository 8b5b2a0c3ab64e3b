package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/benedict-anokye-davies/glance/internal/analysis"
	"github.com/benedict-anokye-davies/glance/internal/analyzer"
	"github.com/benedict-anokye-davies/glance/internal/appdetect"
	"github.com/benedict-anokye-davies/glance/internal/capture"
	"github.com/benedict-anokye-davies/glance/internal/config"
	"github.com/benedict-anokye-davies/glance/internal/contextbuilder"
	"github.com/benedict-anokye-davies/glance/internal/daemon"
	"github.com/benedict-anokye-davies/glance/internal/database"
	"github.com/benedict-anokye-davies/glance/internal/events"
	"github.com/benedict-anokye-davies/glance/internal/ocr"
	"github.com/benedict-anokye-davies/glance/internal/reporter"
	"github.com/benedict-anokye-davies/glance/internal/tracker"
	"github.com/benedict-anokye-davies/glance/internal/web"
	"github.com/benedict-anokye-davies/glance/pkg/probes"
)

const daemonChildEnv = "GLANCE_DAEMON_CHILD"

// components is the explicit graph constructed once at startup and passed
// by reference; nothing in the pipeline reaches for a global.
type components struct {
	cfg      *config.Config
	bus      *events.Bus
	detector *appdetect.Detector
	analyzer *analyzer.Analyzer
	builder  *contextbuilder.Builder
	tracker  *tracker.Service
	repo     *database.Repository
	db       *database.DB
	source   capture.Source
}

// buildComponents wires the pipeline. Probe and capture failures are not
// fatal here: the analyzer degrades per cycle instead.
func buildComponents(cfg *config.Config) (*components, error) {
	bus := events.NewBus()

	prober, err := probes.New()
	if err != nil {
		log.Printf("no window probe available: %v", err)
	}
	detector := appdetect.New(prober)

	source, err := capture.New()
	if err != nil {
		log.Printf("no capture source available: %v", err)
	}

	var service analysis.Service
	if cfg.Analysis.AnalysisEnabled {
		service = analysis.NewClient(cfg.Analysis.BaseURL, cfg.Analysis.Model, cfg.Analysis.APIKeyEnv)
	}

	var engine ocr.Engine
	if cfg.Analysis.OCREnabled {
		engine = ocr.NewTesseract()
	}

	c := &components{
		cfg:      cfg,
		bus:      bus,
		detector: detector,
		source:   source,
		builder:  contextbuilder.New(cfg.Analysis.MaxRecent),
	}

	c.analyzer = analyzer.New(cfg, source, engine, service, detector, bus)

	if cfg.Database.Enabled {
		db, err := database.Connect(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.Initialize(); err != nil {
			db.Close()
			return nil, err
		}
		c.db = db
		c.repo = database.NewRepository(db)
	}

	c.tracker = tracker.NewService(bus, c.builder, c.repo)
	return c, nil
}

func (c *components) close() {
	c.bus.Close()
	if c.db != nil {
		c.db.Close()
	}
	if c.source != nil {
		c.source.Close()
	}
	c.detector.Close()
}

// serve runs the pipeline plus the status API in the foreground until
// SIGINT/SIGTERM.
func serve(cfg *config.Config) error {
	log.Printf("glance %s starting\n%s", version, cfg.String())

	c, err := buildComponents(cfg)
	if err != nil {
		return err
	}
	defer c.close()

	stopWatch := make(chan struct{})
	defer close(stopWatch)
	if cfg.Privacy.ExclusionFile != "" {
		if apps := config.LoadExclusionFile(cfg.Privacy.ExclusionFile); apps != nil {
			c.analyzer.SetExcludedApps(apps)
		}
		if err := config.WatchExclusionFile(cfg.Privacy.ExclusionFile, c.analyzer.SetExcludedApps, stopWatch); err != nil {
			log.Printf("exclusion file watch failed: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trackerDone := make(chan error, 1)
	go func() {
		trackerDone <- c.tracker.Start(ctx)
	}()

	c.analyzer.Start()
	defer c.analyzer.Stop()

	var rep *reporter.Reporter
	if c.repo != nil {
		rep = reporter.New(c.repo)
	}
	server := web.NewServer(cfg, web.NewHandler(c.analyzer, c.builder, rep))

	serverDone := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
			return
		}
		serverDone <- nil
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("received %v, shutting down", s)
	case err := <-serverDone:
		if err != nil {
			log.Printf("web server failed: %v", err)
		}
	case err := <-trackerDone:
		if err != nil && err != context.Canceled {
			log.Printf("tracker failed: %v", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("web server shutdown: %v", err)
	}

	cancel()
	return nil
}

// startDaemon forks the process into the background with a PID file; the
// child runs serve.
func startDaemon() error {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		return fmt.Errorf("glance is already running (PID %d)", pid)
	}

	if os.Getenv(daemonChildEnv) != "1" {
		return daemonize()
	}

	// child: log to file, record PID, then run
	logPath := fmt.Sprintf("/tmp/glance-%d.log", os.Getuid())
	if logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	if err := dm.WritePID(); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	defer dm.RemovePID()

	return serve(cfg)
}

func daemonize() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	cmd := exec.Command(exe, "start")
	cmd.Env = append(os.Environ(), daemonChildEnv+"=1")
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	fmt.Printf("glance started (PID %d)\n", cmd.Process.Pid)
	return nil
}

// captureOnce runs a single on-demand cycle and prints the summary.
func captureOnce(query string) error {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	// one-shot runs never persist
	cfg.Database.Enabled = false

	c, err := buildComponents(cfg)
	if err != nil {
		return err
	}
	defer c.close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Analysis.Timeout+10*time.Second)
	defer cancel()

	result, err := c.analyzer.CaptureAndAnalyze(ctx)
	if err != nil {
		return err
	}
	if result == nil {
		fmt.Println("no context available (capture skipped)")
		return nil
	}

	c.builder.UpdateAnalysis(result)
	if query != "" {
		fmt.Println(c.builder.SummaryForQuery(query))
	} else {
		fmt.Println(c.builder.Summary())
	}
	return nil
}
