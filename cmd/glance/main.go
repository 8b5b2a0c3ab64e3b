package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/benedict-anokye-davies/glance/internal/config"
	"github.com/benedict-anokye-davies/glance/internal/daemon"
	"github.com/benedict-anokye-davies/glance/internal/database"
	"github.com/benedict-anokye-davies/glance/internal/reporter"
)

var (
	version = "0.1.0"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	root := &cobra.Command{
		Use:   "glance",
		Short: "Screen-context sampling and analysis daemon",
		Long: `glance continuously samples the screen, detects the active application,
extracts structured signals through an analysis service and publishes a
rolling context summary for a conversational agent.

Configuration is read from GLANCE_* environment variables.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newStartCmd(),
		newServeCmd(),
		newStopCmd(),
		newStatusCmd(),
		newContextCmd(),
		newReportCmd(),
		newClearCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the capture daemon in the background",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startDaemon()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the capture daemon in the foreground with the status API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return serve(cfg)
		},
	}
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			dm := daemon.New(cfg.Daemon.PIDFile)
			if err := dm.Stop(); err != nil {
				return err
			}
			fmt.Println("glance stopped")
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status and the latest recorded activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showStatus()
		},
	}
}

func newContextCmd() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Run one on-demand capture and print the context summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return captureOnce(query)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "enrich the summary for a specific question")
	return cmd
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "report [day|week|month]",
		Short:     "Generate an activity report from stored records",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"day", "week", "month"},
		RunE: func(cmd *cobra.Command, args []string) error {
			period := "day"
			if len(args) > 0 {
				period = args[0]
			}
			return generateReport(period)
		},
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored activity records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			db, err := database.Connect(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Initialize(); err != nil {
				return err
			}
			if err := database.NewRepository(db).Clear(); err != nil {
				return err
			}
			fmt.Println("all records cleared")
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("glance version %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
		},
	}
}

func generateReport(period string) error {
	cfg := config.New()
	if !cfg.Database.Enabled {
		return fmt.Errorf("persistence is disabled (GLANCE_DB_ENABLED=false), no records to report on")
	}

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		return err
	}

	report, err := reporter.New(database.NewRepository(db)).GenerateReport(period)
	if err != nil {
		return err
	}

	fmt.Print(reporter.FormatText(report))
	return nil
}

func showStatus() error {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		return err
	}
	if running {
		fmt.Printf("glance is running (PID %d)\n", pid)
	} else {
		fmt.Println("glance is not running")
	}

	if !cfg.Database.Enabled {
		return nil
	}

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Printf("could not open database: %v", err)
		return nil
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		return nil
	}

	latest, err := database.NewRepository(db).GetLatestActivity()
	if err != nil || latest == nil {
		return nil
	}

	fmt.Printf("last activity: %s (%s) at %s\n",
		latest.AppName, latest.AppType, latest.Timestamp.Format("2006-01-02 15:04:05"))
	if latest.Summary != "" {
		fmt.Printf("  %s\n", latest.Summary)
	}
	return nil
}
