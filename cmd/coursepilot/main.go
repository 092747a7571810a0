// Package main provides the coursepilot course-walk application. It opens
// an authenticated classroom page, resumes from the first incomplete
// lesson, drives each embedded video to completion, and advances until the
// course is exhausted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/entrhq/coursepilot/pkg/autoplay"
	"github.com/entrhq/coursepilot/pkg/browser"
	appconfig "github.com/entrhq/coursepilot/pkg/config"
	"github.com/entrhq/coursepilot/pkg/metadata"
	"github.com/entrhq/coursepilot/pkg/report"
)

const version = "0.1.0" // Version of the coursepilot application

// Flags holds the command line configuration.
type Flags struct {
	ConfigPath   string
	StartURL     string
	StorageState string
	Headless     bool
	ShowVersion  bool
}

func main() {
	flags := parseFlags()

	if flags.ShowVersion {
		fmt.Printf("coursepilot v%s\n", version)
		return
	}

	// Create context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nShutting down gracefully...")
		cancel()
	}()

	if err := run(ctx, flags); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("coursepilot: %v", err)
	}
}

func parseFlags() *Flags {
	flags := &Flags{}

	flag.StringVar(&flags.ConfigPath, "config", "", "Path to YAML configuration file")
	flag.StringVar(&flags.StartURL, "url", "", "Classroom URL (overrides config)")
	flag.StringVar(&flags.StorageState, "storage-state", "", "Path to persisted login state (overrides config)")
	flag.BoolVar(&flags.Headless, "headless", false, "Run the browser headless")
	flag.BoolVar(&flags.ShowVersion, "version", false, "Show version information")
	flag.Parse()

	return flags
}

func run(ctx context.Context, flags *Flags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	skipGlobs, err := cfg.CompileSkipGlobs()
	if err != nil {
		return err
	}

	manager := browser.NewManager()
	if err := manager.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize browser: %w", err)
	}
	defer manager.Shutdown()

	session, err := manager.Launch(browser.SessionOptions{
		Headless:         cfg.Browser.Headless,
		SlowMo:           cfg.Browser.SlowMoMs,
		StorageStatePath: cfg.StorageState,
		UserAgent:        cfg.Browser.UserAgent,
		Viewport: &browser.Viewport{
			Width:  cfg.Browser.Width,
			Height: cfg.Browser.Height,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to launch browser session: %w", err)
	}
	defer session.Close()

	surface := session.Surface()
	summary := report.NewRunSummary(cfg.StartURL)

	orchestrator, err := autoplay.NewOrchestrator(autoplay.OrchestratorOptions{
		Surface:    surface,
		Pager:      session,
		Clock:      autoplay.SystemClock(),
		Selectors:  cfg.SelectorSet(),
		Summary:    summary,
		StartURL:   cfg.StartURL,
		Inspector:  metadata.NewCollector(surface),
		SkipTitles: skipGlobs,
		Expansion: autoplay.ExpansionBounds{
			FirstRounds:   cfg.Expansion.FirstRounds,
			ConfirmRounds: cfg.Expansion.ConfirmRounds,
		},
		Stabilize: autoplay.StabilizeBounds{
			FirstMaxRounds:   cfg.Stabilize.FirstMaxRounds,
			ConfirmMaxRounds: cfg.Stabilize.ConfirmMaxRounds,
			RetryMaxRounds:   cfg.Stabilize.RetryMaxRounds,
			ScrollStepPx:     cfg.Stabilize.ScrollStepPx,
			DeepScrollPx:     cfg.Stabilize.DeepScrollPx,
		},
		Watchdog: autoplay.WatchdogConfig{
			MaxWait:      cfg.Watchdog.MaxWait,
			PollInterval: cfg.Watchdog.PollInterval,
			ReadyTimeout: cfg.Watchdog.ReadyTimeout,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	runErr := orchestrator.Run(ctx)

	if cfg.Report.Enabled {
		writer := report.NewArtifactWriter(cfg.Report.OutputDir)
		if writeErr := writer.WriteAll(summary); writeErr != nil {
			log.Printf("failed to write run artifacts: %v", writeErr)
		} else {
			log.Printf("run artifacts written to %s", cfg.Report.OutputDir)
		}
	}

	return runErr
}

// loadConfig loads the YAML configuration (or defaults) and applies flag
// overrides.
func loadConfig(flags *Flags) (*appconfig.Config, error) {
	var cfg *appconfig.Config
	var err error

	if flags.ConfigPath != "" {
		cfg, err = appconfig.LoadFromFile(flags.ConfigPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = appconfig.DefaultConfig()
	}

	if flags.StartURL != "" {
		cfg.StartURL = flags.StartURL
	}
	if flags.StorageState != "" {
		cfg.StorageState = flags.StorageState
	}
	if flags.Headless {
		cfg.Browser.Headless = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
