// Package config loads and validates the coursepilot run configuration
// from a YAML file, filling unset fields from defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/entrhq/coursepilot/pkg/autoplay"
)

// Config represents one course-walk run.
type Config struct {
	// StartURL is the classroom page to open
	StartURL string `yaml:"start_url"`

	// StorageState is the path to the persisted authenticated-session
	// artifact produced by a prior login step. Consumed opaquely; this
	// program neither creates nor validates it.
	StorageState string `yaml:"storage_state"`

	// Browser launch settings
	Browser BrowserConfig `yaml:"browser"`

	// Selectors overrides for the course page markup (empty fields keep
	// the defaults)
	Selectors SelectorConfig `yaml:"selectors"`

	// Expansion bounds for the section expander passes
	Expansion ExpansionConfig `yaml:"expansion"`

	// Stabilize bounds for the lesson list stabilizer
	Stabilize StabilizeConfig `yaml:"stabilize"`

	// Watchdog bounds for the video watchdog
	Watchdog WatchdogConfig `yaml:"watchdog"`

	// SkipTitles are glob patterns of lesson titles whose media step is
	// skipped outright (e.g. "*Bonus*")
	SkipTitles []string `yaml:"skip_titles"`

	// Report configures run artifact output
	Report ReportConfig `yaml:"report"`
}

// BrowserConfig defines browser launch settings.
type BrowserConfig struct {
	Headless  bool    `yaml:"headless"`
	SlowMoMs  float64 `yaml:"slow_mo_ms"`
	UserAgent string  `yaml:"user_agent"`
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
}

// SelectorConfig overrides the built-in selector set.
type SelectorConfig struct {
	SidebarRoot     string `yaml:"sidebar_root"`
	LessonLinks     string `yaml:"lesson_links"`
	SectionToggles  string `yaml:"section_toggles"`
	CompletedMarker string `yaml:"completed_marker"`
	Thumbnail       string `yaml:"thumbnail"`
	LessonParam     string `yaml:"lesson_param"`
}

// ExpansionConfig bounds the two expansion passes.
type ExpansionConfig struct {
	FirstRounds   int `yaml:"first_rounds"`
	ConfirmRounds int `yaml:"confirm_rounds"`
}

// StabilizeConfig bounds the stabilizer passes.
type StabilizeConfig struct {
	FirstMaxRounds   int `yaml:"first_max_rounds"`
	ConfirmMaxRounds int `yaml:"confirm_max_rounds"`
	RetryMaxRounds   int `yaml:"retry_max_rounds"`
	ScrollStepPx     int `yaml:"scroll_step_px"`
	DeepScrollPx     int `yaml:"deep_scroll_px"`
}

// WatchdogConfig bounds the video watchdog.
type WatchdogConfig struct {
	MaxWait      time.Duration `yaml:"max_wait"`
	PollInterval time.Duration `yaml:"poll_interval"`
	ReadyTimeout time.Duration `yaml:"ready_timeout"`
}

// ReportConfig configures run artifact output.
type ReportConfig struct {
	Enabled   bool   `yaml:"enabled"`
	OutputDir string `yaml:"output_dir"`
}

// DefaultConfig returns the production defaults. StartURL and StorageState
// have no defaults and must come from the file or flags.
func DefaultConfig() *Config {
	wd := autoplay.DefaultWatchdogConfig()
	return &Config{
		Browser: BrowserConfig{
			Headless: false,
			SlowMoMs: 120,
			Width:    1920,
			Height:   1000,
		},
		Expansion: ExpansionConfig{
			FirstRounds:   2,
			ConfirmRounds: 1,
		},
		Stabilize: StabilizeConfig{
			FirstMaxRounds:   200,
			ConfirmMaxRounds: 140,
			RetryMaxRounds:   120,
			ScrollStepPx:     900,
			DeepScrollPx:     2500,
		},
		Watchdog: WatchdogConfig{
			MaxWait:      wd.MaxWait,
			PollInterval: wd.PollInterval,
			ReadyTimeout: wd.ReadyTimeout,
		},
		Report: ReportConfig{
			Enabled:   true,
			OutputDir: ".coursepilot-run",
		},
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if unmarshalErr := yaml.Unmarshal(data, config); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	return config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.StartURL == "" {
		return fmt.Errorf("start_url is required")
	}

	if c.Expansion.FirstRounds < 0 || c.Expansion.ConfirmRounds < 0 {
		return fmt.Errorf("expansion rounds cannot be negative")
	}

	if c.Stabilize.FirstMaxRounds <= 0 || c.Stabilize.ConfirmMaxRounds <= 0 || c.Stabilize.RetryMaxRounds <= 0 {
		return fmt.Errorf("stabilize max rounds must be positive")
	}

	if c.Stabilize.ScrollStepPx <= 0 {
		return fmt.Errorf("stabilize scroll step must be positive")
	}

	if c.Watchdog.MaxWait < 0 || c.Watchdog.PollInterval < 0 || c.Watchdog.ReadyTimeout < 0 {
		return fmt.Errorf("watchdog timeouts cannot be negative")
	}

	if _, err := c.CompileSkipGlobs(); err != nil {
		return err
	}

	if c.Report.Enabled && c.Report.OutputDir == "" {
		return fmt.Errorf("report output_dir is required when reporting is enabled")
	}

	return nil
}

// CompileSkipGlobs compiles the skip-title patterns.
func (c *Config) CompileSkipGlobs() ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(c.SkipTitles))
	for _, pattern := range c.SkipTitles {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid skip_titles pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// SelectorSet merges the configured selector overrides over the defaults.
func (c *Config) SelectorSet() autoplay.Selectors {
	sel := autoplay.DefaultSelectors()
	if c.Selectors.SidebarRoot != "" {
		sel.SidebarRoot = c.Selectors.SidebarRoot
	}
	if c.Selectors.LessonLinks != "" {
		sel.LessonLinks = c.Selectors.LessonLinks
	}
	if c.Selectors.SectionToggles != "" {
		sel.SectionToggles = c.Selectors.SectionToggles
	}
	if c.Selectors.CompletedMarker != "" {
		sel.CompletedMarker = c.Selectors.CompletedMarker
	}
	if c.Selectors.Thumbnail != "" {
		sel.Thumbnail = c.Selectors.Thumbnail
	}
	if c.Selectors.LessonParam != "" {
		sel.LessonParam = c.Selectors.LessonParam
	}
	return sel
}
