package browser

import (
	"fmt"
	"io"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Manager owns the Playwright driver lifecycle.
type Manager struct {
	playwright  *playwright.Playwright
	initialized bool
}

// NewManager creates a new manager.
func NewManager() *Manager {
	return &Manager{}
}

// Initialize installs (if needed) and starts the Playwright driver.
// This must be called before launching a session.
func (m *Manager) Initialize() error {
	if m.initialized {
		return nil
	}

	// Install and run Playwright quietly; driver chatter on stdout would
	// interleave with progress logging
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	m.playwright = pw
	m.initialized = true
	return nil
}

// Launch starts a Chromium browser, creates a context from the persisted
// storage state, and opens the page that will host the whole run.
func (m *Manager) Launch(opts SessionOptions) (*Session, error) {
	if !m.initialized {
		return nil, fmt.Errorf("browser manager not initialized")
	}

	// Set defaults
	if opts.Viewport == nil {
		opts.Viewport = &Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		}
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     chromiumArgs,
	}
	if opts.SlowMo > 0 {
		launchOpts.SlowMo = playwright.Float(opts.SlowMo)
	}
	browser, err := m.playwright.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
		DeviceScaleFactor: playwright.Float(1),
		IsMobile:          playwright.Bool(false),
	}
	if opts.StorageStatePath != "" {
		contextOpts.StorageStatePath = playwright.String(opts.StorageStatePath)
	}
	if opts.UserAgent != "" {
		contextOpts.UserAgent = playwright.String(opts.UserAgent)
	}
	context, err := browser.NewContext(contextOpts)
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	page.SetDefaultTimeout(opts.Timeout)

	return &Session{
		Browser:   browser,
		Context:   context,
		Page:      page,
		Headless:  opts.Headless,
		CreatedAt: time.Now(),
	}, nil
}

// Shutdown stops the Playwright driver.
func (m *Manager) Shutdown() error {
	if !m.initialized || m.playwright == nil {
		return nil
	}
	if err := m.playwright.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	m.initialized = false
	return nil
}
