package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session is one launched browser with its context and page.
type Session struct {
	// Browser is the Playwright browser instance
	Browser playwright.Browser

	// Context is the browser context created from the storage state
	Context playwright.BrowserContext

	// Page is the single page hosting the run
	Page playwright.Page

	// Headless indicates if the browser runs without a visible window
	Headless bool

	// CreatedAt is the timestamp when the session was created
	CreatedAt time.Time
}

// gotoOptions builds the navigation options. The course platform never
// reaches network-idle, so domcontentloaded is the only usable milestone.
func gotoOptions() playwright.PageGotoOptions {
	return playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(DefaultNavigationTimeout),
	}
}

func reloadOptions() playwright.PageReloadOptions {
	return playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(DefaultNavigationTimeout),
	}
}

// Goto navigates the page to the given URL and waits for DOM content.
func (s *Session) Goto(url string) error {
	if _, err := s.Page.Goto(url, gotoOptions()); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

// Reload reloads the page and waits for DOM content.
func (s *Session) Reload() error {
	if _, err := s.Page.Reload(reloadOptions()); err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}
	return nil
}

// Surface returns the autoplay surface backed by this session's page.
func (s *Session) Surface() *PageSurface {
	return NewPageSurface(s.Page)
}

// Close closes the page, context and browser, continuing cleanup past
// individual failures.
func (s *Session) Close() error {
	_ = s.Page.Close()
	_ = s.Context.Close()
	if err := s.Browser.Close(); err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return nil
}
