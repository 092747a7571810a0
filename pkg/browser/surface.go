package browser

import (
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/coursepilot/pkg/autoplay"
)

// PageSurface implements autoplay.Surface over a Playwright page. Every
// driver error is folded into an explicit status: the sidebar mutates while
// being read, so "element gone" and "wait elapsed" are expected conditions,
// not faults.
type PageSurface struct {
	page playwright.Page
}

// NewPageSurface creates a surface backed by the given page.
func NewPageSurface(page playwright.Page) *PageSurface {
	return &PageSurface{page: page}
}

// Locate queries the page for elements matching the selector.
func (s *PageSurface) Locate(selector string) autoplay.HandleSet {
	return &locatorSet{locator: s.page.Locator(selector)}
}

// Evaluate runs a script in the page and returns its value.
func (s *PageSurface) Evaluate(script string, arg any) (any, autoplay.Status) {
	var result any
	var err error
	if arg != nil {
		result, err = s.page.Evaluate(script, arg)
	} else {
		result, err = s.page.Evaluate(script)
	}
	if err != nil {
		return nil, statusFromError(err)
	}
	return result, autoplay.StatusFound
}

// WaitFor polls a predicate script until it is truthy or the timeout
// elapses.
func (s *PageSurface) WaitFor(predicate string, arg any, timeout time.Duration) autoplay.Status {
	opts := playwright.PageWaitForFunctionOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	}
	if _, err := s.page.WaitForFunction(predicate, arg, opts); err != nil {
		return statusFromError(err)
	}
	return autoplay.StatusFound
}

// Location returns the current page URL.
func (s *PageSurface) Location() string {
	return s.page.URL()
}

// KeyPress dispatches a keyboard key press to the page.
func (s *PageSurface) KeyPress(key string) autoplay.Status {
	if err := s.page.Keyboard().Press(key); err != nil {
		return statusFromError(err)
	}
	return autoplay.StatusFound
}

type locatorSet struct {
	locator playwright.Locator
}

func (l *locatorSet) Count() (int, autoplay.Status) {
	n, err := l.locator.Count()
	if err != nil {
		return 0, statusFromError(err)
	}
	return n, autoplay.StatusFound
}

func (l *locatorSet) Nth(i int) autoplay.Handle {
	return &locatorHandle{locator: l.locator.Nth(i)}
}

type locatorHandle struct {
	locator playwright.Locator
}

func (h *locatorHandle) Click(opts autoplay.ClickOptions) autoplay.Status {
	clickOpts := playwright.LocatorClickOptions{}
	if opts.Force {
		clickOpts.Force = playwright.Bool(true)
	}
	if opts.Timeout > 0 {
		clickOpts.Timeout = playwright.Float(float64(opts.Timeout.Milliseconds()))
	}
	if err := h.locator.Click(clickOpts); err != nil {
		return statusFromError(err)
	}
	return autoplay.StatusFound
}

func (h *locatorHandle) ScrollIntoView(timeout time.Duration) autoplay.Status {
	opts := playwright.LocatorScrollIntoViewIfNeededOptions{}
	if timeout > 0 {
		opts.Timeout = playwright.Float(float64(timeout.Milliseconds()))
	}
	if err := h.locator.ScrollIntoViewIfNeeded(opts); err != nil {
		return statusFromError(err)
	}
	return autoplay.StatusFound
}

func (h *locatorHandle) Attribute(name string) (string, autoplay.Status) {
	value, err := h.locator.GetAttribute(name)
	if err != nil {
		return "", statusFromError(err)
	}
	return value, autoplay.StatusFound
}

func (h *locatorHandle) InnerText(timeout time.Duration) (string, autoplay.Status) {
	opts := playwright.LocatorInnerTextOptions{}
	if timeout > 0 {
		opts.Timeout = playwright.Float(float64(timeout.Milliseconds()))
	}
	text, err := h.locator.InnerText(opts)
	if err != nil {
		return "", statusFromError(err)
	}
	return text, autoplay.StatusFound
}

func (h *locatorHandle) Locate(selector string) autoplay.HandleSet {
	return &locatorSet{locator: h.locator.Locator(selector)}
}

// statusFromError classifies a driver error. Playwright reports elapsed
// waits as TimeoutError; everything else is treated as a miss.
func statusFromError(err error) autoplay.Status {
	if err == nil {
		return autoplay.StatusFound
	}
	if strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return autoplay.StatusTimedOut
	}
	return autoplay.StatusNotFound
}
