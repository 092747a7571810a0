package autoplay

import "time"

// Status classifies the outcome of a single DOM boundary call. Callers make
// the "treat as false" decision explicitly instead of swallowing errors at
// the boundary.
type Status int

const (
	// StatusFound means the call succeeded and the result is usable.
	StatusFound Status = iota

	// StatusNotFound means the element or value was absent or the call
	// failed for a non-timeout reason.
	StatusNotFound

	// StatusTimedOut means the call's bounded wait elapsed.
	StatusTimedOut
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not-found"
	case StatusTimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}

// ClickOptions configures element clicking behavior.
type ClickOptions struct {
	// Force bypasses actionability checks
	Force bool

	// Timeout bounds the click attempt (0 means the surface default)
	Timeout time.Duration
}

// Handle is a reference to a single located element.
type Handle interface {
	// Click activates the element.
	Click(opts ClickOptions) Status

	// ScrollIntoView scrolls the element into the viewport. A control not
	// scrolled into view may fail to register activation.
	ScrollIntoView(timeout time.Duration) Status

	// Attribute reads an attribute value. StatusNotFound covers both a
	// missing element and a missing attribute.
	Attribute(name string) (string, Status)

	// InnerText reads the rendered text of the element.
	InnerText(timeout time.Duration) (string, Status)

	// Locate queries for descendant elements.
	Locate(selector string) HandleSet
}

// HandleSet is an ordered set of elements matching a selector. The set is
// live against a mutating page: Count and Nth reflect the page at call time,
// not at locate time.
type HandleSet interface {
	// Count returns the number of matching elements.
	Count() (int, Status)

	// Nth returns a handle to the i-th match in DOM order.
	Nth(i int) Handle
}

// Surface is the capability through which all components reach the page.
// Implementations never panic on a missing element or a failed script; they
// report StatusNotFound or StatusTimedOut and let the caller decide.
type Surface interface {
	// Locate queries the page for elements matching a CSS selector.
	Locate(selector string) HandleSet

	// Evaluate runs a script in the page and returns its value.
	Evaluate(script string, arg any) (any, Status)

	// WaitFor polls a predicate script until it is truthy or the timeout
	// elapses.
	WaitFor(predicate string, arg any, timeout time.Duration) Status

	// Location returns the current page URL.
	Location() string

	// KeyPress dispatches a keyboard key press to the page.
	KeyPress(key string) Status
}

// Clock abstracts wall-clock time and sleeping so polling loops can be
// driven synthetically in tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns a Clock backed by real time.
func SystemClock() Clock { return systemClock{} }

// Selectors identifies the known parts of the course page. The defaults
// target the one sidebar structure this package understands; override them
// in configuration if the platform changes its markup.
type Selectors struct {
	// SidebarRoot is the container of the lesson navigation tree
	SidebarRoot string

	// LessonLinks matches the lesson anchors under the sidebar root
	LessonLinks string

	// SectionToggles matches the collapse/expand controls of lesson groups
	SectionToggles string

	// CompletedMarker matches the completion marker inside a lesson anchor
	CompletedMarker string

	// Thumbnail matches the video placeholder that loads the player on click
	Thumbnail string

	// LessonParam is the URL query parameter carrying the lesson identity
	LessonParam string
}

// DefaultSelectors returns the selector set for the supported course
// platform.
func DefaultSelectors() Selectors {
	const root = "div.styled__CourseMenuWrapper-sc-1penv8o-1"
	return Selectors{
		SidebarRoot:     root,
		LessonLinks:     root + ` a[href*="/classroom/"][href*="md="]`,
		SectionToggles:  root + ` div[class*='MenuItemTitleWrapper'] div[class*='SetIcon'] svg`,
		CompletedMarker: `[class*="ModuleCompletedIcon"]`,
		Thumbnail:       `div[class*='ThumbnailImage']`,
		LessonParam:     "md",
	}
}

// clickAnchor activates a lesson anchor, retrying once with a forced click
// when the normal click fails. Failures are reported, not fatal: the sidebar
// re-renders while being clicked and a vanished anchor is an expected miss.
func clickAnchor(h Handle, clock Clock) Status {
	if st := h.ScrollIntoView(anchorTimeout); st == StatusFound {
		clock.Sleep(anchorSettle)
		if st := h.Click(ClickOptions{Timeout: anchorTimeout}); st == StatusFound {
			return StatusFound
		}
	}
	return h.Click(ClickOptions{Force: true, Timeout: anchorTimeout})
}
