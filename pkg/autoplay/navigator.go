package autoplay

import "log"

// AdvanceOutcome is the terminal result of one navigation attempt.
type AdvanceOutcome int

const (
	// Advanced means the lesson after the current one was activated.
	Advanced AdvanceOutcome = iota

	// Resumed means the current lesson was not found in the index and the
	// first incomplete lesson was activated instead.
	Resumed

	// EndOfList means the current lesson is the last loaded entry. More
	// lessons may exist un-rendered, so this is distinct from a finished
	// course.
	EndOfList

	// Exhausted means the resume fallback found nothing incomplete either.
	Exhausted

	// NoLessons means the index was empty.
	NoLessons
)

// String returns a human-readable representation of the outcome.
func (o AdvanceOutcome) String() string {
	switch o {
	case Advanced:
		return "advanced"
	case Resumed:
		return "resumed"
	case EndOfList:
		return "end-of-loaded-list"
	case Exhausted:
		return "exhausted"
	case NoLessons:
		return "no-lessons"
	default:
		return "unknown"
	}
}

// Navigator advances through the course one lesson at a time. Navigation is
// keyed on the lesson identity token extracted from the page location, not
// on raw position: positions shift as sections expand and the sidebar
// re-renders, so position comparisons are only valid inside one snapshot.
type Navigator struct {
	surface Surface
	clock   Clock
	sel     Selectors
}

// NewNavigator creates a navigator bound to a surface and clock.
func NewNavigator(surface Surface, clock Clock, sel Selectors) *Navigator {
	return &Navigator{surface: surface, clock: clock, sel: sel}
}

// Advance locates the current lesson in ix by identity token and activates
// the next entry. When the token is absent from the snapshot (the current
// lesson scrolled out, or the index went stale) it degrades to resume-style
// selection: identity-based resume is the safety net for unreliable
// position-based navigation. The activated entry is returned for outcomes
// Advanced and Resumed.
func (n *Navigator) Advance(ix LessonIndex) (LessonEntry, AdvanceOutcome) {
	if len(ix) == 0 {
		return LessonEntry{}, NoLessons
	}

	token := LessonIDFromURL(n.surface.Location(), n.sel.LessonParam)
	pos := ix.Find(token)

	if pos == -1 {
		log.Printf("[Navigator] current lesson not in snapshot, falling back to first incomplete")
		i, outcome := ix.Resume()
		if outcome != ResumeFound {
			return LessonEntry{}, Exhausted
		}
		n.activateAndAwait(i)
		return ix[i], Resumed
	}

	next := pos + 1
	if next >= len(ix) {
		return LessonEntry{}, EndOfList
	}
	n.activateAndAwait(next)
	return ix[next], Advanced
}

// Activate clicks the i-th lesson anchor of the live list. Clicking is by
// position within the snapshot that chose i, guarded against the live list
// having shrunk in the meantime.
func (n *Navigator) Activate(i int) Status {
	links := n.surface.Locate(n.sel.LessonLinks)
	count, st := links.Count()
	if st != StatusFound || i >= count {
		return StatusNotFound
	}
	return clickAnchor(links.Nth(i), n.clock)
}

// activateAndAwait clicks the i-th anchor and waits, bounded, for the page
// location to move away from its prior value. A timeout here is tolerated:
// navigation may have silently completed before the wait began.
func (n *Navigator) activateAndAwait(i int) {
	old := n.surface.Location()
	if st := n.Activate(i); st != StatusFound {
		log.Printf("[Navigator] activating lesson %d: %s", i, st)
	}
	n.surface.WaitFor(scriptLocationChanged, old, locationChangeTimeout)
	n.clock.Sleep(postNavigationSettle)
}
