package autoplay

import (
	"log"
	"strings"
)

// stableStreakThreshold is the number of consecutive scroll rounds with an
// unchanged link count required before the list is considered settled.
const stableStreakThreshold = 10

// ListStabilizer loads the lazily-rendered lesson list by scrolling the
// sidebar in fixed increments until the count of discovered lesson links
// stops changing. A single read under-counts because lessons render as they
// scroll into the viewport; an unbounded loop risks never terminating if
// rendering never settles. The dual bound (debounce streak and hard round
// cap) covers both.
type ListStabilizer struct {
	surface    Surface
	clock      Clock
	sel        Selectors
	scrollStep int
}

// NewListStabilizer creates a stabilizer that scrolls by scrollStep pixels
// per round.
func NewListStabilizer(surface Surface, clock Clock, sel Selectors, scrollStep int) *ListStabilizer {
	return &ListStabilizer{surface: surface, clock: clock, sel: sel, scrollStep: scrollStep}
}

// Stabilize scrolls until the link count has repeated for
// stableStreakThreshold consecutive rounds or maxRounds is exhausted, then
// returns a snapshot of the visible lessons in DOM order.
func (s *ListStabilizer) Stabilize(maxRounds int) LessonIndex {
	scrollSidebarIntoView(s.surface, s.clock, s.sel)
	scrollTop(s.surface, s.clock)

	last := -1
	streak := 0
	for r := 0; r < maxRounds; r++ {
		n, st := s.surface.Locate(s.sel.LessonLinks).Count()
		if st != StatusFound {
			n = 0
		}
		if n == last {
			streak++
		} else {
			streak = 0
		}
		if streak >= stableStreakThreshold {
			break
		}
		last = n
		scrollBy(s.surface, s.clock, s.scrollStep)
	}

	scrollTop(s.surface, s.clock)
	ix := s.Snapshot()
	log.Printf("[Stabilizer] lesson list settled at %d links", len(ix))
	return ix
}

// Snapshot reads the currently visible lesson anchors into a fresh
// LessonIndex without any scrolling. Every read is defensive: a missing
// href yields an empty id, a missing or unreadable completion marker means
// "not completed", and a missing title stays empty.
func (s *ListStabilizer) Snapshot() LessonIndex {
	links := s.surface.Locate(s.sel.LessonLinks)
	n, st := links.Count()
	if st != StatusFound || n == 0 {
		return nil
	}

	ix := make(LessonIndex, 0, n)
	for i := 0; i < n; i++ {
		anchor := links.Nth(i)
		entry := LessonEntry{}
		if href, st := anchor.Attribute("href"); st == StatusFound {
			entry.Href = href
			entry.ID = LessonIDFromURL(href, s.sel.LessonParam)
		}
		if c, st := anchor.Locate(s.sel.CompletedMarker).Count(); st == StatusFound && c > 0 {
			entry.Completed = true
		}
		if title, st := anchor.InnerText(titleTimeout); st == StatusFound {
			entry.Title = strings.TrimSpace(title)
		}
		ix = append(ix, entry)
	}
	return ix
}
