package autoplay

import "log"

// SectionExpander reveals collapsed lesson groups by clicking the section
// toggle controls under the navigation root. Rounds are bounded: clicking a
// toggle twice collapses it again, so an unbounded loop would oscillate
// forever. Freshly revealed controls only render after scrolling, which is
// why each round ends with a scroll toward the end of the list and back to
// the top.
type SectionExpander struct {
	surface Surface
	clock   Clock
	sel     Selectors
}

// NewSectionExpander creates an expander bound to a surface and clock.
func NewSectionExpander(surface Surface, clock Clock, sel Selectors) *SectionExpander {
	return &SectionExpander{surface: surface, clock: clock, sel: sel}
}

// Expand runs up to rounds expansion passes and returns the number of
// toggles successfully clicked. A round that discovers zero toggles stops
// early. Individual click failures are counted and swallowed; no control
// failure is fatal.
func (e *SectionExpander) Expand(rounds int) int {
	scrollSidebarIntoView(e.surface, e.clock, e.sel)
	scrollTop(e.surface, e.clock)

	total := 0
	for r := 0; r < rounds; r++ {
		toggles := e.surface.Locate(e.sel.SectionToggles)
		n, st := toggles.Count()
		if st != StatusFound || n == 0 {
			log.Printf("[Expander] no section toggles visible, stopping after %d round(s)", r)
			break
		}

		clicked, failed := 0, 0
		for i := 0; i < n; i++ {
			toggle := toggles.Nth(i)
			// an off-screen toggle silently ignores the click
			toggle.ScrollIntoView(toggleScrollTimeout)
			e.clock.Sleep(toggleHoverDelay)
			if st := toggle.Click(ClickOptions{Force: true, Timeout: toggleClickTimeout}); st == StatusFound {
				clicked++
			} else {
				failed++
			}
			e.clock.Sleep(togglePostClickDelay)
		}
		total += clicked
		log.Printf("[Expander] round %d: clicked %d of %d toggles (%d failed)", r+1, clicked, n, failed)

		scrollBy(e.surface, e.clock, expandRoundScrollPx)
		scrollTop(e.surface, e.clock)
	}

	e.clock.Sleep(expandFinalSettle)
	return total
}
