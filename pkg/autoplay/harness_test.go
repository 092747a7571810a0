package autoplay

import (
	"time"
)

// fakeClock advances synthetically: every Sleep moves Now forward by the
// requested duration, so polling loops run instantly in tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time        { return c.now }
func (c *fakeClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

// fakeAnchor is one lesson link in the fake sidebar.
type fakeAnchor struct {
	href      string
	title     string
	completed bool
	clicks    int
	onClick   func()
}

// fakeSurface dispatches Locate calls by selector and Evaluate calls by
// script constant, so each test programs exactly the page behavior it
// needs.
type fakeSurface struct {
	sel      Selectors
	location string

	anchors []*fakeAnchor

	// linkCounts overrides successive lesson-link Count results; once
	// exhausted, Count reports len(anchors)
	linkCounts     []int
	linkCountCalls int

	// toggleCounts are the toggle Count results per expander round; once
	// exhausted, zero
	toggleCounts  []int
	toggleLocates int
	toggleClicks  int

	thumbnails      int
	thumbnailClicks int

	evaluated []string
	evalHook  func(script string, arg any) (any, Status)
	waitCalls []string
	waitHook  func(predicate string, arg any, timeout time.Duration) Status
	keys      []string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{sel: DefaultSelectors()}
}

func (s *fakeSurface) Locate(selector string) HandleSet {
	switch selector {
	case s.sel.LessonLinks:
		return &fakeLinkSet{s: s}
	case s.sel.SectionToggles:
		s.toggleLocates++
		return &fakeToggleSet{s: s, round: s.toggleLocates - 1}
	case s.sel.Thumbnail:
		return &fakeThumbSet{s: s}
	case s.sel.SidebarRoot:
		return fixedSet{count: 1}
	}
	return fixedSet{}
}

func (s *fakeSurface) Evaluate(script string, arg any) (any, Status) {
	s.evaluated = append(s.evaluated, script)
	if s.evalHook != nil {
		return s.evalHook(script, arg)
	}
	return nil, StatusFound
}

func (s *fakeSurface) WaitFor(predicate string, arg any, timeout time.Duration) Status {
	s.waitCalls = append(s.waitCalls, predicate)
	if s.waitHook != nil {
		return s.waitHook(predicate, arg, timeout)
	}
	return StatusFound
}

func (s *fakeSurface) Location() string { return s.location }

func (s *fakeSurface) KeyPress(key string) Status {
	s.keys = append(s.keys, key)
	return StatusFound
}

func (s *fakeSurface) evalCount(script string) int {
	n := 0
	for _, e := range s.evaluated {
		if e == script {
			n++
		}
	}
	return n
}

type fakeLinkSet struct{ s *fakeSurface }

func (l *fakeLinkSet) Count() (int, Status) {
	s := l.s
	if s.linkCountCalls < len(s.linkCounts) {
		n := s.linkCounts[s.linkCountCalls]
		s.linkCountCalls++
		return n, StatusFound
	}
	s.linkCountCalls++
	return len(s.anchors), StatusFound
}

func (l *fakeLinkSet) Nth(i int) Handle {
	if i < 0 || i >= len(l.s.anchors) {
		return noopHandle{}
	}
	return &fakeAnchorHandle{a: l.s.anchors[i], s: l.s}
}

type fakeAnchorHandle struct {
	a *fakeAnchor
	s *fakeSurface
}

func (h *fakeAnchorHandle) Click(ClickOptions) Status {
	h.a.clicks++
	if h.a.onClick != nil {
		h.a.onClick()
	}
	return StatusFound
}

func (h *fakeAnchorHandle) ScrollIntoView(time.Duration) Status { return StatusFound }

func (h *fakeAnchorHandle) Attribute(name string) (string, Status) {
	if name == "href" && h.a.href != "" {
		return h.a.href, StatusFound
	}
	return "", StatusNotFound
}

func (h *fakeAnchorHandle) InnerText(time.Duration) (string, Status) {
	return h.a.title, StatusFound
}

func (h *fakeAnchorHandle) Locate(selector string) HandleSet {
	if selector == h.s.sel.CompletedMarker && h.a.completed {
		return fixedSet{count: 1}
	}
	return fixedSet{}
}

type fakeToggleSet struct {
	s     *fakeSurface
	round int
}

func (t *fakeToggleSet) Count() (int, Status) {
	if t.round < len(t.s.toggleCounts) {
		return t.s.toggleCounts[t.round], StatusFound
	}
	return 0, StatusFound
}

func (t *fakeToggleSet) Nth(int) Handle { return &fakeToggleHandle{s: t.s} }

type fakeToggleHandle struct{ s *fakeSurface }

func (h *fakeToggleHandle) Click(ClickOptions) Status {
	h.s.toggleClicks++
	return StatusFound
}

func (h *fakeToggleHandle) ScrollIntoView(time.Duration) Status    { return StatusFound }
func (h *fakeToggleHandle) Attribute(string) (string, Status)      { return "", StatusNotFound }
func (h *fakeToggleHandle) InnerText(time.Duration) (string, Status) { return "", StatusNotFound }
func (h *fakeToggleHandle) Locate(string) HandleSet                { return fixedSet{} }

type fakeThumbSet struct{ s *fakeSurface }

func (t *fakeThumbSet) Count() (int, Status) { return t.s.thumbnails, StatusFound }

func (t *fakeThumbSet) Nth(int) Handle { return &fakeThumbHandle{s: t.s} }

type fakeThumbHandle struct{ s *fakeSurface }

func (h *fakeThumbHandle) Click(ClickOptions) Status {
	h.s.thumbnailClicks++
	return StatusFound
}

func (h *fakeThumbHandle) ScrollIntoView(time.Duration) Status      { return StatusFound }
func (h *fakeThumbHandle) Attribute(string) (string, Status)        { return "", StatusNotFound }
func (h *fakeThumbHandle) InnerText(time.Duration) (string, Status) { return "", StatusNotFound }
func (h *fakeThumbHandle) Locate(string) HandleSet                  { return fixedSet{} }

// fixedSet is a handle set with a fixed size and inert handles.
type fixedSet struct{ count int }

func (f fixedSet) Count() (int, Status) { return f.count, StatusFound }
func (f fixedSet) Nth(int) Handle       { return noopHandle{} }

type noopHandle struct{}

func (noopHandle) Click(ClickOptions) Status              { return StatusNotFound }
func (noopHandle) ScrollIntoView(time.Duration) Status    { return StatusNotFound }
func (noopHandle) Attribute(string) (string, Status)      { return "", StatusNotFound }
func (noopHandle) InnerText(time.Duration) (string, Status) { return "", StatusNotFound }
func (noopHandle) Locate(string) HandleSet                { return fixedSet{} }

// scriptQueue pops per-script boolean sequences for watchdog tests; an
// exhausted queue yields false.
type scriptQueue map[string][]bool

func (q scriptQueue) pop(script string) bool {
	seq := q[script]
	if len(seq) == 0 {
		return false
	}
	v := seq[0]
	q[script] = seq[1:]
	return v
}

func (q scriptQueue) hook() func(script string, arg any) (any, Status) {
	return func(script string, arg any) (any, Status) {
		switch script {
		case scriptDetectPlayer, scriptVideoEnded, scriptVideoPaused:
			return q.pop(script), StatusFound
		}
		return nil, StatusFound
	}
}
