package autoplay

import "net/url"

// LessonEntry is one navigable unit in the course tree, snapshotted at a
// single point in time. The entry is stale the moment the page mutates;
// cross-reload identity is the ID, never the position.
type LessonEntry struct {
	// ID is the opaque token extracted from the lesson link's query
	// parameter. Uniqueness is assumed but not verified; a duplicate
	// degrades navigation to first-match-wins.
	ID string

	// Href is the navigable locator of the lesson.
	Href string

	// Title is the display text, best-effort and possibly empty.
	Title string

	// Completed reports whether a completion marker was present inside the
	// entry at observation time.
	Completed bool
}

// LessonIndex is the ordered sequence of lessons from one sidebar snapshot.
// Order is only meaningful within the snapshot it came from; comparing
// positions across snapshots is unsafe.
type LessonIndex []LessonEntry

// ResumeOutcome is the result of scanning an index for a resume target.
type ResumeOutcome int

const (
	// ResumeFound means an incomplete lesson was located.
	ResumeFound ResumeOutcome = iota

	// ResumeAllComplete means every lesson in the snapshot is completed.
	ResumeAllComplete

	// ResumeNoLessons means the snapshot was empty, which is a diagnosis
	// signal distinct from a finished course.
	ResumeNoLessons
)

// String returns a human-readable representation of the outcome.
func (o ResumeOutcome) String() string {
	switch o {
	case ResumeFound:
		return "found"
	case ResumeAllComplete:
		return "all-complete"
	case ResumeNoLessons:
		return "no-lessons"
	default:
		return "unknown"
	}
}

// Resume returns the position of the first lesson without a completion
// marker. Pure function over the snapshot; no side effects.
func (ix LessonIndex) Resume() (int, ResumeOutcome) {
	if len(ix) == 0 {
		return -1, ResumeNoLessons
	}
	for i, e := range ix {
		if !e.Completed {
			return i, ResumeFound
		}
	}
	return -1, ResumeAllComplete
}

// Find returns the position of the entry with the given id, or -1.
func (ix LessonIndex) Find(id string) int {
	if id == "" {
		return -1
	}
	for i, e := range ix {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// LessonIDFromURL extracts the lesson identity token from a URL's query
// parameter. Returns "" when the URL does not parse or the parameter is
// absent.
func LessonIDFromURL(raw, param string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get(param)
}
