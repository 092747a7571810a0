package autoplay

import (
	"context"
	"fmt"
	"log"

	"github.com/gobwas/glob"

	"github.com/entrhq/coursepilot/pkg/logging"
	"github.com/entrhq/coursepilot/pkg/report"
)

var debugLog *logging.Logger

func init() {
	var err error
	debugLog, err = logging.NewLogger("autoplay")
	if err != nil {
		// Logger fell back to stderr due to initialization failure
		debugLog.Warnf("Failed to initialize autoplay logger, using stderr fallback: %v", err)
	}
}

// Pager exposes the page navigation primitives the orchestrator needs. They
// are implemented outside this package (see pkg/browser) and consumed here
// as a boundary.
type Pager interface {
	Goto(url string) error
	Reload() error
}

// Inspector captures page metadata for the lesson currently on screen.
// Optional collaborator; all failures inside it must be best-effort.
type Inspector interface {
	Inspect() map[string]string
}

// Phase is the orchestrator's position in its run state machine.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseExpanding
	PhaseStabilizing
	PhaseResuming
	PhaseWatching
	PhaseAdvancing
	PhaseDone
)

// String returns a human-readable representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseExpanding:
		return "expanding"
	case PhaseStabilizing:
		return "stabilizing"
	case PhaseResuming:
		return "resuming"
	case PhaseWatching:
		return "watching"
	case PhaseAdvancing:
		return "advancing"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// ExpansionBounds configures the two expansion passes.
type ExpansionBounds struct {
	FirstRounds   int
	ConfirmRounds int
}

// StabilizeBounds configures the stabilizer passes and scroll behavior.
type StabilizeBounds struct {
	FirstMaxRounds   int
	ConfirmMaxRounds int
	RetryMaxRounds   int
	ScrollStepPx     int
	DeepScrollPx     int
}

// OrchestratorOptions wires an orchestrator together.
type OrchestratorOptions struct {
	Surface   Surface
	Pager     Pager
	Clock     Clock
	Selectors Selectors
	Summary   *report.RunSummary

	// StartURL is the classroom page to open.
	StartURL string

	// Inspector optionally captures per-lesson page metadata.
	Inspector Inspector

	// SkipTitles are compiled patterns of lesson titles whose media step is
	// skipped outright.
	SkipTitles []glob.Glob

	Expansion ExpansionBounds
	Stabilize StabilizeBounds
	Watchdog  WatchdogConfig
}

// DefaultExpansionBounds returns the production two-pass expansion shape:
// a thorough first pass and a lighter confirmation pass, because a single
// pass under-expands deeply nested sections.
func DefaultExpansionBounds() ExpansionBounds {
	return ExpansionBounds{FirstRounds: 2, ConfirmRounds: 1}
}

// DefaultStabilizeBounds returns the production stabilizer bounds.
func DefaultStabilizeBounds() StabilizeBounds {
	return StabilizeBounds{
		FirstMaxRounds:   200,
		ConfirmMaxRounds: 140,
		RetryMaxRounds:   120,
		ScrollStepPx:     900,
		DeepScrollPx:     2500,
	}
}

// Orchestrator sequences expansion, stabilization, resume, watchdog and
// navigation until the lesson index is exhausted. The only terminal phase is
// PhaseDone; every component outcome short of a broken page is logged and
// moved past, never treated as fatal.
type Orchestrator struct {
	surface    Surface
	pager      Pager
	clock      Clock
	sel        Selectors
	summary    *report.RunSummary
	inspector  Inspector
	skipTitles []glob.Glob

	startURL  string
	expansion ExpansionBounds
	stabilize StabilizeBounds

	expander   *SectionExpander
	stabilizer *ListStabilizer
	navigator  *Navigator
	watchdog   *VideoWatchdog

	phase Phase
}

// NewOrchestrator builds an orchestrator and its components.
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	if opts.Surface == nil {
		return nil, fmt.Errorf("surface is required")
	}
	if opts.Pager == nil {
		return nil, fmt.Errorf("pager is required")
	}
	if opts.Summary == nil {
		return nil, fmt.Errorf("run summary is required")
	}
	if opts.StartURL == "" {
		return nil, fmt.Errorf("start URL is required")
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}
	if opts.Selectors == (Selectors{}) {
		opts.Selectors = DefaultSelectors()
	}
	if opts.Expansion == (ExpansionBounds{}) {
		opts.Expansion = DefaultExpansionBounds()
	}
	if opts.Stabilize == (StabilizeBounds{}) {
		opts.Stabilize = DefaultStabilizeBounds()
	}

	return &Orchestrator{
		surface:    opts.Surface,
		pager:      opts.Pager,
		clock:      opts.Clock,
		sel:        opts.Selectors,
		summary:    opts.Summary,
		inspector:  opts.Inspector,
		skipTitles: opts.SkipTitles,
		startURL:   opts.StartURL,
		expansion:  opts.Expansion,
		stabilize:  opts.Stabilize,
		expander:   NewSectionExpander(opts.Surface, opts.Clock, opts.Selectors),
		stabilizer: NewListStabilizer(opts.Surface, opts.Clock, opts.Selectors, opts.Stabilize.ScrollStepPx),
		navigator:  NewNavigator(opts.Surface, opts.Clock, opts.Selectors),
		watchdog:   NewVideoWatchdog(opts.Surface, opts.Clock, opts.Selectors, opts.Watchdog),
	}, nil
}

// Phase returns the orchestrator's current phase.
func (o *Orchestrator) Phase() Phase { return o.phase }

// Run executes the whole course walk. It returns an error only when the
// page itself becomes unusable or the context is cancelled; a finished
// course is the nil-error path.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.setPhase(PhaseInit)
	log.Printf("[Orchestrator] opening classroom: %s", o.startURL)
	if err := o.pager.Goto(o.startURL); err != nil {
		o.summary.Finish(report.StatusFailed, err)
		return fmt.Errorf("open classroom: %w", err)
	}
	o.clock.Sleep(initialSettle)

	// the host page is a single-page application whose initial paint is
	// unreliable without a forced reload before first interaction
	if err := o.pager.Reload(); err != nil {
		o.summary.Finish(report.StatusFailed, err)
		return fmt.Errorf("reload classroom: %w", err)
	}
	o.clock.Sleep(initialSettle)

	ix := o.buildIndex()

	o.setPhase(PhaseResuming)
	pos, outcome := ix.Resume()
	switch outcome {
	case ResumeNoLessons:
		log.Printf("[Orchestrator] no lessons found")
		o.finish(report.StatusNoLessons)
		return nil
	case ResumeAllComplete:
		log.Printf("[Orchestrator] all lessons completed already")
		o.finish(report.StatusAlreadyComplete)
		return nil
	}

	entry := ix[pos]
	log.Printf("[Orchestrator] resuming from lesson #%d: %s", pos+1, entry.Title)
	if st := o.navigator.Activate(pos); st != StatusFound {
		debugLog.Warnf("resume activation of lesson %d reported %s", pos, st)
	}
	o.clock.Sleep(postResumeSettle)

	for {
		if err := ctx.Err(); err != nil {
			o.summary.Finish(report.StatusCancelled, err)
			return err
		}

		o.watchLesson(entry)

		o.setPhase(PhaseAdvancing)
		next, outcome := o.navigator.Advance(o.stabilizer.Snapshot())
		debugLog.Infof("advance outcome: %s", outcome)
		if outcome == Advanced || outcome == Resumed {
			entry = next
			continue
		}

		// the visible list may simply be exhausted: scroll deeper, let the
		// list settle once more, and retry a single time
		log.Printf("[Orchestrator] cannot advance (%s), loading more lessons", outcome)
		o.setPhase(PhaseStabilizing)
		scrollBy(o.surface, o.clock, o.stabilize.DeepScrollPx)
		o.clock.Sleep(deepScrollSettle)
		ix = o.stabilizer.Stabilize(o.stabilize.RetryMaxRounds)

		o.setPhase(PhaseAdvancing)
		next, outcome = o.navigator.Advance(ix)
		debugLog.Infof("advance retry outcome: %s", outcome)
		if outcome == Advanced || outcome == Resumed {
			entry = next
			continue
		}

		log.Printf("[Orchestrator] no next lesson, course finished")
		break
	}

	o.finish(report.StatusCompleted)
	return nil
}

// buildIndex runs the two-pass expand/stabilize sequence and returns the
// settled index.
func (o *Orchestrator) buildIndex() LessonIndex {
	o.setPhase(PhaseExpanding)
	o.expander.Expand(o.expansion.FirstRounds)
	o.setPhase(PhaseStabilizing)
	o.stabilizer.Stabilize(o.stabilize.FirstMaxRounds)

	o.setPhase(PhaseExpanding)
	o.expander.Expand(o.expansion.ConfirmRounds)
	o.setPhase(PhaseStabilizing)
	return o.stabilizer.Stabilize(o.stabilize.ConfirmMaxRounds)
}

// watchLesson runs the media step for one lesson and records the result.
// Any watchdog outcome means "this lesson's media step is over", never an
// error that halts the run.
func (o *Orchestrator) watchLesson(entry LessonEntry) {
	o.setPhase(PhaseWatching)
	started := o.clock.Now()

	result := report.LessonResult{ID: entry.ID, Title: entry.Title}
	if o.titleSkipped(entry.Title) {
		log.Printf("[Orchestrator] skipping lesson by title pattern: %s", entry.Title)
		result.Skipped = true
	} else {
		outcome := o.watchdog.Watch()
		result.Outcome = outcome.String()
		if o.inspector != nil {
			result.Metadata = o.inspector.Inspect()
		}
	}
	result.Duration = o.clock.Now().Sub(started)
	o.summary.AddLesson(result)

	// close any overlay the player may have opened
	o.surface.KeyPress("Escape")
	o.clock.Sleep(betweenLessonSettle)
}

func (o *Orchestrator) titleSkipped(title string) bool {
	if title == "" {
		return false
	}
	for _, g := range o.skipTitles {
		if g.Match(title) {
			return true
		}
	}
	return false
}

func (o *Orchestrator) setPhase(p Phase) {
	o.phase = p
	debugLog.Debugf("phase: %s", p)
}

func (o *Orchestrator) finish(status string) {
	o.setPhase(PhaseDone)
	o.summary.Finish(status, nil)
}
