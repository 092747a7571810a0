package autoplay

import (
	"log"
	"time"
)

// PlaybackState tracks where a single watchdog run stands. The state is
// owned by the watchdog for one lesson visit and discarded when the lesson
// changes.
type PlaybackState int

const (
	StateNoPlayer PlaybackState = iota
	StateAwaitingReady
	StatePlaying
	StatePaused
	StateEnded
	StateTimedOut
)

// String returns a human-readable representation of the state.
func (s PlaybackState) String() string {
	switch s {
	case StateNoPlayer:
		return "no-player-detected"
	case StateAwaitingReady:
		return "awaiting-ready"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	case StateTimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}

// WatchdogOutcome is the terminal result of one watchdog run.
type WatchdogOutcome int

const (
	// OutcomeEnded means the player reported an end condition.
	OutcomeEnded WatchdogOutcome = iota

	// OutcomeNoVideo means no player element was detected, even after the
	// thumbnail recovery attempt.
	OutcomeNoVideo

	// OutcomeDurationFailed means the player never reported readiness
	// within the bounded wait.
	OutcomeDurationFailed

	// OutcomeTimedOut means the overall wall-clock budget elapsed.
	OutcomeTimedOut
)

// String returns a human-readable representation of the outcome.
func (o WatchdogOutcome) String() string {
	switch o {
	case OutcomeEnded:
		return "ended"
	case OutcomeNoVideo:
		return "no-video"
	case OutcomeDurationFailed:
		return "duration-failed"
	case OutcomeTimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}

// WatchdogConfig bounds a watchdog run.
type WatchdogConfig struct {
	// MaxWait is the overall wall-clock budget for one lesson's video.
	MaxWait time.Duration

	// PollInterval is the sleep between polling cycles.
	PollInterval time.Duration

	// ReadyTimeout bounds the wait for the player to report readiness.
	ReadyTimeout time.Duration
}

// DefaultWatchdogConfig returns the production bounds: two hours per video,
// polled every three seconds.
func DefaultWatchdogConfig() WatchdogConfig {
	return WatchdogConfig{
		MaxWait:      2 * time.Hour,
		PollInterval: 3 * time.Second,
		ReadyTimeout: 60 * time.Second,
	}
}

// VideoWatchdog drives one lesson's embedded video to completion. It
// detects a player, forces playback start, classifies readiness, then polls
// until an end condition, a pause needing a resume nudge, or a timeout. All
// of its page reads are defensive: a failed script or missing element is
// "condition not yet met", never a fault.
type VideoWatchdog struct {
	surface Surface
	clock   Clock
	sel     Selectors
	cfg     WatchdogConfig
	state   PlaybackState
}

// NewVideoWatchdog creates a watchdog bound to a surface and clock.
func NewVideoWatchdog(surface Surface, clock Clock, sel Selectors, cfg WatchdogConfig) *VideoWatchdog {
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = DefaultWatchdogConfig().MaxWait
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultWatchdogConfig().PollInterval
	}
	if cfg.ReadyTimeout <= 0 {
		cfg.ReadyTimeout = DefaultWatchdogConfig().ReadyTimeout
	}
	return &VideoWatchdog{surface: surface, clock: clock, sel: sel, cfg: cfg}
}

// State returns the playback state of the current or most recent run.
func (w *VideoWatchdog) State() PlaybackState { return w.state }

// Watch runs the watchdog to a terminal outcome for the lesson currently on
// screen.
func (w *VideoWatchdog) Watch() WatchdogOutcome {
	w.state = StateNoPlayer
	w.clock.Sleep(preDetectSettle)

	if !w.playerPresent() {
		// some lessons hide the player behind a thumbnail placeholder
		if w.clickThumbnail() {
			w.clock.Sleep(thumbnailRecheckDelay)
		}
	}
	if !w.playerPresent() {
		log.Printf("[Watchdog] no video detected, skipping lesson media")
		return OutcomeNoVideo
	}

	w.forceStart()

	w.state = StateAwaitingReady
	if st := w.surface.WaitFor(scriptPlayerReady, nil, w.cfg.ReadyTimeout); st != StatusFound {
		log.Printf("[Watchdog] video never reported readiness (%s), skipping", st)
		return OutcomeDurationFailed
	}

	log.Printf("[Watchdog] video running, waiting until it ends")
	w.state = StatePlaying
	start := w.clock.Now()
	for {
		if w.clock.Now().Sub(start) > w.cfg.MaxWait {
			w.state = StateTimedOut
			log.Printf("[Watchdog] overall timeout reached after %s, skipping", w.cfg.MaxWait)
			return OutcomeTimedOut
		}
		if w.evalBool(scriptVideoEnded) {
			w.state = StateEnded
			log.Printf("[Watchdog] video completed")
			return OutcomeEnded
		}
		if w.evalBool(scriptVideoPaused) {
			w.state = StatePaused
			log.Printf("[Watchdog] pause detected, resuming")
			w.forceStart()
			w.state = StatePlaying
		}
		w.clock.Sleep(w.cfg.PollInterval)
	}
}

// forceStart focuses the player with a keystroke and issues the mute+play
// script. Both can fail under autoplay restrictions; both failures are
// expected and non-fatal.
func (w *VideoWatchdog) forceStart() {
	w.surface.KeyPress("Space")
	w.surface.Evaluate(scriptForceStart, nil)
}

func (w *VideoWatchdog) playerPresent() bool {
	return w.evalBool(scriptDetectPlayer)
}

// clickThumbnail activates the video placeholder, if present, so the real
// player loads. Returns true when a thumbnail was clicked.
func (w *VideoWatchdog) clickThumbnail() bool {
	thumbs := w.surface.Locate(w.sel.Thumbnail)
	n, st := thumbs.Count()
	if st != StatusFound || n == 0 {
		return false
	}
	thumb := thumbs.Nth(0)
	thumb.ScrollIntoView(anchorTimeout)
	w.clock.Sleep(thumbnailSettle)
	if st := thumb.Click(ClickOptions{Force: true, Timeout: anchorTimeout}); st != StatusFound {
		return false
	}
	w.clock.Sleep(thumbnailLoadSettle)
	log.Printf("[Watchdog] clicked thumbnail to load video")
	return true
}

func (w *VideoWatchdog) evalBool(script string) bool {
	v, st := w.surface.Evaluate(script, nil)
	if st != StatusFound {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}
