package autoplay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func watchdogFixture(q scriptQueue, cfg WatchdogConfig) (*fakeSurface, *fakeClock, *VideoWatchdog) {
	s := newFakeSurface()
	s.evalHook = q.hook()
	clock := newFakeClock()
	return s, clock, NewVideoWatchdog(s, clock, s.sel, cfg)
}

func TestWatchdogNoVideo(t *testing.T) {
	s, _, w := watchdogFixture(scriptQueue{}, WatchdogConfig{})

	outcome := w.Watch()

	assert.Equal(t, OutcomeNoVideo, outcome)
	assert.Equal(t, StateNoPlayer, w.State())
	// without a player nothing is started, awaited or polled
	assert.Empty(t, s.waitCalls)
	assert.Empty(t, s.keys)
	assert.Zero(t, s.evalCount(scriptVideoEnded))
}

func TestWatchdogThumbnailRecovery(t *testing.T) {
	q := scriptQueue{
		scriptDetectPlayer: {false, true},
		scriptVideoEnded:   {true},
	}
	s, _, w := watchdogFixture(q, WatchdogConfig{})
	s.thumbnails = 1

	outcome := w.Watch()

	assert.Equal(t, OutcomeEnded, outcome)
	assert.Equal(t, 1, s.thumbnailClicks)
}

func TestWatchdogDurationFailed(t *testing.T) {
	q := scriptQueue{scriptDetectPlayer: {true, true}}
	s, _, w := watchdogFixture(q, WatchdogConfig{})
	s.waitHook = func(predicate string, _ any, _ time.Duration) Status {
		require.Equal(t, scriptPlayerReady, predicate)
		return StatusTimedOut
	}

	outcome := w.Watch()

	assert.Equal(t, OutcomeDurationFailed, outcome)
	assert.Equal(t, StateAwaitingReady, w.State())
	assert.Zero(t, s.evalCount(scriptVideoEnded), "an unready player is never polled")
}

func TestWatchdogEndsAfterPolling(t *testing.T) {
	q := scriptQueue{
		scriptDetectPlayer: {true, true},
		scriptVideoEnded:   {false, false, true},
	}
	s, _, w := watchdogFixture(q, WatchdogConfig{})

	outcome := w.Watch()

	assert.Equal(t, OutcomeEnded, outcome)
	assert.Equal(t, StateEnded, w.State())
	assert.Equal(t, 3, s.evalCount(scriptVideoEnded))
}

func TestWatchdogResumesPausedVideo(t *testing.T) {
	q := scriptQueue{
		scriptDetectPlayer: {true, true},
		scriptVideoEnded:   {false, false, true},
		scriptVideoPaused:  {true, false},
	}
	s, _, w := watchdogFixture(q, WatchdogConfig{})

	outcome := w.Watch()

	assert.Equal(t, OutcomeEnded, outcome)
	// one force-start at detection, one more for the pause nudge
	assert.Equal(t, 2, s.evalCount(scriptForceStart))
	assert.Equal(t, []string{"Space", "Space"}, s.keys)
}

func TestWatchdogOverallTimeout(t *testing.T) {
	q := scriptQueue{scriptDetectPlayer: {true, true}}
	_, clock, w := watchdogFixture(q, WatchdogConfig{
		MaxWait:      5 * time.Second,
		PollInterval: 3 * time.Second,
	})
	start := clock.Now()

	outcome := w.Watch()

	assert.Equal(t, OutcomeTimedOut, outcome)
	assert.Equal(t, StateTimedOut, w.State())
	assert.GreaterOrEqual(t, clock.Now().Sub(start), 6*time.Second)
}

func TestWatchdogConfigDefaultsZeroFields(t *testing.T) {
	w := NewVideoWatchdog(newFakeSurface(), newFakeClock(), DefaultSelectors(), WatchdogConfig{PollInterval: time.Second})

	assert.Equal(t, DefaultWatchdogConfig().MaxWait, w.cfg.MaxWait)
	assert.Equal(t, time.Second, w.cfg.PollInterval)
	assert.Equal(t, DefaultWatchdogConfig().ReadyTimeout, w.cfg.ReadyTimeout)
}
