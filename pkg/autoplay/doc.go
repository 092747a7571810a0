// Package autoplay implements sequential consumption of an online course:
// it walks a lazily-rendered, collapsible lesson navigation sidebar, resumes
// from the first incomplete lesson, drives the embedded video player to
// completion, and advances lesson by lesson until no lessons remain.
//
// # Architecture
//
// The package is built around five cooperating components:
//
//  1. SectionExpander: reveals collapsed lesson groups by clicking toggle
//     controls, bounded in rounds to avoid expand/collapse oscillation
//  2. ListStabilizer: scrolls the lazy-rendered sidebar until the lesson
//     link count stops changing, then snapshots the visible anchors into a
//     LessonIndex
//  3. Navigator: maps the current page location to an index position via the
//     lesson identity token and advances by one, falling back to
//     resume-style selection when the token cannot be found
//  4. VideoWatchdog: detects a player, forces playback, and polls until the
//     video ends, needs a resume nudge, or a timeout elapses
//  5. Orchestrator: sequences the above until the course is exhausted
//
// # Boundaries
//
// All page access goes through the Surface interface, a capability injected
// into every component. Production code backs it with a Playwright page
// (see pkg/browser); tests back it with an in-memory fake. Time is likewise
// injected through Clock so the polling loops can be tested without real
// waiting.
//
// Every Surface call returns an explicit Status rather than an error:
// transient DOM inconsistency (element not yet present, script evaluation
// failure) is an expected condition in a virtualized sidebar, and each
// caller decides locally whether a miss means "retry", "treat as false", or
// "give up". The only sanctioned exits from any component are its documented
// bounded rounds and timeouts.
//
// # Concurrency
//
// The run is single-threaded and cooperative: one control flow, explicit
// bounded waits, no parallelism between phases. The shared browser page is
// mutated in place without locking because there is never a concurrent
// writer. Parallel lesson processing would require one isolated page per
// worker and is deliberately not attempted.
package autoplay
