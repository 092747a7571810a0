// Package browser provides the Playwright-backed browser session for the
// course walk and the page surface implementation consumed by pkg/autoplay.
//
// # Architecture
//
// The package is built around three core concepts:
//
//  1. Manager: owns the Playwright driver lifecycle (install, run, stop)
//  2. Session: one launched Chromium with its context and page, created
//     from a persisted authenticated storage-state artifact
//  3. PageSurface: the autoplay.Surface capability backed by the session's
//     page, translating Playwright errors into explicit statuses
//
// # Session bootstrap
//
// Authentication happens outside this program: a prior login step persists
// a Playwright storage-state file, and Launch consumes that artifact
// opaquely. The browser is launched with autoplay restrictions relaxed so
// muted programmatic playback is allowed without a user gesture.
//
// # Concurrency
//
// One session drives one single-threaded run. The manager carries no
// session registry; parallel runs would each need their own Manager and
// Session.
package browser
