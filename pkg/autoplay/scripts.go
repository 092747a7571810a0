package autoplay

import "time"

// Page scripts. The player probes check both known player shapes: a plain
// <video> element and the mux custom elements, which hide duration for a
// long time after load.
const (
	scriptScrollBy  = "(px) => window.scrollBy(0, px)"
	scriptScrollTop = "() => window.scrollTo(0, 0)"

	scriptLocationChanged = "(oldUrl) => window.location.href !== oldUrl"

	scriptDetectPlayer = `() => {
		if (document.querySelector("video")) return true;
		if (document.querySelector("mux-video")) return true;
		if (document.querySelector("mux-player")) return true;
		return false;
	}`

	// Mutes, zeroes volume and invokes play on whichever player shape is
	// present. Autoplay rejections are expected and swallowed in-page.
	scriptForceStart = `() => {
		const v = document.querySelector("video");
		if (v) {
			try { v.muted = true; v.volume = 0; } catch(e){}
			try { v.playbackRate = 1.0; } catch(e){}
			try { v.play().catch(()=>{}); } catch(e){}
		}
		const mv = document.querySelector("mux-video") || document.querySelector("mux-player");
		if (mv) {
			try { mv.muted = true; mv.volume = 0; } catch(e){}
			try { mv.play().catch(()=>{}); } catch(e){}
		}
	}`

	// Readiness is deliberately permissive: a bare "player exists" counts,
	// because some platforms never expose duration promptly. A stalled
	// player is caught later by the polling loop's overall timeout.
	scriptPlayerReady = `() => {
		const v = document.querySelector("video");
		const mv = document.querySelector("mux-video");
		const p = v || mv;
		if (!p) return false;
		if (p.duration && p.duration > 5) return true;
		if (p.currentTime && p.currentTime > 0.5) return true;
		return true;
	}`

	scriptVideoEnded = `() => {
		const v = document.querySelector("video");
		if (v && v.duration && v.duration > 5) {
			return v.ended === true || (v.currentTime >= v.duration - 0.5);
		}
		const mv = document.querySelector("mux-video");
		if (mv && mv.duration && mv.duration > 5) {
			return mv.ended === true || (mv.currentTime >= mv.duration - 0.5);
		}
		return false;
	}`

	scriptVideoPaused = `() => {
		const v = document.querySelector("video");
		if (v && v.duration && v.duration > 5) return v.paused === true;
		const mv = document.querySelector("mux-video");
		if (mv && mv.duration && mv.duration > 5) return mv.paused === true;
		return false;
	}`
)

// Settle delays and per-call timeouts. The fixed pauses after clicks and
// scrolls trade a little wall-clock time for avoiding flaky premature reads
// against a mid-render page.
const (
	scrollSettle      = 350 * time.Millisecond
	scrollTopSettle   = 800 * time.Millisecond
	sidebarViewSettle = 300 * time.Millisecond

	toggleScrollTimeout  = 1500 * time.Millisecond
	toggleClickTimeout   = 800 * time.Millisecond
	toggleHoverDelay     = 60 * time.Millisecond
	togglePostClickDelay = 80 * time.Millisecond
	expandRoundScrollPx  = 1400
	expandFinalSettle    = 400 * time.Millisecond

	anchorTimeout = 5 * time.Second
	anchorSettle  = 250 * time.Millisecond
	titleTimeout  = 1500 * time.Millisecond

	locationChangeTimeout = 25 * time.Second
	postNavigationSettle  = 2500 * time.Millisecond

	preDetectSettle       = 2 * time.Second
	thumbnailSettle       = 300 * time.Millisecond
	thumbnailLoadSettle   = 2 * time.Second
	thumbnailRecheckDelay = 1500 * time.Millisecond

	initialSettle       = 5 * time.Second
	postResumeSettle    = 3500 * time.Millisecond
	betweenLessonSettle = 1500 * time.Millisecond
	deepScrollSettle    = 1500 * time.Millisecond
)

func scrollBy(s Surface, clock Clock, px int) {
	s.Evaluate(scriptScrollBy, px)
	clock.Sleep(scrollSettle)
}

func scrollTop(s Surface, clock Clock) {
	s.Evaluate(scriptScrollTop, nil)
	clock.Sleep(scrollTopSettle)
}

func scrollSidebarIntoView(s Surface, clock Clock, sel Selectors) {
	s.Locate(sel.SidebarRoot).Nth(0).ScrollIntoView(anchorTimeout)
	clock.Sleep(sidebarViewSettle)
}
