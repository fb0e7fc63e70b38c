package virt

import (
	"sync"
	"time"
)

// DefaultMeasureDebounce is how long the visible range must hold still
// before newly mounted rows are measured. Measuring every rendered frame
// thrashes layout for no benefit.
const DefaultMeasureDebounce = 200 * time.Millisecond

// SettleDelay is the pause between forcing the initial bottom-anchored
// scroll position and re-reading the actual offset. Bottom-anchored layouts
// often report a wrong height until children have painted once, so the
// first placement is verified after this delay. Tuning parameter, not a
// contract.
const SettleDelay = 50 * time.Millisecond

// settleEpsilon is the offset drift tolerated before the initial placement
// is re-applied.
const settleEpsilon = 1.0

// FrameFunc schedules fn to run on the host's next paint. Bubble Tea hosts
// back this with a frame tick; tests call fn synchronously.
type FrameFunc func(fn func())

// FrameScheduler coalesces scroll samples to at most one commit per frame.
//
// Every scheduler is an explicitly instantiated per-viewport object; there
// is deliberately no package-level pending flag, so independent viewports
// cannot corrupt each other's coalescing state.
type FrameScheduler struct {
	mu      sync.Mutex
	frame   FrameFunc
	commit  func(offset float64)
	latest  float64
	pending bool
	closed  bool
}

// NewFrameScheduler creates a scheduler that delivers coalesced offsets to
// commit on frames supplied by frame.
func NewFrameScheduler(frame FrameFunc, commit func(offset float64)) *FrameScheduler {
	return &FrameScheduler{frame: frame, commit: commit}
}

// Sample records a raw scroll offset. Samples arriving between frames
// overwrite each other: this is a coalescing discipline, not a queue, and
// intermediate offsets carry no information once a newer one exists. The
// first sample in a window schedules one frame callback; the callback
// commits whatever offset is latest when it runs.
func (s *FrameScheduler) Sample(offset float64) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.latest = offset
	if s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = true
	s.mu.Unlock()

	s.frame(s.flush)
}

// flush is the frame callback: commit the final offset, clear the window.
func (s *FrameScheduler) flush() {
	s.mu.Lock()
	if s.closed || !s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = false
	offset := s.latest
	s.mu.Unlock()

	if s.commit != nil {
		s.commit(offset)
	}
}

// Pending reports whether a frame callback is currently scheduled.
func (s *FrameScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Close drops any scheduled callback. Part of the mandatory teardown
// contract: a leaked callback would keep mutating stale state after the
// viewport is gone.
func (s *FrameScheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.pending = false
	s.mu.Unlock()
}

// Debouncer runs a callback once a quiet period has elapsed since the last
// trigger. Each trigger supersedes the previous one; there is never more
// than a single armed timer.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	gen   uint64
}

// NewDebouncer creates a debouncer with the given quiet period. Non-positive
// delays fall back to DefaultMeasureDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultMeasureDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger arms the timer to run fn after the quiet period, replacing any
// previously armed callback.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		stale := gen != d.gen
		d.mu.Unlock()
		if !stale {
			fn()
		}
	})
}

// Stop cancels any armed callback. Mandatory on teardown.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// InitPhase is the state of the bottom-anchored initialization machine.
type InitPhase int

const (
	// PhaseUninitialized means viewport height is unknown or the
	// collection is empty.
	PhaseUninitialized InitPhase = iota
	// PhaseMeasuring means the first target offset has been forced and
	// awaits verification.
	PhaseMeasuring
	// PhaseSettling means the offset drifted once and was re-applied; one
	// more verification remains.
	PhaseSettling
	// PhaseInitialized is terminal for the lifetime of the mount.
	PhaseInitialized
)

// BottomInit drives initial placement for bottom-anchored viewports.
//
// Layouts that anchor at the bottom settle in two passes: force the offset
// to the predicted maximum, let the host paint, then re-read the actual
// offset and re-apply at most once if it drifted. The check is bounded,
// never an open-ended retry loop.
type BottomInit struct {
	phase  InitPhase
	target float64
}

// Phase returns the current machine state.
func (b *BottomInit) Phase() InitPhase {
	return b.phase
}

// Initialized reports whether the first placement has completed.
func (b *BottomInit) Initialized() bool {
	return b.phase == PhaseInitialized
}

// Begin computes the bottom-scroll target once the container height and a
// non-empty collection are both available. It returns the offset the host
// must force and true, or false while the preconditions are unmet. Calling
// Begin after initialization is a no-op.
func (b *BottomInit) Begin(totalItems int, itemHeight, containerHeight float64) (float64, bool) {
	if b.phase != PhaseUninitialized {
		return 0, false
	}
	if totalItems <= 0 || containerHeight <= 0 {
		return 0, false
	}
	b.target = MaxScrollOffset(totalItems, itemHeight, containerHeight)
	b.phase = PhaseMeasuring
	return b.target, true
}

// Settle verifies the placement after a rendering pass. actual is the
// re-read scroll offset. If it drifted from the target on the first pass,
// Settle returns the target to re-apply and false; the second pass accepts
// whatever the layout produced and the machine becomes initialized.
func (b *BottomInit) Settle(actual float64) (reapply float64, done bool) {
	switch b.phase {
	case PhaseMeasuring:
		if diff := actual - b.target; diff > settleEpsilon || diff < -settleEpsilon {
			b.phase = PhaseSettling
			return b.target, false
		}
		b.phase = PhaseInitialized
		return 0, true
	case PhaseSettling:
		b.phase = PhaseInitialized
		return 0, true
	case PhaseInitialized:
		return 0, true
	default:
		return 0, false
	}
}

// Reset returns the machine to its starting state. Only a full remount
// resets initialization.
func (b *BottomInit) Reset() {
	b.phase = PhaseUninitialized
	b.target = 0
}
