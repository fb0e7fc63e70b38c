package virt

import (
	"math"
	"time"

	"github.com/zjrosen/longview/internal/log"
	"github.com/zjrosen/longview/internal/pubsub"
)

// Event types published on the engine broker.
const (
	// EventRangeStable fires once the visible range has held still for the
	// measure debounce window. Hosts measure newly mounted rows on it.
	EventRangeStable pubsub.EventType = "range_stable"
	// EventSnapshot carries a debug snapshot. Only published when debug is
	// enabled and the snapshot differs from the previous one.
	EventSnapshot pubsub.EventType = "snapshot"
)

// Config tunes a Virtualizer instance.
type Config struct {
	// DefaultItemHeight seeds the height estimate (default 40).
	DefaultItemHeight float64
	// BufferSize is the number of rows mounted outside the viewport on
	// each side (default 20).
	BufferSize int
	// Mode anchors index 0 at the top or the bottom.
	Mode Mode
	// BlockSize is the block-sum checkpoint stride (default 1000).
	BlockSize int
	// ChunkSize is the progressive-initialization chunk size (default 1000).
	ChunkSize int
	// MeasureDebounce is the quiet period before rows are measured
	// (default 200ms).
	MeasureDebounce time.Duration
	// Debug enables snapshot publishing.
	Debug bool
}

// DefaultVirtConfig returns the documented defaults.
func DefaultVirtConfig() Config {
	return Config{
		DefaultItemHeight: DefaultItemHeight,
		BufferSize:        20,
		Mode:              ModeTopToBottom,
		BlockSize:         DefaultBlockSize,
		ChunkSize:         DefaultChunkSize,
		MeasureDebounce:   DefaultMeasureDebounce,
	}
}

// Layout is the output of one recompute pass: which rows to mount, where to
// translate the mounted block, and the total extent to report to the
// scrollbar.
type Layout struct {
	Range           Range
	TransformOffset float64
	ContentExtent   float64
}

// Snapshot is the debug view of engine state.
type Snapshot struct {
	VisibleCount int
	Start        int
	End          int
	TotalItems   int
	Processed    int
	AvgHeight    float64
}

// Virtualizer is one viewport's virtualization instance. It owns the height
// ledger and scroll state exclusively; the collection itself stays with the
// host and is only ever read.
//
// All recomputation is pull-based: the host calls the Set* inputs when it
// notices a change, then asks for Layout(). There is no reactive graph.
type Virtualizer struct {
	cfg    Config
	ledger *Ledger
	sched  *FrameScheduler
	deb    *Debouncer
	init   BottomInit
	broker *pubsub.Broker[Snapshot]

	totalItems     int
	processed      int
	scrollOffset   float64
	viewportHeight float64
	viewportKnown  bool

	lastSnapshot Snapshot
	hasSnapshot  bool
}

// New creates a virtualizer. frame is the host's animation-frame primitive;
// nil means scroll samples commit synchronously (useful for hosts that
// already deliver one event per paint, and for tests).
func New(cfg Config, frame FrameFunc) *Virtualizer {
	if cfg.DefaultItemHeight <= 0 || math.IsNaN(cfg.DefaultItemHeight) || math.IsInf(cfg.DefaultItemHeight, 0) {
		cfg.DefaultItemHeight = DefaultItemHeight
	}
	if cfg.BufferSize < 0 {
		cfg.BufferSize = 0
	}
	if cfg.BlockSize <= 0 {
		cfg.BlockSize = DefaultBlockSize
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if frame == nil {
		frame = func(fn func()) { fn() }
	}

	v := &Virtualizer{
		cfg:    cfg,
		ledger: NewLedger(cfg.DefaultItemHeight),
		deb:    NewDebouncer(cfg.MeasureDebounce),
		broker: pubsub.NewBroker[Snapshot](),
	}
	v.sched = NewFrameScheduler(frame, v.CommitScroll)
	return v
}

// Broker exposes the engine event stream (range-stable and debug snapshots).
func (v *Virtualizer) Broker() *pubsub.Broker[Snapshot] {
	return v.broker
}

// SetTotalItems replaces the collection size. A changed size means the
// collection identity changed, which resets the ledger, the scroll state,
// and the bottom-anchored init machine wholesale.
func (v *Virtualizer) SetTotalItems(n int) {
	if n < 0 {
		n = 0
	}
	if n == v.totalItems {
		return
	}
	log.Debug(log.CatVirt, "collection replaced", "old", v.totalItems, "new", n)
	v.totalItems = n
	v.processed = 0
	v.scrollOffset = 0
	v.ledger.Reset()
	v.init.Reset()
	v.hasSnapshot = false
}

// TotalItems returns the current collection size.
func (v *Virtualizer) TotalItems() int {
	return v.totalItems
}

// SetViewportHeight records the container size from the host's resize
// observation.
func (v *Virtualizer) SetViewportHeight(h float64) {
	if h < 0 || math.IsNaN(h) {
		h = 0
	}
	v.viewportHeight = h
	if h > 0 {
		v.viewportKnown = true
	}
}

// SampleScroll feeds a raw scroll event into the frame coalescer. Multiple
// samples within one frame window collapse to the most recent offset.
func (v *Virtualizer) SampleScroll(offset float64) {
	v.sched.Sample(offset)
}

// CommitScroll commits a scroll offset immediately, bypassing coalescing.
// The frame scheduler calls this from its flush; hosts that batch on their
// own may call it directly. Every commit re-arms the measure debounce, so
// EventRangeStable fires once scrolling pauses.
func (v *Virtualizer) CommitScroll(offset float64) {
	if offset < 0 || math.IsNaN(offset) {
		offset = 0
	}
	v.scrollOffset = offset
	v.deb.Trigger(func() {
		v.broker.Publish(EventRangeStable, Snapshot{})
	})
}

// ScrollOffset returns the last committed offset.
func (v *Virtualizer) ScrollOffset() float64 {
	return v.scrollOffset
}

// Measure records one row's measured height. Invalid readings are dropped
// by the ledger; the first valid measurement per index wins until a reset.
func (v *Virtualizer) Measure(index int, height float64) {
	v.ledger.Record(index, height)
}

// Estimate returns the ledger's current best-estimate row height.
func (v *Virtualizer) Estimate() float64 {
	return v.ledger.Estimate()
}

// Ledger exposes the height ledger for block-sum queries.
func (v *Virtualizer) Ledger() *Ledger {
	return v.ledger
}

// Initialized reports whether the first layout pass has completed: a
// measured viewport for forward mode, plus the settled bottom placement for
// reverse mode.
func (v *Virtualizer) Initialized() bool {
	if v.cfg.Mode == ModeBottomToTop {
		return v.init.Initialized()
	}
	return v.viewportKnown
}

// StartBottomInit begins the bottom-anchored placement once preconditions
// hold, forcing the port to the predicted maximum offset. Returns true when
// the placement was issued.
func (v *Virtualizer) StartBottomInit(port ScrollPort) bool {
	target, ok := v.init.Begin(v.totalItems, v.ledger.Estimate(), v.viewportHeight)
	if !ok {
		return false
	}
	port.SetOffset(target)
	v.scrollOffset = target
	return true
}

// VerifyBottomInit runs one settle pass: re-read the actual offset and
// re-apply the target at most once if layout drifted. Returns true once the
// machine reaches its initialized state.
func (v *Virtualizer) VerifyBottomInit(port ScrollPort) bool {
	actual := port.Offset()
	reapply, done := v.init.Settle(actual)
	if !done {
		port.SetOffset(reapply)
		v.scrollOffset = reapply
		return false
	}
	v.scrollOffset = actual
	return true
}

// Layout runs one recompute pass against the current inputs and publishes a
// debug snapshot when it changed.
func (v *Virtualizer) Layout() Layout {
	est := v.ledger.Estimate()
	rng := VisibleRange(v.scrollOffset, v.viewportHeight, est, v.totalItems, v.cfg.BufferSize, v.cfg.Mode)
	out := Layout{
		Range:           rng,
		TransformOffset: TransformOffset(v.cfg.Mode, v.totalItems, rng.End, rng.Start, est),
		ContentExtent:   ContentExtent(v.totalItems, est, v.viewportHeight),
	}
	v.publishSnapshot(rng, est)
	return out
}

// ScrollToIndex computes the offset that satisfies the alignment policy for
// index and issues it to the port. The call is fire-and-forget: it returns
// once the scroll command has been issued, not when any animation lands.
//
// Out-of-range indices error when opts.ShouldThrowOnBounds is set and clamp
// to the nearest valid index otherwise.
func (v *Virtualizer) ScrollToIndex(index int, opts ScrollOptions, port ScrollPort) (float64, error) {
	if index < 0 || index >= v.totalItems {
		if opts.ShouldThrowOnBounds {
			return 0, &OutOfRangeError{Index: index, TotalItems: v.totalItems}
		}
		index = clampIndex(index, v.totalItems-1)
		log.Debug(log.CatScroll, "scroll target clamped", "index", index)
	}
	if v.totalItems == 0 {
		return 0, nil
	}

	// The table is rebuilt from the live ledger on every call; reusing one
	// across estimate changes would answer with stale offsets.
	sums := BuildBlockSums(v.ledger, v.totalItems, v.cfg.BlockSize)
	totalExtent := 0.0
	if len(sums) > 0 {
		totalExtent = sums[len(sums)-1]
	}

	var itemTop float64
	switch v.cfg.Mode {
	case ModeBottomToTop:
		itemTop = totalExtent - OffsetForIndex(v.ledger, index+1, sums, v.cfg.BlockSize)
	default:
		itemTop = OffsetForIndex(v.ledger, index, sums, v.cfg.BlockSize)
	}

	current := port.Offset()
	target, needed := alignTarget(opts.Align, itemTop, v.ledger.Height(index), current, v.viewportHeight)
	if !needed {
		return current, nil
	}

	target = math.Max(0, math.Min(target, math.Max(0, totalExtent-v.viewportHeight)))
	if opts.smooth() {
		port.SmoothSetOffset(target)
	} else {
		port.SetOffset(target)
	}
	v.scrollOffset = target
	log.Debug(log.CatScroll, "scroll to index", "index", index, "target", target, "smooth", opts.smooth())
	return target, nil
}

// Populate runs the progressive initializer over the collection, tracking
// cumulative progress for the debug snapshot.
func (v *Virtualizer) Populate(process func(start, end int), yield YieldFunc, onComplete func()) {
	ProcessChunked(v.totalItems, v.cfg.ChunkSize, process,
		func(done int) { v.processed = done },
		onComplete, yield)
}

// Processed returns how many rows the progressive initializer has covered.
func (v *Virtualizer) Processed() int {
	return v.processed
}

// Close tears the instance down: pending frame callbacks are dropped, the
// debounce timer is stopped, and the broker is closed. Mandatory on
// unmount; a leaked timer would keep firing into stale state.
func (v *Virtualizer) Close() {
	v.sched.Close()
	v.deb.Stop()
	v.broker.Close()
}

// publishSnapshot emits a debug snapshot, suppressing duplicates so
// steady-state scrolling cannot flood the stream.
func (v *Virtualizer) publishSnapshot(rng Range, est float64) {
	if !v.cfg.Debug {
		return
	}
	snap := Snapshot{
		VisibleCount: rng.Len(),
		Start:        rng.Start,
		End:          rng.End,
		TotalItems:   v.totalItems,
		Processed:    v.processed,
		AvgHeight:    est,
	}
	if v.hasSnapshot && snap == v.lastSnapshot {
		return
	}
	v.lastSnapshot = snap
	v.hasSnapshot = true
	v.broker.Publish(EventSnapshot, snap)
}
