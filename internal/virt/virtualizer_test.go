package virt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakePort records the scroll commands the controller issues.
type fakePort struct {
	offset  float64
	instant []float64
	smooth  []float64
}

func (p *fakePort) Offset() float64 { return p.offset }

func (p *fakePort) SetOffset(off float64) {
	p.offset = off
	p.instant = append(p.instant, off)
}

func (p *fakePort) SmoothSetOffset(off float64) {
	p.offset = off
	p.smooth = append(p.smooth, off)
}

// instant opts out of the animated default so assertions can watch SetOffset.
func instant() *bool {
	f := false
	return &f
}

func newTestVirtualizer(mode Mode, totalItems int) *Virtualizer {
	cfg := DefaultVirtConfig()
	cfg.DefaultItemHeight = 30
	cfg.BufferSize = 2
	cfg.Mode = mode
	v := New(cfg, nil)
	v.SetTotalItems(totalItems)
	v.SetViewportHeight(300)
	return v
}

// ===========================================================================
// Layout / reset lifecycle
// ===========================================================================

func TestVirtualizer_LayoutForward(t *testing.T) {
	v := newTestVirtualizer(ModeTopToBottom, 100)
	defer v.Close()
	v.CommitScroll(100)

	layout := v.Layout()
	require.Equal(t, Range{Start: 1, End: 16}, layout.Range)
	require.Equal(t, 30.0, layout.TransformOffset)
	require.Equal(t, 3000.0, layout.ContentExtent)
}

func TestVirtualizer_LayoutReverse(t *testing.T) {
	v := newTestVirtualizer(ModeBottomToTop, 100)
	defer v.Close()
	v.CommitScroll(100)

	layout := v.Layout()
	require.Equal(t, Range{Start: 84, End: 99}, layout.Range)
	require.Equal(t, 30.0, layout.TransformOffset)
}

func TestVirtualizer_CollectionChangeResetsEverything(t *testing.T) {
	v := newTestVirtualizer(ModeTopToBottom, 100)
	defer v.Close()
	v.Measure(0, 120)
	v.CommitScroll(500)

	v.SetTotalItems(50)

	require.Equal(t, 0.0, v.ScrollOffset(), "scroll state resets on collection swap")
	require.Equal(t, 0, v.Ledger().Len(), "ledger clears on collection swap")
	require.Equal(t, 30.0, v.Estimate(), "estimate returns to seed")
	require.Zero(t, v.Processed())
}

func TestVirtualizer_SameLengthIsNotAReset(t *testing.T) {
	v := newTestVirtualizer(ModeTopToBottom, 100)
	defer v.Close()
	v.Measure(0, 120)

	v.SetTotalItems(100)
	require.Equal(t, 1, v.Ledger().Len(), "unchanged length keeps measurements")
}

func TestVirtualizer_SampleScrollCoalesces(t *testing.T) {
	frame := &manualFrame{}
	cfg := DefaultVirtConfig()
	cfg.DefaultItemHeight = 30
	v := New(cfg, frame.request)
	defer v.Close()
	v.SetTotalItems(100)

	v.SampleScroll(10)
	v.SampleScroll(90)
	require.Equal(t, 0.0, v.ScrollOffset(), "nothing commits before the frame")

	frame.fire()
	require.Equal(t, 90.0, v.ScrollOffset(), "the last sample wins")
}

func TestVirtualizer_RangeStableEventAfterQuietPeriod(t *testing.T) {
	cfg := DefaultVirtConfig()
	cfg.MeasureDebounce = 10 * time.Millisecond
	v := New(cfg, nil)
	defer v.Close()
	v.SetTotalItems(100)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := v.Broker().Subscribe(ctx)

	v.CommitScroll(100)

	select {
	case ev := <-events:
		require.Equal(t, EventRangeStable, ev.Type)
	case <-time.After(time.Second):
		t.Fatal("no range-stable event after the quiet period")
	}
}

// ===========================================================================
// Debug snapshots
// ===========================================================================

func TestVirtualizer_SnapshotDedup(t *testing.T) {
	cfg := DefaultVirtConfig()
	cfg.DefaultItemHeight = 30
	cfg.BufferSize = 2
	cfg.Debug = true
	v := New(cfg, nil)
	defer v.Close()
	v.SetTotalItems(100)
	v.SetViewportHeight(300)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := v.Broker().Subscribe(ctx)

	v.Layout()
	v.Layout() // identical state: must not publish again
	v.CommitScroll(100)
	v.Layout()

	var snaps []Snapshot
	timeout := time.After(time.Second)
	for len(snaps) < 2 {
		select {
		case ev := <-events:
			if ev.Type == EventSnapshot {
				snaps = append(snaps, ev.Payload)
			}
		case <-timeout:
			t.Fatalf("expected 2 snapshots, got %d", len(snaps))
		}
	}

	require.Equal(t, 0, snaps[0].Start)
	require.Equal(t, Snapshot{
		VisibleCount: 15, Start: 1, End: 16,
		TotalItems: 100, AvgHeight: 30,
	}, snaps[1])

	// No third snapshot should have been published for the repeat layout.
	select {
	case ev := <-events:
		require.NotEqual(t, EventSnapshot, ev.Type, "duplicate snapshot must be suppressed")
	default:
	}
}

func TestVirtualizer_NoSnapshotsWithoutDebug(t *testing.T) {
	v := newTestVirtualizer(ModeTopToBottom, 100)
	defer v.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := v.Broker().Subscribe(ctx)

	v.Layout()

	select {
	case ev := <-events:
		require.NotEqual(t, EventSnapshot, ev.Type)
	default:
	}
}

// ===========================================================================
// Bottom-anchored initialization
// ===========================================================================

func TestVirtualizer_BottomInitFlow(t *testing.T) {
	v := newTestVirtualizer(ModeBottomToTop, 100)
	defer v.Close()
	port := &fakePort{}

	require.False(t, v.Initialized())
	require.True(t, v.StartBottomInit(port))
	require.Equal(t, []float64{2700}, port.instant, "initial placement forces max offset")

	// Layout settled short; the target is re-applied exactly once.
	port.offset = 2500
	require.False(t, v.VerifyBottomInit(port))
	require.Equal(t, []float64{2700, 2700}, port.instant)

	port.offset = 2700
	require.True(t, v.VerifyBottomInit(port))
	require.True(t, v.Initialized())
}

func TestVirtualizer_ForwardModeInitializesOnViewportMeasure(t *testing.T) {
	cfg := DefaultVirtConfig()
	v := New(cfg, nil)
	defer v.Close()
	v.SetTotalItems(10)

	require.False(t, v.Initialized())
	v.SetViewportHeight(300)
	require.True(t, v.Initialized())
}

// ===========================================================================
// ScrollToIndex
// ===========================================================================

func TestScrollToIndex_OutOfRangeThrows(t *testing.T) {
	v := newTestVirtualizer(ModeTopToBottom, 100)
	defer v.Close()
	port := &fakePort{}

	_, err := v.ScrollToIndex(-1, DefaultScrollOptions(), port)
	var oor *OutOfRangeError
	require.ErrorAs(t, err, &oor)
	require.Equal(t, -1, oor.Index)
	require.Equal(t, 100, oor.TotalItems)

	_, err = v.ScrollToIndex(100, DefaultScrollOptions(), port)
	require.Error(t, err, "index == totalItems is out of range")
	require.Empty(t, port.instant)
	require.Empty(t, port.smooth)
}

func TestScrollToIndex_NegativeClampsToZeroOffset(t *testing.T) {
	v := newTestVirtualizer(ModeTopToBottom, 100)
	defer v.Close()
	port := &fakePort{offset: 900}

	opts := DefaultScrollOptions()
	opts.ShouldThrowOnBounds = false
	opts.SmoothScroll = instant()

	target, err := v.ScrollToIndex(-1, opts, port)
	require.NoError(t, err)
	require.Equal(t, 0.0, target, "clamped index 0 scrolls to offset 0")
	require.Equal(t, []float64{0}, port.instant)
}

func TestScrollToIndex_AutoNoopWhenFullyVisible(t *testing.T) {
	v := newTestVirtualizer(ModeTopToBottom, 10000)
	defer v.Close()

	// Item 5000 spans [150000, 150030); a viewport at 149990 shows it fully.
	port := &fakePort{offset: 149990}
	v.CommitScroll(149990)

	target, err := v.ScrollToIndex(5000, ScrollOptions{Align: AlignAuto, ShouldThrowOnBounds: true}, port)
	require.NoError(t, err)
	require.Equal(t, 149990.0, target, "fully visible target must not move the viewport")
	require.Empty(t, port.instant)
	require.Empty(t, port.smooth)
}

func TestScrollToIndex_AutoAlignsTopWhenAbove(t *testing.T) {
	v := newTestVirtualizer(ModeTopToBottom, 1000)
	defer v.Close()
	port := &fakePort{offset: 9000}

	opts := DefaultScrollOptions()
	opts.SmoothScroll = instant()
	target, err := v.ScrollToIndex(10, opts, port)
	require.NoError(t, err)
	require.Equal(t, 300.0, target, "item above viewport lands on the top edge")
}

func TestScrollToIndex_AutoAlignsBottomWhenBelow(t *testing.T) {
	v := newTestVirtualizer(ModeTopToBottom, 1000)
	defer v.Close()
	port := &fakePort{offset: 0}

	opts := DefaultScrollOptions()
	opts.SmoothScroll = instant()
	target, err := v.ScrollToIndex(100, opts, port)
	require.NoError(t, err)
	// Item top 3000 plus height 30 minus viewport 300.
	require.Equal(t, 2730.0, target)
}

func TestScrollToIndex_UnsetSmoothScrollAnimates(t *testing.T) {
	v := newTestVirtualizer(ModeTopToBottom, 1000)
	defer v.Close()
	port := &fakePort{}

	// A zero-value options struct leaves SmoothScroll nil, which must
	// resolve to the animated default rather than an instant jump.
	_, err := v.ScrollToIndex(100, ScrollOptions{Align: AlignTop, ShouldThrowOnBounds: true}, port)
	require.NoError(t, err)
	require.Equal(t, []float64{3000}, port.smooth, "nil SmoothScroll should use the animated primitive")
	require.Empty(t, port.instant)
}

func TestScrollToIndex_ExplicitAlignments(t *testing.T) {
	v := newTestVirtualizer(ModeTopToBottom, 1000)
	defer v.Close()
	port := &fakePort{offset: 3000}

	target, err := v.ScrollToIndex(100, ScrollOptions{Align: AlignTop, ShouldThrowOnBounds: true}, port)
	require.NoError(t, err)
	require.Equal(t, 3000.0, target)
	require.Equal(t, []float64{3000}, port.smooth, "default smooth scroll uses the animated primitive")

	target, err = v.ScrollToIndex(100, ScrollOptions{Align: AlignBottom, ShouldThrowOnBounds: true, SmoothScroll: instant()}, port)
	require.NoError(t, err)
	require.Equal(t, 2730.0, target)
	require.Equal(t, []float64{2730}, port.instant)
}

func TestScrollToIndex_ReverseModeTranslatesFromEnd(t *testing.T) {
	v := newTestVirtualizer(ModeBottomToTop, 100)
	defer v.Close()
	port := &fakePort{offset: 0}

	opts := DefaultScrollOptions()
	opts.SmoothScroll = instant()
	// In reverse mode index 0 sits at the bottom of the content: 99 rows
	// of 30 units lie above it.
	target, err := v.ScrollToIndex(0, opts, port)
	require.NoError(t, err)
	require.Equal(t, 2700.0, target)
}

func TestScrollToIndex_TargetClampedToMaxScroll(t *testing.T) {
	v := newTestVirtualizer(ModeTopToBottom, 100)
	defer v.Close()
	port := &fakePort{offset: 0}

	opts := ScrollOptions{Align: AlignTop, SmoothScroll: instant(), ShouldThrowOnBounds: true}
	target, err := v.ScrollToIndex(99, opts, port)
	require.NoError(t, err)
	require.Equal(t, 2700.0, target, "top-aligning the last item clamps to max scroll")
}

func TestScrollToIndex_MeasuredHeightsShiftTarget(t *testing.T) {
	v := newTestVirtualizer(ModeTopToBottom, 1000)
	defer v.Close()
	port := &fakePort{offset: 50000}

	// Rows 0 and 1 are twice the estimate; offsets past them shift by 60.
	v.Measure(0, 60)
	v.Measure(1, 60)
	est := v.Estimate()

	opts := ScrollOptions{Align: AlignTop, SmoothScroll: instant(), ShouldThrowOnBounds: true}
	target, err := v.ScrollToIndex(10, opts, port)
	require.NoError(t, err)
	require.InDelta(t, 60+60+8*est, target, 1e-9)
}

func TestScrollToIndex_EmptyCollection(t *testing.T) {
	v := newTestVirtualizer(ModeTopToBottom, 0)
	defer v.Close()
	port := &fakePort{}

	_, err := v.ScrollToIndex(0, DefaultScrollOptions(), port)
	require.Error(t, err, "no index is valid in an empty collection")

	opts := DefaultScrollOptions()
	opts.ShouldThrowOnBounds = false
	target, err := v.ScrollToIndex(0, opts, port)
	require.NoError(t, err)
	require.Equal(t, 0.0, target)
	require.Empty(t, port.instant, "nothing to scroll in an empty collection")
}

// ===========================================================================
// Populate (progressive initialization)
// ===========================================================================

func TestVirtualizer_PopulateTracksProgress(t *testing.T) {
	cfg := DefaultVirtConfig()
	cfg.ChunkSize = 1000
	v := New(cfg, nil)
	defer v.Close()
	v.SetTotalItems(2500)

	tr := &trampoline{}
	complete := false
	v.Populate(nil, tr.yield, func() { complete = true })

	require.Equal(t, 1000, v.Processed(), "first chunk runs synchronously")
	tr.drain()
	require.Equal(t, 2500, v.Processed())
	require.True(t, complete)
}
