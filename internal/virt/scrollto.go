package virt

import "fmt"

// Alignment controls where a scroll-to-index target lands in the viewport.
type Alignment int

const (
	// AlignAuto scrolls only when the row is outside the viewport, to the
	// nearer edge. Rows already fully visible are left alone.
	AlignAuto Alignment = iota
	// AlignTop pins the row to the top edge.
	AlignTop
	// AlignBottom pins the row to the bottom edge.
	AlignBottom
)

// ScrollOptions configure a ScrollToIndex call.
type ScrollOptions struct {
	// SmoothScroll animates the jump using the host's smooth-scroll
	// primitive instead of an instant offset set. Nil means animated,
	// the default; set it explicitly to opt out.
	SmoothScroll *bool
	// ShouldThrowOnBounds makes out-of-range indices an error. When false
	// they are clamped to the nearest valid index.
	ShouldThrowOnBounds bool
	// Align selects the alignment policy.
	Align Alignment
}

// smooth resolves the tri-state SmoothScroll field against its default.
func (o ScrollOptions) smooth() bool {
	return o.SmoothScroll == nil || *o.SmoothScroll
}

// DefaultScrollOptions mirrors the documented defaults: animated, strict
// bounds, automatic alignment.
func DefaultScrollOptions() ScrollOptions {
	smooth := true
	return ScrollOptions{
		SmoothScroll:        &smooth,
		ShouldThrowOnBounds: true,
		Align:               AlignAuto,
	}
}

// OutOfRangeError reports a scroll target outside [0, TotalItems).
type OutOfRangeError struct {
	Index      int
	TotalItems int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("scroll index %d out of range [0, %d)", e.Index, e.TotalItems)
}

// ScrollPort is the host-side viewport the controller drives. Offset reads
// the current scroll position; SetOffset jumps instantly; SmoothSetOffset
// animates. The controller treats all three as fire-and-forget commands.
type ScrollPort interface {
	Offset() float64
	SetOffset(offset float64)
	SmoothSetOffset(offset float64)
}

// alignTarget resolves the alignment policy against the current viewport
// window. itemTop and itemHeight describe the row in content coordinates.
// It returns the scroll offset to apply and whether any scrolling is needed
// at all (AlignAuto on a fully visible row needs none).
func alignTarget(align Alignment, itemTop, itemHeight, current, viewportSize float64) (float64, bool) {
	top := itemTop
	bottom := itemTop + itemHeight - viewportSize

	switch align {
	case AlignTop:
		return top, true
	case AlignBottom:
		return bottom, true
	default:
		if itemTop >= current && itemTop+itemHeight <= current+viewportSize {
			return 0, false
		}
		if itemTop < current {
			return top, true
		}
		return bottom, true
	}
}
