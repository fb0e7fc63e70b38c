package virt

import "math"

// Mode selects which end of the collection anchors the viewport.
type Mode int

const (
	// ModeTopToBottom anchors index 0 at the top of the scrollable content.
	ModeTopToBottom Mode = iota
	// ModeBottomToTop anchors index 0 at the bottom (chat-style layouts).
	ModeBottomToTop
)

// String implements fmt.Stringer for config and log output.
func (m Mode) String() string {
	switch m {
	case ModeTopToBottom:
		return "topToBottom"
	case ModeBottomToTop:
		return "bottomToTop"
	default:
		return "unknown"
	}
}

// Range is a half-open index interval [Start, End) into the collection.
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether index falls inside the range.
func (r Range) Contains(index int) bool {
	return index >= r.Start && index < r.End
}

// The functions below are the pure heart of the engine. They run on every
// scroll sample, so they must be deterministic, allocation-free, and never
// produce NaN or negative indices no matter how degenerate the inputs are.

// VisibleRange maps a scroll position to the index interval that must be
// mounted, including bufferSize extra rows on each side.
//
// Forward mode counts rows from the top of the content; reverse mode counts
// the same interval measured from the end of the collection, so the newest
// rows stay pinned to the bottom edge.
func VisibleRange(scrollOffset, viewportSize, itemHeight float64, totalItems, bufferSize int, mode Mode) Range {
	if totalItems <= 0 || itemHeight <= 0 || math.IsNaN(itemHeight) || math.IsInf(itemHeight, 0) {
		return Range{}
	}
	if scrollOffset < 0 || math.IsNaN(scrollOffset) {
		scrollOffset = 0
	}
	if viewportSize < 0 || math.IsNaN(viewportSize) {
		viewportSize = 0
	}
	if bufferSize < 0 {
		bufferSize = 0
	}

	scrolledRows := int(math.Floor(scrollOffset / itemHeight))
	visibleRows := int(math.Ceil(viewportSize/itemHeight)) + 1

	var start, end int
	switch mode {
	case ModeBottomToTop:
		bottom := totalItems - scrolledRows
		start = bottom - visibleRows - bufferSize
		end = bottom + bufferSize
	default:
		start = scrolledRows - bufferSize
		end = scrolledRows + visibleRows + bufferSize
	}

	return Range{
		Start: clampIndex(start, totalItems),
		End:   clampIndex(end, totalItems),
	}
}

// TransformOffset returns the translation, in height units, that positions
// the mounted block of rows at its correct absolute position within the
// scrollable content. Forward mode offsets by the rows above the block;
// reverse mode offsets by the rows below it.
func TransformOffset(mode Mode, totalItems, visibleEnd, visibleStart int, itemHeight float64) float64 {
	if totalItems <= 0 || itemHeight <= 0 || math.IsNaN(itemHeight) || math.IsInf(itemHeight, 0) {
		return 0
	}
	var rows int
	switch mode {
	case ModeBottomToTop:
		rows = totalItems - clampIndex(visibleEnd, totalItems)
	default:
		rows = clampIndex(visibleStart, totalItems)
	}
	return float64(rows) * itemHeight
}

// MaxScrollOffset returns the largest legal scroll offset for the given
// content and container sizes. Never negative; zero items scroll nowhere.
func MaxScrollOffset(totalItems int, itemHeight, containerHeight float64) float64 {
	if totalItems <= 0 || itemHeight <= 0 || math.IsNaN(itemHeight) || math.IsInf(itemHeight, 0) {
		return 0
	}
	if containerHeight < 0 || math.IsNaN(containerHeight) {
		containerHeight = 0
	}
	return math.Max(0, float64(totalItems)*itemHeight-containerHeight)
}

// ContentExtent returns the total scrollable height reported to the host's
// real scrollbar. The extent never shrinks below the viewport itself.
func ContentExtent(totalItems int, itemHeight, viewportHeight float64) float64 {
	if viewportHeight < 0 || math.IsNaN(viewportHeight) {
		viewportHeight = 0
	}
	if totalItems <= 0 || itemHeight <= 0 || math.IsNaN(itemHeight) || math.IsInf(itemHeight, 0) {
		return viewportHeight
	}
	return math.Max(viewportHeight, float64(totalItems)*itemHeight)
}

// clampIndex pins an index into [0, totalItems].
func clampIndex(i, totalItems int) int {
	if i < 0 {
		return 0
	}
	if i > totalItems {
		return totalItems
	}
	return i
}
