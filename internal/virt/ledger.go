// Package virt implements virtual scrolling for very large ordered
// collections. Only the rows near the current scroll position are ever
// materialized; the engine estimates heights for everything else and keeps
// the viewport behaving as if the full collection were present.
//
// The package is host-agnostic: heights are unitless float64s (terminal rows
// for the bundled viewer), measurement and scroll primitives are supplied by
// the hosting layer, and all recomputation is pull-based. Nothing in here
// touches a UI toolkit or performs I/O.
package virt

import "math"

// DefaultItemHeight seeds the estimate before any row has been measured.
const DefaultItemHeight = 40.0

// estimateThreshold is the minimum deviation between the running mean and
// the current estimate before the estimate is replaced. Sub-unit drift is
// ignored so a single odd measurement cannot cascade into a full relayout.
const estimateThreshold = 1.0

// Ledger tracks measured per-row heights and derives a single best-estimate
// height for rows that have not been measured yet.
//
// Each viewport owns exactly one Ledger; it is never shared across
// virtualization instances.
type Ledger struct {
	seed     float64
	estimate float64
	heights  map[int]float64
	sum      float64
}

// NewLedger creates a ledger seeded with the given default height.
// Non-finite or non-positive seeds fall back to DefaultItemHeight.
func NewLedger(defaultHeight float64) *Ledger {
	if !validHeight(defaultHeight) {
		defaultHeight = DefaultItemHeight
	}
	return &Ledger{
		seed:     defaultHeight,
		estimate: defaultHeight,
		heights:  make(map[int]float64),
	}
}

// Record stores a measured height for the row at index. The first valid
// measurement for an index wins until Reset; re-measurements of an already
// known index are ignored within a viewing pass. Invalid readings (NaN, Inf,
// zero or negative) are expected layout noise and are silently dropped.
//
// Recording does not recompute the estimate; hosts feed a batch of
// measurements after the visible range stabilizes and read Estimate once.
func (l *Ledger) Record(index int, height float64) {
	if index < 0 || !validHeight(height) {
		return
	}
	if _, ok := l.heights[index]; ok {
		return
	}
	l.heights[index] = height
	l.sum += height
}

// Height returns the measured height for index, or the current estimate when
// the row has never been measured.
func (l *Ledger) Height(index int) float64 {
	if h, ok := l.heights[index]; ok {
		return h
	}
	return l.Estimate()
}

// Estimate returns the current best-estimate row height: the arithmetic
// mean of all cached measurements, but the stored estimate is only replaced
// when the mean has drifted a full unit from it. An empty cache returns the
// last-known estimate (seeded from the caller default).
func (l *Ledger) Estimate() float64 {
	if len(l.heights) == 0 {
		return l.estimate
	}
	mean := l.sum / float64(len(l.heights))
	if math.Abs(mean-l.estimate) >= estimateThreshold {
		l.estimate = mean
	}
	return l.estimate
}

// Measured reports whether the row at index has a cached measurement.
func (l *Ledger) Measured(index int) bool {
	_, ok := l.heights[index]
	return ok
}

// Len returns the number of cached measurements.
func (l *Ledger) Len() int {
	return len(l.heights)
}

// Reset clears all measurements and restores the seed estimate. Called when
// the collection identity changes out from under the viewport.
func (l *Ledger) Reset() {
	l.heights = make(map[int]float64)
	l.sum = 0
	l.estimate = l.seed
}

// validHeight rejects readings a layout pass can plausibly produce while the
// host is mid-reflow: NaN, infinities, and non-positive values.
func validHeight(h float64) bool {
	return !math.IsNaN(h) && !math.IsInf(h, 0) && h > 0
}
