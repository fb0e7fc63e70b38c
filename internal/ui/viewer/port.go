package viewer

import "math"

// Port is the viewer's scroll position, measured in terminal rows. It
// implements the engine's ScrollPort contract: SetOffset jumps instantly,
// SmoothSetOffset animates toward the target across frame ticks.
type Port struct {
	offset    float64
	max       float64
	target    float64
	animating bool
}

// NewPort creates a port at offset zero with no scrollable extent.
func NewPort() *Port {
	return &Port{}
}

// Offset returns the current scroll position.
func (p *Port) Offset() float64 {
	return p.offset
}

// Max returns the largest legal offset.
func (p *Port) Max() float64 {
	return p.max
}

// SetMax updates the scrollable extent. The current offset and any animation
// target are re-clamped so a shrinking collection cannot leave the port
// stranded past the end.
func (p *Port) SetMax(max float64) {
	if max < 0 || math.IsNaN(max) {
		max = 0
	}
	p.max = max
	p.offset = p.clamp(p.offset)
	if p.animating {
		p.target = p.clamp(p.target)
	}
}

// SetOffset jumps to the given offset, cancelling any running animation.
func (p *Port) SetOffset(offset float64) {
	p.animating = false
	p.offset = p.clamp(offset)
}

// SmoothSetOffset starts animating toward the given offset.
func (p *Port) SmoothSetOffset(offset float64) {
	p.target = p.clamp(offset)
	p.animating = p.target != p.offset
}

// ScrollBy moves the offset by delta rows, cancelling any animation.
func (p *Port) ScrollBy(delta float64) {
	p.SetOffset(p.offset + delta)
}

// Animating reports whether a smooth scroll is in progress.
func (p *Port) Animating() bool {
	return p.animating
}

// Step advances the animation one frame: half the remaining distance, with a
// snap once within a single row. Returns true whenever the offset moved, the
// snap frame included, so the caller samples the final position too.
func (p *Port) Step() bool {
	if !p.animating {
		return false
	}
	delta := p.target - p.offset
	if math.Abs(delta) <= 1 {
		p.offset = p.target
		p.animating = false
	} else {
		p.offset += delta / 2
	}
	return true
}

func (p *Port) clamp(offset float64) float64 {
	if offset < 0 || math.IsNaN(offset) {
		return 0
	}
	if offset > p.max {
		return p.max
	}
	return offset
}
