package viewer

import (
	"strings"

	"github.com/zjrosen/longview/internal/ui/styles"
)

// Scrollbar characters
const (
	scrollbarThumbChar = "█" // Full block
	scrollbarTrackChar = "░" // Light shade
)

// ScrollbarConfig configures scrollbar rendering. All values are in terminal
// rows.
type ScrollbarConfig struct {
	TotalLines     int // Total scrollable extent
	ViewportHeight int // Visible rows
	ScrollOffset   int // Current scroll position (top row)
}

// calculateThumbBounds returns the start row and height of the scroll thumb.
// Thumb height is proportional to the visible/total ratio with a minimum of
// one row; its position is proportional within the remaining track.
func calculateThumbBounds(cfg ScrollbarConfig) (start, height int) {
	if cfg.TotalLines <= 0 || cfg.ViewportHeight <= 0 {
		return 0, 0
	}

	// Content fits in the viewport: thumb fills the entire track.
	if cfg.TotalLines <= cfg.ViewportHeight {
		return 0, cfg.ViewportHeight
	}

	height = max(1, cfg.ViewportHeight*cfg.ViewportHeight/cfg.TotalLines)

	maxOffset := cfg.TotalLines - cfg.ViewportHeight
	if maxOffset <= 0 {
		return 0, height
	}

	scrollableTrack := cfg.ViewportHeight - height
	if scrollableTrack <= 0 {
		return 0, height
	}

	start = scrollableTrack * cfg.ScrollOffset / maxOffset
	start = max(0, min(start, cfg.ViewportHeight-height))

	return start, height
}

// RenderScrollbar renders the scrollbar as one column of height lines joined
// by newlines. When the content fits in the viewport the column degrades to
// blanks so the layout keeps its width.
func RenderScrollbar(cfg ScrollbarConfig) string {
	if cfg.ViewportHeight <= 0 || cfg.TotalLines <= 0 {
		return ""
	}

	if cfg.TotalLines <= cfg.ViewportHeight {
		lines := make([]string, cfg.ViewportHeight)
		for i := range lines {
			lines[i] = " "
		}
		return strings.Join(lines, "\n")
	}

	thumbStart, thumbHeight := calculateThumbBounds(cfg)

	lines := make([]string, cfg.ViewportHeight)
	for row := range cfg.ViewportHeight {
		if row >= thumbStart && row < thumbStart+thumbHeight {
			lines[row] = styles.ScrollbarThumbStyle.Render(scrollbarThumbChar)
		} else {
			lines[row] = styles.ScrollbarTrackStyle.Render(scrollbarTrackChar)
		}
	}

	return strings.Join(lines, "\n")
}
