// Package overlay provides utilities for rendering modal content
// on top of background views without clearing the screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	// Center places the overlay in the center of the viewport.
	Center Position = iota
	// Top places the overlay at the top center of the viewport.
	Top
	// Bottom places the overlay at the bottom center of the viewport.
	Bottom
)

// Config controls overlay rendering behavior.
type Config struct {
	// Width is the total viewport width.
	Width int
	// Height is the total viewport height.
	Height int
	// Position specifies where to place the overlay (Center, Top, Bottom).
	Position Position
	// PadY adds vertical padding from edges (for Top/Bottom positions).
	PadY int
}

// Place renders foreground content on top of background.
// Uses ANSI-aware string manipulation to preserve styling in both
// the foreground and background content.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	// Pad background to full height
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	startX, startY := calculatePosition(cfg, lipgloss.Width(fg), len(fgLines))

	for i, fgLine := range fgLines {
		bgY := startY + i
		if bgY >= len(bgLines) {
			break
		}
		bgLines[bgY] = spliceLine(bgLines[bgY], fgLine, startX)
	}

	return strings.Join(bgLines, "\n")
}

// spliceLine overwrites bgLine with fgLine starting at column startX,
// keeping whatever background remains visible on either side.
func spliceLine(bgLine, fgLine string, startX int) string {
	// Left portion of background (ANSI-aware truncation)
	leftPart := ansi.Truncate(bgLine, startX, "")

	// Pad left part if background is shorter than startX
	leftWidth := ansi.StringWidth(leftPart)
	if leftWidth < startX {
		leftPart += strings.Repeat(" ", startX-leftWidth)
	}

	// Right portion of background after the overlay
	endX := startX + ansi.StringWidth(fgLine)
	var rightPart string
	if endX < ansi.StringWidth(bgLine) {
		// TruncateLeft removes chars from the left, keeping the right
		rightPart = ansi.TruncateLeft(bgLine, endX, "")
	}

	return leftPart + fgLine + rightPart
}

// calculatePosition determines the x,y starting coordinates for the overlay.
func calculatePosition(cfg Config, fgWidth, fgHeight int) (x, y int) {
	x = (cfg.Width - fgWidth) / 2

	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - fgHeight - cfg.PadY
	default: // Center
		y = (cfg.Height - fgHeight) / 2
	}

	return max(x, 0), max(y, 0)
}
